package contenthub

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the orchestration interface exposed to the presentation
// boundary. Every method completes its writes before returning; there is no
// fire-and-forget and no retry.
type Service interface {
	// CreatePost validates the upload, stores the cover image, then inserts
	// the post with the returned reference. The two steps are not
	// transactional: a failed insert after a successful store leaves an
	// orphaned asset behind.
	CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error)

	// GetPostDetail assembles the composite read view: post with author plus
	// ordered comments with their authors. ErrPostNotFound propagates
	// unmasked; a listing failure is an error, never an empty result.
	GetPostDetail(ctx context.Context, postID uuid.UUID) (*PostDetail, error)

	// AddComment attaches a comment to a post without verifying the post
	// exists. Empty content is a *ValidationError.
	AddComment(ctx context.Context, req AddCommentRequest) (*Comment, error)

	// RegisterUser creates a user record for the authentication collaborator.
	RegisterUser(ctx context.Context, req RegisterUserRequest) (*User, error)
}
