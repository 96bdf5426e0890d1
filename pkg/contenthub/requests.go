package contenthub

import (
	"io"

	"github.com/google/uuid"
)

// Request DTOs

// CreatePostRequest contains parameters for creating a post. File carries
// the uploaded cover image; a nil or empty reader fails the operation with
// ErrMissingAsset before any side effect.
type CreatePostRequest struct {
	Title    string
	Body     string
	AuthorID uuid.UUID
	FileName string
	File     io.Reader
}

// AddCommentRequest contains parameters for attaching a comment to a post.
type AddCommentRequest struct {
	PostID   uuid.UUID
	AuthorID uuid.UUID
	Content  string
}

// RegisterUserRequest contains parameters for creating a user record. This
// is the seam used by the authentication collaborator; the core does not
// manage credentials or sessions.
type RegisterUserRequest struct {
	Name  string
	Email string
}
