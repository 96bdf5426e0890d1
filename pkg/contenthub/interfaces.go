package contenthub

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// AssetStore defines the interface for uploaded-binary storage backends.
type AssetStore interface {
	// Store persists the uploaded bytes under a collision-resistant name
	// derived from the ingestion time and the original filename, and returns
	// the stable reference path (e.g. "/uploads/1700000000000-pic.jpg") for
	// later retrieval. On failure it returns a *StorageError and leaves no
	// partially written object addressable.
	Store(ctx context.Context, originalFilename string, r io.Reader) (string, error)

	// Open returns the stored bytes for a previously stored asset. Accepts
	// either the full reference path or the bare stored name.
	Open(ctx context.Context, storedRef string) (io.ReadCloser, error)

	// Delete removes a stored asset. Posts hold only weak references, so a
	// delete can leave dangling CoverImageRefs behind; callers own that risk.
	Delete(ctx context.Context, storedRef string) error
}

// Repository defines the interface for post, comment and user persistence.
//
// The write operations are pure inserts: they assign the record ID and
// creation timestamp, validate required fields, and never touch other
// records. The read operations hydrate author references; a dangling
// reference yields a nil Author rather than a failed read.
type Repository interface {
	// CreatePost inserts a post, assigning ID and CreatedAt. Returns a
	// *ValidationError when Title, CoverImageRef, or AuthorID is missing.
	CreatePost(ctx context.Context, post *Post) (*Post, error)

	// GetPostByID returns the post with its author hydrated, or
	// ErrPostNotFound.
	GetPostByID(ctx context.Context, id uuid.UUID) (*PostWithAuthor, error)

	// CreateComment inserts a comment, assigning ID and CreatedAt. Returns a
	// *ValidationError when Content, PostID, or AuthorID is missing. The
	// existence of PostID is deliberately not verified.
	CreateComment(ctx context.Context, comment *Comment) (*Comment, error)

	// ListCommentsByPost returns the post's comments oldest first with their
	// authors hydrated. The result is a point-in-time snapshot; an empty
	// slice means no comments, never an error.
	ListCommentsByPost(ctx context.Context, postID uuid.UUID) ([]*CommentWithAuthor, error)

	// User operations (written by the authentication collaborator)
	CreateUser(ctx context.Context, user *User) (*User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
}
