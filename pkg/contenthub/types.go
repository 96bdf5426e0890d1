package contenthub

import (
	"time"

	"github.com/google/uuid"
)

// User is the identity record referenced by posts and comments. It is owned
// by the authentication collaborator; this core only reads it for hydration
// and offers a minimal write surface for that collaborator.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Post is a published article. CoverImageRef is set exactly once at creation
// and points at an asset persisted by an AssetStore; a post is never visible
// to readers without it.
type Post struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Body          string    `json:"body,omitempty"`
	CoverImageRef string    `json:"cover_image_ref"`
	AuthorID      uuid.UUID `json:"author_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// Comment is a text reply attached to a post. PostID is not checked against
// the posts collection on insert; a comment may reference a post that no
// longer (or never) existed.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	PostID    uuid.UUID `json:"post_id"`
	AuthorID  uuid.UUID `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}

// PostWithAuthor is the hydrated read view of a post. Author is nil when the
// referenced user record is missing; a dangling author reference does not
// fail the read.
type PostWithAuthor struct {
	Post
	Author *User `json:"author,omitempty"`
}

// CommentWithAuthor is the hydrated read view of a comment.
type CommentWithAuthor struct {
	Comment
	Author *User `json:"author,omitempty"`
}

// PostDetail is the composite view consumed by the presentation boundary:
// the post with its author plus all comments, oldest first, each with its
// author. Comments is empty, never nil, for a post without comments.
type PostDetail struct {
	Post     *PostWithAuthor      `json:"post"`
	Comments []*CommentWithAuthor `json:"comments"`
}
