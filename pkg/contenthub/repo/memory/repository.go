package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arun100-dev/ContentHub/pkg/contenthub"
)

// Repository implements contenthub.Repository using in-memory storage
type Repository struct {
	mu             sync.RWMutex
	users          map[uuid.UUID]*contenthub.User
	posts          map[uuid.UUID]*contenthub.Post
	comments       map[uuid.UUID]*contenthub.Comment
	commentsByPost map[uuid.UUID][]uuid.UUID // post_id -> comment ids in insertion order
}

// New creates a new in-memory repository
func New() *Repository {
	return &Repository{
		users:          make(map[uuid.UUID]*contenthub.User),
		posts:          make(map[uuid.UUID]*contenthub.Post),
		comments:       make(map[uuid.UUID]*contenthub.Comment),
		commentsByPost: make(map[uuid.UUID][]uuid.UUID),
	}
}

// Post operations

func (r *Repository) CreatePost(ctx context.Context, post *contenthub.Post) (*contenthub.Post, error) {
	if post.Title == "" {
		return nil, &contenthub.ValidationError{Field: "title"}
	}
	if post.CoverImageRef == "" {
		return nil, &contenthub.ValidationError{Field: "cover_image_ref"}
	}
	if post.AuthorID == uuid.Nil {
		return nil, &contenthub.ValidationError{Field: "author_id"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Store a copy to avoid external modifications
	stored := *post
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now().UTC()
	r.posts[stored.ID] = &stored

	result := stored
	return &result, nil
}

func (r *Repository) GetPostByID(ctx context.Context, id uuid.UUID) (*contenthub.PostWithAuthor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, exists := r.posts[id]
	if !exists {
		return nil, contenthub.ErrPostNotFound
	}

	postCopy := *post
	return &contenthub.PostWithAuthor{
		Post:   postCopy,
		Author: r.userCopy(post.AuthorID),
	}, nil
}

// Comment operations

func (r *Repository) CreateComment(ctx context.Context, comment *contenthub.Comment) (*contenthub.Comment, error) {
	if comment.Content == "" {
		return nil, &contenthub.ValidationError{Field: "content"}
	}
	if comment.PostID == uuid.Nil {
		return nil, &contenthub.ValidationError{Field: "post_id"}
	}
	if comment.AuthorID == uuid.Nil {
		return nil, &contenthub.ValidationError{Field: "author_id"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// The post is not required to exist; a comment against an unknown post
	// is stored and only surfaces as missing at display time.
	stored := *comment
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now().UTC()
	r.comments[stored.ID] = &stored
	r.commentsByPost[stored.PostID] = append(r.commentsByPost[stored.PostID], stored.ID)

	result := stored
	return &result, nil
}

func (r *Repository) ListCommentsByPost(ctx context.Context, postID uuid.UUID) ([]*contenthub.CommentWithAuthor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.commentsByPost[postID]
	result := make([]*contenthub.CommentWithAuthor, 0, len(ids))
	for _, id := range ids {
		comment, exists := r.comments[id]
		if !exists {
			continue
		}
		commentCopy := *comment
		result = append(result, &contenthub.CommentWithAuthor{
			Comment: commentCopy,
			Author:  r.userCopy(comment.AuthorID),
		})
	}

	return result, nil
}

// User operations

func (r *Repository) CreateUser(ctx context.Context, user *contenthub.User) (*contenthub.User, error) {
	if user.Name == "" {
		return nil, &contenthub.ValidationError{Field: "name"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *user
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now().UTC()
	r.users[stored.ID] = &stored

	result := stored
	return &result, nil
}

func (r *Repository) GetUser(ctx context.Context, id uuid.UUID) (*contenthub.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[id]
	if !exists {
		return nil, contenthub.ErrUserNotFound
	}

	userCopy := *user
	return &userCopy, nil
}

// userCopy hydrates an author reference under the read lock. A dangling
// reference yields nil, not an error.
func (r *Repository) userCopy(id uuid.UUID) *contenthub.User {
	user, exists := r.users[id]
	if !exists {
		return nil
	}
	userCopy := *user
	return &userCopy
}
