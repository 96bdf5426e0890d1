package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arun100-dev/ContentHub/pkg/contenthub"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements contenthub.Repository using PostgreSQL
type Repository struct {
	db DBTX
}

// New creates a new PostgreSQL repository
func New(db DBTX) *Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository with connection pool
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool}
}

// Error handling helper
func (r *Repository) handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("duplicate entry in %s", operation)
		case "23502": // not_null_violation
			return &contenthub.ValidationError{Field: pgErr.ColumnName}
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}

	return fmt.Errorf("database error in %s: %w", operation, err)
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

	stored := *post
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO posts (id, title, body, cover_image_ref, author_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		stored.ID, stored.Title, stored.Body, stored.CoverImageRef,
		stored.AuthorID, stored.CreatedAt)
	if err != nil {
		return nil, r.handlePostgresError("create post", err)
	}

	return &stored, nil
}

func (r *Repository) GetPostByID(ctx context.Context, id uuid.UUID) (*contenthub.PostWithAuthor, error) {
	// LEFT JOIN keeps the read alive when the author record is gone; the
	// author columns come back NULL and the view carries a nil Author.
	query := `
		SELECT p.id, p.title, p.body, p.cover_image_ref, p.author_id, p.created_at,
		       u.id, u.name, u.email, u.created_at
		FROM posts p
		LEFT JOIN users u ON u.id = p.author_id
		WHERE p.id = $1`

	var post contenthub.Post
	var authorID *uuid.UUID
	var authorName, authorEmail *string
	var authorCreatedAt *time.Time

	err := r.db.QueryRow(ctx, query, id).Scan(
		&post.ID, &post.Title, &post.Body, &post.CoverImageRef,
		&post.AuthorID, &post.CreatedAt,
		&authorID, &authorName, &authorEmail, &authorCreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, contenthub.ErrPostNotFound
		}
		return nil, r.handlePostgresError("get post", err)
	}

	view := &contenthub.PostWithAuthor{Post: post}
	if authorID != nil {
		view.Author = &contenthub.User{
			ID:        *authorID,
			Name:      deref(authorName),
			Email:     deref(authorEmail),
			CreatedAt: derefTime(authorCreatedAt),
		}
	}

	return view, nil
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

	stored := *comment
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now().UTC()

	// post_id carries no foreign key; inserting against a nonexistent post
	// succeeds and only surfaces at display time.
	query := `
		INSERT INTO comments (id, content, post_id, author_id, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query,
		stored.ID, stored.Content, stored.PostID, stored.AuthorID, stored.CreatedAt)
	if err != nil {
		return nil, r.handlePostgresError("create comment", err)
	}

	return &stored, nil
}

func (r *Repository) ListCommentsByPost(ctx context.Context, postID uuid.UUID) ([]*contenthub.CommentWithAuthor, error) {
	query := `
		SELECT c.id, c.content, c.post_id, c.author_id, c.created_at,
		       u.id, u.name, u.email, u.created_at
		FROM comments c
		LEFT JOIN users u ON u.id = c.author_id
		WHERE c.post_id = $1
		ORDER BY c.created_at ASC`

	rows, err := r.db.Query(ctx, query, postID)
	if err != nil {
		return nil, r.handlePostgresError("list comments", err)
	}
	defer rows.Close()

	result := make([]*contenthub.CommentWithAuthor, 0)
	for rows.Next() {
		var comment contenthub.Comment
		var authorID *uuid.UUID
		var authorName, authorEmail *string
		var authorCreatedAt *time.Time

		if err := rows.Scan(
			&comment.ID, &comment.Content, &comment.PostID,
			&comment.AuthorID, &comment.CreatedAt,
			&authorID, &authorName, &authorEmail, &authorCreatedAt); err != nil {
			return nil, r.handlePostgresError("list comments", err)
		}

		view := &contenthub.CommentWithAuthor{Comment: comment}
		if authorID != nil {
			view.Author = &contenthub.User{
				ID:        *authorID,
				Name:      deref(authorName),
				Email:     deref(authorEmail),
				CreatedAt: derefTime(authorCreatedAt),
			}
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, r.handlePostgresError("list comments", err)
	}

	return result, nil
}

// User operations

func (r *Repository) CreateUser(ctx context.Context, user *contenthub.User) (*contenthub.User, error) {
	if user.Name == "" {
		return nil, &contenthub.ValidationError{Field: "name"}
	}

	stored := *user
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO users (id, name, email, created_at)
		VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(ctx, query,
		stored.ID, stored.Name, stored.Email, stored.CreatedAt)
	if err != nil {
		return nil, r.handlePostgresError("create user", err)
	}

	return &stored, nil
}

func (r *Repository) GetUser(ctx context.Context, id uuid.UUID) (*contenthub.User, error) {
	query := `SELECT id, name, email, created_at FROM users WHERE id = $1`

	var user contenthub.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, contenthub.ErrUserNotFound
		}
		return nil, r.handlePostgresError("get user", err)
	}

	return &user, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
