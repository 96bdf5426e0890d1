package contenthub

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// service implements the Service interface
type service struct {
	repository Repository
	assets     AssetStore
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the repository for the service
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithAssetStore sets the asset store for the service
func WithAssetStore(store AssetStore) Option {
	return func(s *service) {
		s.assets = store
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if s.assets == nil {
		return nil, fmt.Errorf("asset store is required")
	}

	return s, nil
}

func (s *service) CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error) {
	if req.File == nil || req.FileName == "" {
		return nil, ErrMissingAsset
	}

	// A zero-byte upload counts as absent. Peeking keeps the reader intact
	// for the store call.
	buffered := bufio.NewReader(req.File)
	if _, err := buffered.Peek(1); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrMissingAsset
		}
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	ref, err := s.assets.Store(ctx, req.FileName, buffered)
	if err != nil {
		// No post record exists yet, so there is nothing to roll back.
		return nil, err
	}

	post := &Post{
		Title:         req.Title,
		Body:          req.Body,
		CoverImageRef: ref,
		AuthorID:      req.AuthorID,
	}

	created, err := s.repository.CreatePost(ctx, post)
	if err != nil {
		// The stored asset is not cleaned up when the insert fails; the
		// orphan stays on the store with no referencing post.
		return nil, err
	}

	return created, nil
}

func (s *service) GetPostDetail(ctx context.Context, postID uuid.UUID) (*PostDetail, error) {
	post, err := s.repository.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comments, err := s.repository.ListCommentsByPost(ctx, postID)
	if err != nil {
		return nil, &PostError{
			PostID: postID,
			Op:     "list_comments",
			Err:    err,
		}
	}

	return &PostDetail{
		Post:     post,
		Comments: comments,
	}, nil
}

func (s *service) AddComment(ctx context.Context, req AddCommentRequest) (*Comment, error) {
	if req.Content == "" {
		return nil, &ValidationError{Field: "content"}
	}

	// PostID existence is deliberately not checked here; the repository's
	// non-enforcing stance carries through to the service.
	comment := &Comment{
		Content:  req.Content,
		PostID:   req.PostID,
		AuthorID: req.AuthorID,
	}

	return s.repository.CreateComment(ctx, comment)
}

func (s *service) RegisterUser(ctx context.Context, req RegisterUserRequest) (*User, error) {
	user := &User{
		Name:  req.Name,
		Email: req.Email,
	}

	return s.repository.CreateUser(ctx, user)
}
