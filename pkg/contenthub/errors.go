package contenthub

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Error types
var (
	// ErrPostNotFound indicates a post was not found
	ErrPostNotFound = errors.New("post not found")

	// ErrUserNotFound indicates a user was not found
	ErrUserNotFound = errors.New("user not found")

	// ErrAssetNotFound indicates a stored asset was not found
	ErrAssetNotFound = errors.New("asset not found")

	// ErrMissingAsset indicates a required file upload was absent or empty
	ErrMissingAsset = errors.New("cover image upload is required")

	// ErrInvalidInput is the class sentinel underlying every ValidationError
	ErrInvalidInput = errors.New("invalid input")
)

// ValidationError reports a missing or malformed required field. It unwraps
// to ErrInvalidInput so callers can match the class with errors.Is.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("required field %q is missing or invalid", e.Field)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// PostError represents an error related to post operations
type PostError struct {
	PostID uuid.UUID
	Op     string
	Err    error
}

func (e *PostError) Error() string {
	return fmt.Sprintf("post operation %s failed for post %s: %v", e.Op, e.PostID, e.Err)
}

func (e *PostError) Unwrap() error {
	return e.Err
}

// StorageError represents an error related to asset storage operations.
// It always signals an environment fault, never a client mistake.
type StorageError struct {
	Store string
	Key   string
	Op    string
	Err   error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage operation %s failed for key %s on store %s: %v", e.Op, e.Key, e.Store, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
