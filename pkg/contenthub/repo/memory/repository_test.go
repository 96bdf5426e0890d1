package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arun100-dev/ContentHub/pkg/contenthub"
)

func newUser(t *testing.T, repo *Repository, name string) *contenthub.User {
	t.Helper()
	user, err := repo.CreateUser(context.Background(), &contenthub.User{Name: name})
	require.NoError(t, err)
	return user
}

func TestCreatePostValidation(t *testing.T) {
	repo := New()
	ctx := context.Background()

	tests := []struct {
		name  string
		post  *contenthub.Post
		field string
	}{
		{
			name:  "missing title",
			post:  &contenthub.Post{CoverImageRef: "/uploads/x.jpg", AuthorID: uuid.New()},
			field: "title",
		},
		{
			name:  "missing cover image ref",
			post:  &contenthub.Post{Title: "Hello", AuthorID: uuid.New()},
			field: "cover_image_ref",
		},
		{
			name:  "missing author",
			post:  &contenthub.Post{Title: "Hello", CoverImageRef: "/uploads/x.jpg"},
			field: "author_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created, err := repo.CreatePost(ctx, tt.post)
			assert.Nil(t, created)

			var validationErr *contenthub.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
			assert.ErrorIs(t, err, contenthub.ErrInvalidInput)
		})
	}
}

func TestCreatePostAssignsIdentity(t *testing.T) {
	repo := New()
	ctx := context.Background()

	input := &contenthub.Post{
		Title:         "Hello",
		Body:          "body",
		CoverImageRef: "/uploads/1-x.jpg",
		AuthorID:      uuid.New(),
	}
	created, err := repo.CreatePost(ctx, input)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, input.Title, created.Title)

	// The caller's struct stays untouched.
	assert.Equal(t, uuid.Nil, input.ID)

	// Mutating the returned copy does not leak into storage.
	created.Title = "mutated"
	got, err := repo.GetPostByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello", got.Title)
}

func TestGetPostByID(t *testing.T) {
	repo := New()
	ctx := context.Background()

	t.Run("NotFound", func(t *testing.T) {
		got, err := repo.GetPostByID(ctx, uuid.New())
		assert.ErrorIs(t, err, contenthub.ErrPostNotFound)
		assert.Nil(t, got)
	})

	t.Run("HydratesAuthor", func(t *testing.T) {
		author := newUser(t, repo, "alice")
		created, err := repo.CreatePost(ctx, &contenthub.Post{
			Title:         "Hello",
			CoverImageRef: "/uploads/1-x.jpg",
			AuthorID:      author.ID,
		})
		require.NoError(t, err)

		got, err := repo.GetPostByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Author)
		assert.Equal(t, author.ID, got.Author.ID)
		assert.Equal(t, "alice", got.Author.Name)
	})

	t.Run("DanglingAuthor", func(t *testing.T) {
		created, err := repo.CreatePost(ctx, &contenthub.Post{
			Title:         "Hello",
			CoverImageRef: "/uploads/1-x.jpg",
			AuthorID:      uuid.New(),
		})
		require.NoError(t, err)

		got, err := repo.GetPostByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Nil(t, got.Author)
	})
}

func TestCreateCommentValidation(t *testing.T) {
	repo := New()
	ctx := context.Background()

	tests := []struct {
		name    string
		comment *contenthub.Comment
		field   string
	}{
		{
			name:    "missing content",
			comment: &contenthub.Comment{PostID: uuid.New(), AuthorID: uuid.New()},
			field:   "content",
		},
		{
			name:    "missing post id",
			comment: &contenthub.Comment{Content: "hi", AuthorID: uuid.New()},
			field:   "post_id",
		},
		{
			name:    "missing author id",
			comment: &contenthub.Comment{Content: "hi", PostID: uuid.New()},
			field:   "author_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created, err := repo.CreateComment(ctx, tt.comment)
			assert.Nil(t, created)

			var validationErr *contenthub.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}
}

func TestCreateCommentWithoutPost(t *testing.T) {
	repo := New()
	ctx := context.Background()

	// Referential integrity to posts is deliberately not enforced.
	created, err := repo.CreateComment(ctx, &contenthub.Comment{
		Content:  "hi",
		PostID:   uuid.New(),
		AuthorID: uuid.New(),
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
}

func TestListCommentsByPost(t *testing.T) {
	repo := New()
	ctx := context.Background()

	t.Run("EmptyIsNonNil", func(t *testing.T) {
		got, err := repo.ListCommentsByPost(ctx, uuid.New())
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("InsertionOrder", func(t *testing.T) {
		author := newUser(t, repo, "bob")
		postID := uuid.New()

		want := []string{"first", "second", "third"}
		for _, content := range want {
			_, err := repo.CreateComment(ctx, &contenthub.Comment{
				Content:  content,
				PostID:   postID,
				AuthorID: author.ID,
			})
			require.NoError(t, err)
		}

		got, err := repo.ListCommentsByPost(ctx, postID)
		require.NoError(t, err)
		require.Len(t, got, len(want))
		for i, content := range want {
			assert.Equal(t, content, got[i].Content)
			require.NotNil(t, got[i].Author)
			assert.Equal(t, "bob", got[i].Author.Name)
		}
	})

	t.Run("ScopedToPost", func(t *testing.T) {
		author := newUser(t, repo, "carol")
		postA := uuid.New()
		postB := uuid.New()

		_, err := repo.CreateComment(ctx, &contenthub.Comment{Content: "for A", PostID: postA, AuthorID: author.ID})
		require.NoError(t, err)
		_, err = repo.CreateComment(ctx, &contenthub.Comment{Content: "for B", PostID: postB, AuthorID: author.ID})
		require.NoError(t, err)

		got, err := repo.ListCommentsByPost(ctx, postA)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "for A", got[0].Content)
	})
}

func TestUserLifecycle(t *testing.T) {
	repo := New()
	ctx := context.Background()

	t.Run("CreateRequiresName", func(t *testing.T) {
		created, err := repo.CreateUser(ctx, &contenthub.User{Email: "a@example.com"})
		assert.Nil(t, created)

		var validationErr *contenthub.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "name", validationErr.Field)
	})

	t.Run("CreateAndGet", func(t *testing.T) {
		created, err := repo.CreateUser(ctx, &contenthub.User{Name: "alice", Email: "alice@example.com"})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, created.ID)
		assert.False(t, created.CreatedAt.IsZero())

		got, err := repo.GetUser(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "alice", got.Name)
		assert.Equal(t, "alice@example.com", got.Email)
	})

	t.Run("GetNotFound", func(t *testing.T) {
		got, err := repo.GetUser(ctx, uuid.New())
		assert.ErrorIs(t, err, contenthub.ErrUserNotFound)
		assert.Nil(t, got)
	})
}
