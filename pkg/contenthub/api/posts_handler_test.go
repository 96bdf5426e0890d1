package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arun100-dev/ContentHub/pkg/contenthub"
	"github.com/arun100-dev/ContentHub/pkg/contenthub/repo/memory"
	memorystorage "github.com/arun100-dev/ContentHub/pkg/contenthub/storage/memory"
)

const testSecret = "test-secret"

func setupRouter(t *testing.T) (http.Handler, contenthub.Service) {
	t.Helper()

	svc, err := contenthub.New(
		contenthub.WithRepository(memory.New()),
		contenthub.WithAssetStore(memorystorage.New()),
	)
	require.NoError(t, err)

	tokenAuth := NewTokenAuth(testSecret)

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(tokenAuth))
		r.Use(jwtauth.Authenticator)

		r.Mount("/posts", NewPostsHandler(svc).Routes())
		r.Mount("/users", NewUsersHandler(svc).Routes())
	})

	return r, svc
}

func mintToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	ja := NewTokenAuth(testSecret)
	_, tokenString, err := ja.Encode(map[string]interface{}{"sub": userID.String()})
	require.NoError(t, err)
	return tokenString
}

func registerTestUser(t *testing.T, svc contenthub.Service, name string) uuid.UUID {
	t.Helper()
	user, err := svc.RegisterUser(context.Background(), contenthub.RegisterUserRequest{Name: name})
	require.NoError(t, err)
	return user.ID
}

func multipartBody(t *testing.T, title, body, fileName string, fileContent []byte) (*bytes.Buffer, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	require.NoError(t, w.WriteField("title", title))
	require.NoError(t, w.WriteField("body", body))
	if fileName != "" {
		part, err := w.CreateFormFile("cover_image", fileName)
		require.NoError(t, err)
		_, err = part.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	return buf, w.FormDataContentType()
}

func doCreatePost(t *testing.T, router http.Handler, token string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/posts", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreatePostHandler(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		router, svc := setupRouter(t)
		authorID := registerTestUser(t, svc, "alice")
		token := mintToken(t, authorID)

		body, contentType := multipartBody(t, "My Trip", "It was fun", "pic.jpg", []byte("image bytes"))
		rec := doCreatePost(t, router, token, body, contentType)

		require.Equal(t, http.StatusCreated, rec.Code)

		var resp CreatePostResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.PostID)
		assert.True(t, strings.HasPrefix(resp.CoverImageRef, "/uploads/"))
		assert.True(t, strings.HasSuffix(resp.CoverImageRef, "-pic.jpg"))
		assert.False(t, resp.CreatedAt.IsZero())
	})

	t.Run("MissingFile", func(t *testing.T) {
		router, svc := setupRouter(t)
		authorID := registerTestUser(t, svc, "alice")
		token := mintToken(t, authorID)

		body, contentType := multipartBody(t, "No Cover", "", "", nil)
		rec := doCreatePost(t, router, token, body, contentType)

		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Error)
	})

	t.Run("MissingTitle", func(t *testing.T) {
		router, svc := setupRouter(t)
		authorID := registerTestUser(t, svc, "alice")
		token := mintToken(t, authorID)

		body, contentType := multipartBody(t, "", "", "pic.jpg", []byte("image bytes"))
		rec := doCreatePost(t, router, token, body, contentType)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("NoToken", func(t *testing.T) {
		router, _ := setupRouter(t)

		body, contentType := multipartBody(t, "My Trip", "", "pic.jpg", []byte("image bytes"))
		req := httptest.NewRequest(http.MethodPost, "/posts", body)
		req.Header.Set("Content-Type", contentType)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestGetPostDetailHandler(t *testing.T) {
	t.Run("FullDetail", func(t *testing.T) {
		router, svc := setupRouter(t)
		authorID := registerTestUser(t, svc, "alice")
		commenterID := registerTestUser(t, svc, "bob")

		body, contentType := multipartBody(t, "My Trip", "It was fun", "pic.jpg", []byte("image bytes"))
		rec := doCreatePost(t, router, mintToken(t, authorID), body, contentType)
		require.Equal(t, http.StatusCreated, rec.Code)

		var created CreatePostResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

		commentBody := bytes.NewBufferString(`{"content":"great trip"}`)
		req := httptest.NewRequest(http.MethodPost, "/posts/"+created.PostID+"/comments", commentBody)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+mintToken(t, commenterID))
		commentRec := httptest.NewRecorder()
		router.ServeHTTP(commentRec, req)
		require.Equal(t, http.StatusCreated, commentRec.Code)

		getReq := httptest.NewRequest(http.MethodGet, "/posts/"+created.PostID, nil)
		getReq.Header.Set("Authorization", "Bearer "+mintToken(t, commenterID))
		getRec := httptest.NewRecorder()
		router.ServeHTTP(getRec, getReq)
		require.Equal(t, http.StatusOK, getRec.Code)

		var detail contenthub.PostDetail
		require.NoError(t, json.Unmarshal(getRec.Body.Bytes(), &detail))
		require.NotNil(t, detail.Post)
		assert.Equal(t, "My Trip", detail.Post.Title)
		require.NotNil(t, detail.Post.Author)
		assert.Equal(t, "alice", detail.Post.Author.Name)
		require.Len(t, detail.Comments, 1)
		assert.Equal(t, "great trip", detail.Comments[0].Content)
		require.NotNil(t, detail.Comments[0].Author)
		assert.Equal(t, "bob", detail.Comments[0].Author.Name)
	})

	t.Run("NotFound", func(t *testing.T) {
		router, svc := setupRouter(t)
		token := mintToken(t, registerTestUser(t, svc, "alice"))

		req := httptest.NewRequest(http.MethodGet, "/posts/"+uuid.NewString(), nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("InvalidID", func(t *testing.T) {
		router, svc := setupRouter(t)
		token := mintToken(t, registerTestUser(t, svc, "alice"))

		req := httptest.NewRequest(http.MethodGet, "/posts/not-a-uuid", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAddCommentHandler(t *testing.T) {
	t.Run("EmptyContent", func(t *testing.T) {
		router, svc := setupRouter(t)
		token := mintToken(t, registerTestUser(t, svc, "alice"))

		req := httptest.NewRequest(http.MethodPost, "/posts/"+uuid.NewString()+"/comments", bytes.NewBufferString(`{"content":""}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("UnknownPostAccepted", func(t *testing.T) {
		router, svc := setupRouter(t)
		token := mintToken(t, registerTestUser(t, svc, "alice"))

		// The post is not checked for existence on write.
		req := httptest.NewRequest(http.MethodPost, "/posts/"+uuid.NewString()+"/comments", bytes.NewBufferString(`{"content":"hello"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)

		var resp AddCommentResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.CommentID)
	})
}

func TestRegisterUserHandler(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		router, svc := setupRouter(t)
		token := mintToken(t, registerTestUser(t, svc, "bootstrap"))

		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(`{"name":"carol","email":"carol@example.com"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)

		var resp RegisterUserResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.UserID)
	})

	t.Run("MissingName", func(t *testing.T) {
		router, svc := setupRouter(t)
		token := mintToken(t, registerTestUser(t, svc, "bootstrap"))

		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(`{"email":"x@example.com"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthorIDWithoutToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, err := AuthorID(req.Context())
	assert.Error(t, err)
}
