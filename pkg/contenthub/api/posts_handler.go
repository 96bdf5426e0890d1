package api

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/arun100-dev/ContentHub/pkg/contenthub"
)

const maxUploadBytes = 32 << 20 // 32 MiB multipart memory budget

// PostsHandler handles HTTP requests for posts and their comments
type PostsHandler struct {
	service contenthub.Service
}

// NewPostsHandler creates a new posts handler
func NewPostsHandler(service contenthub.Service) *PostsHandler {
	return &PostsHandler{service: service}
}

// Routes returns the routes for posts
func (h *PostsHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreatePost)
	r.Get("/{postID}", h.GetPostDetail)
	r.Post("/{postID}/comments", h.AddComment)

	return r
}

// CreatePostResponse is the response body after creating a post
type CreatePostResponse struct {
	PostID        string    `json:"post_id"`
	CoverImageRef string    `json:"cover_image_ref"`
	CreatedAt     time.Time `json:"created_at"`
}

// AddCommentRequest is the request body for attaching a comment
type AddCommentRequest struct {
	Content string `json:"content"`
}

// AddCommentResponse is the response body after attaching a comment
type AddCommentResponse struct {
	CommentID string    `json:"comment_id"`
	PostID    string    `json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ErrorResponse is the JSON error envelope
type ErrorResponse struct {
	Error string `json:"error"`
}

// CreatePost creates a post from a multipart form: "title", "body", and the
// "cover_image" file. The author is the authenticated principal.
func (h *PostsHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	authorID, err := AuthorID(r.Context())
	if err != nil {
		slog.Error("Missing principal on create post", "error", err)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	var file multipart.File
	var fileName string
	if f, header, err := r.FormFile("cover_image"); err == nil {
		defer f.Close()
		file = f
		fileName = header.Filename
	}
	// An absent file is handled by the service's precondition, not here.

	req := contenthub.CreatePostRequest{
		Title:    r.FormValue("title"),
		Body:     r.FormValue("body"),
		AuthorID: authorID,
		FileName: fileName,
	}
	if file != nil {
		req.File = file
	}

	post, err := h.service.CreatePost(r.Context(), req)
	if err != nil {
		slog.Error("Failed to create post", "author_id", authorID, "error", err)
		writeError(w, r, err)
		return
	}

	slog.Info("Post created", "post_id", post.ID, "author_id", authorID)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, CreatePostResponse{
		PostID:        post.ID.String(),
		CoverImageRef: post.CoverImageRef,
		CreatedAt:     post.CreatedAt,
	})
}

// GetPostDetail returns the post with its author and ordered comments.
func (h *PostsHandler) GetPostDetail(w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(chi.URLParam(r, "postID"))
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	detail, err := h.service.GetPostDetail(r.Context(), postID)
	if err != nil {
		slog.Error("Failed to get post detail", "post_id", postID, "error", err)
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, detail)
}

// AddComment attaches a comment to the post in the URL. The author is the
// authenticated principal; the post is not checked for existence.
func (h *PostsHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	authorID, err := AuthorID(r.Context())
	if err != nil {
		slog.Error("Missing principal on add comment", "error", err)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	postID, err := uuid.Parse(chi.URLParam(r, "postID"))
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	var req AddCommentRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	comment, err := h.service.AddComment(r.Context(), contenthub.AddCommentRequest{
		PostID:   postID,
		AuthorID: authorID,
		Content:  req.Content,
	})
	if err != nil {
		slog.Error("Failed to add comment", "post_id", postID, "error", err)
		writeError(w, r, err)
		return
	}

	slog.Info("Comment added", "comment_id", comment.ID, "post_id", postID)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, AddCommentResponse{
		CommentID: comment.ID.String(),
		PostID:    postID.String(),
		CreatedAt: comment.CreatedAt,
	})
}

// writeError translates core errors into HTTP statuses: client mistakes to
// 400, absent entities to 404, storage faults to 502, the rest to 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError

	var storageErr *contenthub.StorageError
	switch {
	case errors.Is(err, contenthub.ErrPostNotFound),
		errors.Is(err, contenthub.ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, contenthub.ErrMissingAsset),
		errors.Is(err, contenthub.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.As(err, &storageErr):
		status = http.StatusBadGateway
	}

	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Error: err.Error()})
}
