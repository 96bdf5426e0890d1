package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/arun100-dev/ContentHub/pkg/contenthub"
)

// UsersHandler exposes the minimal user-record surface used by the
// authentication collaborator.
type UsersHandler struct {
	service contenthub.Service
}

func NewUsersHandler(service contenthub.Service) *UsersHandler {
	return &UsersHandler{service: service}
}

func (h *UsersHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.RegisterUser)
	return r
}

// RegisterUserRequest is the request body for creating a user record
type RegisterUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// RegisterUserResponse is the response body after creating a user record
type RegisterUserResponse struct {
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *UsersHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req RegisterUserRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.service.RegisterUser(r.Context(), contenthub.RegisterUserRequest{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		slog.Error("Failed to register user", "error", err)
		writeError(w, r, err)
		return
	}

	slog.Info("User registered", "user_id", user.ID)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, RegisterUserResponse{
		UserID:    user.ID.String(),
		CreatedAt: user.CreatedAt,
	})
}
