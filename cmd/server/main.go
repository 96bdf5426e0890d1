package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth"

	"github.com/arun100-dev/ContentHub/pkg/contenthub"
	"github.com/arun100-dev/ContentHub/pkg/contenthub/api"
	"github.com/arun100-dev/ContentHub/pkg/contenthub/config"
	fsstorage "github.com/arun100-dev/ContentHub/pkg/contenthub/storage/fs"
)

func main() {
	cfg, err := config.Load(config.WithEnv())
	if err != nil {
		slog.Error("Failed to load server configuration", "error", err)
		os.Exit(1)
	}

	repo, err := cfg.BuildRepository()
	if err != nil {
		slog.Error("Failed to build repository", "error", err)
		os.Exit(1)
	}

	store, err := cfg.BuildAssetStore()
	if err != nil {
		slog.Error("Failed to build asset store", "error", err)
		os.Exit(1)
	}

	svc, err := contenthub.New(
		contenthub.WithRepository(repo),
		contenthub.WithAssetStore(store),
	)
	if err != nil {
		slog.Error("Failed to build service", "error", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: routes(cfg, svc, store),
	}

	go func() {
		slog.Info("ContentHub server starting",
			"port", cfg.Port,
			"environment", cfg.Environment,
			"database", cfg.DatabaseType,
			"asset_store", cfg.AssetStore.Type)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exiting")
}

func routes(cfg *config.ServerConfig, svc contenthub.Service, store contenthub.AssetStore) http.Handler {
	tokenAuth := api.NewTokenAuth(cfg.JWTSecret)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status": "healthy", "environment": %q}`, cfg.Environment)
	})

	// Stored cover images are served straight off the upload directory when
	// the fs backend is active; other backends serve from their own edge.
	if fsBackend, ok := store.(*fsstorage.Backend); ok {
		prefix := strings.TrimSuffix(cfg.AssetStore.URLPrefix, "/")
		r.Handle(prefix+"/*", http.StripPrefix(prefix+"/",
			http.FileServer(http.Dir(fsBackend.BaseDir()))))
	}

	// Content routes require an authenticated principal.
	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(tokenAuth))
		r.Use(jwtauth.Authenticator)

		r.Mount("/posts", api.NewPostsHandler(svc).Routes())
		r.Mount("/users", api.NewUsersHandler(svc).Routes())
	})

	return r
}
