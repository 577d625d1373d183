// Package server exposes the studio workflows over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	domainstudio "github.com/Krosebrook/Flash-n-Frame/internal/domain/studio"
	"github.com/Krosebrook/Flash-n-Frame/internal/usecase/studio"
)

// Studio is the slice of the studio service the HTTP layer depends on.
type Studio interface {
	GenerateFromRepo(ctx context.Context, in studio.RepoInput) (domainstudio.Generation, error)
	GenerateFromArticle(ctx context.Context, in studio.ArticleInput) (domainstudio.Generation, error)
	StyleTransfer(ctx context.Context, in studio.StyleTransferInput) (domainstudio.Generation, error)
	GenerateUICode(ctx context.Context, in studio.UICodeInput) (domainstudio.Generation, error)

	ListGenerations(ctx context.Context, filter studio.HistoryFilter) ([]domainstudio.Generation, error)
	GetGeneration(ctx context.Context, id string) (domainstudio.Generation, error)
	DeleteGeneration(ctx context.Context, id string) error
	ClearGenerations(ctx context.Context) error

	CreateTask(ctx context.Context, in studio.CreateTaskInput) (domainstudio.Task, error)
	UpdateTaskStatus(ctx context.Context, id string, status string) (domainstudio.Task, error)
	DeleteTask(ctx context.Context, id string) error
	ListTasks(ctx context.Context, in studio.TaskListInput) ([]domainstudio.Task, error)
}

// StyleLister exposes the configured style profiles.
type StyleLister interface {
	List() []studio.StyleProfile
}

type Server struct {
	studio Studio
	styles StyleLister
	router *chi.Mux
}

// New constructs the router with middleware and all routes registered.
func New(svc Studio, styles StyleLister) *Server {
	s := &Server{
		studio: svc,
		styles: styles,
		router: chi.NewRouter(),
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(120 * time.Second))

	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/generate", func(r chi.Router) {
			r.Post("/repo", s.handleGenerateRepo)
			r.Post("/article", s.handleGenerateArticle)
			r.Post("/style", s.handleStyleTransfer)
			r.Post("/ui", s.handleGenerateUICode)
		})

		r.Route("/generations", func(r chi.Router) {
			r.Get("/", s.handleListGenerations)
			r.Delete("/", s.handleClearGenerations)
			r.Get("/{id}", s.handleGetGeneration)
			r.Get("/{id}/artifact", s.handleGetArtifact)
			r.Delete("/{id}", s.handleDeleteGeneration)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", s.handleListTasks)
			r.Post("/", s.handleCreateTask)
			r.Patch("/{id}", s.handleUpdateTask)
			r.Delete("/{id}", s.handleDeleteTask)
		})

		r.Get("/styles", s.handleListStyles)
	})

	return s
}

// Router exposes the root HTTP handler.
func (s *Server) Router() http.Handler { return s.router }

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
