package company

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	jobsapp "github.com/sngm3741/jobboard/api/internal/jobs/application"
)

// Handler wires company-only endpoints to application services.
type Handler struct {
	logger    *zap.Logger
	posting   jobsapp.PostingService
	retrieval jobsapp.RetrievalService
}

// Config provides dependencies for Handler.
type Config struct {
	Logger    *zap.Logger
	Posting   jobsapp.PostingService
	Retrieval jobsapp.RetrievalService
}

// NewHandler constructs a company HTTP handler set.
func NewHandler(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		logger:    logger,
		posting:   cfg.Posting,
		retrieval: cfg.Retrieval,
	}
}

// Register mounts company routes onto router behind authMiddleware.
func (h *Handler) Register(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/jobs", h.jobCreateHandler())
		r.Patch("/jobs/{id}", h.jobUpdateHandler())
		r.Delete("/jobs/{id}", h.jobDeleteHandler())
		r.Get("/company/jobs", h.companyJobsHandler())
		r.Get("/jobs/{id}/applications", h.jobApplicationsHandler())
	})
}
