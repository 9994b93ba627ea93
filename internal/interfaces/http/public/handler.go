package public

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sngm3741/jobboard/api/internal/interfaces/http/common"
	jobsapp "github.com/sngm3741/jobboard/api/internal/jobs/application"
)

// Handler wires anonymous listing browse endpoints to application services.
type Handler struct {
	logger   *zap.Logger
	queries  jobsapp.ListingQueryService
	sessions *jobsapp.SessionRegistry
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger   *zap.Logger
	Queries  jobsapp.ListingQueryService
	Sessions *jobsapp.SessionRegistry
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		logger:   logger,
		queries:  cfg.Queries,
		sessions: cfg.Sessions,
	}
}

// Register mounts all public routes onto the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/jobs", h.jobListHandler())
	r.Get("/jobs/search", h.jobSearchHandler())
	r.Get("/jobs/{id}", h.jobDetailHandler())
}

func (h *Handler) session(r *http.Request) *jobsapp.ListingsSession {
	id := r.Header.Get(common.HeaderSession)
	if id == "" {
		id = r.URL.Query().Get("session")
	}
	return h.sessions.Get(id)
}
