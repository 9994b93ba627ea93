package seeker

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sngm3741/jobboard/api/internal/interfaces/http/common"
	jobsapp "github.com/sngm3741/jobboard/api/internal/jobs/application"
	"github.com/sngm3741/jobboard/api/internal/jobs/domain"
)

// Handler wires job seeker endpoints to application services.
type Handler struct {
	logger    *zap.Logger
	apply     jobsapp.ApplyService
	retrieval jobsapp.RetrievalService
}

type Config struct {
	Logger    *zap.Logger
	Apply     jobsapp.ApplyService
	Retrieval jobsapp.RetrievalService
}

func NewHandler(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{logger: logger, apply: cfg.Apply, retrieval: cfg.Retrieval}
}

func (h *Handler) Register(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/jobs/{id}/applications", h.applyHandler())
		r.Get("/me/applications", h.myApplicationsHandler())
	})
}

type applyRequest struct {
	ResumeURL   string            `json:"resumeUrl"`
	CoverLetter string            `json:"coverLetter"`
	Answers     map[string]string `json:"answers"`
}

type applyResponse struct {
	ApplicationID string `json:"applicationId"`
}

type applicationListResponse struct {
	Items []common.ApplicationPayload `json:"items"`
}

func (h *Handler) applyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := common.RequireActor(h.logger, w, r)
		if !ok {
			return
		}
		var req applyRequest
		if !common.DecodeJSON(h.logger, w, r, &req) {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		jobID := chi.URLParam(r, "id")
		id, err := h.apply.ApplyToJob(ctx, jobsapp.ApplyCommand{
			JobID: jobID,
			Data: domain.ApplicationData{
				ResumeURL:   req.ResumeURL,
				CoverLetter: req.CoverLetter,
				Answers:     req.Answers,
			},
			Actor:          actor,
			IdempotencyKey: strings.TrimSpace(r.Header.Get(common.HeaderIdempotencyKey)),
		})
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		h.logger.Info("application submitted", zap.String("applicationId", id), zap.String("jobId", jobID))
		common.WriteJSON(h.logger, w, http.StatusCreated, applyResponse{ApplicationID: id})
	}
}

func (h *Handler) myApplicationsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := common.RequireActor(h.logger, w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		apps, err := h.retrieval.GetUserApplications(ctx, actor)
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, applicationListResponse{Items: common.NewApplicationPayloads(apps)})
	}
}
