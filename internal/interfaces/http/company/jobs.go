package company

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sngm3741/jobboard/api/internal/interfaces/http/common"
	jobsapp "github.com/sngm3741/jobboard/api/internal/jobs/application"
)

func (h *Handler) jobCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := common.RequireActor(h.logger, w, r)
		if !ok {
			return
		}
		var req jobCreateRequest
		if !common.DecodeJSON(h.logger, w, r, &req) {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		id, err := h.posting.PostJob(ctx, actor, jobsapp.PostJobCommand{
			Title:           req.Title,
			Location:        req.Location,
			JobType:         req.JobType,
			ExperienceLevel: req.ExperienceLevel,
			Industry:        req.Industry,
			SalaryRange:     req.SalaryRange,
			Skills:          req.Skills,
			Description:     req.Description,
		})
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		h.logger.Info("job posted", zap.String("jobId", id), zap.String("companyId", actor.ActorID()))
		common.WriteJSON(h.logger, w, http.StatusCreated, idResponse{ID: id})
	}
}

func (h *Handler) jobUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := common.RequireActor(h.logger, w, r)
		if !ok {
			return
		}
		var req jobUpdateRequest
		if !common.DecodeJSON(h.logger, w, r, &req) {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		if err := h.posting.UpdateJob(ctx, actor, chi.URLParam(r, "id"), req.patch()); err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *Handler) jobDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := common.RequireActor(h.logger, w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		if err := h.posting.DeleteJob(ctx, actor, chi.URLParam(r, "id")); err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *Handler) companyJobsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := common.RequireActor(h.logger, w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		listings, err := h.retrieval.GetCompanyJobs(ctx, actor)
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, listResponse[common.ListingPayload]{Items: common.NewListingPayloads(listings)})
	}
}

func (h *Handler) jobApplicationsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := common.RequireActor(h.logger, w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		apps, err := h.retrieval.GetJobApplications(ctx, chi.URLParam(r, "id"), actor)
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, listResponse[common.ApplicationPayload]{Items: common.NewApplicationPayloads(apps)})
	}
}
