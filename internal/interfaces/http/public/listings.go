package public

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sngm3741/jobboard/api/internal/interfaces/http/common"
)

func (h *Handler) jobListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		query := r.URL.Query()
		filters := common.FiltersFromQuery(query)
		loadMore := common.ParseBool(query.Get("loadMore"))
		session := h.session(r)
		w.Header().Set(common.HeaderSession, session.ID())

		result, err := h.queries.FetchJobs(ctx, session, filters, loadMore)
		if err != nil {
			h.logger.Debug("job list fetch failed", zap.String("session", session.ID()), zap.Error(err))
			common.WriteError(h.logger, w, err)
			return
		}

		items := result.Jobs
		if result.Stale {
			items = result.Page
		}
		common.WriteJSON(h.logger, w, http.StatusOK, jobListResponse{
			Items:      common.NewListingPayloads(items),
			PageCount:  len(result.Page),
			HasMore:    result.HasMore,
			LoadedMore: result.LoadedMore,
			Stale:      result.Stale,
			Session:    session.ID(),
		})
	}
}

func (h *Handler) jobSearchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		query := r.URL.Query()
		filters := common.FiltersFromQuery(query)
		session := h.session(r)
		w.Header().Set(common.HeaderSession, session.ID())

		result, err := h.queries.SearchJobs(ctx, session, query.Get("q"), filters)
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, jobSearchResponse{
			Items:   common.NewListingPayloads(result.Jobs),
			Stale:   result.Stale,
			Session: session.ID(),
		})
	}
}

func (h *Handler) jobDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		listing, err := h.queries.GetJobByID(ctx, chi.URLParam(r, "id"))
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, common.NewListingPayload(*listing))
	}
}
