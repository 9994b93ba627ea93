package application

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/sngm3741/jobboard/api/internal/jobs/domain"
	"github.com/sngm3741/jobboard/api/internal/metrics"
	"github.com/sngm3741/jobboard/api/internal/telemetry"
)

var tracer = telemetry.GetTracer("github.com/sngm3741/jobboard/api/internal/jobs/application")

type listingQueryService struct {
	listings ListingRepository
	logger   *zap.Logger
}

// NewListingQueryService creates the fetch/search service.
func NewListingQueryService(listings ListingRepository, logger *zap.Logger) ListingQueryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &listingQueryService{listings: listings, logger: logger}
}

func (s *listingQueryService) FetchJobs(ctx context.Context, session *ListingsSession, filters domain.Filters, loadMore bool) (FetchResult, error) {
	ctx, span := tracer.Start(ctx, "FetchJobs")
	defer span.End()

	if err := filters.Validate(); err != nil {
		metrics.ListingFetches.WithLabelValues(fetchMode(loadMore), metrics.OutcomeError).Inc()
		return FetchResult{}, err
	}

	ticket := session.beginFetch(filters, loadMore)
	defer session.release(ticket)

	mode := fetchMode(ticket.loadMore)
	span.SetAttributes(
		telemetry.String("session.id", session.ID()),
		telemetry.String("fetch.mode", mode),
		telemetry.Bool("fetch.reset", loadMore && !ticket.loadMore),
	)

	query, err := BuildQuery(filters, ticket.cursor)
	if err != nil {
		metrics.ListingFetches.WithLabelValues(mode, metrics.OutcomeError).Inc()
		return FetchResult{}, err
	}

	page, err := s.listings.Query(ctx, query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "listing query failed")
		metrics.ListingFetches.WithLabelValues(mode, metrics.OutcomeError).Inc()
		s.logger.Error("failed to fetch listings",
			zap.String("session", session.ID()),
			zap.String("mode", mode),
			zap.Error(err))
		return FetchResult{}, err
	}

	jobs, hasMore, applied := session.commitFetch(ticket, page)
	if !applied {
		metrics.ListingFetches.WithLabelValues(mode, metrics.OutcomeStale).Inc()
		metrics.StaleResponses.Inc()
		s.logger.Debug("discarded stale listing page",
			zap.String("session", session.ID()),
			zap.Uint64("seq", ticket.seq))
		return FetchResult{Page: page, HasMore: len(page) == PageSize, LoadedMore: ticket.loadMore, Stale: true}, nil
	}

	metrics.ListingFetches.WithLabelValues(mode, metrics.OutcomeOK).Inc()
	span.SetAttributes(telemetry.Int("fetch.page_size", len(page)), telemetry.Bool("fetch.has_more", hasMore))
	return FetchResult{Page: page, Jobs: jobs, HasMore: hasMore, LoadedMore: ticket.loadMore}, nil
}

func (s *listingQueryService) SearchJobs(ctx context.Context, session *ListingsSession, term string, filters domain.Filters) (SearchResult, error) {
	ctx, span := tracer.Start(ctx, "SearchJobs")
	defer span.End()

	query, err := BuildSearchQuery(filters)
	if err != nil {
		metrics.ListingFetches.WithLabelValues("search", metrics.OutcomeError).Inc()
		return SearchResult{}, err
	}

	ticket := session.beginSearch()
	defer session.release(ticket)

	span.SetAttributes(
		telemetry.String("session.id", session.ID()),
		telemetry.Int("search.term_length", len(strings.TrimSpace(term))),
	)

	candidates, err := s.listings.Query(ctx, query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "listing search failed")
		metrics.ListingFetches.WithLabelValues("search", metrics.OutcomeError).Inc()
		s.logger.Error("failed to search listings",
			zap.String("session", session.ID()),
			zap.Error(err))
		return SearchResult{}, err
	}

	matched := MatchListings(term, candidates)
	if !session.commitSearch(ticket, matched) {
		metrics.ListingFetches.WithLabelValues("search", metrics.OutcomeStale).Inc()
		metrics.StaleResponses.Inc()
		return SearchResult{Jobs: matched, Stale: true}, nil
	}

	metrics.ListingFetches.WithLabelValues("search", metrics.OutcomeOK).Inc()
	span.SetAttributes(telemetry.Int("search.candidates", len(candidates)), telemetry.Int("search.matches", len(matched)))
	return SearchResult{Jobs: matched}, nil
}

func (s *listingQueryService) GetJobByID(ctx context.Context, id string) (*domain.Listing, error) {
	ctx, span := tracer.Start(ctx, "GetJobByID")
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.NotFound("listing id is empty", nil)
	}
	return s.listings.FindByID(ctx, id)
}

func fetchMode(loadMore bool) string {
	if loadMore {
		return "load_more"
	}
	return "fresh"
}
