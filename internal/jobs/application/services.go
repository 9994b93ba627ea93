package application

import (
	"context"
	"time"

	"github.com/sngm3741/jobboard/api/internal/jobs/domain"
)

// ListingRepository is the document-store port for listings.
// Implementations return *domain.Error values (NotFound / StoreUnavailable).
type ListingRepository interface {
	Insert(ctx context.Context, listing *domain.Listing) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Listing, error)
	UpdateFields(ctx context.Context, id string, patch domain.ListingPatch, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
	Query(ctx context.Context, query StoreQuery) ([]domain.Listing, error)
	// IncrementApplications atomically adds delta to applicationsCount in a single store request.
	IncrementApplications(ctx context.Context, id string, delta int) error
}

// ApplicationRepository is the document-store port for applications.
type ApplicationRepository interface {
	Insert(ctx context.Context, app *domain.Application) (string, error)
	Query(ctx context.Context, query StoreQuery) ([]domain.Application, error)
}

// Reservation is the outcome of SubmissionGuard.Reserve.
//
//   - Reserved with an empty ApplicationID: the key is new; insert the application.
//   - Reserved with an ApplicationID: that application was inserted but its listing counter
//     was never incremented; the caller now owns the key and resumes at the increment.
//   - Not reserved with an ApplicationID: the submission finished; return the id.
//   - Not reserved with an empty ApplicationID: another request holds the key.
type Reservation struct {
	Reserved      bool
	ApplicationID string
}

// SubmissionGuard deduplicates application submissions carrying the same token.
type SubmissionGuard interface {
	Reserve(ctx context.Context, key string) (Reservation, error)
	// MarkInserted records that applicationID is stored but not yet counted and frees the key
	// for a retry to resume.
	MarkInserted(ctx context.Context, key, applicationID string) error
	Complete(ctx context.Context, key, applicationID string) error
	Release(ctx context.Context, key string) error
}

// ApplicationEvents receives notifications about submitted applications.
type ApplicationEvents interface {
	ApplicationSubmitted(ctx context.Context, app domain.Application) error
}

// EqualityFilter requires Field to equal Value.
type EqualityFilter struct {
	Field string
	Value any
}

// OrderBy is a single-field ordering.
type OrderBy struct {
	Field      string
	Descending bool
}

// StoreQuery is a conjunctive, ordered, optionally limited query against one collection.
type StoreQuery struct {
	Equals     []EqualityFilter
	OrderBy    OrderBy
	Limit      int
	StartAfter *domain.Cursor
}

// ListingQueryService exposes the fetch/search use-cases.
type ListingQueryService interface {
	FetchJobs(ctx context.Context, session *ListingsSession, filters domain.Filters, loadMore bool) (FetchResult, error)
	SearchJobs(ctx context.Context, session *ListingsSession, term string, filters domain.Filters) (SearchResult, error)
	GetJobByID(ctx context.Context, id string) (*domain.Listing, error)
}

// PostingService exposes listing management for company actors.
type PostingService interface {
	PostJob(ctx context.Context, actor domain.Actor, cmd PostJobCommand) (string, error)
	UpdateJob(ctx context.Context, actor domain.Actor, jobID string, patch domain.ListingPatch) error
	DeleteJob(ctx context.Context, actor domain.Actor, jobID string) error
}

// ApplyService exposes the application workflow.
type ApplyService interface {
	ApplyToJob(ctx context.Context, cmd ApplyCommand) (string, error)
}

// RetrievalService exposes role-gated reads.
type RetrievalService interface {
	GetCompanyJobs(ctx context.Context, actor domain.Actor) ([]domain.Listing, error)
	GetJobApplications(ctx context.Context, jobID string, actor domain.Actor) ([]domain.Application, error)
	GetUserApplications(ctx context.Context, actor domain.Actor) ([]domain.Application, error)
}

// FetchResult is the outcome of one fetch.
type FetchResult struct {
	// Page holds the records returned by this fetch only.
	Page []domain.Listing
	// Jobs is the session's accumulated result set after the fetch was applied.
	Jobs    []domain.Listing
	HasMore bool
	// LoadedMore is false when the fetch ran fresh, including a reset load-more.
	LoadedMore bool
	// Stale is true when a newer fetch was issued for the session before this one finished;
	// the session was left untouched.
	Stale bool
}

// SearchResult is the outcome of one search.
type SearchResult struct {
	Jobs  []domain.Listing
	Stale bool
}

// PostJobCommand contains inputs for creating a listing.
type PostJobCommand struct {
	Title           string
	Location        string
	JobType         string
	ExperienceLevel string
	Industry        string
	SalaryRange     string
	Skills          []string
	Description     string
}

// ApplyCommand contains inputs for applyToJob.
type ApplyCommand struct {
	JobID          string
	Data           domain.ApplicationData
	Actor          domain.Actor
	IdempotencyKey string
}
