package application

import (
	"context"
	"strings"

	"github.com/sngm3741/jobboard/api/internal/jobs/domain"
)

type retrievalService struct {
	listings     ListingRepository
	applications ApplicationRepository
}

// NewRetrievalService creates the role-gated read service.
func NewRetrievalService(listings ListingRepository, applications ApplicationRepository) RetrievalService {
	return &retrievalService{listings: listings, applications: applications}
}

// GetCompanyJobs returns every listing owned by a company actor, active or not.
// Other actors get an empty result.
func (s *retrievalService) GetCompanyJobs(ctx context.Context, actor domain.Actor) ([]domain.Listing, error) {
	company, ok := actor.(domain.CompanyActor)
	if !ok {
		return []domain.Listing{}, nil
	}
	ctx, span := tracer.Start(ctx, "GetCompanyJobs")
	defer span.End()

	return s.listings.Query(ctx, StoreQuery{
		Equals:  []EqualityFilter{{Field: domain.FieldCompanyID, Value: company.ID}},
		OrderBy: OrderBy{Field: domain.FieldPostedAt, Descending: true},
	})
}

// GetJobApplications lists applications for a listing. Listing ownership is not checked.
func (s *retrievalService) GetJobApplications(ctx context.Context, jobID string, actor domain.Actor) ([]domain.Application, error) {
	if _, ok := actor.(domain.CompanyActor); !ok {
		return nil, domain.Forbidden("only companies can view applications")
	}
	ctx, span := tracer.Start(ctx, "GetJobApplications")
	defer span.End()

	return s.applications.Query(ctx, StoreQuery{
		Equals:  []EqualityFilter{{Field: domain.FieldJobID, Value: strings.TrimSpace(jobID)}},
		OrderBy: OrderBy{Field: domain.FieldAppliedAt, Descending: true},
	})
}

// GetUserApplications lists the job seeker's own applications. Other actors get an empty result.
func (s *retrievalService) GetUserApplications(ctx context.Context, actor domain.Actor) ([]domain.Application, error) {
	seeker, ok := actor.(domain.JobSeekerActor)
	if !ok {
		return []domain.Application{}, nil
	}
	ctx, span := tracer.Start(ctx, "GetUserApplications")
	defer span.End()

	return s.applications.Query(ctx, StoreQuery{
		Equals:  []EqualityFilter{{Field: domain.FieldApplicantID, Value: seeker.ID}},
		OrderBy: OrderBy{Field: domain.FieldAppliedAt, Descending: true},
	})
}
