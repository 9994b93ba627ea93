package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sngm3741/jobboard/api/internal/jobs/application"
	"github.com/sngm3741/jobboard/api/internal/jobs/domain"
)

type listingRecord struct {
	domain.Listing
}

func (r listingRecord) field(name string) (any, bool) {
	switch name {
	case domain.FieldLocation:
		return r.Location, true
	case domain.FieldJobType:
		return r.JobType, true
	case domain.FieldExperienceLevel:
		return r.ExperienceLevel, true
	case domain.FieldIndustry:
		return r.Industry, true
	case domain.FieldSalaryRange:
		return r.SalaryRange, true
	case domain.FieldCompanyID:
		return r.CompanyID, true
	case domain.FieldIsActive:
		return r.IsActive, true
	}
	return nil, false
}

func (r listingRecord) orderKey(field string) time.Time {
	if field == "updatedAt" {
		return r.UpdatedAt
	}
	return r.PostedAt
}

func (r listingRecord) recordID() string { return r.ID }

// ListingRepository keeps listings in a map guarded by a mutex.
type ListingRepository struct {
	mu       sync.RWMutex
	listings map[string]domain.Listing
	newID    func() string
}

func NewListingRepository() *ListingRepository {
	return &ListingRepository{
		listings: make(map[string]domain.Listing),
		newID:    uuid.NewString,
	}
}

func (r *ListingRepository) Insert(_ context.Context, listing *domain.Listing) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := cloneListing(*listing)
	if stored.ID == "" {
		stored.ID = r.newID()
	}
	r.listings[stored.ID] = stored
	return stored.ID, nil
}

func (r *ListingRepository) FindByID(_ context.Context, id string) (*domain.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	listing, ok := r.listings[id]
	if !ok {
		return nil, domain.NotFound("listing not found", nil)
	}
	out := cloneListing(listing)
	return &out, nil
}

func (r *ListingRepository) UpdateFields(_ context.Context, id string, patch domain.ListingPatch, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	listing, ok := r.listings[id]
	if !ok {
		return domain.NotFound("listing not found", nil)
	}
	if patch.Title != nil {
		listing.Title = *patch.Title
	}
	if patch.Location != nil {
		listing.Location = *patch.Location
	}
	if patch.JobType != nil {
		listing.JobType = *patch.JobType
	}
	if patch.ExperienceLevel != nil {
		listing.ExperienceLevel = *patch.ExperienceLevel
	}
	if patch.Industry != nil {
		listing.Industry = *patch.Industry
	}
	if patch.SalaryRange != nil {
		listing.SalaryRange = *patch.SalaryRange
	}
	if patch.Skills != nil {
		listing.Skills = append([]string{}, (*patch.Skills)...)
	}
	if patch.Description != nil {
		listing.Description = *patch.Description
	}
	if patch.IsActive != nil {
		listing.IsActive = *patch.IsActive
	}
	listing.UpdatedAt = updatedAt
	r.listings[id] = listing
	return nil
}

func (r *ListingRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.listings[id]; !ok {
		return domain.NotFound("listing not found", nil)
	}
	delete(r.listings, id)
	return nil
}

func (r *ListingRepository) Query(ctx context.Context, query application.StoreQuery) ([]domain.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.StoreUnavailable("listing query cancelled", err)
	}
	r.mu.RLock()
	all := make([]listingRecord, 0, len(r.listings))
	for _, listing := range r.listings {
		all = append(all, listingRecord{cloneListing(listing)})
	}
	r.mu.RUnlock()

	selected := selectRecords(all, query)
	out := make([]domain.Listing, len(selected))
	for i, rec := range selected {
		out[i] = rec.Listing
	}
	return out, nil
}

func (r *ListingRepository) IncrementApplications(_ context.Context, id string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	listing, ok := r.listings[id]
	if !ok {
		return domain.NotFound("listing not found", nil)
	}
	listing.ApplicationsCount += delta
	r.listings[id] = listing
	return nil
}

func cloneListing(l domain.Listing) domain.Listing {
	if l.Skills != nil {
		l.Skills = append([]string{}, l.Skills...)
	}
	return l
}
