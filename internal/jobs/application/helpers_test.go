package application_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/sngm3741/jobboard/api/internal/infrastructure/memory"
	"github.com/sngm3741/jobboard/api/internal/jobs/application"
	"github.com/sngm3741/jobboard/api/internal/jobs/domain"
)

var baseTime = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

var (
	acme   = domain.CompanyActor{ID: "company-1", CompanyName: "Acme", Logo: "acme.png"}
	globex = domain.CompanyActor{ID: "company-2", CompanyName: "Globex"}
	ada    = domain.JobSeekerActor{ID: "seeker-1", FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}
)

type listingOption func(*domain.Listing)

func withJobType(jobType string) listingOption {
	return func(l *domain.Listing) { l.JobType = jobType }
}

func withLocation(location string) listingOption {
	return func(l *domain.Listing) { l.Location = location }
}

func inactive() listingOption {
	return func(l *domain.Listing) { l.IsActive = false }
}

func ownedBy(c domain.CompanyActor) listingOption {
	return func(l *domain.Listing) {
		l.CompanyID = c.ID
		l.CompanyName = c.CompanyName
	}
}

func titled(title string) listingOption {
	return func(l *domain.Listing) { l.Title = title }
}

// seedListing inserts an active listing posted n minutes before baseTime.
func seedListing(t *testing.T, repo *memory.ListingRepository, id string, minutesAgo int, opts ...listingOption) domain.Listing {
	t.Helper()
	listing := domain.Listing{
		ID:          id,
		Title:       "Engineer " + id,
		CompanyID:   acme.ID,
		CompanyName: acme.CompanyName,
		Location:    "remote",
		JobType:     "full-time",
		PostedAt:    baseTime.Add(-time.Duration(minutesAgo) * time.Minute),
		UpdatedAt:   baseTime.Add(-time.Duration(minutesAgo) * time.Minute),
		IsActive:    true,
	}
	for _, opt := range opts {
		opt(&listing)
	}
	if _, err := repo.Insert(context.Background(), &listing); err != nil {
		t.Fatalf("seed listing: %v", err)
	}
	return listing
}

func seedFullTime(t *testing.T, repo *memory.ListingRepository, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		seedListing(t, repo, fmt.Sprintf("ft-%02d", i), i)
	}
}

func ids(listings []domain.Listing) []string {
	out := make([]string, len(listings))
	for i, l := range listings {
		out[i] = l.ID
	}
	return out
}

// gatedRepository blocks the first Query until release is closed.
type gatedRepository struct {
	application.ListingRepository
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func newGatedRepository(inner application.ListingRepository) *gatedRepository {
	return &gatedRepository{ListingRepository: inner, entered: make(chan struct{}), release: make(chan struct{})}
}

func (g *gatedRepository) Query(ctx context.Context, query application.StoreQuery) ([]domain.Listing, error) {
	first := false
	g.once.Do(func() { first = true })
	if first {
		close(g.entered)
		<-g.release
	}
	return g.ListingRepository.Query(ctx, query)
}

type failingListings struct {
	application.ListingRepository
}

func (failingListings) Query(context.Context, application.StoreQuery) ([]domain.Listing, error) {
	return nil, domain.StoreUnavailable("store down", fmt.Errorf("connection refused"))
}
