package memory

import (
	"context"
	"testing"
	"time"

	"github.com/sngm3741/jobboard/api/internal/jobs/application"
	"github.com/sngm3741/jobboard/api/internal/jobs/domain"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func insertListings(t *testing.T, repo *ListingRepository, listings ...domain.Listing) {
	t.Helper()
	for i := range listings {
		if _, err := repo.Insert(context.Background(), &listings[i]); err != nil {
			t.Fatal(err)
		}
	}
}

func listingIDs(listings []domain.Listing) []string {
	out := make([]string, len(listings))
	for i, l := range listings {
		out[i] = l.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestListingQueryOrderCursorLimit(t *testing.T) {
	repo := NewListingRepository()
	insertListings(t, repo,
		domain.Listing{ID: "a", PostedAt: t0, IsActive: true, JobType: "full-time"},
		domain.Listing{ID: "b", PostedAt: t0, IsActive: true, JobType: "full-time"},
		domain.Listing{ID: "c", PostedAt: t0.Add(time.Minute), IsActive: true, JobType: "full-time"},
		domain.Listing{ID: "d", PostedAt: t0.Add(-time.Minute), IsActive: true, JobType: "full-time"},
		domain.Listing{ID: "e", PostedAt: t0.Add(time.Hour), IsActive: false, JobType: "full-time"},
		domain.Listing{ID: "f", PostedAt: t0.Add(time.Hour), IsActive: true, JobType: "contract"},
	)

	base := application.StoreQuery{
		Equals: []application.EqualityFilter{
			{Field: domain.FieldIsActive, Value: true},
			{Field: domain.FieldJobType, Value: "full-time"},
		},
		OrderBy: application.OrderBy{Field: domain.FieldPostedAt, Descending: true},
	}

	tests := []struct {
		name   string
		mutate func(q *application.StoreQuery)
		want   []string
	}{
		{"ordered with id tiebreak", func(*application.StoreQuery) {}, []string{"c", "b", "a", "d"}},
		{"limited", func(q *application.StoreQuery) { q.Limit = 2 }, []string{"c", "b"}},
		{"after tied cursor", func(q *application.StoreQuery) {
			q.StartAfter = &domain.Cursor{PostedAt: t0, ID: "b"}
		}, []string{"a", "d"}},
		{"after last", func(q *application.StoreQuery) {
			q.StartAfter = &domain.Cursor{PostedAt: t0.Add(-time.Minute), ID: "d"}
		}, []string{}},
		{"ascending", func(q *application.StoreQuery) { q.OrderBy.Descending = false }, []string{"d", "a", "b", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := base
			tt.mutate(&q)
			got, err := repo.Query(context.Background(), q)
			if err != nil {
				t.Fatal(err)
			}
			if !equalIDs(listingIDs(got), tt.want) {
				t.Fatalf("Query() = %v, want %v", listingIDs(got), tt.want)
			}
		})
	}
}

func TestListingQueryCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewListingRepository().Query(ctx, application.StoreQuery{})
	if !domain.IsKind(err, domain.ErrKindStoreUnavailable) {
		t.Fatalf("expected STORE_UNAVAILABLE, got %v", err)
	}
}

func TestListingRepositoryCopiesSkills(t *testing.T) {
	repo := NewListingRepository()
	listing := domain.Listing{Skills: []string{"Go"}}
	id, err := repo.Insert(context.Background(), &listing)
	if err != nil || id == "" {
		t.Fatalf("Insert() = %q, %v", id, err)
	}
	listing.Skills[0] = "Rust"

	stored, err := repo.FindByID(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Skills[0] != "Go" {
		t.Fatal("stored listing shares the caller's slice")
	}
}

func TestListingRepositoryMissing(t *testing.T) {
	repo := NewListingRepository()
	ctx := context.Background()
	if err := repo.UpdateFields(ctx, "x", domain.ListingPatch{}, t0); !domain.IsKind(err, domain.ErrKindNotFound) {
		t.Fatalf("UpdateFields: %v", err)
	}
	if err := repo.Delete(ctx, "x"); !domain.IsKind(err, domain.ErrKindNotFound) {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.IncrementApplications(ctx, "x", 1); !domain.IsKind(err, domain.ErrKindNotFound) {
		t.Fatalf("IncrementApplications: %v", err)
	}
}

func TestSubmissionGuard(t *testing.T) {
	guard := NewSubmissionGuard(time.Minute)
	now := t0
	guard.now = func() time.Time { return now }
	ctx := context.Background()

	if r, _ := guard.Reserve(ctx, "k"); !r.Reserved || r.ApplicationID != "" {
		t.Fatalf("first reserve: %+v", r)
	}
	if r, _ := guard.Reserve(ctx, "k"); r.Reserved || r.ApplicationID != "" {
		t.Fatalf("pending key: %+v", r)
	}

	if err := guard.MarkInserted(ctx, "k", "app-1"); err != nil {
		t.Fatal(err)
	}
	if r, _ := guard.Reserve(ctx, "k"); !r.Reserved || r.ApplicationID != "app-1" {
		t.Fatalf("inserted key should be handed over for resume: %+v", r)
	}
	// 再開中のキーは他の呼び出し元には pending に見える
	if r, _ := guard.Reserve(ctx, "k"); r.Reserved || r.ApplicationID != "" {
		t.Fatalf("resumed key: %+v", r)
	}

	if err := guard.Complete(ctx, "k", "app-1"); err != nil {
		t.Fatal(err)
	}
	if r, _ := guard.Reserve(ctx, "k"); r.Reserved || r.ApplicationID != "app-1" {
		t.Fatalf("completed key: %+v", r)
	}

	now = now.Add(2 * time.Minute)
	if r, _ := guard.Reserve(ctx, "k"); !r.Reserved || r.ApplicationID != "" {
		t.Fatalf("expired key should be reservable again: %+v", r)
	}

	if err := guard.Release(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if r, _ := guard.Reserve(ctx, "k"); !r.Reserved {
		t.Fatal("released key should be reservable again")
	}
}
