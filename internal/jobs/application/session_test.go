package application

import (
	"fmt"
	"testing"
	"time"

	"github.com/sngm3741/jobboard/api/internal/jobs/domain"
)

func page(n int, start time.Time) []domain.Listing {
	out := make([]domain.Listing, n)
	for i := range out {
		out[i] = domain.Listing{ID: fmt.Sprintf("job-%02d", i), PostedAt: start.Add(-time.Duration(i) * time.Minute)}
	}
	return out
}

func TestSessionFreshThenLoadMore(t *testing.T) {
	s := NewListingsSession("s1")
	filters := domain.Filters{}
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	first := s.beginFetch(filters, false)
	if !s.Snapshot().Loading {
		t.Fatal("loading should be set while a fetch is in flight")
	}
	jobs, hasMore, applied := s.commitFetch(first, page(PageSize, start))
	s.release(first)
	if !applied || !hasMore || len(jobs) != PageSize {
		t.Fatalf("first page: applied=%v hasMore=%v len=%d", applied, hasMore, len(jobs))
	}
	snap := s.Snapshot()
	if snap.Loading || snap.Cursor == nil || snap.Cursor.ID != "job-09" {
		t.Fatalf("unexpected snapshot after first page: %+v", snap)
	}

	second := s.beginFetch(filters, true)
	if !second.loadMore || second.cursor == nil || second.cursor.ID != "job-09" {
		t.Fatalf("load more should resume from last record, got %+v", second)
	}
	jobs, hasMore, applied = s.commitFetch(second, page(3, start.Add(-time.Hour)))
	s.release(second)
	if !applied || hasMore || len(jobs) != PageSize+3 {
		t.Fatalf("second page: applied=%v hasMore=%v len=%d", applied, hasMore, len(jobs))
	}
}

func TestSessionFilterChangeForcesFreshFetch(t *testing.T) {
	s := NewListingsSession("s1")
	start := time.Now()

	t1 := s.beginFetch(domain.Filters{}, false)
	s.commitFetch(t1, page(PageSize, start))
	s.release(t1)

	t2 := s.beginFetch(domain.Filters{Location: "remote"}, true)
	if t2.loadMore || t2.cursor != nil {
		t.Fatalf("filter change must reset the cursor, got %+v", t2)
	}
	jobs, _, _ := s.commitFetch(t2, page(2, start))
	s.release(t2)
	if len(jobs) != 2 {
		t.Fatalf("fresh fetch must replace the result set, got %d", len(jobs))
	}

	// "" and "all" normalise to the same filters, so this is not a change.
	t3 := s.beginFetch(domain.Filters{Location: "remote", JobType: "all"}, true)
	if !t3.loadMore {
		t.Fatal("equivalent filters must not reset the cursor")
	}
	s.release(t3)
}

func TestSessionLoadMoreWithoutCursorRunsFresh(t *testing.T) {
	s := NewListingsSession("s1")
	t1 := s.beginFetch(domain.Filters{}, true)
	if t1.loadMore {
		t.Fatal("load more before any fetch must run fresh")
	}
	s.commitFetch(t1, nil)
	s.release(t1)

	t2 := s.beginFetch(domain.Filters{}, true)
	if t2.loadMore {
		t.Fatal("load more after an empty page must run fresh")
	}
	s.release(t2)
	if s.Snapshot().HasMore {
		t.Fatal("empty page means no more records")
	}
}

func TestSessionEmptyLoadMoreKeepsCursor(t *testing.T) {
	s := NewListingsSession("s1")
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t1 := s.beginFetch(domain.Filters{}, false)
	s.commitFetch(t1, page(PageSize, start))
	s.release(t1)

	t2 := s.beginFetch(domain.Filters{}, true)
	jobs, hasMore, applied := s.commitFetch(t2, nil)
	s.release(t2)
	if !applied || hasMore || len(jobs) != PageSize {
		t.Fatalf("empty load more: applied=%v hasMore=%v len=%d", applied, hasMore, len(jobs))
	}
	if c := s.Snapshot().Cursor; c == nil || c.ID != "job-09" {
		t.Fatalf("cursor must survive an empty load more, got %+v", c)
	}

	t3 := s.beginFetch(domain.Filters{}, true)
	if !t3.loadMore || t3.cursor == nil || t3.cursor.ID != "job-09" {
		t.Fatalf("next load more must resume from the last record, got %+v", t3)
	}
	jobs, _, _ = s.commitFetch(t3, nil)
	s.release(t3)
	if len(jobs) != PageSize {
		t.Fatalf("accumulated jobs must be kept, got %d", len(jobs))
	}
}

func TestSessionDiscardsStaleResponse(t *testing.T) {
	s := NewListingsSession("s1")
	start := time.Now()

	slow := s.beginFetch(domain.Filters{}, false)
	fast := s.beginFetch(domain.Filters{Location: "remote"}, false)

	if _, _, applied := s.commitFetch(fast, page(1, start)); !applied {
		t.Fatal("latest ticket must apply")
	}
	s.release(fast)
	if s.Snapshot().Loading {
		t.Fatal("latest release clears loading")
	}

	if _, _, applied := s.commitFetch(slow, page(PageSize, start)); applied {
		t.Fatal("superseded ticket must not apply")
	}
	s.release(slow)

	snap := s.Snapshot()
	if len(snap.Jobs) != 1 || snap.Filters.Location != "remote" {
		t.Fatalf("stale response overwrote newer state: %+v", snap)
	}
}

func TestSessionStaleReleaseKeepsLoading(t *testing.T) {
	s := NewListingsSession("s1")
	old := s.beginFetch(domain.Filters{}, false)
	latest := s.beginFetch(domain.Filters{}, false)

	s.release(old)
	if !s.Snapshot().Loading {
		t.Fatal("an older ticket must not clear the loading flag of a newer fetch")
	}
	s.release(latest)
	if s.Snapshot().Loading {
		t.Fatal("loading should be cleared")
	}
}

func TestSessionSearchDropsCursor(t *testing.T) {
	s := NewListingsSession("s1")
	t1 := s.beginFetch(domain.Filters{}, false)
	s.commitFetch(t1, page(PageSize, time.Now()))
	s.release(t1)

	st := s.beginSearch()
	if !s.commitSearch(st, page(2, time.Now())) {
		t.Fatal("search should apply")
	}
	s.release(st)

	snap := s.Snapshot()
	if snap.Cursor != nil || snap.HasMore || len(snap.Jobs) != 2 {
		t.Fatalf("unexpected snapshot after search: %+v", snap)
	}

	next := s.beginFetch(domain.Filters{}, true)
	if next.loadMore {
		t.Fatal("fetch after search must run fresh")
	}
	s.release(next)
}

func TestSessionRegistry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r := NewSessionRegistry(time.Minute)
	r.now = func() time.Time { return now }

	created := r.Get("")
	if created.ID() == "" {
		t.Fatal("expected generated id")
	}
	if r.Get(created.ID()) != created {
		t.Fatal("same id must return the same session")
	}
	unknown := r.Get("client-chosen")
	if unknown.ID() == "client-chosen" || unknown.ID() == "" || unknown == created || r.Len() != 2 {
		t.Fatalf("unknown id must get a generated session: id=%s len=%d", unknown.ID(), r.Len())
	}
	if r.Get("client-chosen") == unknown || r.Len() != 3 {
		t.Fatal("a client-supplied id must never be registered")
	}
	if r.Get(unknown.ID()) != unknown {
		t.Fatal("generated id must return the same session")
	}

	now = now.Add(2 * time.Minute)
	if removed := r.Sweep(); removed != 3 || r.Len() != 0 {
		t.Fatalf("Sweep() removed %d, len %d", removed, r.Len())
	}
}
