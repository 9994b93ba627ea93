package application

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sngm3741/jobboard/api/internal/jobs/domain"
)

// ListingsSession holds the result set, loading flag and cursor of one query session.
// Each fetch or search takes a ticket with a sequence number; only the latest ticket may
// write its result back, so a slow, older response never overwrites a newer one.
type ListingsSession struct {
	id string

	mu         sync.Mutex
	jobs       []domain.Listing
	loading    bool
	cursor     *domain.Cursor
	hasMore    bool
	filters    domain.Filters
	hasFilters bool
	seq        uint64
	lastUsed   time.Time
}

// NewListingsSession creates an empty session.
func NewListingsSession(id string) *ListingsSession {
	return &ListingsSession{id: id, hasMore: true, lastUsed: time.Now()}
}

// ID returns the session identifier.
func (s *ListingsSession) ID() string {
	return s.id
}

// SessionSnapshot is a copy of the session state.
type SessionSnapshot struct {
	Jobs    []domain.Listing
	Loading bool
	HasMore bool
	Cursor  *domain.Cursor
	Filters domain.Filters
}

// Snapshot returns a copy of the current state.
func (s *ListingsSession) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := SessionSnapshot{
		Jobs:    append([]domain.Listing(nil), s.jobs...),
		Loading: s.loading,
		HasMore: s.hasMore,
		Filters: s.filters,
	}
	if s.cursor != nil {
		c := *s.cursor
		snap.Cursor = &c
	}
	return snap
}

type fetchTicket struct {
	seq      uint64
	loadMore bool
	cursor   *domain.Cursor
}

// beginFetch issues a ticket for a fetch. A filter change, or a load-more with no cursor,
// turns the request into a fresh fetch.
func (s *ListingsSession) beginFetch(filters domain.Filters, loadMore bool) fetchTicket {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := filters.Normalize()
	if !s.hasFilters || s.filters != n {
		s.cursor = nil
		s.filters = n
		s.hasFilters = true
		loadMore = false
	}
	if loadMore && s.cursor == nil {
		loadMore = false
	}

	s.seq++
	s.loading = true
	s.lastUsed = time.Now()

	ticket := fetchTicket{seq: s.seq, loadMore: loadMore}
	if loadMore {
		c := *s.cursor
		ticket.cursor = &c
	}
	return ticket
}

// beginSearch issues a ticket for a search. Search results are not cursor-paginated,
// so the fetch cursor is dropped and the next fetch runs fresh.
func (s *ListingsSession) beginSearch() fetchTicket {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cursor = nil
	s.hasFilters = false
	s.seq++
	s.loading = true
	s.lastUsed = time.Now()
	return fetchTicket{seq: s.seq}
}

// commitFetch applies a page if the ticket is still the latest. It returns false for stale tickets.
func (s *ListingsSession) commitFetch(t fetchTicket, page []domain.Listing) ([]domain.Listing, bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.seq != s.seq {
		return nil, false, false
	}

	if t.loadMore {
		s.jobs = append(s.jobs, page...)
	} else {
		s.jobs = append([]domain.Listing(nil), page...)
	}
	// 空の追加ページではカーソルを保持し、次の追加読み込みも同じ位置から再開する
	switch {
	case len(page) > 0:
		c := page[len(page)-1].Cursor()
		s.cursor = &c
	case !t.loadMore:
		s.cursor = nil
	}
	s.hasMore = len(page) == PageSize

	return append([]domain.Listing(nil), s.jobs...), s.hasMore, true
}

// commitSearch replaces the result set with search results if the ticket is still the latest.
func (s *ListingsSession) commitSearch(t fetchTicket, jobs []domain.Listing) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.seq != s.seq {
		return false
	}
	s.jobs = append([]domain.Listing(nil), jobs...)
	s.hasMore = false
	return true
}

// release clears the loading flag when the ticket is the latest one issued.
func (s *ListingsSession) release(t fetchTicket) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.seq == s.seq {
		s.loading = false
	}
}

func (s *ListingsSession) touch(at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if at.After(s.lastUsed) {
		s.lastUsed = at
	}
}

func (s *ListingsSession) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

// SessionRegistry maps session ids to sessions and evicts idle ones.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*ListingsSession
	idleTTL  time.Duration
	now      func() time.Time
}

// NewSessionRegistry creates a registry. idleTTL <= 0 disables eviction.
func NewSessionRegistry(idleTTL time.Duration) *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]*ListingsSession),
		idleTTL:  idleTTL,
		now:      time.Now,
	}
}

// Get returns the session for id. An empty or unknown id gets a new session under a
// server-generated id; callers read it back with ID().
func (r *SessionRegistry) Get(id string) *ListingsSession {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id != "" {
		if session, ok := r.sessions[id]; ok {
			session.touch(r.now())
			return session
		}
	}

	id = uuid.NewString()
	session := NewListingsSession(id)
	session.lastUsed = r.now()
	r.sessions[id] = session
	return session
}

// Len returns the number of live sessions.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep evicts sessions idle for longer than the TTL and returns how many were removed.
func (r *SessionRegistry) Sweep() int {
	if r.idleTTL <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.idleTTL)
	removed := 0
	for id, session := range r.sessions {
		if session.idleSince().Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps on every interval until ctx is done. onSweep, when set, receives the number
// of evicted sessions and the number still live.
func (r *SessionRegistry) Run(ctx context.Context, interval time.Duration, onSweep func(removed, live int)) {
	if interval <= 0 || r.idleTTL <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := r.Sweep()
			if onSweep != nil {
				onSweep(removed, r.Len())
			}
		}
	}
}
