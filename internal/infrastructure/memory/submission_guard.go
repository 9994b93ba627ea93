package memory

import (
	"context"
	"sync"
	"time"

	"github.com/sngm3741/jobboard/api/internal/jobs/application"
)

type guardState int

const (
	guardPending guardState = iota
	guardInserted
	guardDone
)

type guardEntry struct {
	state         guardState
	applicationID string
	expiresAt     time.Time
}

// SubmissionGuard is the process-local idempotency guard used when Redis is not configured.
type SubmissionGuard struct {
	mu      sync.Mutex
	entries map[string]guardEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewSubmissionGuard(ttl time.Duration) *SubmissionGuard {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SubmissionGuard{entries: make(map[string]guardEntry), ttl: ttl, now: time.Now}
}

func (g *SubmissionGuard) Reserve(_ context.Context, key string) (application.Reservation, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	entry, ok := g.entries[key]
	if !ok || !now.Before(entry.expiresAt) {
		g.entries[key] = guardEntry{state: guardPending, expiresAt: now.Add(g.ttl)}
		return application.Reservation{Reserved: true}, nil
	}

	switch entry.state {
	case guardInserted:
		// 取りこぼした加算を再開する呼び出し元にキーを渡す
		g.entries[key] = guardEntry{state: guardPending, applicationID: entry.applicationID, expiresAt: now.Add(g.ttl)}
		return application.Reservation{Reserved: true, ApplicationID: entry.applicationID}, nil
	case guardDone:
		return application.Reservation{ApplicationID: entry.applicationID}, nil
	default:
		return application.Reservation{}, nil
	}
}

func (g *SubmissionGuard) MarkInserted(_ context.Context, key, applicationID string) error {
	g.set(key, guardInserted, applicationID)
	return nil
}

func (g *SubmissionGuard) Complete(_ context.Context, key, applicationID string) error {
	g.set(key, guardDone, applicationID)
	return nil
}

func (g *SubmissionGuard) Release(_ context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.entries, key)
	return nil
}

func (g *SubmissionGuard) set(key string, state guardState, applicationID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.entries[key] = guardEntry{state: state, applicationID: applicationID, expiresAt: g.now().Add(g.ttl)}
}
