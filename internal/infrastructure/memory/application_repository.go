package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sngm3741/jobboard/api/internal/jobs/application"
	"github.com/sngm3741/jobboard/api/internal/jobs/domain"
)

type applicationRecord struct {
	domain.Application
}

func (r applicationRecord) field(name string) (any, bool) {
	switch name {
	case domain.FieldJobID:
		return r.JobID, true
	case domain.FieldApplicantID:
		return r.ApplicantID, true
	case "status":
		return string(r.Status), true
	}
	return nil, false
}

func (r applicationRecord) orderKey(string) time.Time { return r.AppliedAt }

func (r applicationRecord) recordID() string { return r.ID }

// ApplicationRepository keeps applications in insertion order.
type ApplicationRepository struct {
	mu   sync.RWMutex
	apps []domain.Application
}

func NewApplicationRepository() *ApplicationRepository {
	return &ApplicationRepository{}
}

func (r *ApplicationRepository) Insert(_ context.Context, app *domain.Application) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *app
	stored.ID = uuid.NewString()
	r.apps = append(r.apps, stored)
	return stored.ID, nil
}

func (r *ApplicationRepository) Query(ctx context.Context, query application.StoreQuery) ([]domain.Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.StoreUnavailable("application query cancelled", err)
	}
	r.mu.RLock()
	all := make([]applicationRecord, len(r.apps))
	for i, app := range r.apps {
		all[i] = applicationRecord{app}
	}
	r.mu.RUnlock()

	selected := selectRecords(all, query)
	out := make([]domain.Application, len(selected))
	for i, rec := range selected {
		out[i] = rec.Application
	}
	return out, nil
}

// Len returns the number of stored applications.
func (r *ApplicationRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.apps)
}
