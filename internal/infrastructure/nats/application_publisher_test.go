package nats

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sngm3741/jobboard/api/internal/jobs/domain"
)

type fakeConn struct {
	subject string
	data    []byte
	err     error
	closed  bool
}

func (f *fakeConn) Publish(subject string, data []byte) error {
	f.subject = subject
	f.data = data
	return f.err
}

func (f *fakeConn) Close() { f.closed = true }

func TestApplicationSubmittedPublishesEvent(t *testing.T) {
	nc := &fakeConn{}
	publisher := newPublisher(nc, nil)
	appliedAt := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)

	err := publisher.ApplicationSubmitted(context.Background(), domain.Application{
		ID:          "app-1",
		JobID:       "job-1",
		ApplicantID: "seeker-1",
		AppliedAt:   appliedAt,
	})
	if err != nil {
		t.Fatal(err)
	}
	if nc.subject != ApplicationSubmittedSubject {
		t.Fatalf("subject = %q", nc.subject)
	}

	var event ApplicationSubmittedEvent
	if err := json.Unmarshal(nc.data, &event); err != nil {
		t.Fatal(err)
	}
	if event.ApplicationID != "app-1" || event.JobID != "job-1" || event.ApplicantID != "seeker-1" || !event.AppliedAt.Equal(appliedAt) {
		t.Fatalf("event = %+v", event)
	}

	publisher.Close()
	if !nc.closed {
		t.Fatal("Close should close the connection")
	}
}

func TestApplicationSubmittedPublishError(t *testing.T) {
	publisher := newPublisher(&fakeConn{err: errors.New("nats: connection closed")}, nil)
	err := publisher.ApplicationSubmitted(context.Background(), domain.Application{ID: "app-1"})
	if !domain.IsKind(err, domain.ErrKindStoreUnavailable) {
		t.Fatalf("expected STORE_UNAVAILABLE, got %v", err)
	}
}
