package nats

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/sngm3741/jobboard/api/internal/jobs/domain"
	"github.com/sngm3741/jobboard/api/internal/telemetry"
)

var tracer = telemetry.GetTracer("github.com/sngm3741/jobboard/api/internal/infrastructure/nats")

const ApplicationSubmittedSubject = "applications.submitted"

// ApplicationSubmittedEvent is the payload published for every stored application.
type ApplicationSubmittedEvent struct {
	ApplicationID string    `json:"applicationId"`
	JobID         string    `json:"jobId"`
	ApplicantID   string    `json:"applicantId"`
	AppliedAt     time.Time `json:"appliedAt"`
}

type conn interface {
	Publish(subject string, data []byte) error
	Close()
}

// Publisher sends application events to NATS.
type Publisher struct {
	nc     conn
	logger *zap.Logger
}

func NewPublisher(natsURL string, connTimeout time.Duration, logger *zap.Logger) (*Publisher, error) {
	if connTimeout <= 0 {
		connTimeout = 10 * time.Second
	}
	opts := []nats.Option{
		nats.Timeout(connTimeout),
		nats.ReconnectWait(time.Second),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
	}

	nc, err := nats.Connect(natsURL, opts...)
	if err != nil {
		return nil, domain.StoreUnavailable("connecting to NATS", err)
	}
	return newPublisher(nc, logger), nil
}

func newPublisher(nc conn, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{nc: nc, logger: logger}
}

func (p *Publisher) ApplicationSubmitted(ctx context.Context, app domain.Application) error {
	_, span := tracer.Start(ctx, "PublishApplicationSubmitted")
	defer span.End()

	event := ApplicationSubmittedEvent{
		ApplicationID: app.ID,
		JobID:         app.JobID,
		ApplicantID:   app.ApplicantID,
		AppliedAt:     app.AppliedAt,
	}
	data, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		return domain.NewError(domain.ErrKindStoreUnavailable, "marshaling application event", err)
	}

	span.SetAttributes(
		telemetry.String("nats.subject", ApplicationSubmittedSubject),
		telemetry.Int("message.size", len(data)),
	)

	if err := p.nc.Publish(ApplicationSubmittedSubject, data); err != nil {
		span.RecordError(err)
		p.logger.Error("failed to publish application event",
			zap.String("applicationId", app.ID),
			zap.Error(err))
		return domain.StoreUnavailable("publishing application event", err)
	}

	p.logger.Debug("published application event",
		zap.String("applicationId", app.ID),
		zap.String("subject", ApplicationSubmittedSubject))
	return nil
}

func (p *Publisher) Close() {
	if p.nc != nil {
		p.nc.Close()
	}
}
