package application

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/sngm3741/jobboard/api/internal/jobs/domain"
	"github.com/sngm3741/jobboard/api/internal/metrics"
	"github.com/sngm3741/jobboard/api/internal/telemetry"
)

// ApplyServiceConfig wires the application workflow.
type ApplyServiceConfig struct {
	Listings     ListingRepository
	Applications ApplicationRepository
	// Guard is optional; without it idempotency keys are ignored.
	Guard SubmissionGuard
	// Events is optional.
	Events ApplicationEvents
	Logger *zap.Logger
	Now    func() time.Time
}

type applyService struct {
	listings     ListingRepository
	applications ApplicationRepository
	guard        SubmissionGuard
	events       ApplicationEvents
	logger       *zap.Logger
	now          func() time.Time
}

// NewApplyService creates the application workflow.
func NewApplyService(cfg ApplyServiceConfig) ApplyService {
	svc := &applyService{
		listings:     cfg.Listings,
		applications: cfg.Applications,
		guard:        cfg.Guard,
		events:       cfg.Events,
		logger:       cfg.Logger,
		now:          cfg.Now,
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	return svc
}

// ApplyToJob inserts the application, then increments the listing counter with a single
// atomic store request. If the listing is gone by then the application stays and NotFound
// is returned. With an idempotency key, a retry after a failed increment reuses the stored
// application and only repeats the increment.
func (s *applyService) ApplyToJob(ctx context.Context, cmd ApplyCommand) (string, error) {
	ctx, span := tracer.Start(ctx, "ApplyToJob")
	defer span.End()

	seeker, ok := cmd.Actor.(domain.JobSeekerActor)
	if !ok {
		metrics.ApplicationSubmissions.WithLabelValues("forbidden").Inc()
		return "", domain.Forbidden("only job seekers can apply")
	}
	jobID := strings.TrimSpace(cmd.JobID)
	if jobID == "" {
		metrics.ApplicationSubmissions.WithLabelValues(metrics.OutcomeError).Inc()
		return "", domain.NotFound("listing id is empty", nil)
	}
	span.SetAttributes(telemetry.String("job.id", jobID), telemetry.String("applicant.id", seeker.ID))

	guardKey := ""
	resumedID := ""
	if s.guard != nil && strings.TrimSpace(cmd.IdempotencyKey) != "" {
		guardKey = submissionKey(seeker.ID, jobID, cmd.IdempotencyKey)
		reservation, err := s.guard.Reserve(ctx, guardKey)
		if err != nil {
			metrics.ApplicationSubmissions.WithLabelValues(metrics.OutcomeError).Inc()
			return "", err
		}
		if !reservation.Reserved {
			metrics.ApplicationSubmissions.WithLabelValues(metrics.OutcomeDuplicate).Inc()
			if reservation.ApplicationID != "" {
				return reservation.ApplicationID, nil
			}
			return "", domain.InvalidInput("a submission with this idempotency key is still in progress")
		}
		resumedID = reservation.ApplicationID
	}

	var app *domain.Application
	if resumedID != "" {
		span.SetAttributes(telemetry.Bool("apply.resumed", true))
		s.logger.Info("resuming counter increment for stored application",
			zap.String("applicationId", resumedID),
			zap.String("jobId", jobID))
	} else {
		app = &domain.Application{
			JobID:           jobID,
			ApplicantID:     seeker.ID,
			ApplicantName:   seeker.DisplayName(),
			ApplicantEmail:  seeker.Email,
			AppliedAt:       s.now().UTC(),
			Status:          domain.ApplicationStatusPending,
			ApplicationData: copyApplicationData(cmd.Data),
		}
		id, err := s.applications.Insert(ctx, app)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "application insert failed")
			metrics.ApplicationSubmissions.WithLabelValues(metrics.OutcomeError).Inc()
			s.releaseGuard(ctx, guardKey)
			return "", err
		}
		app.ID = id
		s.markInserted(ctx, guardKey, id)
	}
	id := resumedID
	if app != nil {
		id = app.ID
	}

	if err := s.listings.IncrementApplications(ctx, jobID, 1); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "applications counter increment failed")
		metrics.ApplicationSubmissions.WithLabelValues(metrics.OutcomeOrphaned).Inc()
		s.logger.Warn("application stored without counter increment",
			zap.String("applicationId", id),
			zap.String("jobId", jobID),
			zap.Error(err))
		if resumedID != "" {
			s.markInserted(ctx, guardKey, id)
		}
		return "", err
	}
	s.completeGuard(ctx, guardKey, id)

	metrics.ApplicationSubmissions.WithLabelValues(metrics.OutcomeOK).Inc()
	if app == nil {
		app = s.findApplication(ctx, jobID, seeker.ID, id)
	}
	if app != nil {
		s.publish(ctx, *app)
	}
	return id, nil
}

// findApplication loads a previously inserted application for the submitted event.
func (s *applyService) findApplication(ctx context.Context, jobID, applicantID, id string) *domain.Application {
	apps, err := s.applications.Query(ctx, StoreQuery{
		Equals: []EqualityFilter{
			{Field: domain.FieldJobID, Value: jobID},
			{Field: domain.FieldApplicantID, Value: applicantID},
		},
	})
	if err != nil {
		s.logger.Warn("failed to load resumed application", zap.String("applicationId", id), zap.Error(err))
		return nil
	}
	for i := range apps {
		if apps[i].ID == id {
			return &apps[i]
		}
	}
	s.logger.Warn("resumed application not found", zap.String("applicationId", id))
	return nil
}

func (s *applyService) publish(ctx context.Context, app domain.Application) {
	if s.events == nil {
		return
	}
	if err := s.events.ApplicationSubmitted(ctx, app); err != nil {
		s.logger.Warn("failed to publish application event",
			zap.String("applicationId", app.ID),
			zap.Error(err))
	}
}

func (s *applyService) completeGuard(ctx context.Context, key, applicationID string) {
	if key == "" {
		return
	}
	if err := s.guard.Complete(ctx, key, applicationID); err != nil {
		s.logger.Warn("failed to record idempotency key", zap.String("applicationId", applicationID), zap.Error(err))
	}
}

func (s *applyService) markInserted(ctx context.Context, key, applicationID string) {
	if key == "" {
		return
	}
	if err := s.guard.MarkInserted(ctx, key, applicationID); err != nil {
		s.logger.Warn("failed to record inserted application", zap.String("applicationId", applicationID), zap.Error(err))
	}
}

func (s *applyService) releaseGuard(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.guard.Release(ctx, key); err != nil {
		s.logger.Warn("failed to release idempotency key", zap.Error(err))
	}
}

func submissionKey(applicantID, jobID, token string) string {
	return applicantID + ":" + jobID + ":" + strings.TrimSpace(token)
}

func copyApplicationData(data domain.ApplicationData) domain.ApplicationData {
	out := domain.ApplicationData{
		ResumeURL:   strings.TrimSpace(data.ResumeURL),
		CoverLetter: strings.TrimSpace(data.CoverLetter),
	}
	if len(data.Answers) > 0 {
		out.Answers = make(map[string]string, len(data.Answers))
		for k, v := range data.Answers {
			out.Answers[k] = v
		}
	}
	return out
}
