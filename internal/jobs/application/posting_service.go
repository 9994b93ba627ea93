package application

import (
	"context"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/sngm3741/jobboard/api/internal/jobs/domain"
)

type postingService struct {
	listings ListingRepository
	logger   *zap.Logger
	now      func() time.Time
}

// NewPostingService creates the listing management service.
func NewPostingService(listings ListingRepository, logger *zap.Logger) PostingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postingService{listings: listings, logger: logger, now: time.Now}
}

func (s *postingService) PostJob(ctx context.Context, actor domain.Actor, cmd PostJobCommand) (string, error) {
	company, ok := actor.(domain.CompanyActor)
	if !ok {
		return "", domain.Forbidden("only companies can post jobs")
	}
	ctx, span := tracer.Start(ctx, "PostJob")
	defer span.End()

	title := strings.TrimSpace(cmd.Title)
	if title == "" {
		return "", domain.InvalidInput("title is required")
	}
	if err := validateListingEnums(cmd.Location, cmd.JobType, cmd.ExperienceLevel, cmd.Industry, cmd.SalaryRange); err != nil {
		return "", err
	}

	now := s.now().UTC()
	listing := &domain.Listing{
		Title:             title,
		CompanyID:         company.ID,
		CompanyName:       company.CompanyName,
		CompanyLogo:       company.Logo,
		Location:          strings.TrimSpace(cmd.Location),
		JobType:           strings.TrimSpace(cmd.JobType),
		ExperienceLevel:   strings.TrimSpace(cmd.ExperienceLevel),
		Industry:          strings.TrimSpace(cmd.Industry),
		SalaryRange:       strings.TrimSpace(cmd.SalaryRange),
		Skills:            normalizeSkills(cmd.Skills),
		Description:       strings.TrimSpace(cmd.Description),
		PostedAt:          now,
		UpdatedAt:         now,
		IsActive:          true,
		ApplicationsCount: 0,
	}

	id, err := s.listings.Insert(ctx, listing)
	if err != nil {
		s.logger.Error("failed to post job", zap.String("companyId", company.ID), zap.Error(err))
		return "", err
	}
	return id, nil
}

func (s *postingService) UpdateJob(ctx context.Context, actor domain.Actor, jobID string, patch domain.ListingPatch) error {
	company, ok := actor.(domain.CompanyActor)
	if !ok {
		return domain.Forbidden("only companies can update jobs")
	}
	ctx, span := tracer.Start(ctx, "UpdateJob")
	defer span.End()

	if err := s.ensureOwner(ctx, company, jobID); err != nil {
		return err
	}

	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		if trimmed == "" {
			return domain.InvalidInput("title must not be empty")
		}
		patch.Title = &trimmed
	}
	if err := validateListingEnums(
		lo.FromPtr(patch.Location),
		lo.FromPtr(patch.JobType),
		lo.FromPtr(patch.ExperienceLevel),
		lo.FromPtr(patch.Industry),
		lo.FromPtr(patch.SalaryRange),
	); err != nil {
		return err
	}
	if patch.Skills != nil {
		skills := normalizeSkills(*patch.Skills)
		patch.Skills = &skills
	}

	return s.listings.UpdateFields(ctx, strings.TrimSpace(jobID), patch, s.now().UTC())
}

func (s *postingService) DeleteJob(ctx context.Context, actor domain.Actor, jobID string) error {
	company, ok := actor.(domain.CompanyActor)
	if !ok {
		return domain.Forbidden("only companies can delete jobs")
	}
	ctx, span := tracer.Start(ctx, "DeleteJob")
	defer span.End()

	if err := s.ensureOwner(ctx, company, jobID); err != nil {
		return err
	}
	return s.listings.Delete(ctx, strings.TrimSpace(jobID))
}

func (s *postingService) ensureOwner(ctx context.Context, company domain.CompanyActor, jobID string) error {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return domain.NotFound("listing id is empty", nil)
	}
	listing, err := s.listings.FindByID(ctx, jobID)
	if err != nil {
		return err
	}
	if listing.CompanyID != company.ID {
		return domain.Forbidden("listing belongs to another company")
	}
	return nil
}

// validateListingEnums checks enumerated listing fields. Empty values are skipped.
func validateListingEnums(location, jobType, experienceLevel, industry, salaryRange string) error {
	for _, entry := range []struct {
		field string
		value string
	}{
		{domain.FieldLocation, location},
		{domain.FieldJobType, jobType},
		{domain.FieldExperienceLevel, experienceLevel},
		{domain.FieldIndustry, industry},
		{domain.FieldSalaryRange, salaryRange},
	} {
		value := strings.TrimSpace(entry.value)
		if value == "" {
			continue
		}
		if err := domain.ValidateEnumValue(entry.field, value); err != nil {
			return err
		}
	}
	return nil
}

func normalizeSkills(skills []string) []string {
	result := make([]string, 0, len(skills))
	seen := make(map[string]struct{})
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		key := strings.ToLower(skill)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, skill)
	}
	return result
}
