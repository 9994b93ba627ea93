package common

import (
	"time"

	"github.com/sngm3741/jobboard/api/internal/jobs/domain"
)

// ListingPayload is the JSON shape of a listing.
type ListingPayload struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	CompanyID         string    `json:"companyId"`
	CompanyName       string    `json:"companyName"`
	CompanyLogo       string    `json:"companyLogo,omitempty"`
	Location          string    `json:"location,omitempty"`
	JobType           string    `json:"jobType,omitempty"`
	ExperienceLevel   string    `json:"experienceLevel,omitempty"`
	Industry          string    `json:"industry,omitempty"`
	SalaryRange       string    `json:"salaryRange,omitempty"`
	Skills            []string  `json:"skills"`
	Description       string    `json:"description,omitempty"`
	PostedAt          time.Time `json:"postedAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
	IsActive          bool      `json:"isActive"`
	ApplicationsCount int       `json:"applicationsCount"`
}

// ApplicationPayload is the JSON shape of an application.
type ApplicationPayload struct {
	ID             string            `json:"id"`
	JobID          string            `json:"jobId"`
	ApplicantID    string            `json:"applicantId"`
	ApplicantName  string            `json:"applicantName,omitempty"`
	ApplicantEmail string            `json:"applicantEmail,omitempty"`
	AppliedAt      time.Time         `json:"appliedAt"`
	Status         string            `json:"status"`
	ResumeURL      string            `json:"resumeUrl,omitempty"`
	CoverLetter    string            `json:"coverLetter,omitempty"`
	Answers        map[string]string `json:"answers,omitempty"`
}

func NewListingPayload(l domain.Listing) ListingPayload {
	skills := l.Skills
	if skills == nil {
		skills = []string{}
	}
	return ListingPayload{
		ID:                l.ID,
		Title:             l.Title,
		CompanyID:         l.CompanyID,
		CompanyName:       l.CompanyName,
		CompanyLogo:       l.CompanyLogo,
		Location:          l.Location,
		JobType:           l.JobType,
		ExperienceLevel:   l.ExperienceLevel,
		Industry:          l.Industry,
		SalaryRange:       l.SalaryRange,
		Skills:            skills,
		Description:       l.Description,
		PostedAt:          l.PostedAt,
		UpdatedAt:         l.UpdatedAt,
		IsActive:          l.IsActive,
		ApplicationsCount: l.ApplicationsCount,
	}
}

func NewListingPayloads(listings []domain.Listing) []ListingPayload {
	items := make([]ListingPayload, 0, len(listings))
	for _, l := range listings {
		items = append(items, NewListingPayload(l))
	}
	return items
}

func NewApplicationPayloads(apps []domain.Application) []ApplicationPayload {
	items := make([]ApplicationPayload, 0, len(apps))
	for _, a := range apps {
		items = append(items, ApplicationPayload{
			ID:             a.ID,
			JobID:          a.JobID,
			ApplicantID:    a.ApplicantID,
			ApplicantName:  a.ApplicantName,
			ApplicantEmail: a.ApplicantEmail,
			AppliedAt:      a.AppliedAt,
			Status:         string(a.Status),
			ResumeURL:      a.ResumeURL,
			CoverLetter:    a.CoverLetter,
			Answers:        a.Answers,
		})
	}
	return items
}
