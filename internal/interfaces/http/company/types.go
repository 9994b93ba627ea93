package company

import "github.com/sngm3741/jobboard/api/internal/jobs/domain"

type jobCreateRequest struct {
	Title           string   `json:"title"`
	Location        string   `json:"location"`
	JobType         string   `json:"jobType"`
	ExperienceLevel string   `json:"experienceLevel"`
	Industry        string   `json:"industry"`
	SalaryRange     string   `json:"salaryRange"`
	Skills          []string `json:"skills"`
	Description     string   `json:"description"`
}

// jobUpdateRequest uses pointers so that omitted fields stay untouched.
type jobUpdateRequest struct {
	Title           *string   `json:"title"`
	Location        *string   `json:"location"`
	JobType         *string   `json:"jobType"`
	ExperienceLevel *string   `json:"experienceLevel"`
	Industry        *string   `json:"industry"`
	SalaryRange     *string   `json:"salaryRange"`
	Skills          *[]string `json:"skills"`
	Description     *string   `json:"description"`
	IsActive        *bool     `json:"isActive"`
}

func (req jobUpdateRequest) patch() domain.ListingPatch {
	return domain.ListingPatch{
		Title:           req.Title,
		Location:        req.Location,
		JobType:         req.JobType,
		ExperienceLevel: req.ExperienceLevel,
		Industry:        req.Industry,
		SalaryRange:     req.SalaryRange,
		Skills:          req.Skills,
		Description:     req.Description,
		IsActive:        req.IsActive,
	}
}

type idResponse struct {
	ID string `json:"id"`
}

type listResponse[T any] struct {
	Items []T `json:"items"`
}
