package domain

import (
	"fmt"
	"strings"
)

// FilterAll is the sentinel meaning "no constraint".
const FilterAll = "all"

// Listing field names shared by filters, queries and store adapters.
const (
	FieldLocation        = "location"
	FieldJobType         = "jobType"
	FieldExperienceLevel = "experienceLevel"
	FieldIndustry        = "industry"
	FieldSalaryRange     = "salaryRange"
	FieldCompanyID       = "companyId"
	FieldIsActive        = "isActive"
	FieldPostedAt        = "postedAt"
	FieldJobID           = "jobId"
	FieldApplicantID     = "applicantId"
	FieldAppliedAt       = "appliedAt"
)

var (
	Locations        = []string{"remote", "new-york", "san-francisco", "london", "berlin", "bangalore", "toronto", "singapore", "sydney", "tokyo"}
	JobTypes         = []string{"full-time", "part-time", "contract", "internship", "freelance"}
	ExperienceLevels = []string{"entry", "mid", "senior", "lead", "executive"}
	Industries       = []string{"technology", "finance", "healthcare", "education", "retail", "manufacturing", "media", "consulting"}
	SalaryRanges     = []string{"0-30K", "30K-50K", "50K-75K", "75K-100K", "100K-150K"}

	filterDomains = map[string][]string{
		FieldLocation:        Locations,
		FieldJobType:         JobTypes,
		FieldExperienceLevel: ExperienceLevels,
		FieldIndustry:        Industries,
		FieldSalaryRange:     SalaryRanges,
	}
)

// Filters is the caller's filter configuration. Every field is either "all"/"" or a domain value.
type Filters struct {
	Location        string
	JobType         string
	ExperienceLevel string
	Industry        string
	SalaryRange     string
}

// Normalize trims values and maps empty strings to the sentinel.
func (f Filters) Normalize() Filters {
	return Filters{
		Location:        normalizeFilterValue(f.Location),
		JobType:         normalizeFilterValue(f.JobType),
		ExperienceLevel: normalizeFilterValue(f.ExperienceLevel),
		Industry:        normalizeFilterValue(f.Industry),
		SalaryRange:     normalizeFilterValue(f.SalaryRange),
	}
}

// Validate rejects any value outside its enumerated domain.
func (f Filters) Validate() error {
	n := f.Normalize()
	for _, entry := range []struct {
		field string
		value string
	}{
		{FieldLocation, n.Location},
		{FieldJobType, n.JobType},
		{FieldExperienceLevel, n.ExperienceLevel},
		{FieldIndustry, n.Industry},
		{FieldSalaryRange, n.SalaryRange},
	} {
		if entry.value == FilterAll {
			continue
		}
		if err := ValidateEnumValue(entry.field, entry.value); err != nil {
			return err
		}
	}
	return nil
}

// ValidateEnumValue checks value against the enumerated domain of field.
func ValidateEnumValue(field, value string) error {
	allowed, ok := filterDomains[field]
	if !ok {
		return InvalidFilter(fmt.Sprintf("unknown filter key: %s", field))
	}
	for _, candidate := range allowed {
		if candidate == value {
			return nil
		}
	}
	return InvalidFilter(fmt.Sprintf("invalid %s: %q", field, value))
}

func normalizeFilterValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return FilterAll
	}
	return trimmed
}
