package common

import (
	"net/url"
	"strings"

	"github.com/sngm3741/jobboard/api/internal/jobs/domain"
)

// FiltersFromQuery reads the filter keys from query parameters. Missing keys mean "all".
func FiltersFromQuery(query url.Values) domain.Filters {
	return domain.Filters{
		Location:        strings.TrimSpace(query.Get(domain.FieldLocation)),
		JobType:         strings.TrimSpace(query.Get(domain.FieldJobType)),
		ExperienceLevel: strings.TrimSpace(query.Get(domain.FieldExperienceLevel)),
		Industry:        strings.TrimSpace(query.Get(domain.FieldIndustry)),
		SalaryRange:     strings.TrimSpace(query.Get(domain.FieldSalaryRange)),
	}.Normalize()
}
