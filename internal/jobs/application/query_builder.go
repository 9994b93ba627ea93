package application

import "github.com/sngm3741/jobboard/api/internal/jobs/domain"

// PageSize is the fixed number of listings per fetched page.
const PageSize = 10

// BuildQuery translates filters into the paginated listing query.
// salaryRange is validated but not turned into a constraint.
func BuildQuery(filters domain.Filters, cursor *domain.Cursor) (StoreQuery, error) {
	if err := filters.Validate(); err != nil {
		return StoreQuery{}, err
	}
	n := filters.Normalize()

	query := activeListingsQuery()
	query.Equals = appendEquality(query.Equals, domain.FieldLocation, n.Location)
	query.Equals = appendEquality(query.Equals, domain.FieldJobType, n.JobType)
	query.Equals = appendEquality(query.Equals, domain.FieldExperienceLevel, n.ExperienceLevel)
	query.Equals = appendEquality(query.Equals, domain.FieldIndustry, n.Industry)
	query.Limit = PageSize

	if cursor != nil && !cursor.IsZero() {
		c := *cursor
		query.StartAfter = &c
	}
	return query, nil
}

// BuildSearchQuery builds the reduced, unlimited query used by search.
// Only location and jobType are forwarded to the store.
func BuildSearchQuery(filters domain.Filters) (StoreQuery, error) {
	if err := filters.Validate(); err != nil {
		return StoreQuery{}, err
	}
	n := filters.Normalize()

	query := activeListingsQuery()
	query.Equals = appendEquality(query.Equals, domain.FieldLocation, n.Location)
	query.Equals = appendEquality(query.Equals, domain.FieldJobType, n.JobType)
	return query, nil
}

func activeListingsQuery() StoreQuery {
	return StoreQuery{
		Equals:  []EqualityFilter{{Field: domain.FieldIsActive, Value: true}},
		OrderBy: OrderBy{Field: domain.FieldPostedAt, Descending: true},
	}
}

func appendEquality(filters []EqualityFilter, field, value string) []EqualityFilter {
	if value == domain.FilterAll {
		return filters
	}
	return append(filters, EqualityFilter{Field: field, Value: value})
}
