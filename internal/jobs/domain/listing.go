package domain

import "time"

// Listing represents one job posting.
type Listing struct {
	ID                string
	Title             string
	CompanyID         string
	CompanyName       string
	CompanyLogo       string
	Location          string
	JobType           string
	ExperienceLevel   string
	Industry          string
	SalaryRange       string
	Skills            []string
	Description       string
	PostedAt          time.Time
	UpdatedAt         time.Time
	IsActive          bool
	ApplicationsCount int
}

// Cursor returns the pagination position of the listing in the postedAt-descending order.
func (l Listing) Cursor() Cursor {
	return Cursor{PostedAt: l.PostedAt, ID: l.ID}
}

// Cursor is a resume-after position. ID breaks ties between equal timestamps.
type Cursor struct {
	PostedAt time.Time
	ID       string
}

// IsZero reports whether the cursor points nowhere.
func (c Cursor) IsZero() bool {
	return c.ID == "" && c.PostedAt.IsZero()
}

// Precedes reports whether c sorts strictly before a listing at (postedAt, id)
// in postedAt-descending, id-descending order.
func (c Cursor) Precedes(postedAt time.Time, id string) bool {
	if postedAt.Before(c.PostedAt) {
		return true
	}
	return postedAt.Equal(c.PostedAt) && id < c.ID
}

// ListingPatch carries optional field updates for a listing. Nil means unchanged.
type ListingPatch struct {
	Title           *string
	Location        *string
	JobType         *string
	ExperienceLevel *string
	Industry        *string
	SalaryRange     *string
	Skills          *[]string
	Description     *string
	IsActive        *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p ListingPatch) IsEmpty() bool {
	return p.Title == nil && p.Location == nil && p.JobType == nil && p.ExperienceLevel == nil &&
		p.Industry == nil && p.SalaryRange == nil && p.Skills == nil && p.Description == nil && p.IsActive == nil
}
