package domain

import "strings"

// Role tags used on the wire.
const (
	RoleCompany   = "company"
	RoleJobSeeker = "jobSeeker"
)

// Actor is the authenticated caller. It is either a CompanyActor or a JobSeekerActor;
// operations switch on the concrete type instead of comparing a role string.
type Actor interface {
	ActorID() string
	actor()
}

// CompanyActor can post and manage listings and read applications for them.
type CompanyActor struct {
	ID          string
	CompanyName string
	Logo        string
}

func (a CompanyActor) ActorID() string { return a.ID }
func (CompanyActor) actor()            {}

// JobSeekerActor can apply to listings and read their own applications.
type JobSeekerActor struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
}

func (a JobSeekerActor) ActorID() string { return a.ID }
func (JobSeekerActor) actor()            {}

// DisplayName is the denormalized applicant name stored on applications.
func (a JobSeekerActor) DisplayName() string {
	return strings.TrimSpace(strings.TrimSpace(a.FirstName) + " " + strings.TrimSpace(a.LastName))
}

// ActorProfile is the loosely-typed identity shape handed over by the identity collaborator.
type ActorProfile struct {
	ID          string
	Role        string
	CompanyName string
	Logo        string
	FirstName   string
	LastName    string
	Email       string
}

// NewActor converts a profile into an Actor variant. Unknown roles and empty ids yield ok=false.
func NewActor(p ActorProfile) (Actor, bool) {
	id := strings.TrimSpace(p.ID)
	if id == "" {
		return nil, false
	}
	switch strings.TrimSpace(p.Role) {
	case RoleCompany:
		return CompanyActor{ID: id, CompanyName: strings.TrimSpace(p.CompanyName), Logo: strings.TrimSpace(p.Logo)}, true
	case RoleJobSeeker:
		return JobSeekerActor{
			ID:        id,
			FirstName: strings.TrimSpace(p.FirstName),
			LastName:  strings.TrimSpace(p.LastName),
			Email:     strings.TrimSpace(p.Email),
		}, true
	default:
		return nil, false
	}
}
