package domain

import "time"

// ApplicationStatus enumerates application states. Only pending exists today.
type ApplicationStatus string

const ApplicationStatusPending ApplicationStatus = "pending"

// Application is one job seeker's submission against a listing.
type Application struct {
	ID             string
	JobID          string
	ApplicantID    string
	ApplicantName  string
	ApplicantEmail string
	AppliedAt      time.Time
	Status         ApplicationStatus
	ApplicationData
}

// ApplicationData holds caller-supplied fields that the core treats as opaque.
type ApplicationData struct {
	ResumeURL   string
	CoverLetter string
	Answers     map[string]string
}
