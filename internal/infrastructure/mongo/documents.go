package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sngm3741/jobboard/api/internal/jobs/domain"
)

// ListingDocument は MongoDB 上での求人スキーマを Go 構造体として表現したもの。
type ListingDocument struct {
	ID                primitive.ObjectID `bson:"_id"`
	Title             string             `bson:"title"`
	CompanyID         string             `bson:"companyId"`
	CompanyName       string             `bson:"companyName"`
	CompanyLogo       string             `bson:"companyLogo,omitempty"`
	Location          string             `bson:"location,omitempty"`
	JobType           string             `bson:"jobType,omitempty"`
	ExperienceLevel   string             `bson:"experienceLevel,omitempty"`
	Industry          string             `bson:"industry,omitempty"`
	SalaryRange       string             `bson:"salaryRange,omitempty"`
	Skills            []string           `bson:"skills,omitempty"`
	Description       string             `bson:"description,omitempty"`
	PostedAt          time.Time          `bson:"postedAt"`
	UpdatedAt         time.Time          `bson:"updatedAt"`
	IsActive          bool               `bson:"isActive"`
	ApplicationsCount int                `bson:"applicationsCount"`
}

// ApplicationDocument は応募 1 件分のスキーマ。jobId は求人 ObjectID の 16 進文字列で保持する。
type ApplicationDocument struct {
	ID             primitive.ObjectID `bson:"_id"`
	JobID          string             `bson:"jobId"`
	ApplicantID    string             `bson:"applicantId"`
	ApplicantName  string             `bson:"applicantName,omitempty"`
	ApplicantEmail string             `bson:"applicantEmail,omitempty"`
	AppliedAt      time.Time          `bson:"appliedAt"`
	Status         string             `bson:"status"`
	ResumeURL      string             `bson:"resumeUrl,omitempty"`
	CoverLetter    string             `bson:"coverLetter,omitempty"`
	Answers        map[string]string  `bson:"answers,omitempty"`
}

func newListingDocument(listing *domain.Listing) ListingDocument {
	return ListingDocument{
		ID:                primitive.NewObjectID(),
		Title:             listing.Title,
		CompanyID:         listing.CompanyID,
		CompanyName:       listing.CompanyName,
		CompanyLogo:       listing.CompanyLogo,
		Location:          listing.Location,
		JobType:           listing.JobType,
		ExperienceLevel:   listing.ExperienceLevel,
		Industry:          listing.Industry,
		SalaryRange:       listing.SalaryRange,
		Skills:            append([]string{}, listing.Skills...),
		Description:       listing.Description,
		PostedAt:          listing.PostedAt.UTC(),
		UpdatedAt:         listing.UpdatedAt.UTC(),
		IsActive:          listing.IsActive,
		ApplicationsCount: listing.ApplicationsCount,
	}
}

func mapListingDocument(doc ListingDocument) domain.Listing {
	return domain.Listing{
		ID:                doc.ID.Hex(),
		Title:             doc.Title,
		CompanyID:         doc.CompanyID,
		CompanyName:       doc.CompanyName,
		CompanyLogo:       doc.CompanyLogo,
		Location:          doc.Location,
		JobType:           doc.JobType,
		ExperienceLevel:   doc.ExperienceLevel,
		Industry:          doc.Industry,
		SalaryRange:       doc.SalaryRange,
		Skills:            append([]string{}, doc.Skills...),
		Description:       doc.Description,
		PostedAt:          doc.PostedAt,
		UpdatedAt:         doc.UpdatedAt,
		IsActive:          doc.IsActive,
		ApplicationsCount: doc.ApplicationsCount,
	}
}

func newApplicationDocument(app *domain.Application) ApplicationDocument {
	return ApplicationDocument{
		ID:             primitive.NewObjectID(),
		JobID:          app.JobID,
		ApplicantID:    app.ApplicantID,
		ApplicantName:  app.ApplicantName,
		ApplicantEmail: app.ApplicantEmail,
		AppliedAt:      app.AppliedAt.UTC(),
		Status:         string(app.Status),
		ResumeURL:      app.ResumeURL,
		CoverLetter:    app.CoverLetter,
		Answers:        app.Answers,
	}
}

func mapApplicationDocument(doc ApplicationDocument) domain.Application {
	return domain.Application{
		ID:             doc.ID.Hex(),
		JobID:          doc.JobID,
		ApplicantID:    doc.ApplicantID,
		ApplicantName:  doc.ApplicantName,
		ApplicantEmail: doc.ApplicantEmail,
		AppliedAt:      doc.AppliedAt,
		Status:         domain.ApplicationStatus(doc.Status),
		ApplicationData: domain.ApplicationData{
			ResumeURL:   doc.ResumeURL,
			CoverLetter: doc.CoverLetter,
			Answers:     doc.Answers,
		},
	}
}
