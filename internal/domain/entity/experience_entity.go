package entity

import "time"

// ExperienceType classifies a timeline entry
type ExperienceType string

const (
	ExperienceWork          ExperienceType = "work"
	ExperienceEducation     ExperienceType = "education"
	ExperienceCertification ExperienceType = "certification"
	ExperienceHackathon     ExperienceType = "hackathon"
)

// Valid reports whether t is one of the known timeline types
func (t ExperienceType) Valid() bool {
	switch t {
	case ExperienceWork, ExperienceEducation, ExperienceCertification, ExperienceHackathon:
		return true
	}
	return false
}

// Experience is a work/education/certification/hackathon timeline entry
type Experience struct {
	ID             string         `json:"_id"`
	Type           ExperienceType `json:"type"`
	Title          string         `json:"title"`
	Organization   string         `json:"organization"`
	Location       string         `json:"location"`
	StartDate      time.Time      `json:"startDate"`
	EndDate        *time.Time     `json:"endDate"`
	Current        bool           `json:"current"`
	Description    string         `json:"description"`
	Skills         []string       `json:"skills"`
	CertificateURL string         `json:"certificateUrl"`
	Order          int            `json:"order"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// ExperienceFilter narrows a listing; zero value lists everything
type ExperienceFilter struct {
	Type ExperienceType
}

// ExperiencePatch carries the fields of a partial update; nil means unchanged.
// ClearEndDate removes the end date (ongoing entries).
type ExperiencePatch struct {
	Type           *ExperienceType
	Title          *string
	Organization   *string
	Location       *string
	StartDate      *time.Time
	EndDate        *time.Time
	ClearEndDate   bool
	Current        *bool
	Description    *string
	Skills         *[]string
	CertificateURL *string
	Order          *int
}

// Apply copies the set fields onto e
func (ep ExperiencePatch) Apply(e *Experience) {
	if ep.Type != nil {
		e.Type = *ep.Type
	}
	if ep.Title != nil {
		e.Title = *ep.Title
	}
	if ep.Organization != nil {
		e.Organization = *ep.Organization
	}
	if ep.Location != nil {
		e.Location = *ep.Location
	}
	if ep.StartDate != nil {
		e.StartDate = *ep.StartDate
	}
	if ep.ClearEndDate {
		e.EndDate = nil
	} else if ep.EndDate != nil {
		end := *ep.EndDate
		e.EndDate = &end
	}
	if ep.Current != nil {
		e.Current = *ep.Current
	}
	if ep.Description != nil {
		e.Description = *ep.Description
	}
	if ep.Skills != nil {
		e.Skills = *ep.Skills
	}
	if ep.CertificateURL != nil {
		e.CertificateURL = *ep.CertificateURL
	}
	if ep.Order != nil {
		e.Order = *ep.Order
	}
}
