package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/marcus-hale/resume-extract/constants"
)

// ExtractionResult is the full per-document output for data transfer between
// layers: one ExtractedValue per field, the aggregate confidence score, and
// the processing envelope filled in by the orchestrator and the batch engine.
type ExtractionResult struct {
	JobID uuid.UUID `json:"job_id"`
	File  string    `json:"file"`

	FirstName      ExtractedValue `json:"first_name"`
	LastName       ExtractedValue `json:"last_name"`
	PrimaryEmail   ExtractedValue `json:"primary_email"`
	SecondaryEmail ExtractedValue `json:"secondary_email"`
	Phone          ExtractedValue `json:"phone"`
	City           ExtractedValue `json:"city"`
	State          ExtractedValue `json:"state"`
	Zip            ExtractedValue `json:"zip"`
	WorkAuth       ExtractedValue `json:"work_authorization"`
	TaxTerm        ExtractedValue `json:"tax_term"`
	Designation    ExtractedValue `json:"designation"`
	Experience     ExtractedValue `json:"experience"`
	Skills         ExtractedValue `json:"skills"`
	Education      ExtractedValue `json:"education"`
	Certifications ExtractedValue `json:"certifications"`
	ResumeLink     ExtractedValue `json:"resume_link"`

	ConfidenceScore float64            `json:"confidence_score"`
	JobState        constants.JobState `json:"job_state"`
	UsedOCR         bool               `json:"used_ocr"`
	PassCount       int                `json:"pass_count"`
	Error           string             `json:"error,omitempty"`
	StartedAt       time.Time          `json:"started_at"`
	FinishedAt      time.Time          `json:"finished_at"`
}

// Fields returns the per-field values keyed by their canonical field names.
// Iteration over the returned map is unordered; callers that need a stable
// order should range over FieldOrder.
func (r *ExtractionResult) Fields() map[string]ExtractedValue {
	return map[string]ExtractedValue{
		constants.FieldFirstName:      r.FirstName,
		constants.FieldLastName:       r.LastName,
		constants.FieldPrimaryEmail:   r.PrimaryEmail,
		constants.FieldSecondaryEmail: r.SecondaryEmail,
		constants.FieldPhone:          r.Phone,
		constants.FieldCity:           r.City,
		constants.FieldState:          r.State,
		constants.FieldZip:            r.Zip,
		constants.FieldWorkAuth:       r.WorkAuth,
		constants.FieldTaxTerm:        r.TaxTerm,
		constants.FieldDesignation:    r.Designation,
		constants.FieldExperience:     r.Experience,
		constants.FieldSkills:         r.Skills,
		constants.FieldEducation:      r.Education,
		constants.FieldCertifications: r.Certifications,
		constants.FieldResumeLink:     r.ResumeLink,
	}
}

// SetField stores v under the canonical field name. Unknown names are
// ignored; the merge step only produces names from FieldOrder.
func (r *ExtractionResult) SetField(name string, v ExtractedValue) {
	switch name {
	case constants.FieldFirstName:
		r.FirstName = v
	case constants.FieldLastName:
		r.LastName = v
	case constants.FieldPrimaryEmail:
		r.PrimaryEmail = v
	case constants.FieldSecondaryEmail:
		r.SecondaryEmail = v
	case constants.FieldPhone:
		r.Phone = v
	case constants.FieldCity:
		r.City = v
	case constants.FieldState:
		r.State = v
	case constants.FieldZip:
		r.Zip = v
	case constants.FieldWorkAuth:
		r.WorkAuth = v
	case constants.FieldTaxTerm:
		r.TaxTerm = v
	case constants.FieldDesignation:
		r.Designation = v
	case constants.FieldExperience:
		r.Experience = v
	case constants.FieldSkills:
		r.Skills = v
	case constants.FieldEducation:
		r.Education = v
	case constants.FieldCertifications:
		r.Certifications = v
	case constants.FieldResumeLink:
		r.ResumeLink = v
	}
}

// FieldOrder is the canonical field order used by the exporter and the
// quality report.
var FieldOrder = []string{
	constants.FieldFirstName,
	constants.FieldLastName,
	constants.FieldPrimaryEmail,
	constants.FieldSecondaryEmail,
	constants.FieldPhone,
	constants.FieldCity,
	constants.FieldState,
	constants.FieldZip,
	constants.FieldWorkAuth,
	constants.FieldTaxTerm,
	constants.FieldDesignation,
	constants.FieldExperience,
	constants.FieldSkills,
	constants.FieldEducation,
	constants.FieldCertifications,
	constants.FieldResumeLink,
}
