package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	m "attendly_backend/internals/features/school/excuses/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

// Submit (multipart: fields + optional letter files)
type SubmitExcuseRequest struct {
	ExcuseApplicationStudentID uuid.UUID  `json:"excuse_application_student_id" form:"excuse_application_student_id" validate:"required,uuid4"`
	ExcuseApplicationSessionID *uuid.UUID `json:"excuse_application_session_id" form:"excuse_application_session_id" validate:"omitempty,uuid4"`

	ExcuseApplicationAbsenceDate time.Time `json:"excuse_application_absence_date" form:"excuse_application_absence_date" validate:"required"`
	ExcuseApplicationReason      string    `json:"excuse_application_reason"       form:"excuse_application_reason"       validate:"required,max=2000"`
}

type ReviewExcuseRequest struct {
	// approved | rejected
	ExcuseApplicationStatus     string  `json:"excuse_application_status"      validate:"required,oneof=approved rejected"`
	ExcuseApplicationReviewNote *string `json:"excuse_application_review_note" validate:"omitempty,max=2000"`
}

/* =========================================================
 * RESPONSE
 * ========================================================= */

type ExcuseApplicationResponse struct {
	ExcuseApplicationID uuid.UUID `json:"excuse_application_id"`

	ExcuseApplicationStudentID uuid.UUID  `json:"excuse_application_student_id"`
	ExcuseApplicationSessionID *uuid.UUID `json:"excuse_application_session_id,omitempty"`

	ExcuseApplicationAbsenceDate time.Time `json:"excuse_application_absence_date"`
	ExcuseApplicationReason      string    `json:"excuse_application_reason"`

	ExcuseApplicationLetterURLs []string `json:"excuse_application_letter_urls,omitempty"`

	ExcuseApplicationStatus     string     `json:"excuse_application_status"`
	ExcuseApplicationReviewedBy *uuid.UUID `json:"excuse_application_reviewed_by,omitempty"`
	ExcuseApplicationReviewedAt *time.Time `json:"excuse_application_reviewed_at,omitempty"`
	ExcuseApplicationReviewNote *string    `json:"excuse_application_review_note,omitempty"`

	ExcuseApplicationCreatedAt time.Time `json:"excuse_application_created_at"`
}

/* =========================================================
 * HELPERS
 * ========================================================= */

func (r SubmitExcuseRequest) ToModel(letterURLs []string) m.ExcuseApplicationModel {
	return m.ExcuseApplicationModel{
		ExcuseApplicationStudentID:   r.ExcuseApplicationStudentID,
		ExcuseApplicationSessionID:   r.ExcuseApplicationSessionID,
		ExcuseApplicationAbsenceDate: r.ExcuseApplicationAbsenceDate,
		ExcuseApplicationReason:      strings.TrimSpace(r.ExcuseApplicationReason),
		ExcuseApplicationLetterURLs:  pq.StringArray(letterURLs),
		ExcuseApplicationStatus:      m.ExcuseStatusPending,
	}
}

func NewExcuseApplicationResponse(mdl m.ExcuseApplicationModel) ExcuseApplicationResponse {
	return ExcuseApplicationResponse{
		ExcuseApplicationID:          mdl.ExcuseApplicationID,
		ExcuseApplicationStudentID:   mdl.ExcuseApplicationStudentID,
		ExcuseApplicationSessionID:   mdl.ExcuseApplicationSessionID,
		ExcuseApplicationAbsenceDate: mdl.ExcuseApplicationAbsenceDate,
		ExcuseApplicationReason:      mdl.ExcuseApplicationReason,
		ExcuseApplicationLetterURLs:  mdl.ExcuseApplicationLetterURLs,
		ExcuseApplicationStatus:      mdl.ExcuseApplicationStatus,
		ExcuseApplicationReviewedBy:  mdl.ExcuseApplicationReviewedBy,
		ExcuseApplicationReviewedAt:  mdl.ExcuseApplicationReviewedAt,
		ExcuseApplicationReviewNote:  mdl.ExcuseApplicationReviewNote,
		ExcuseApplicationCreatedAt:   mdl.ExcuseApplicationCreatedAt,
	}
}

func NewExcuseApplicationResponses(models []m.ExcuseApplicationModel) []ExcuseApplicationResponse {
	out := make([]ExcuseApplicationResponse, 0, len(models))
	for _, mdl := range models {
		out = append(out, NewExcuseApplicationResponse(mdl))
	}
	return out
}
