package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	m "attendly_backend/internals/features/school/academics/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

type CreateAcademicYearRequest struct {
	AcademicYearName      string    `json:"academic_year_name"       validate:"required,max=32"`
	AcademicYearStartDate time.Time `json:"academic_year_start_date" validate:"required"`
	AcademicYearEndDate   time.Time `json:"academic_year_end_date"   validate:"required"`
}

type UpdateAcademicYearRequest struct {
	AcademicYearName      *string    `json:"academic_year_name"       validate:"omitempty,max=32"`
	AcademicYearStartDate *time.Time `json:"academic_year_start_date" validate:"omitempty"`
	AcademicYearEndDate   *time.Time `json:"academic_year_end_date"   validate:"omitempty"`
}

type CreateSemesterRequest struct {
	SemesterAcademicYearID uuid.UUID `json:"semester_academic_year_id" validate:"required,uuid4"`
	SemesterName           string    `json:"semester_name"             validate:"required,max=64"`
	SemesterStartDate      time.Time `json:"semester_start_date"       validate:"required"`
	SemesterEndDate        time.Time `json:"semester_end_date"         validate:"required"`
}

type UpdateSemesterRequest struct {
	SemesterName      *string    `json:"semester_name"       validate:"omitempty,max=64"`
	SemesterStartDate *time.Time `json:"semester_start_date" validate:"omitempty"`
	SemesterEndDate   *time.Time `json:"semester_end_date"   validate:"omitempty"`
}

/* =========================================================
 * RESPONSES
 * ========================================================= */

type AcademicYearResponse struct {
	AcademicYearID        uuid.UUID `json:"academic_year_id"`
	AcademicYearName      string    `json:"academic_year_name"`
	AcademicYearStartDate time.Time `json:"academic_year_start_date"`
	AcademicYearEndDate   time.Time `json:"academic_year_end_date"`
	AcademicYearIsActive  bool      `json:"academic_year_is_active"`
	AcademicYearCreatedAt time.Time `json:"academic_year_created_at"`
}

type SemesterResponse struct {
	SemesterID             uuid.UUID `json:"semester_id"`
	SemesterAcademicYearID uuid.UUID `json:"semester_academic_year_id"`
	SemesterName           string    `json:"semester_name"`
	SemesterStartDate      time.Time `json:"semester_start_date"`
	SemesterEndDate        time.Time `json:"semester_end_date"`
	SemesterIsActive       bool      `json:"semester_is_active"`
	SemesterCreatedAt      time.Time `json:"semester_created_at"`
}

/* =========================================================
 * HELPERS
 * ========================================================= */

func (r CreateAcademicYearRequest) ToModel() m.AcademicYearModel {
	return m.AcademicYearModel{
		AcademicYearName:      strings.TrimSpace(r.AcademicYearName),
		AcademicYearStartDate: r.AcademicYearStartDate,
		AcademicYearEndDate:   r.AcademicYearEndDate,
	}
}

func (r UpdateAcademicYearRequest) Apply(mdl *m.AcademicYearModel) {
	if r.AcademicYearName != nil {
		mdl.AcademicYearName = strings.TrimSpace(*r.AcademicYearName)
	}
	if r.AcademicYearStartDate != nil {
		mdl.AcademicYearStartDate = *r.AcademicYearStartDate
	}
	if r.AcademicYearEndDate != nil {
		mdl.AcademicYearEndDate = *r.AcademicYearEndDate
	}
}

func (r CreateSemesterRequest) ToModel() m.SemesterModel {
	return m.SemesterModel{
		SemesterAcademicYearID: r.SemesterAcademicYearID,
		SemesterName:           strings.TrimSpace(r.SemesterName),
		SemesterStartDate:      r.SemesterStartDate,
		SemesterEndDate:        r.SemesterEndDate,
	}
}

func (r UpdateSemesterRequest) Apply(mdl *m.SemesterModel) {
	if r.SemesterName != nil {
		mdl.SemesterName = strings.TrimSpace(*r.SemesterName)
	}
	if r.SemesterStartDate != nil {
		mdl.SemesterStartDate = *r.SemesterStartDate
	}
	if r.SemesterEndDate != nil {
		mdl.SemesterEndDate = *r.SemesterEndDate
	}
}

func NewAcademicYearResponse(mdl m.AcademicYearModel) AcademicYearResponse {
	return AcademicYearResponse{
		AcademicYearID:        mdl.AcademicYearID,
		AcademicYearName:      mdl.AcademicYearName,
		AcademicYearStartDate: mdl.AcademicYearStartDate,
		AcademicYearEndDate:   mdl.AcademicYearEndDate,
		AcademicYearIsActive:  mdl.AcademicYearIsActive,
		AcademicYearCreatedAt: mdl.AcademicYearCreatedAt,
	}
}

func NewAcademicYearResponses(models []m.AcademicYearModel) []AcademicYearResponse {
	out := make([]AcademicYearResponse, 0, len(models))
	for _, mdl := range models {
		out = append(out, NewAcademicYearResponse(mdl))
	}
	return out
}

func NewSemesterResponse(mdl m.SemesterModel) SemesterResponse {
	return SemesterResponse{
		SemesterID:             mdl.SemesterID,
		SemesterAcademicYearID: mdl.SemesterAcademicYearID,
		SemesterName:           mdl.SemesterName,
		SemesterStartDate:      mdl.SemesterStartDate,
		SemesterEndDate:        mdl.SemesterEndDate,
		SemesterIsActive:       mdl.SemesterIsActive,
		SemesterCreatedAt:      mdl.SemesterCreatedAt,
	}
}

func NewSemesterResponses(models []m.SemesterModel) []SemesterResponse {
	out := make([]SemesterResponse, 0, len(models))
	for _, mdl := range models {
		out = append(out, NewSemesterResponse(mdl))
	}
	return out
}
