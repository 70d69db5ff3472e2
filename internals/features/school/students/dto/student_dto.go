package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	m "attendly_backend/internals/features/school/students/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

type CreateStudentRequest struct {
	StudentCode          string `json:"student_code"           validate:"required,max=32"`
	StudentSurname       string `json:"student_surname"        validate:"required,max=100"`
	StudentFirstname     string `json:"student_firstname"      validate:"required,max=100"`
	StudentMiddleInitial string `json:"student_middle_initial" validate:"omitempty,max=4"`

	StudentProgram string `json:"student_program" validate:"required,max=120"`
	StudentYear    string `json:"student_year"    validate:"required,max=32"`
	StudentSection string `json:"student_section" validate:"required,max=64"`

	StudentEmail          *string  `json:"student_email"           validate:"omitempty,email"`
	StudentContactNumbers []string `json:"student_contact_numbers" validate:"omitempty,dive,max=32"`
}

type UpdateStudentRequest struct {
	StudentSurname       *string `json:"student_surname"        validate:"omitempty,max=100"`
	StudentFirstname     *string `json:"student_firstname"      validate:"omitempty,max=100"`
	StudentMiddleInitial *string `json:"student_middle_initial" validate:"omitempty,max=4"`

	StudentProgram *string `json:"student_program" validate:"omitempty,max=120"`
	StudentYear    *string `json:"student_year"    validate:"omitempty,max=32"`
	StudentSection *string `json:"student_section" validate:"omitempty,max=64"`

	StudentEmail          *string  `json:"student_email"           validate:"omitempty,email"`
	StudentContactNumbers []string `json:"student_contact_numbers" validate:"omitempty,dive,max=32"`
}

type ImportStudentsRequest struct {
	Students []CreateStudentRequest `json:"students" validate:"required,min=1,max=2000,dive"`
}

/* =========================================================
 * RESPONSE
 * ========================================================= */

type StudentResponse struct {
	StudentID            uuid.UUID `json:"student_id"`
	StudentCode          string    `json:"student_code"`
	StudentSurname       string    `json:"student_surname"`
	StudentFirstname     string    `json:"student_firstname"`
	StudentMiddleInitial string    `json:"student_middle_initial,omitempty"`
	StudentFullName      string    `json:"student_full_name"`

	StudentProgram string `json:"student_program"`
	StudentYear    string `json:"student_year"`
	StudentSection string `json:"student_section"`

	StudentEmail          *string  `json:"student_email,omitempty"`
	StudentContactNumbers []string `json:"student_contact_numbers,omitempty"`
	StudentSignatureURL   *string  `json:"student_signature_url,omitempty"`

	StudentCreatedAt time.Time `json:"student_created_at"`
}

/* =========================================================
 * HELPERS
 * ========================================================= */

func (r CreateStudentRequest) ToModel() m.StudentModel {
	return m.StudentModel{
		StudentCode:           strings.TrimSpace(r.StudentCode),
		StudentSurname:        strings.TrimSpace(r.StudentSurname),
		StudentFirstname:      strings.TrimSpace(r.StudentFirstname),
		StudentMiddleInitial:  strings.TrimSpace(r.StudentMiddleInitial),
		StudentProgram:        strings.TrimSpace(r.StudentProgram),
		StudentYear:           strings.TrimSpace(r.StudentYear),
		StudentSection:        strings.TrimSpace(r.StudentSection),
		StudentEmail:          r.StudentEmail,
		StudentContactNumbers: pq.StringArray(r.StudentContactNumbers),
	}
}

func (r UpdateStudentRequest) Apply(mdl *m.StudentModel) {
	if r.StudentSurname != nil {
		mdl.StudentSurname = strings.TrimSpace(*r.StudentSurname)
	}
	if r.StudentFirstname != nil {
		mdl.StudentFirstname = strings.TrimSpace(*r.StudentFirstname)
	}
	if r.StudentMiddleInitial != nil {
		mdl.StudentMiddleInitial = strings.TrimSpace(*r.StudentMiddleInitial)
	}
	if r.StudentProgram != nil {
		mdl.StudentProgram = strings.TrimSpace(*r.StudentProgram)
	}
	if r.StudentYear != nil {
		mdl.StudentYear = strings.TrimSpace(*r.StudentYear)
	}
	if r.StudentSection != nil {
		mdl.StudentSection = strings.TrimSpace(*r.StudentSection)
	}
	if r.StudentEmail != nil {
		mdl.StudentEmail = r.StudentEmail
	}
	if r.StudentContactNumbers != nil {
		mdl.StudentContactNumbers = pq.StringArray(r.StudentContactNumbers)
	}
}

func NewStudentResponse(mdl m.StudentModel) StudentResponse {
	return StudentResponse{
		StudentID:             mdl.StudentID,
		StudentCode:           mdl.StudentCode,
		StudentSurname:        mdl.StudentSurname,
		StudentFirstname:      mdl.StudentFirstname,
		StudentMiddleInitial:  mdl.StudentMiddleInitial,
		StudentFullName:       mdl.FullName(),
		StudentProgram:        mdl.StudentProgram,
		StudentYear:           mdl.StudentYear,
		StudentSection:        mdl.StudentSection,
		StudentEmail:          mdl.StudentEmail,
		StudentContactNumbers: mdl.StudentContactNumbers,
		StudentSignatureURL:   mdl.StudentSignatureURL,
		StudentCreatedAt:      mdl.StudentCreatedAt,
	}
}

func NewStudentResponses(models []m.StudentModel) []StudentResponse {
	out := make([]StudentResponse, 0, len(models))
	for _, mdl := range models {
		out = append(out, NewStudentResponse(mdl))
	}
	return out
}
