package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	m "attendly_backend/internals/features/school/sessions/model"
	sdto "attendly_backend/internals/features/school/students/dto"
	rsvc "attendly_backend/internals/features/school/students/service"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

type CreateSessionRequest struct {
	SessionTitle string `json:"session_title" validate:"required,max=200"`
	SessionType  string `json:"session_type"  validate:"omitempty,oneof=class event activity"`

	SessionProgram string `json:"session_program" validate:"required,max=120"`
	SessionYear    string `json:"session_year"    validate:"required,max=64"`
	SessionSection string `json:"session_section" validate:"required,max=64"`

	SessionDate     time.Time  `json:"session_date"      validate:"required"`
	SessionStartsAt *time.Time `json:"session_starts_at" validate:"omitempty"`
	SessionEndsAt   *time.Time `json:"session_ends_at"   validate:"omitempty"`

	SessionLocation *string `json:"session_location" validate:"omitempty,max=200"`
	SessionNotes    *string `json:"session_notes"    validate:"omitempty,max=2000"`

	SessionAcademicYearID *uuid.UUID `json:"session_academic_year_id" validate:"omitempty,uuid4"`
	SessionSemesterID     *uuid.UUID `json:"session_semester_id"      validate:"omitempty,uuid4"`
}

type UpdateSessionRequest struct {
	SessionTitle *string `json:"session_title" validate:"omitempty,max=200"`
	SessionType  *string `json:"session_type"  validate:"omitempty,oneof=class event activity"`

	SessionProgram *string `json:"session_program" validate:"omitempty,max=120"`
	SessionYear    *string `json:"session_year"    validate:"omitempty,max=64"`
	SessionSection *string `json:"session_section" validate:"omitempty,max=64"`

	SessionDate     *time.Time `json:"session_date"      validate:"omitempty"`
	SessionStartsAt *time.Time `json:"session_starts_at" validate:"omitempty"`
	SessionEndsAt   *time.Time `json:"session_ends_at"   validate:"omitempty"`

	SessionLocation *string `json:"session_location" validate:"omitempty,max=200"`
	SessionNotes    *string `json:"session_notes"    validate:"omitempty,max=2000"`

	SessionAcademicYearID *uuid.UUID `json:"session_academic_year_id" validate:"omitempty,uuid4"`
	SessionSemesterID     *uuid.UUID `json:"session_semester_id"      validate:"omitempty,uuid4"`
}

/* =========================================================
 * RESPONSES
 * ========================================================= */

type SessionResponse struct {
	SessionID uuid.UUID `json:"session_id"`

	SessionTitle string `json:"session_title"`
	SessionType  string `json:"session_type"`

	SessionProgram string `json:"session_program"`
	SessionYear    string `json:"session_year"`
	SessionSection string `json:"session_section"`

	SessionDate     time.Time  `json:"session_date"`
	SessionStartsAt *time.Time `json:"session_starts_at,omitempty"`
	SessionEndsAt   *time.Time `json:"session_ends_at,omitempty"`

	SessionLocation *string `json:"session_location,omitempty"`
	SessionNotes    *string `json:"session_notes,omitempty"`

	SessionAcademicYearID *uuid.UUID `json:"session_academic_year_id,omitempty"`
	SessionSemesterID     *uuid.UUID `json:"session_semester_id,omitempty"`

	SessionCreatedAt time.Time `json:"session_created_at"`
}

// RosterEntryResponse is one row of the merged roster view: a student plus
// whatever has been recorded for them in this session (null when unmarked).
type RosterEntryResponse struct {
	Student sdto.StudentResponse `json:"student"`

	AttendanceStatus  *string    `json:"attendance_status"`
	AttendanceTimeIn  *time.Time `json:"attendance_time_in,omitempty"`
	AttendanceTimeOut *time.Time `json:"attendance_time_out,omitempty"`
}

/* =========================================================
 * HELPERS
 * ========================================================= */

func (r CreateSessionRequest) ToModel(createdBy *uuid.UUID) m.SessionModel {
	typ := strings.TrimSpace(r.SessionType)
	if typ == "" {
		typ = m.SessionTypeClass
	}
	return m.SessionModel{
		SessionTitle:          strings.TrimSpace(r.SessionTitle),
		SessionType:           typ,
		SessionProgram:        strings.TrimSpace(r.SessionProgram),
		SessionYear:           strings.TrimSpace(r.SessionYear),
		SessionSection:        strings.TrimSpace(r.SessionSection),
		SessionDate:           r.SessionDate,
		SessionStartsAt:       r.SessionStartsAt,
		SessionEndsAt:         r.SessionEndsAt,
		SessionLocation:       r.SessionLocation,
		SessionNotes:          r.SessionNotes,
		SessionAcademicYearID: r.SessionAcademicYearID,
		SessionSemesterID:     r.SessionSemesterID,
		SessionCreatedBy:      createdBy,
	}
}

func (r UpdateSessionRequest) Apply(mdl *m.SessionModel) {
	if r.SessionTitle != nil {
		mdl.SessionTitle = strings.TrimSpace(*r.SessionTitle)
	}
	if r.SessionType != nil {
		mdl.SessionType = strings.TrimSpace(*r.SessionType)
	}
	if r.SessionProgram != nil {
		mdl.SessionProgram = strings.TrimSpace(*r.SessionProgram)
	}
	if r.SessionYear != nil {
		mdl.SessionYear = strings.TrimSpace(*r.SessionYear)
	}
	if r.SessionSection != nil {
		mdl.SessionSection = strings.TrimSpace(*r.SessionSection)
	}
	if r.SessionDate != nil {
		mdl.SessionDate = *r.SessionDate
	}
	if r.SessionStartsAt != nil {
		mdl.SessionStartsAt = r.SessionStartsAt
	}
	if r.SessionEndsAt != nil {
		mdl.SessionEndsAt = r.SessionEndsAt
	}
	if r.SessionLocation != nil {
		mdl.SessionLocation = r.SessionLocation
	}
	if r.SessionNotes != nil {
		mdl.SessionNotes = r.SessionNotes
	}
	if r.SessionAcademicYearID != nil {
		mdl.SessionAcademicYearID = r.SessionAcademicYearID
	}
	if r.SessionSemesterID != nil {
		mdl.SessionSemesterID = r.SessionSemesterID
	}
}

func NewSessionResponse(mdl m.SessionModel) SessionResponse {
	return SessionResponse{
		SessionID:             mdl.SessionID,
		SessionTitle:          mdl.SessionTitle,
		SessionType:           mdl.SessionType,
		SessionProgram:        mdl.SessionProgram,
		SessionYear:           mdl.SessionYear,
		SessionSection:        mdl.SessionSection,
		SessionDate:           mdl.SessionDate,
		SessionStartsAt:       mdl.SessionStartsAt,
		SessionEndsAt:         mdl.SessionEndsAt,
		SessionLocation:       mdl.SessionLocation,
		SessionNotes:          mdl.SessionNotes,
		SessionAcademicYearID: mdl.SessionAcademicYearID,
		SessionSemesterID:     mdl.SessionSemesterID,
		SessionCreatedAt:      mdl.SessionCreatedAt,
	}
}

func NewSessionResponses(models []m.SessionModel) []SessionResponse {
	out := make([]SessionResponse, 0, len(models))
	for _, mdl := range models {
		out = append(out, NewSessionResponse(mdl))
	}
	return out
}

func NewRosterEntryResponse(e rsvc.RosterEntry) RosterEntryResponse {
	resp := RosterEntryResponse{Student: sdto.NewStudentResponse(e.Student)}
	if e.Attendance != nil {
		resp.AttendanceStatus = &e.Attendance.AttendanceStatus
		resp.AttendanceTimeIn = e.Attendance.AttendanceTimeIn
		resp.AttendanceTimeOut = e.Attendance.AttendanceTimeOut
	}
	return resp
}

func NewRosterEntryResponses(entries []rsvc.RosterEntry) []RosterEntryResponse {
	out := make([]RosterEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, NewRosterEntryResponse(e))
	}
	return out
}
