package dto

import (
	"time"

	"github.com/google/uuid"

	m "attendly_backend/internals/features/school/attendance/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

type MarkAttendanceRequest struct {
	AttendanceSessionID uuid.UUID `json:"attendance_session_id" validate:"required,uuid4"`
	AttendanceStudentID uuid.UUID `json:"attendance_student_id" validate:"required,uuid4"`

	AttendanceStatus string `json:"attendance_status" validate:"required,oneof=present absent late excused"`

	AttendanceTimeIn  *time.Time `json:"attendance_time_in"  validate:"omitempty"`
	AttendanceTimeOut *time.Time `json:"attendance_time_out" validate:"omitempty"`
}

/* =========================================================
 * RESPONSE
 * ========================================================= */

type AttendanceResponse struct {
	AttendanceID uuid.UUID `json:"attendance_id"`

	AttendanceSessionID uuid.UUID `json:"attendance_session_id"`
	AttendanceStudentID uuid.UUID `json:"attendance_student_id"`

	AttendanceStatus string `json:"attendance_status"`

	AttendanceTimeIn  *time.Time `json:"attendance_time_in,omitempty"`
	AttendanceTimeOut *time.Time `json:"attendance_time_out,omitempty"`

	AttendanceMarkedBy  *uuid.UUID `json:"attendance_marked_by,omitempty"`
	AttendanceUpdatedAt time.Time  `json:"attendance_updated_at"`
}

func NewAttendanceResponse(mdl m.AttendanceModel) AttendanceResponse {
	return AttendanceResponse{
		AttendanceID:        mdl.AttendanceID,
		AttendanceSessionID: mdl.AttendanceSessionID,
		AttendanceStudentID: mdl.AttendanceStudentID,
		AttendanceStatus:    mdl.AttendanceStatus,
		AttendanceTimeIn:    mdl.AttendanceTimeIn,
		AttendanceTimeOut:   mdl.AttendanceTimeOut,
		AttendanceMarkedBy:  mdl.AttendanceMarkedBy,
		AttendanceUpdatedAt: mdl.AttendanceUpdatedAt,
	}
}

func NewAttendanceResponses(models []m.AttendanceModel) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(models))
	for _, mdl := range models {
		out = append(out, NewAttendanceResponse(mdl))
	}
	return out
}
