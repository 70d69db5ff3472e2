package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
	StatusExcused = "excused"
)

func IsValidStatus(s string) bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate, StatusExcused:
		return true
	}
	return false
}

// One row per (session, student), enforced by uq_attendance_session_student.
// Writes go through the upsert in the service, never a bare insert.
type AttendanceModel struct {
	AttendanceID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_id" json:"attendance_id"`

	AttendanceSessionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_session_student;column:attendance_session_id" json:"attendance_session_id"`
	AttendanceStudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_session_student;column:attendance_student_id" json:"attendance_student_id"`

	AttendanceStatus string `gorm:"not null;column:attendance_status" json:"attendance_status"`

	AttendanceTimeIn  *time.Time `gorm:"column:attendance_time_in"  json:"attendance_time_in,omitempty"`
	AttendanceTimeOut *time.Time `gorm:"column:attendance_time_out" json:"attendance_time_out,omitempty"`

	AttendanceMarkedBy *uuid.UUID `gorm:"type:uuid;column:attendance_marked_by" json:"attendance_marked_by,omitempty"`

	AttendanceCreatedAt time.Time `gorm:"column:attendance_created_at;autoCreateTime" json:"attendance_created_at"`
	AttendanceUpdatedAt time.Time `gorm:"column:attendance_updated_at"                json:"attendance_updated_at"`
}

func (AttendanceModel) TableName() string { return "attendance" }
