package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"attendly_backend/internals/features/school/attendance/model"
)

// ErrNoRowsAffected: the upsert reported zero affected rows. Never a silent
// no-op; the caller treats it as a failed mutation.
var ErrNoRowsAffected = errors.New("attendance upsert affected no rows")

type UpsertAttendanceInput struct {
	SessionID uuid.UUID
	StudentID uuid.UUID
	Status    string
	TimeIn    *time.Time
	TimeOut   *time.Time
	MarkedBy  *uuid.UUID
}

func (in UpsertAttendanceInput) Validate() error {
	if in.SessionID == uuid.Nil {
		return fmt.Errorf("session id is required")
	}
	if in.StudentID == uuid.Nil {
		return fmt.Errorf("student id is required")
	}
	if !model.IsValidStatus(in.Status) {
		return fmt.Errorf("invalid status %q", in.Status)
	}
	return nil
}

// Columns overwritten when the (session, student) pair already exists.
// updated_at is always restamped, even when the status is unchanged.
func upsertAssignments() []string {
	return []string{
		"attendance_status",
		"attendance_time_in",
		"attendance_time_out",
		"attendance_marked_by",
		"attendance_updated_at",
	}
}

// UpsertAttendance records one attendance decision per (session, student).
// A second call for the same pair overwrites instead of duplicating.
func UpsertAttendance(ctx context.Context, db *gorm.DB, in UpsertAttendanceInput) (model.AttendanceModel, error) {
	if err := in.Validate(); err != nil {
		return model.AttendanceModel{}, err
	}

	m := model.AttendanceModel{
		AttendanceSessionID: in.SessionID,
		AttendanceStudentID: in.StudentID,
		AttendanceStatus:    in.Status,
		AttendanceTimeIn:    in.TimeIn,
		AttendanceTimeOut:   in.TimeOut,
		AttendanceMarkedBy:  in.MarkedBy,
		AttendanceUpdatedAt: time.Now(),
	}

	res := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "attendance_session_id"},
				{Name: "attendance_student_id"},
			},
			DoUpdates: clause.AssignmentColumns(upsertAssignments()),
		}).
		Create(&m)
	if res.Error != nil {
		return model.AttendanceModel{}, res.Error
	}
	if res.RowsAffected == 0 {
		return model.AttendanceModel{}, ErrNoRowsAffected
	}
	return m, nil
}
