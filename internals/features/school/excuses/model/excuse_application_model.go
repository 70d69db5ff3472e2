package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	ExcuseStatusPending  = "pending"
	ExcuseStatusApproved = "approved"
	ExcuseStatusRejected = "rejected"
)

func IsValidExcuseStatus(s string) bool {
	switch s {
	case ExcuseStatusPending, ExcuseStatusApproved, ExcuseStatusRejected:
		return true
	}
	return false
}

// A student's claim for an absence on a date, optionally tied to a session.
type ExcuseApplicationModel struct {
	ExcuseApplicationID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:excuse_application_id" json:"excuse_application_id"`

	ExcuseApplicationStudentID uuid.UUID  `gorm:"type:uuid;not null;index;column:excuse_application_student_id" json:"excuse_application_student_id"`
	ExcuseApplicationSessionID *uuid.UUID `gorm:"type:uuid;index;column:excuse_application_session_id"          json:"excuse_application_session_id,omitempty"`

	ExcuseApplicationAbsenceDate time.Time `gorm:"type:date;not null;column:excuse_application_absence_date" json:"excuse_application_absence_date"`
	ExcuseApplicationReason      string    `gorm:"not null;column:excuse_application_reason"                  json:"excuse_application_reason"`

	// Public URLs of uploaded excuse letters / medical certificates.
	ExcuseApplicationLetterURLs pq.StringArray `gorm:"type:text[];column:excuse_application_letter_urls" json:"excuse_application_letter_urls,omitempty"`

	ExcuseApplicationStatus     string     `gorm:"not null;default:pending;column:excuse_application_status" json:"excuse_application_status"`
	ExcuseApplicationReviewedBy *uuid.UUID `gorm:"type:uuid;column:excuse_application_reviewed_by"           json:"excuse_application_reviewed_by,omitempty"`
	ExcuseApplicationReviewedAt *time.Time `gorm:"column:excuse_application_reviewed_at"                     json:"excuse_application_reviewed_at,omitempty"`
	ExcuseApplicationReviewNote *string    `gorm:"column:excuse_application_review_note"                     json:"excuse_application_review_note,omitempty"`

	ExcuseApplicationCreatedAt time.Time      `gorm:"column:excuse_application_created_at;autoCreateTime" json:"excuse_application_created_at"`
	ExcuseApplicationUpdatedAt *time.Time     `gorm:"column:excuse_application_updated_at;autoUpdateTime" json:"excuse_application_updated_at,omitempty"`
	ExcuseApplicationDeletedAt gorm.DeletedAt `gorm:"column:excuse_application_deleted_at;index"          json:"excuse_application_deleted_at,omitempty"`
}

func (ExcuseApplicationModel) TableName() string { return "excuse_applications" }
