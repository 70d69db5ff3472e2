package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SessionTypeClass    = "class"
	SessionTypeEvent    = "event"
	SessionTypeActivity = "activity"
)

type SessionModel struct {
	SessionID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:session_id" json:"session_id"`

	SessionTitle string `gorm:"not null;column:session_title" json:"session_title"`
	SessionType  string `gorm:"not null;default:class;column:session_type" json:"session_type"`

	// Target population. Each field is either a specific value or an "ALL"
	// sentinel ("All Programs", "All Year Levels", "All Sections").
	SessionProgram string `gorm:"not null;column:session_program" json:"session_program"`
	SessionYear    string `gorm:"not null;column:session_year"    json:"session_year"`
	SessionSection string `gorm:"not null;column:session_section" json:"session_section"`

	SessionDate     time.Time  `gorm:"type:date;not null;index;column:session_date" json:"session_date"`
	SessionStartsAt *time.Time `gorm:"column:session_starts_at" json:"session_starts_at,omitempty"`
	SessionEndsAt   *time.Time `gorm:"column:session_ends_at"   json:"session_ends_at,omitempty"`

	SessionLocation *string `gorm:"column:session_location" json:"session_location,omitempty"`
	SessionNotes    *string `gorm:"column:session_notes"    json:"session_notes,omitempty"`

	SessionAcademicYearID *uuid.UUID `gorm:"type:uuid;column:session_academic_year_id" json:"session_academic_year_id,omitempty"`
	SessionSemesterID     *uuid.UUID `gorm:"type:uuid;column:session_semester_id"      json:"session_semester_id,omitempty"`

	SessionCreatedBy *uuid.UUID `gorm:"type:uuid;column:session_created_by" json:"session_created_by,omitempty"`

	SessionCreatedAt time.Time      `gorm:"column:session_created_at;autoCreateTime" json:"session_created_at"`
	SessionUpdatedAt *time.Time     `gorm:"column:session_updated_at;autoUpdateTime" json:"session_updated_at,omitempty"`
	SessionDeletedAt gorm.DeletedAt `gorm:"column:session_deleted_at;index"          json:"session_deleted_at,omitempty"`
}

func (SessionModel) TableName() string { return "sessions" }
