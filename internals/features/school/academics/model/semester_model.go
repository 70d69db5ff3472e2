package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// At most one active semester within its academic year.
type SemesterModel struct {
	SemesterID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:semester_id" json:"semester_id"`

	SemesterAcademicYearID uuid.UUID `gorm:"type:uuid;not null;index;column:semester_academic_year_id" json:"semester_academic_year_id"`

	SemesterName      string    `gorm:"not null;column:semester_name" json:"semester_name"` // e.g. "1st Semester"
	SemesterStartDate time.Time `gorm:"type:date;not null;column:semester_start_date" json:"semester_start_date"`
	SemesterEndDate   time.Time `gorm:"type:date;not null;column:semester_end_date"   json:"semester_end_date"`

	SemesterIsActive bool `gorm:"not null;default:false;column:semester_is_active" json:"semester_is_active"`

	SemesterCreatedAt time.Time      `gorm:"column:semester_created_at;autoCreateTime" json:"semester_created_at"`
	SemesterUpdatedAt *time.Time     `gorm:"column:semester_updated_at;autoUpdateTime" json:"semester_updated_at,omitempty"`
	SemesterDeletedAt gorm.DeletedAt `gorm:"column:semester_deleted_at;index"          json:"semester_deleted_at,omitempty"`
}

func (SemesterModel) TableName() string { return "semesters" }
