package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type StudentModel struct {
	StudentID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:student_id" json:"student_id"`

	// Business key as printed on the school ID (e.g. "2023-01234").
	StudentCode string `gorm:"uniqueIndex;not null;column:student_code" json:"student_code"`

	StudentSurname       string `gorm:"not null;column:student_surname"        json:"student_surname"`
	StudentFirstname     string `gorm:"not null;column:student_firstname"      json:"student_firstname"`
	StudentMiddleInitial string `gorm:"column:student_middle_initial"          json:"student_middle_initial"`

	StudentProgram string `gorm:"not null;index;column:student_program" json:"student_program"`
	StudentYear    string `gorm:"not null;index;column:student_year"    json:"student_year"`
	StudentSection string `gorm:"not null;index;column:student_section" json:"student_section"`

	StudentEmail          *string        `gorm:"column:student_email"           json:"student_email,omitempty"`
	StudentContactNumbers pq.StringArray `gorm:"type:text[];column:student_contact_numbers" json:"student_contact_numbers,omitempty"`

	// Primary signature reference, denormalized for fast roster rendering.
	StudentSignatureURL *string `gorm:"column:student_signature_url" json:"student_signature_url,omitempty"`
	StudentSignatureKey *string `gorm:"column:student_signature_key" json:"student_signature_key,omitempty"`

	StudentCreatedAt time.Time      `gorm:"column:student_created_at;autoCreateTime" json:"student_created_at"`
	StudentUpdatedAt *time.Time     `gorm:"column:student_updated_at;autoUpdateTime" json:"student_updated_at,omitempty"`
	StudentDeletedAt gorm.DeletedAt `gorm:"column:student_deleted_at;index"          json:"student_deleted_at,omitempty"`
}

func (StudentModel) TableName() string { return "students" }

func (m *StudentModel) FullName() string {
	name := m.StudentSurname + ", " + m.StudentFirstname
	if m.StudentMiddleInitial != "" {
		name += " " + m.StudentMiddleInitial + "."
	}
	return name
}
