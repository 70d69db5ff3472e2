package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// One captured signature image per row. The newest primary row per student
// backs the roster view and the verifier.
type StudentSignatureModel struct {
	StudentSignatureID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:student_signature_id" json:"student_signature_id"`

	StudentSignatureStudentID uuid.UUID `gorm:"type:uuid;not null;index;column:student_signature_student_id" json:"student_signature_student_id"`

	StudentSignatureURL       string `gorm:"not null;column:student_signature_url"        json:"student_signature_url"`
	StudentSignatureObjectKey string `gorm:"not null;column:student_signature_object_key" json:"student_signature_object_key"`

	StudentSignatureFileName string `gorm:"not null;column:student_signature_file_name" json:"student_signature_file_name"`
	StudentSignatureFileSize int64  `gorm:"not null;column:student_signature_file_size" json:"student_signature_file_size"`
	StudentSignatureFileType string `gorm:"not null;column:student_signature_file_type" json:"student_signature_file_type"`

	// Capture context (pad model, browser, screen size) and extracted
	// features from the verifier, both schemaless by design.
	StudentSignatureDeviceInfo datatypes.JSON `gorm:"column:student_signature_device_info" json:"student_signature_device_info,omitempty"`
	StudentSignatureFeatures   datatypes.JSON `gorm:"column:student_signature_features"    json:"student_signature_features,omitempty"`

	StudentSignatureQualityScore *float64 `gorm:"column:student_signature_quality_score" json:"student_signature_quality_score,omitempty"`

	StudentSignatureIsPrimary bool `gorm:"not null;default:false;column:student_signature_is_primary" json:"student_signature_is_primary"`

	StudentSignatureCreatedAt time.Time      `gorm:"column:student_signature_created_at;autoCreateTime" json:"student_signature_created_at"`
	StudentSignatureDeletedAt gorm.DeletedAt `gorm:"column:student_signature_deleted_at;index"          json:"student_signature_deleted_at,omitempty"`
}

func (StudentSignatureModel) TableName() string { return "student_signatures" }
