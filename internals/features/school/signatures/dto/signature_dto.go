package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	m "attendly_backend/internals/features/school/signatures/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

// Upload (multipart: "image" file + these fields)
type UploadSignatureRequest struct {
	StudentSignatureStudentID uuid.UUID `json:"student_signature_student_id" form:"student_signature_student_id" validate:"required,uuid4"`

	StudentSignatureDeviceInfo   datatypes.JSON `json:"student_signature_device_info" form:"student_signature_device_info" validate:"omitempty"`
	StudentSignatureQualityScore *float64       `json:"student_signature_quality_score" form:"student_signature_quality_score" validate:"omitempty,gte=0,lte=1"`
	StudentSignatureIsPrimary    bool           `json:"student_signature_is_primary" form:"student_signature_is_primary"`
}

type CompareSignaturesRequest struct {
	SignatureKeyA string `json:"signature_key_a" validate:"required"`
	SignatureKeyB string `json:"signature_key_b" validate:"required"`
}

/* =========================================================
 * RESPONSE
 * ========================================================= */

type StudentSignatureResponse struct {
	StudentSignatureID        uuid.UUID `json:"student_signature_id"`
	StudentSignatureStudentID uuid.UUID `json:"student_signature_student_id"`

	StudentSignatureURL       string `json:"student_signature_url"`
	StudentSignatureObjectKey string `json:"student_signature_object_key"`

	StudentSignatureFileName string `json:"student_signature_file_name"`
	StudentSignatureFileSize int64  `json:"student_signature_file_size"`
	StudentSignatureFileType string `json:"student_signature_file_type"`

	StudentSignatureDeviceInfo   datatypes.JSON `json:"student_signature_device_info,omitempty"`
	StudentSignatureQualityScore *float64       `json:"student_signature_quality_score,omitempty"`
	StudentSignatureIsPrimary    bool           `json:"student_signature_is_primary"`

	StudentSignatureCreatedAt time.Time `json:"student_signature_created_at"`
}

func NewStudentSignatureResponse(mdl m.StudentSignatureModel) StudentSignatureResponse {
	return StudentSignatureResponse{
		StudentSignatureID:           mdl.StudentSignatureID,
		StudentSignatureStudentID:    mdl.StudentSignatureStudentID,
		StudentSignatureURL:          mdl.StudentSignatureURL,
		StudentSignatureObjectKey:    mdl.StudentSignatureObjectKey,
		StudentSignatureFileName:     mdl.StudentSignatureFileName,
		StudentSignatureFileSize:     mdl.StudentSignatureFileSize,
		StudentSignatureFileType:     mdl.StudentSignatureFileType,
		StudentSignatureDeviceInfo:   mdl.StudentSignatureDeviceInfo,
		StudentSignatureQualityScore: mdl.StudentSignatureQualityScore,
		StudentSignatureIsPrimary:    mdl.StudentSignatureIsPrimary,
		StudentSignatureCreatedAt:    mdl.StudentSignatureCreatedAt,
	}
}

func NewStudentSignatureResponses(models []m.StudentSignatureModel) []StudentSignatureResponse {
	out := make([]StudentSignatureResponse, 0, len(models))
	for _, mdl := range models {
		out = append(out, NewStudentSignatureResponse(mdl))
	}
	return out
}
