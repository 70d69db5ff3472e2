package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"attendly_backend/internals/features/school/signatures/model"
	osshelper "attendly_backend/internals/helpers/oss"
)

// Blob is the slice of the OSS client the capture flow needs. Kept small so
// the upload-then-insert ordering can be tested without a bucket.
type Blob interface {
	UploadBytes(ctx context.Context, dir, filename string, data []byte, contentType string) (string, error)
	DeleteObject(ctx context.Context, key string) error
	PublicURL(key string) string
}

// CaptureStore persists one captured signature: object first, metadata row
// second. If the row insert fails the object is deleted again so the bucket
// never accumulates records the database does not know about.
type CaptureStore struct {
	Blob   Blob
	Insert func(ctx context.Context, row *model.StudentSignatureModel) error
}

func NewCaptureStore(db *gorm.DB, blob Blob) *CaptureStore {
	return &CaptureStore{
		Blob: blob,
		Insert: func(ctx context.Context, row *model.StudentSignatureModel) error {
			return db.WithContext(ctx).Create(row).Error
		},
	}
}

type SaveCaptureInput struct {
	StudentID   uuid.UUID
	FileName    string
	ContentType string
	Data        []byte

	DeviceInfo   datatypes.JSON
	Features     datatypes.JSON
	QualityScore *float64
	IsPrimary    bool
}

func (s *CaptureStore) Save(ctx context.Context, in SaveCaptureInput) (*model.StudentSignatureModel, error) {
	dir := osshelper.DirSignatures + "/" + in.StudentID.String()
	key, err := s.Blob.UploadBytes(ctx, dir, in.FileName, in.Data, in.ContentType)
	if err != nil {
		return nil, err
	}

	row := &model.StudentSignatureModel{
		StudentSignatureStudentID:    in.StudentID,
		StudentSignatureURL:          s.Blob.PublicURL(key),
		StudentSignatureObjectKey:    key,
		StudentSignatureFileName:     in.FileName,
		StudentSignatureFileSize:     int64(len(in.Data)),
		StudentSignatureFileType:     in.ContentType,
		StudentSignatureDeviceInfo:   in.DeviceInfo,
		StudentSignatureFeatures:     in.Features,
		StudentSignatureQualityScore: in.QualityScore,
		StudentSignatureIsPrimary:    in.IsPrimary,
	}

	if err := s.Insert(ctx, row); err != nil {
		// best-effort; the reaper sweeps anything this misses
		if delErr := s.Blob.DeleteObject(ctx, key); delErr != nil {
			log.Printf("[SIGNATURE] rollback delete failed for %s: %v", key, delErr)
		}
		return nil, err
	}
	return row, nil
}

// PrimaryForStudent returns the student's current primary signature, falling
// back to the newest capture when none is flagged primary.
func PrimaryForStudent(ctx context.Context, db *gorm.DB, studentID uuid.UUID) (*model.StudentSignatureModel, error) {
	var row model.StudentSignatureModel
	err := db.WithContext(ctx).
		Where("student_signature_student_id = ?", studentID).
		Order("student_signature_is_primary DESC, student_signature_created_at DESC").
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// MarkPrimary flags one capture as primary and clears the flag on the
// student's other captures, in one transaction.
func MarkPrimary(ctx context.Context, db *gorm.DB, studentID, signatureID uuid.UUID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.StudentSignatureModel{}).
			Where("student_signature_student_id = ? AND student_signature_id <> ?", studentID, signatureID).
			Update("student_signature_is_primary", false).Error; err != nil {
			return err
		}
		res := tx.Model(&model.StudentSignatureModel{}).
			Where("student_signature_id = ? AND student_signature_student_id = ?", signatureID, studentID).
			Update("student_signature_is_primary", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// KnownObjectKeys returns every object key the metadata table references,
// including soft-deleted rows. Used by the orphan reaper as its keep-set.
func KnownObjectKeys(ctx context.Context, db *gorm.DB) (map[string]struct{}, error) {
	var keys []string
	if err := db.WithContext(ctx).Unscoped().
		Model(&model.StudentSignatureModel{}).
		Pluck("student_signature_object_key", &keys).Error; err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set, nil
}

// ReapOrphans deletes signature objects older than cutoff that no metadata
// row references. Returns how many objects were removed.
func ReapOrphans(ctx context.Context, db *gorm.DB, svc *osshelper.OSSService, cutoff time.Time) (int, error) {
	known, err := KnownObjectKeys(ctx, db)
	if err != nil {
		return 0, err
	}

	keys, err := svc.ListKeys(ctx, osshelper.DirSignatures, cutoff)
	if err != nil {
		return 0, err
	}

	reaped := 0
	for _, key := range keys {
		if _, ok := known[key]; ok {
			continue
		}
		if err := svc.DeleteObject(ctx, key); err != nil {
			log.Printf("[SIGNATURE] reaper failed to delete %s: %v", key, err)
			continue
		}
		reaped++
	}
	return reaped, nil
}
