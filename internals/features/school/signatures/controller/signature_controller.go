package controller

import (
	"errors"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"attendly_backend/internals/features/school/signatures/dto"
	"attendly_backend/internals/features/school/signatures/model"
	"attendly_backend/internals/features/school/signatures/service"
	smodel "attendly_backend/internals/features/school/students/model"
	helper "attendly_backend/internals/helpers"
	osshelper "attendly_backend/internals/helpers/oss"
)

type SignatureController struct {
	DB *gorm.DB
}

func NewSignatureController(db *gorm.DB) *SignatureController {
	return &SignatureController{DB: db}
}

/* ===================== UPLOAD ===================== */
// POST /signatures (multipart; image under field "image")
func (ctrl *SignatureController) Upload(c *fiber.Ctx) error {
	var req dto.UploadSignatureRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Signature image is required")
	}

	var student smodel.StudentModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("student_id = ?", req.StudentSignatureStudentID).
		Take(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	src, err := fh.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Cannot read signature image")
	}
	raw, err := io.ReadAll(src)
	src.Close()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Cannot read signature image")
	}

	// normalize to webp before storing
	out, err := osshelper.ConvertToWebP(raw, fh.Filename)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Unsupported or corrupt image")
	}
	name := strings.TrimSuffix(fh.Filename, extOf(fh.Filename)) + ".webp"

	svc, err := osshelper.NewOSSServiceFromEnv("")
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "Storage is not configured")
	}

	store := service.NewCaptureStore(ctrl.DB, svc)
	row, err := store.Save(c.UserContext(), service.SaveCaptureInput{
		StudentID:    req.StudentSignatureStudentID,
		FileName:     name,
		ContentType:  "image/webp",
		Data:         out,
		DeviceInfo:   req.StudentSignatureDeviceInfo,
		QualityScore: req.StudentSignatureQualityScore,
		IsPrimary:    req.StudentSignatureIsPrimary,
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save signature")
	}

	if req.StudentSignatureIsPrimary {
		if err := service.MarkPrimary(c.UserContext(), ctrl.DB, row.StudentSignatureStudentID, row.StudentSignatureID); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to set primary signature")
		}
		// keep the denormalized copy on students fresh
		if err := ctrl.DB.WithContext(c.UserContext()).
			Model(&smodel.StudentModel{}).
			Where("student_id = ?", row.StudentSignatureStudentID).
			Updates(map[string]any{
				"student_signature_url": row.StudentSignatureURL,
				"student_signature_key": row.StudentSignatureObjectKey,
			}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update student signature")
		}
	}

	return helper.JsonCreated(c, "Signature saved", dto.NewStudentSignatureResponse(*row))
}

/* ===================== LIST BY STUDENT ===================== */
// GET /signatures/student/:student_id
func (ctrl *SignatureController) ListByStudent(c *fiber.Ctx) error {
	stid, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid student id")
	}

	var rows []model.StudentSignatureModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("student_signature_student_id = ?", stid).
		Order("student_signature_created_at DESC").
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "Signatures fetched", dto.NewStudentSignatureResponses(rows))
}

/* ===================== PRIMARY ===================== */
// GET /signatures/student/:student_id/primary
func (ctrl *SignatureController) GetPrimary(c *fiber.Ctx) error {
	stid, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid student id")
	}

	row, err := service.PrimaryForStudent(c.UserContext(), ctrl.DB, stid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Student has no signature on file")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "Primary signature fetched", dto.NewStudentSignatureResponse(*row))
}

// POST /signatures/:id/primary
func (ctrl *SignatureController) MarkPrimary(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid signature id")
	}

	var row model.StudentSignatureModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("student_signature_id = ?", id).
		Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Signature not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	if err := service.MarkPrimary(c.UserContext(), ctrl.DB, row.StudentSignatureStudentID, id); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to set primary signature")
	}

	if err := ctrl.DB.WithContext(c.UserContext()).
		Model(&smodel.StudentModel{}).
		Where("student_id = ?", row.StudentSignatureStudentID).
		Updates(map[string]any{
			"student_signature_url": row.StudentSignatureURL,
			"student_signature_key": row.StudentSignatureObjectKey,
		}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update student signature")
	}

	return helper.Success(c, "Primary signature updated", dto.NewStudentSignatureResponse(row))
}

/* ===================== VERIFY ===================== */
// POST /signatures/verify (multipart; image under field "image", optional session_id)
func (ctrl *SignatureController) Verify(c *fiber.Ctx) error {
	v := service.Verifier()
	if v == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Signature verification is not configured")
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Signature image is required")
	}
	src, err := fh.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Cannot read signature image")
	}
	raw, err := io.ReadAll(src)
	src.Close()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Cannot read signature image")
	}

	var sessionID *uuid.UUID
	if s := strings.TrimSpace(c.FormValue("session_id")); s != "" {
		sid, err := uuid.Parse(s)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid session_id")
		}
		sessionID = &sid
	}

	res, err := v.Verify(c.UserContext(), raw, fh.Filename, sessionID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "Signature verification failed: "+err.Error())
	}

	return helper.Success(c, "Signature verified", res)
}

// POST /signatures/compare
func (ctrl *SignatureController) Compare(c *fiber.Ctx) error {
	v := service.Verifier()
	if v == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Signature verification is not configured")
	}

	var req dto.CompareSignaturesRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	res, err := v.Compare(c.UserContext(), req.SignatureKeyA, req.SignatureKeyB)
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "Signature comparison failed: "+err.Error())
	}

	return helper.Success(c, "Signatures compared", res)
}

/* ===================== DELETE ===================== */
// DELETE /signatures/:id (soft delete; object stays until the reaper or a
// hard cleanup removes it)
func (ctrl *SignatureController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid signature id")
	}

	res := ctrl.DB.WithContext(c.UserContext()).
		Where("student_signature_id = ?", id).
		Delete(&model.StudentSignatureModel{})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete signature")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Signature not found")
	}

	return helper.Success(c, "Signature deleted", nil)
}

func extOf(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i:]
	}
	return ""
}
