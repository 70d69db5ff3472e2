package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"attendly_backend/internals/features/school/excuses/dto"
	"attendly_backend/internals/features/school/excuses/model"
	helper "attendly_backend/internals/helpers"
	osshelper "attendly_backend/internals/helpers/oss"
)

type ExcuseController struct {
	DB *gorm.DB
}

func NewExcuseController(db *gorm.DB) *ExcuseController {
	return &ExcuseController{DB: db}
}

/* ===================== SUBMIT ===================== */
// POST /excuse-applications (multipart; letters under field "letters")
func (ctrl *ExcuseController) Submit(c *fiber.Ctx) error {
	var req dto.SubmitExcuseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	// optional letter uploads
	var letterURLs []string
	if form, err := c.MultipartForm(); err == nil && form != nil {
		files := form.File["letters"]
		if len(files) > 0 {
			svc, err := osshelper.NewOSSServiceFromEnv("")
			if err != nil {
				return fiber.NewError(fiber.StatusBadGateway, "Storage is not configured")
			}
			for _, fh := range files {
				key, _, err := svc.UploadFromFormFile(c.UserContext(), osshelper.DirExcuseLetters, fh)
				if err != nil {
					// roll back whatever made it up before failing the request
					if _, failed := svc.DeleteManyByPublicURL(c.UserContext(), letterURLs); len(failed) > 0 {
						log.Printf("[EXCUSE] rollback left %d objects behind", len(failed))
					}
					return fiber.NewError(fiber.StatusBadGateway, "Failed to upload excuse letter")
				}
				letterURLs = append(letterURLs, svc.PublicURL(key))
			}
		}
	}

	m := req.ToModel(letterURLs)
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		if len(letterURLs) > 0 {
			if svc, e := osshelper.NewOSSServiceFromEnv(""); e == nil {
				if _, failed := svc.DeleteManyByPublicURL(c.UserContext(), letterURLs); len(failed) > 0 {
					log.Printf("[EXCUSE] rollback left %d objects behind", len(failed))
				}
			}
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to submit excuse application")
	}

	return helper.JsonCreated(c, "Excuse application submitted", dto.NewExcuseApplicationResponse(m))
}

/* ===================== LIST ===================== */
// GET /excuse-applications?status=&student_id=&date_from=&date_to=&page=&per_page=
func (ctrl *ExcuseController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 25, 200)

	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.ExcuseApplicationModel{})

	if v := strings.TrimSpace(c.Query("status")); v != "" {
		if !model.IsValidExcuseStatus(v) {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid status filter")
		}
		q = q.Where("excuse_application_status = ?", v)
	}
	if v := c.Query("student_id"); v != "" {
		stid, err := uuid.Parse(v)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid student_id")
		}
		q = q.Where("excuse_application_student_id = ?", stid)
	}
	if v := strings.TrimSpace(c.Query("date_from")); v != "" {
		if d, err := time.Parse("2006-01-02", v); err == nil {
			q = q.Where("excuse_application_absence_date >= ?", d)
		}
	}
	if v := strings.TrimSpace(c.Query("date_to")); v != "" {
		if d, err := time.Parse("2006-01-02", v); err == nil {
			q = q.Where("excuse_application_absence_date <= ?", d)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.ExcuseApplicationModel
	if err := q.
		Order("excuse_application_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "Excuse applications fetched",
		dto.NewExcuseApplicationResponses(rows),
		helper.BuildPagination(total, paging, len(rows)))
}

/* ===================== DETAIL ===================== */
// GET /excuse-applications/:id
func (ctrl *ExcuseController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid excuse application id")
	}

	var row model.ExcuseApplicationModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("excuse_application_id = ?", id).
		Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Excuse application not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "Excuse application fetched", dto.NewExcuseApplicationResponse(row))
}

/* ===================== REVIEW ===================== */
// POST /excuse-applications/:id/review
func (ctrl *ExcuseController) Review(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid excuse application id")
	}

	var req dto.ReviewExcuseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	reviewer, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var row model.ExcuseApplicationModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("excuse_application_id = ?", id).
		Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Excuse application not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	now := time.Now()
	row.ExcuseApplicationStatus = req.ExcuseApplicationStatus
	row.ExcuseApplicationReviewedBy = &reviewer
	row.ExcuseApplicationReviewedAt = &now
	row.ExcuseApplicationReviewNote = req.ExcuseApplicationReviewNote

	if err := ctrl.DB.WithContext(c.UserContext()).Save(&row).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to review excuse application")
	}

	return helper.Success(c, "Excuse application reviewed", dto.NewExcuseApplicationResponse(row))
}

/* ===================== DELETE ===================== */
// DELETE /excuse-applications/:id (soft delete)
func (ctrl *ExcuseController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid excuse application id")
	}

	res := ctrl.DB.WithContext(c.UserContext()).
		Where("excuse_application_id = ?", id).
		Delete(&model.ExcuseApplicationModel{})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete excuse application")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Excuse application not found")
	}

	return helper.Success(c, "Excuse application deleted", nil)
}
