package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"attendly_backend/internals/features/school/academics/dto"
	"attendly_backend/internals/features/school/academics/model"
	helper "attendly_backend/internals/helpers"
)

type SemesterController struct {
	DB *gorm.DB
}

func NewSemesterController(db *gorm.DB) *SemesterController {
	return &SemesterController{DB: db}
}

/* ===================== LIST ===================== */
// GET /semesters?academic_year_id=
func (ctrl *SemesterController) List(c *fiber.Ctx) error {
	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.SemesterModel{})

	if v := c.Query("academic_year_id"); v != "" {
		yid, err := uuid.Parse(v)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid academic_year_id")
		}
		q = q.Where("semester_academic_year_id = ?", yid)
	}

	var rows []model.SemesterModel
	if err := q.Order("semester_start_date ASC").Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "Semesters fetched", dto.NewSemesterResponses(rows))
}

/* ===================== CREATE ===================== */
// POST /semesters
func (ctrl *SemesterController) Create(c *fiber.Ctx) error {
	var req dto.CreateSemesterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if !req.SemesterEndDate.After(req.SemesterStartDate) {
		return fiber.NewError(fiber.StatusBadRequest, "End date must come after start date")
	}

	// parent year must exist
	var count int64
	if err := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.AcademicYearModel{}).
		Where("academic_year_id = ?", req.SemesterAcademicYearID).
		Count(&count).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if count == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Academic year not found")
	}

	m := req.ToModel()
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create semester")
	}
	return helper.JsonCreated(c, "Semester created", dto.NewSemesterResponse(m))
}

/* ===================== UPDATE ===================== */
// PATCH /semesters/:id
func (ctrl *SemesterController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid semester id")
	}

	var req dto.UpdateSemesterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var row model.SemesterModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("semester_id = ?", id).
		Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Semester not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	req.Apply(&row)
	if err := ctrl.DB.WithContext(c.UserContext()).Save(&row).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update semester")
	}
	return helper.Success(c, "Semester updated", dto.NewSemesterResponse(row))
}

/* ===================== ACTIVATE ===================== */
// POST /semesters/:id/activate
// Sibling semesters (same academic year) are deactivated in the same
// transaction before this one is switched on.
func (ctrl *SemesterController) Activate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid semester id")
	}

	var row model.SemesterModel
	txErr := ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("semester_id = ?", id).
			Take(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Semester not found")
			}
			return err
		}

		if err := tx.Model(&model.SemesterModel{}).
			Where("semester_academic_year_id = ? AND semester_id <> ? AND semester_is_active",
				row.SemesterAcademicYearID, id).
			Update("semester_is_active", false).Error; err != nil {
			return err
		}

		row.SemesterIsActive = true
		return tx.Save(&row).Error
	})
	if txErr != nil {
		return helper.FromFiberError(c, txErr)
	}

	return helper.Success(c, "Semester activated", dto.NewSemesterResponse(row))
}

/* ===================== DELETE ===================== */
// DELETE /semesters/:id (soft delete)
func (ctrl *SemesterController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid semester id")
	}

	res := ctrl.DB.WithContext(c.UserContext()).
		Where("semester_id = ?", id).
		Delete(&model.SemesterModel{})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete semester")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Semester not found")
	}
	return helper.Success(c, "Semester deleted", nil)
}
