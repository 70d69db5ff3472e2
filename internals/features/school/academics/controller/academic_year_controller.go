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

type AcademicYearController struct {
	DB *gorm.DB
}

func NewAcademicYearController(db *gorm.DB) *AcademicYearController {
	return &AcademicYearController{DB: db}
}

/* ===================== LIST ===================== */
// GET /academic-years
func (ctrl *AcademicYearController) List(c *fiber.Ctx) error {
	var rows []model.AcademicYearModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Order("academic_year_start_date DESC").
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "Academic years fetched", dto.NewAcademicYearResponses(rows))
}

/* ===================== CREATE ===================== */
// POST /academic-years
func (ctrl *AcademicYearController) Create(c *fiber.Ctx) error {
	var req dto.CreateAcademicYearRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if !req.AcademicYearEndDate.After(req.AcademicYearStartDate) {
		return fiber.NewError(fiber.StatusBadRequest, "End date must come after start date")
	}

	m := req.ToModel()
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create academic year")
	}
	return helper.JsonCreated(c, "Academic year created", dto.NewAcademicYearResponse(m))
}

/* ===================== UPDATE ===================== */
// PATCH /academic-years/:id
func (ctrl *AcademicYearController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid academic year id")
	}

	var req dto.UpdateAcademicYearRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var row model.AcademicYearModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("academic_year_id = ?", id).
		Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Academic year not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	req.Apply(&row)
	if err := ctrl.DB.WithContext(c.UserContext()).Save(&row).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update academic year")
	}
	return helper.Success(c, "Academic year updated", dto.NewAcademicYearResponse(row))
}

/* ===================== ACTIVATE ===================== */
// POST /academic-years/:id/activate
// Deactivates every other year, then activates this one. One transaction so
// the "at most one active" invariant never has a visible gap.
func (ctrl *AcademicYearController) Activate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid academic year id")
	}

	var row model.AcademicYearModel
	txErr := ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("academic_year_id = ?", id).
			Take(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Academic year not found")
			}
			return err
		}

		if err := tx.Model(&model.AcademicYearModel{}).
			Where("academic_year_id <> ? AND academic_year_is_active", id).
			Update("academic_year_is_active", false).Error; err != nil {
			return err
		}

		row.AcademicYearIsActive = true
		return tx.Save(&row).Error
	})
	if txErr != nil {
		return helper.FromFiberError(c, txErr)
	}

	return helper.Success(c, "Academic year activated", dto.NewAcademicYearResponse(row))
}

/* ===================== DELETE ===================== */
// DELETE /academic-years/:id (soft delete)
func (ctrl *AcademicYearController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid academic year id")
	}

	res := ctrl.DB.WithContext(c.UserContext()).
		Where("academic_year_id = ?", id).
		Delete(&model.AcademicYearModel{})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete academic year")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Academic year not found")
	}
	return helper.Success(c, "Academic year deleted", nil)
}
