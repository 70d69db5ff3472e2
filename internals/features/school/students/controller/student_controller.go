package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"attendly_backend/internals/features/school/students/dto"
	"attendly_backend/internals/features/school/students/model"
	helper "attendly_backend/internals/helpers"
)

type StudentController struct {
	DB *gorm.DB
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db}
}

/* ===================== LIST ===================== */
// GET /students?program=&year=&section=&search=&page=&per_page=
func (ctrl *StudentController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 25, 200)

	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.StudentModel{})

	if v := strings.TrimSpace(c.Query("program")); v != "" {
		q = q.Where("student_program = ?", v)
	}
	if v := strings.TrimSpace(c.Query("year")); v != "" {
		q = q.Where("student_year = ?", v)
	}
	if v := strings.TrimSpace(c.Query("section")); v != "" {
		q = q.Where("student_section = ?", v)
	}
	if v := strings.TrimSpace(c.Query("search")); v != "" {
		like := "%" + v + "%"
		q = q.Where(
			"student_surname ILIKE ? OR student_firstname ILIKE ? OR student_code ILIKE ?",
			like, like, like,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.StudentModel
	if err := q.
		Order("student_surname ASC, student_firstname ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "Students fetched",
		dto.NewStudentResponses(rows),
		helper.BuildPagination(total, paging, len(rows)))
}

/* ===================== DETAIL ===================== */
// GET /students/:id
func (ctrl *StudentController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid student id")
	}

	var row model.StudentModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("student_id = ?", id).
		Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "Student fetched", dto.NewStudentResponse(row))
}

/* ===================== CREATE ===================== */
// POST /students
func (ctrl *StudentController) Create(c *fiber.Ctx) error {
	var req dto.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel()
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return fiber.NewError(fiber.StatusConflict, "Student code already exists")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create student")
	}

	return helper.JsonCreated(c, "Student created", dto.NewStudentResponse(m))
}

/* ===================== IMPORT ===================== */
// POST /students/import
func (ctrl *StudentController) Import(c *fiber.Ctx) error {
	var req dto.ImportStudentsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	rows := make([]model.StudentModel, 0, len(req.Students))
	for _, r := range req.Students {
		rows = append(rows, r.ToModel())
	}

	// skip rows whose student_code is already taken instead of failing the batch
	res := ctrl.DB.WithContext(c.UserContext()).
		Clauses(onConflictSkipStudentCode()).
		CreateInBatches(rows, 500)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Import failed")
	}

	return helper.JsonCreated(c, "Students imported", fiber.Map{
		"received": len(rows),
		"inserted": res.RowsAffected,
		"skipped":  int64(len(rows)) - res.RowsAffected,
	})
}

/* ===================== UPDATE ===================== */
// PATCH /students/:id
func (ctrl *StudentController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid student id")
	}

	var req dto.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var row model.StudentModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("student_id = ?", id).
		Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	req.Apply(&row)
	if err := ctrl.DB.WithContext(c.UserContext()).Save(&row).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update student")
	}

	return helper.Success(c, "Student updated", dto.NewStudentResponse(row))
}

/* ===================== DELETE ===================== */
// DELETE /students/:id (soft delete)
func (ctrl *StudentController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid student id")
	}

	res := ctrl.DB.WithContext(c.UserContext()).
		Where("student_id = ?", id).
		Delete(&model.StudentModel{})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete student")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Student not found")
	}

	return helper.Success(c, "Student deleted", nil)
}

func onConflictSkipStudentCode() clause.Expression {
	return clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_code"}},
		DoNothing: true,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
