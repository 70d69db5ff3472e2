package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"attendly_backend/internals/features/school/attendance/dto"
	"attendly_backend/internals/features/school/attendance/model"
	"attendly_backend/internals/features/school/attendance/service"
	helper "attendly_backend/internals/helpers"
)

type AttendanceController struct {
	DB *gorm.DB
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{DB: db}
}

/* ===================== MARK (UPSERT) ===================== */
// PUT /attendance
// Idempotent per (session, student): marking twice overwrites.
func (ctrl *AttendanceController) Mark(c *fiber.Ctx) error {
	var req dto.MarkAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var markedBy *uuid.UUID
	if uid, err := helper.GetUserIDFromToken(c); err == nil {
		markedBy = &uid
	}

	m, err := service.UpsertAttendance(c.UserContext(), ctrl.DB, service.UpsertAttendanceInput{
		SessionID: req.AttendanceSessionID,
		StudentID: req.AttendanceStudentID,
		Status:    req.AttendanceStatus,
		TimeIn:    req.AttendanceTimeIn,
		TimeOut:   req.AttendanceTimeOut,
		MarkedBy:  markedBy,
	})
	if err != nil {
		if errors.Is(err, service.ErrNoRowsAffected) {
			return fiber.NewError(fiber.StatusInternalServerError, "Attendance write affected no rows")
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return helper.Success(c, "Attendance recorded", dto.NewAttendanceResponse(m))
}

/* ===================== LIST BY SESSION ===================== */
// GET /attendance/session/:session_id
func (ctrl *AttendanceController) ListBySession(c *fiber.Ctx) error {
	sid, err := uuid.Parse(c.Params("session_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}

	var rows []model.AttendanceModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("attendance_session_id = ?", sid).
		Order("attendance_updated_at DESC").
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "Attendance fetched", dto.NewAttendanceResponses(rows))
}

/* ===================== LIST BY STUDENT ===================== */
// GET /attendance/student/:student_id?page=&per_page=
func (ctrl *AttendanceController) ListByStudent(c *fiber.Ctx) error {
	stid, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid student id")
	}

	paging := helper.ResolvePaging(c, 50, 500)

	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.AttendanceModel{}).
		Where("attendance_student_id = ?", stid)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.AttendanceModel
	if err := q.
		Order("attendance_updated_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "Attendance fetched",
		dto.NewAttendanceResponses(rows),
		helper.BuildPagination(total, paging, len(rows)))
}

/* ===================== DELETE ===================== */
// DELETE /attendance/:id
func (ctrl *AttendanceController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid attendance id")
	}

	res := ctrl.DB.WithContext(c.UserContext()).
		Where("attendance_id = ?", id).
		Delete(&model.AttendanceModel{})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete attendance")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Attendance record not found")
	}

	return helper.Success(c, "Attendance deleted", nil)
}
