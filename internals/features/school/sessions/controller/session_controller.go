package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"attendly_backend/internals/features/school/sessions/dto"
	"attendly_backend/internals/features/school/sessions/model"
	rsvc "attendly_backend/internals/features/school/students/service"
	helper "attendly_backend/internals/helpers"
)

type SessionController struct {
	DB       *gorm.DB
	Resolver *rsvc.RosterResolver
}

func NewSessionController(db *gorm.DB) *SessionController {
	return &SessionController{DB: db, Resolver: rsvc.NewRosterResolver(db)}
}

/* ===================== LIST ===================== */
// GET /sessions?type=&date_from=&date_to=&search=&page=&per_page=
func (ctrl *SessionController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 25, 200)

	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.SessionModel{})

	if v := strings.TrimSpace(c.Query("type")); v != "" {
		q = q.Where("session_type = ?", v)
	}
	if v := strings.TrimSpace(c.Query("date_from")); v != "" {
		if d, err := time.Parse("2006-01-02", v); err == nil {
			q = q.Where("session_date >= ?", d)
		}
	}
	if v := strings.TrimSpace(c.Query("date_to")); v != "" {
		if d, err := time.Parse("2006-01-02", v); err == nil {
			q = q.Where("session_date <= ?", d)
		}
	}
	if v := strings.TrimSpace(c.Query("search")); v != "" {
		q = q.Where("session_title ILIKE ?", "%"+v+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.SessionModel
	if err := q.
		Order("session_date DESC, session_starts_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "Sessions fetched",
		dto.NewSessionResponses(rows),
		helper.BuildPagination(total, paging, len(rows)))
}

/* ===================== DETAIL ===================== */
// GET /sessions/:id
func (ctrl *SessionController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}

	var row model.SessionModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("session_id = ?", id).
		Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Session not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "Session fetched", dto.NewSessionResponse(row))
}

/* ===================== ROSTER ===================== */
// GET /sessions/:id/roster
// Expected attendees for the session's (program, year, section) target,
// merged with recorded attendance.
func (ctrl *SessionController) Roster(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}

	entries, err := ctrl.Resolver.ResolveForSession(c.UserContext(), id.String())
	if err != nil {
		if errors.Is(err, rsvc.ErrSessionNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Session not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "Roster resolved", dto.NewRosterEntryResponses(entries))
}

/* ===================== CREATE ===================== */
// POST /sessions
func (ctrl *SessionController) Create(c *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var createdBy *uuid.UUID
	if uid, err := helper.GetUserIDFromToken(c); err == nil {
		createdBy = &uid
	}

	m := req.ToModel(createdBy)
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create session")
	}

	return helper.JsonCreated(c, "Session created", dto.NewSessionResponse(m))
}

/* ===================== UPDATE ===================== */
// PATCH /sessions/:id
func (ctrl *SessionController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}

	var req dto.UpdateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var row model.SessionModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("session_id = ?", id).
		Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Session not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	req.Apply(&row)
	if err := ctrl.DB.WithContext(c.UserContext()).Save(&row).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update session")
	}

	return helper.Success(c, "Session updated", dto.NewSessionResponse(row))
}

/* ===================== DELETE ===================== */
// DELETE /sessions/:id (soft delete)
func (ctrl *SessionController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}

	res := ctrl.DB.WithContext(c.UserContext()).
		Where("session_id = ?", id).
		Delete(&model.SessionModel{})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete session")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Session not found")
	}

	return helper.Success(c, "Session deleted", nil)
}
