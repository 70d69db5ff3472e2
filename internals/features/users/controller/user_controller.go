package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"attendly_backend/internals/configs"
	"attendly_backend/internals/constants"
	"attendly_backend/internals/features/users/dto"
	"attendly_backend/internals/features/users/model"
	helper "attendly_backend/internals/helpers"
)

const accessTokenTTL = 12 * time.Hour

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

/* ===================== REGISTER ===================== */
// POST /register — account lands in pending until an admin approves it
func (ctrl *UserController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.UserPassword), bcrypt.DefaultCost)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to process password")
	}

	m := req.ToModel(string(hash))
	m.UserRole = constants.RoleTeacher
	m.UserStatus = constants.UserStatusPending

	if err := ctrl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		var exists int64
		ctrl.DB.Model(&model.UserModel{}).
			Where("user_email = ?", m.UserEmail).Count(&exists)
		if exists > 0 {
			return fiber.NewError(fiber.StatusConflict, "Email is already registered")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to register account")
	}

	return helper.JsonCreated(c, "Account created, awaiting admin approval", dto.NewUserResponse(m))
}

/* ===================== LOGIN ===================== */
// POST /login — approved accounts only
func (ctrl *UserController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var u model.UserModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("user_email = ?", strings.ToLower(strings.TrimSpace(req.UserEmail))).
		Take(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.UserPassword), []byte(req.UserPassword)); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
	}

	switch u.UserStatus {
	case constants.UserStatusApproved:
		// ok
	case constants.UserStatusPending:
		return fiber.NewError(fiber.StatusForbidden, "Account is awaiting approval")
	default:
		return fiber.NewError(fiber.StatusForbidden, "Account has been rejected")
	}

	token, err := issueAccessToken(u)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to issue token")
	}

	return helper.Success(c, "Login successful", dto.LoginResponse{
		AccessToken: token,
		User:        dto.NewUserResponse(u),
	})
}

func issueAccessToken(u model.UserModel) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":       u.UserID.String(),
		"role":      u.UserRole,
		"name": u.UserName,
		"iat":       now.Unix(),
		"exp":       now.Add(accessTokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(configs.JWTSecret))
}

/* ===================== LIST ===================== */
// GET /users?status=pending
func (ctrl *UserController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 25, 200)

	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.UserModel{})
	if v := strings.TrimSpace(c.Query("status")); v != "" {
		q = q.Where("user_status = ?", v)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.UserModel
	if err := q.
		Order("user_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "Users fetched",
		dto.NewUserResponses(rows),
		helper.BuildPagination(total, paging, len(rows)))
}

/* ===================== APPROVE / REJECT ===================== */
// POST /users/:id/approve
func (ctrl *UserController) Approve(c *fiber.Ctx) error {
	return ctrl.setStatus(c, constants.UserStatusApproved, "User approved")
}

// POST /users/:id/reject
func (ctrl *UserController) Reject(c *fiber.Ctx) error {
	return ctrl.setStatus(c, constants.UserStatusRejected, "User rejected")
}

func (ctrl *UserController) setStatus(c *fiber.Ctx, status, okMsg string) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid user id")
	}

	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var u model.UserModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("user_id = ?", id).
		Take(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	now := time.Now()
	u.UserStatus = status
	u.UserApprovedBy = &adminID
	u.UserApprovedAt = &now

	if err := ctrl.DB.WithContext(c.UserContext()).Save(&u).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update user status")
	}

	return helper.Success(c, okMsg, dto.NewUserResponse(u))
}

/* ===================== DELETE ===================== */
// DELETE /users/:id (soft delete)
func (ctrl *UserController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid user id")
	}

	res := ctrl.DB.WithContext(c.UserContext()).
		Where("user_id = ?", id).
		Delete(&model.UserModel{})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete user")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	}

	return helper.Success(c, "User deleted", nil)
}
