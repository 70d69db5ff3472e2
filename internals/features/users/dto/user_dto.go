package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	m "attendly_backend/internals/features/users/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

type RegisterRequest struct {
	UserName     string `json:"user_name"     validate:"required,min=2,max=100"`
	UserEmail    string `json:"user_email"    validate:"required,email"`
	UserPassword string `json:"user_password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	UserEmail    string `json:"user_email"    validate:"required,email"`
	UserPassword string `json:"user_password" validate:"required"`
}

type RejectUserRequest struct {
	Reason *string `json:"reason" validate:"omitempty,max=500"`
}

/* =========================================================
 * RESPONSES
 * ========================================================= */

type UserResponse struct {
	UserID    uuid.UUID `json:"user_id"`
	UserName  string    `json:"user_name"`
	UserEmail string    `json:"user_email"`
	UserRole  string    `json:"user_role"`

	UserStatus     string     `json:"user_status"`
	UserApprovedBy *uuid.UUID `json:"user_approved_by,omitempty"`
	UserApprovedAt *time.Time `json:"user_approved_at,omitempty"`

	UserCreatedAt time.Time `json:"user_created_at"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

/* =========================================================
 * HELPERS
 * ========================================================= */

func (r RegisterRequest) ToModel(hashedPassword string) m.UserModel {
	return m.UserModel{
		UserName:     strings.TrimSpace(r.UserName),
		UserEmail:    strings.ToLower(strings.TrimSpace(r.UserEmail)),
		UserPassword: hashedPassword,
	}
}

func NewUserResponse(mdl m.UserModel) UserResponse {
	return UserResponse{
		UserID:         mdl.UserID,
		UserName:       mdl.UserName,
		UserEmail:      mdl.UserEmail,
		UserRole:       mdl.UserRole,
		UserStatus:     mdl.UserStatus,
		UserApprovedBy: mdl.UserApprovedBy,
		UserApprovedAt: mdl.UserApprovedAt,
		UserCreatedAt:  mdl.UserCreatedAt,
	}
}

func NewUserResponses(models []m.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(models))
	for _, mdl := range models {
		out = append(out, NewUserResponse(mdl))
	}
	return out
}
