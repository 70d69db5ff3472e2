package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Accounts are created pending and cannot log in until an admin approves
// them.
type UserModel struct {
	UserID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:user_id" json:"user_id"`

	UserName  string `gorm:"not null;column:user_name"                json:"user_name"`
	UserEmail string `gorm:"not null;uniqueIndex;column:user_email"   json:"user_email"`

	// bcrypt hash, never serialized
	UserPassword string `gorm:"not null;column:user_password" json:"-"`

	// admin | teacher
	UserRole string `gorm:"not null;default:'teacher';column:user_role" json:"user_role"`

	// pending | approved | rejected
	UserStatus string `gorm:"not null;default:'pending';index;column:user_status" json:"user_status"`

	UserApprovedBy *uuid.UUID `gorm:"type:uuid;column:user_approved_by" json:"user_approved_by,omitempty"`
	UserApprovedAt *time.Time `gorm:"column:user_approved_at"           json:"user_approved_at,omitempty"`

	UserCreatedAt time.Time      `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt time.Time      `gorm:"column:user_updated_at;autoUpdateTime" json:"user_updated_at"`
	UserDeletedAt gorm.DeletedAt `gorm:"column:user_deleted_at;index"          json:"user_deleted_at,omitempty"`
}

func (UserModel) TableName() string { return "users" }
