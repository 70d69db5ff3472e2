package auth

import (
	"github.com/gofiber/fiber/v2"

	"attendly_backend/internals/constants"
)

// IsStaff allows teachers and admins.
func IsStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(LocUserRole).(string)
		switch role {
		case constants.RoleAdmin, constants.RoleTeacher:
			return c.Next()
		}
		return fiber.NewError(fiber.StatusForbidden, constants.RoleErrorStaff(c.Path()))
	}
}

// IsAdmin allows admins only.
func IsAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(LocUserRole).(string)
		if role != constants.RoleAdmin {
			return fiber.NewError(fiber.StatusForbidden, constants.RoleErrorAdmin(c.Path()))
		}
		return c.Next()
	}
}
