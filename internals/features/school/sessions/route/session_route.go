package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	sesCtrl "attendly_backend/internals/features/school/sessions/controller"
)

// SessionStaffRoutes: teachers run sessions day to day.
func SessionStaffRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := sesCtrl.NewSessionController(db)

	g := r.Group("/sessions")
	g.Get("/", ctrl.List)
	g.Get("/:id", ctrl.GetByID)
	g.Get("/:id/roster", ctrl.Roster)
	g.Post("/", ctrl.Create)
	g.Patch("/:id", ctrl.Update)
}

// SessionAdminRoutes: destructive operations stay admin-only.
func SessionAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := sesCtrl.NewSessionController(db)

	g := r.Group("/sessions")
	g.Delete("/:id", ctrl.Delete)
}
