package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	sCtrl "attendly_backend/internals/features/school/students/controller"
)

// StudentStaffRoutes: reachable by teachers and admins.
func StudentStaffRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := sCtrl.NewStudentController(db)

	g := r.Group("/students")
	g.Get("/", ctrl.List)
	g.Get("/:id", ctrl.GetByID)
}

// StudentAdminRoutes: roster management, admin only.
func StudentAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := sCtrl.NewStudentController(db)

	g := r.Group("/students")
	g.Post("/", ctrl.Create)
	g.Post("/import", ctrl.Import)
	g.Patch("/:id", ctrl.Update)
	g.Delete("/:id", ctrl.Delete)
}
