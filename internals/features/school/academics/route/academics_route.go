package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	acCtrl "attendly_backend/internals/features/school/academics/controller"
)

// AcademicsStaffRoutes: read-only calendar info for teachers.
func AcademicsStaffRoutes(r fiber.Router, db *gorm.DB) {
	years := acCtrl.NewAcademicYearController(db)
	sems := acCtrl.NewSemesterController(db)

	r.Get("/academic-years", years.List)
	r.Get("/semesters", sems.List)
}

// AcademicsAdminRoutes: calendar administration.
func AcademicsAdminRoutes(r fiber.Router, db *gorm.DB) {
	years := acCtrl.NewAcademicYearController(db)
	sems := acCtrl.NewSemesterController(db)

	y := r.Group("/academic-years")
	y.Post("/", years.Create)
	y.Patch("/:id", years.Update)
	y.Post("/:id/activate", years.Activate)
	y.Delete("/:id", years.Delete)

	s := r.Group("/semesters")
	s.Post("/", sems.Create)
	s.Patch("/:id", sems.Update)
	s.Post("/:id/activate", sems.Activate)
	s.Delete("/:id", sems.Delete)
}
