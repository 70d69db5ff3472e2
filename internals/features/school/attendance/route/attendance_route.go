package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	aCtrl "attendly_backend/internals/features/school/attendance/controller"
)

func AttendanceStaffRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := aCtrl.NewAttendanceController(db)

	g := r.Group("/attendance")
	g.Put("/", ctrl.Mark) // upsert keyed on (session, student)
	g.Get("/session/:session_id", ctrl.ListBySession)
	g.Get("/student/:student_id", ctrl.ListByStudent)
}

func AttendanceAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := aCtrl.NewAttendanceController(db)

	g := r.Group("/attendance")
	g.Delete("/:id", ctrl.Delete)
}
