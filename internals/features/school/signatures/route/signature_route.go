package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	sigCtrl "attendly_backend/internals/features/school/signatures/controller"
)

func SignatureStaffRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := sigCtrl.NewSignatureController(db)

	g := r.Group("/signatures")
	g.Post("/", ctrl.Upload)
	g.Post("/verify", ctrl.Verify)
	g.Post("/compare", ctrl.Compare)
	g.Get("/student/:student_id", ctrl.ListByStudent)
	g.Get("/student/:student_id/primary", ctrl.GetPrimary)
	g.Post("/:id/primary", ctrl.MarkPrimary)
}

func SignatureAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := sigCtrl.NewSignatureController(db)

	g := r.Group("/signatures")
	g.Delete("/:id", ctrl.Delete)
}
