package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	eCtrl "attendly_backend/internals/features/school/excuses/controller"
)

func ExcuseStaffRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := eCtrl.NewExcuseController(db)

	g := r.Group("/excuse-applications")
	g.Post("/", ctrl.Submit)
	g.Get("/", ctrl.List)
	g.Get("/:id", ctrl.GetByID)
	g.Post("/:id/review", ctrl.Review)
}

func ExcuseAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := eCtrl.NewExcuseController(db)

	g := r.Group("/excuse-applications")
	g.Delete("/:id", ctrl.Delete)
}
