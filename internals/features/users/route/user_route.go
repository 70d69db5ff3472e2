package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	uCtrl "attendly_backend/internals/features/users/controller"
	"attendly_backend/internals/middlewares"
)

// Public auth endpoints with per-route rate limits.
func UserPublicRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := uCtrl.NewUserController(db)

	r.Post("/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	r.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
}

// Admin-only account management (approval queue).
func UserAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := uCtrl.NewUserController(db)

	g := r.Group("/users")
	g.Get("/", ctrl.List)
	g.Post("/:id/approve", ctrl.Approve)
	g.Post("/:id/reject", ctrl.Reject)
	g.Delete("/:id", ctrl.Delete)
}
