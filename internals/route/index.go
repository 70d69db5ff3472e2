package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"attendly_backend/internals/configs"
	academicsRoute "attendly_backend/internals/features/school/academics/route"
	attendanceRoute "attendly_backend/internals/features/school/attendance/route"
	excuseRoute "attendly_backend/internals/features/school/excuses/route"
	sessionRoute "attendly_backend/internals/features/school/sessions/route"
	signatureRoute "attendly_backend/internals/features/school/signatures/route"
	studentRoute "attendly_backend/internals/features/school/students/route"
	userRoute "attendly_backend/internals/features/users/route"
	"attendly_backend/internals/middlewares/auth"
)

// SetupRoutes mounts all feature routes in three tiers:
//
//	/api/public — no auth (register, login, uptime)
//	/api/u      — JWT + teacher-or-admin
//	/api/a      — JWT + admin only
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api")

	// -------- public --------
	public := api.Group("/public")
	BaseRoutes(public)
	userRoute.UserPublicRoutes(public, db)

	jwtGuard := auth.AuthJWT(auth.AuthJWTOpts{
		Secret:              configs.JWTSecret,
		AllowCookieFallback: true,
	})

	// -------- staff (teacher or admin) --------
	staff := api.Group("/u", jwtGuard, auth.IsStaff())
	studentRoute.StudentStaffRoutes(staff, db)
	sessionRoute.SessionStaffRoutes(staff, db)
	attendanceRoute.AttendanceStaffRoutes(staff, db)
	signatureRoute.SignatureStaffRoutes(staff, db)
	excuseRoute.ExcuseStaffRoutes(staff, db)
	academicsRoute.AcademicsStaffRoutes(staff, db)

	// -------- admin --------
	admin := api.Group("/a", jwtGuard, auth.IsAdmin())
	userRoute.UserAdminRoutes(admin, db)
	studentRoute.StudentAdminRoutes(admin, db)
	sessionRoute.SessionAdminRoutes(admin, db)
	attendanceRoute.AttendanceAdminRoutes(admin, db)
	signatureRoute.SignatureAdminRoutes(admin, db)
	excuseRoute.ExcuseAdminRoutes(admin, db)
	academicsRoute.AcademicsAdminRoutes(admin, db)
}
