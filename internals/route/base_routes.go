package route

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

var startedAt = time.Now()

func BaseRoutes(r fiber.Router) {
	r.Get("/uptime", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":     "ok",
			"uptime":     time.Since(startedAt).Round(time.Second).String(),
			"started_at": startedAt.Format(time.RFC3339),
		})
	})
}
