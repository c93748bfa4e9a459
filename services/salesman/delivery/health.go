package delivery

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func NewHealthDelivery(app *fiber.App) {
	app.Get("/health", healthCheck)
}

func healthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
