package delivery

import (
	"salesman/config"
	"salesman/domain"

	"github.com/gofiber/fiber/v2"
)

type codelistHandler struct{}

func NewCodelistDelivery(app *fiber.App) {
	handler := &codelistHandler{}

	app.Get("/v1/codelists", handler.List)
}

func (ch *codelistHandler) List(c *fiber.Ctx) error {
	config.PrintLogInfo(fiber.StatusOK, "ListCodelists")
	return c.JSON(domain.GetCodelists())
}
