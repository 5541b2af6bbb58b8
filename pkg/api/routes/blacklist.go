package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/transitrouter/pkg/transport"
)

func BlacklistRouter(router fiber.Router, blacklist *transport.BlacklistCache) {
	router.Get("/", func(c *fiber.Ctx) error {
		if blacklist == nil {
			return sendError(c, fiber.StatusServiceUnavailable, "The blacklist is not available without Redis")
		}

		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		return blacklist.ExportCSV(c.UserContext(), c)
	})
}
