package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/transitrouter/pkg/providers"
	"github.com/travigo/transitrouter/pkg/routing"
)

func ProvidersRouter(router fiber.Router, home routing.HomeProvider, registry *providers.Registry) {
	router.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"home":    home,
			"foreign": registry.All(),
		})
	})
	router.Get("/:code", func(c *fiber.Ctx) error {
		provider := registry.Get(c.Params("code"))
		if provider == nil {
			return sendError(c, fiber.StatusNotFound, "Could not find Provider matching country code")
		}

		return c.JSON(provider)
	})
}
