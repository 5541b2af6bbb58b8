package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/travigo/transitrouter/pkg/keystations"
)

func KeyStationsRouter(router fiber.Router, tracker *keystations.Tracker) {
	router.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"home_station": tracker.HomeStation,
			"stations":     tracker.Stations(),
			"tracking":     tracker.Tracking(),
		})
	})
	router.Post("/refetch", func(c *fiber.Ctx) error {
		tracking, err := tracker.Refetch(c.UserContext(), func(total int, completed int) {
			log.Debug().Int("total", total).Int("completed", completed).Msg("Key station refetch progress")
		})
		if err != nil {
			return sendError(c, fiber.StatusInternalServerError, err.Error())
		}

		return c.JSON(tracking)
	})
}
