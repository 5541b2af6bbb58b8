package routes

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/travigo/transitrouter/pkg/routejobs"
	"github.com/travigo/transitrouter/pkg/routing"
)

func PlannerRouter(router fiber.Router, planner routejobs.Router) {
	router.Get("/:start/:destination", func(c *fiber.Ctx) error {
		return getRoute(c, planner)
	})
}

func getRoute(c *fiber.Ctx, planner routejobs.Router) error {
	steps, err := getOptionalIntQuery(c, "steps")
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, err.Error())
	}
	nearness, err := getOptionalIntQuery(c, "nearness")
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, err.Error())
	}

	params := routing.Parameters{
		Start:       c.Params("start"),
		Destination: c.Params("destination"),
		Steps:       steps,
		Nearness:    nearness,
	}

	route, err := planner.Route(c.UserContext(), params, func(progress routing.Progress) {
		total, completed := routing.Counts(progress)
		log.Debug().Str("phase", progress.Phase().String()).Int("total", total).Int("completed", completed).Msg("Route progress")
	})
	if errors.Is(err, routing.ErrNoLocationFound) {
		return sendError(c, fiber.StatusNotFound, err.Error())
	} else if err != nil {
		return sendError(c, fiber.StatusInternalServerError, err.Error())
	}

	routeReduced, err := reduce(c, route)
	if err != nil {
		return sendError(c, fiber.StatusInternalServerError, "Sherrif could not reduce Route")
	}

	return c.JSON(routeReduced)
}
