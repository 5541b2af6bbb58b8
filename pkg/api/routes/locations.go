package routes

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/travigo/transitrouter/pkg/transport"
)

type LocationSearcher interface {
	SearchLocations(ctx context.Context, q transport.LocationQuery) ([]transport.Location, error)
}

type Completer interface {
	SearchCompletion(ctx context.Context, term string) ([]transport.Completion, error)
}

func LocationsRouter(router fiber.Router, locations LocationSearcher, completer Completer) {
	router.Get("/", func(c *fiber.Ctx) error {
		return listLocations(c, locations)
	})
	router.Get("/complete", func(c *fiber.Ctx) error {
		return completeLocation(c, completer)
	})
}

func listLocations(c *fiber.Ctx, locations LocationSearcher) error {
	x, y, err := getCoordinatesQuery(c)
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, err.Error())
	}

	query := c.Query("query")
	if query == "" && x == nil {
		return sendError(c, fiber.StatusBadRequest, "A query or x and y coordinates must be given")
	}

	locationType := transport.LocationType(c.Query("type", string(transport.LocationTypeAll)))
	switch locationType {
	case transport.LocationTypeAll, transport.LocationTypeStation, transport.LocationTypePOI, transport.LocationTypeAddress:
	default:
		return sendError(c, fiber.StatusBadRequest, "Parameter type should be one of all, station, poi or address")
	}

	found, err := locations.SearchLocations(c.UserContext(), transport.LocationQuery{
		Query: query,
		X:     x,
		Y:     y,
		Type:  locationType,
	})
	if err != nil {
		return sendError(c, fiber.StatusInternalServerError, err.Error())
	}

	locationsReduced, err := reduce(c, found)
	if err != nil {
		return sendError(c, fiber.StatusInternalServerError, "Sherrif could not reduce Locations")
	}

	return c.JSON(locationsReduced)
}

func completeLocation(c *fiber.Ctx, completer Completer) error {
	term := c.Query("term")
	if term == "" {
		return sendError(c, fiber.StatusBadRequest, "Parameter term is required")
	}

	completions, err := completer.SearchCompletion(c.UserContext(), term)
	if err != nil {
		return sendError(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(completions)
}
