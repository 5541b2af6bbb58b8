package routes

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/transitrouter/pkg/routejobs"
	"github.com/travigo/transitrouter/pkg/routing"
)

var validate = validator.New()

// RouteJobsRouter exposes the background route queue. Without a queue every
// request is answered with 503.
func RouteJobsRouter(router fiber.Router, queue *routejobs.Queue) {
	router.Use(func(c *fiber.Ctx) error {
		if queue == nil {
			return sendError(c, fiber.StatusServiceUnavailable, "Route jobs are not available without Redis")
		}
		return c.Next()
	})

	router.Post("/", func(c *fiber.Ctx) error {
		return createRouteJob(c, queue)
	})
	router.Get("/:id", func(c *fiber.Ctx) error {
		return getRouteJob(c, queue.Store)
	})
	router.Delete("/:id", func(c *fiber.Ctx) error {
		return cancelRouteJob(c, queue.Store)
	})
}

func createRouteJob(c *fiber.Ctx, queue *routejobs.Queue) error {
	var params routing.Parameters
	if err := c.BodyParser(&params); err != nil {
		return sendError(c, fiber.StatusBadRequest, "Request body should be a JSON object with start and destination")
	}

	if err := validate.Struct(params); err != nil {
		return sendError(c, fiber.StatusBadRequest, err.Error())
	}

	job, err := queue.Submit(c.UserContext(), params)
	if err != nil {
		return sendError(c, fiber.StatusInternalServerError, err.Error())
	}

	c.Status(fiber.StatusAccepted)
	return c.JSON(job)
}

func getRouteJob(c *fiber.Ctx, jobStore *routejobs.Store) error {
	job, err := jobStore.Get(c.UserContext(), c.Params("id"))
	if errors.Is(err, routejobs.ErrJobNotFound) {
		return sendError(c, fiber.StatusNotFound, "Could not find Route Job matching identifier")
	} else if err != nil {
		return sendError(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(job)
}

func cancelRouteJob(c *fiber.Ctx, jobStore *routejobs.Store) error {
	job, err := jobStore.Cancel(c.UserContext(), c.Params("id"))
	if errors.Is(err, routejobs.ErrJobNotFound) {
		return sendError(c, fiber.StatusNotFound, "Could not find Route Job matching identifier")
	} else if err != nil {
		return sendError(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(job)
}
