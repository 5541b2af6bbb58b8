package routes

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
)

func getCoordinatesQuery(c *fiber.Ctx) (*float64, *float64, error) {
	xString := c.Query("x")
	yString := c.Query("y")

	if xString == "" && yString == "" {
		return nil, nil, nil
	}
	if xString == "" || yString == "" {
		return nil, nil, errors.New("Parameters x and y must be given together")
	}

	x, err := strconv.ParseFloat(xString, 64)
	if err != nil {
		return nil, nil, errors.New("Parameter x should be a number")
	}
	y, err := strconv.ParseFloat(yString, 64)
	if err != nil {
		return nil, nil, errors.New("Parameter y should be a number")
	}

	return &x, &y, nil
}

func getOptionalIntQuery(c *fiber.Ctx, name string) (*int, error) {
	value := c.Query(name)
	if value == "" {
		return nil, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return nil, errors.New("Parameter " + name + " should be a positive integer")
	}

	return &parsed, nil
}

// reduce marshals value with the basic group, adding the detailed group when
// the request asks for it
func reduce(c *fiber.Ctx, value interface{}) (interface{}, error) {
	groups := []string{"basic"}
	if c.QueryBool("detailed") {
		groups = append(groups, "detailed")
	}

	return sheriff.Marshal(&sheriff.Options{
		Groups: groups,
	}, value)
}

func sendError(c *fiber.Ctx, status int, message string) error {
	c.Status(status)
	return c.JSON(fiber.Map{
		"error": message,
	})
}
