package routes

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/travigo/subway/pkg/ctdf"
)

func errorStatus(err error) int {
	switch {
	case errors.Is(err, ctdf.ErrStationNotFound), errors.Is(err, ctdf.ErrLineNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ctdf.ErrDuplicateSection), errors.Is(err, ctdf.ErrLineExists), errors.Is(err, ctdf.ErrLineConflict):
		return fiber.StatusConflict
	case errors.Is(err, ctdf.ErrInvalidSection),
		errors.Is(err, ctdf.ErrDisconnected),
		errors.Is(err, ctdf.ErrInvalidSplit),
		errors.Is(err, ctdf.ErrSingleSectionLine),
		errors.Is(err, ctdf.ErrSameStation),
		errors.Is(err, ctdf.ErrNoRoute),
		errors.Is(err, ctdf.ErrInvalidCriterion):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func sendError(c *fiber.Ctx, err error) error {
	status := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("Request failed")
		c.SendStatus(status)
		return c.JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	c.SendStatus(status)
	return c.JSON(fiber.Map{
		"error": err.Error(),
	})
}

func sendBadRequest(c *fiber.Ctx, message string) error {
	c.SendStatus(fiber.StatusBadRequest)
	return c.JSON(fiber.Map{
		"error": message,
	})
}
