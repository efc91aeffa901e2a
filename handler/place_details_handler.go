package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/gstrobl/places-autocomplete-go/places"
)

// PlaceDetailsHandler serves the expanded record for the place id path
// parameter.
func PlaceDetailsHandler(client *places.Client) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		placeID := ctx.Params("id")

		details, err := client.PlaceDetails(ctx.UserContext(), placeID)
		if err != nil {
			if errors.Is(err, places.ErrMissingPlaceID) {
				return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: err.Error()})
			}
			return ctx.Status(fiber.StatusBadGateway).JSON(ErrorResponse{Message: err.Error()})
		}

		return ctx.JSON(details)
	}
}
