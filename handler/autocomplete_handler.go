package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/gstrobl/places-autocomplete-go/places"
)

// AutocompleteHandler serves place suggestions for the q query parameter.
// A blank query is rejected before any remote call.
func AutocompleteHandler(client *places.Client) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		query := ctx.Query("q")
		if strings.TrimSpace(query) == "" {
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "q query parameter must not be empty"})
		}

		predictions, err := client.Autocomplete(ctx.UserContext(), query)
		if err != nil {
			return ctx.Status(fiber.StatusBadGateway).JSON(ErrorResponse{Message: err.Error()})
		}

		return ctx.JSON(AutocompleteResponse{
			Count:   len(predictions),
			Results: predictions,
		})
	}
}
