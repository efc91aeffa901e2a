package auth

import (
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const ApiKeyHeaderName = "X-Api-Key"

// New guards the place endpoints and pprof with a shared api key. When the
// ApiKey env variable is unset, all requests pass.
func New() fiber.Handler {
	apiKey := os.Getenv("ApiKey")

	return func(ctx *fiber.Ctx) error {
		if apiKey == "" {
			return ctx.Next()
		}

		apiKeyNeeded := false
		if strings.Contains(ctx.Path(), "pprof") ||
			strings.HasPrefix(ctx.Path(), "/autocomplete") ||
			strings.HasPrefix(ctx.Path(), "/places") {
			apiKeyNeeded = true
		}

		if apiKeyNeeded && ctx.GetReqHeaders()[ApiKeyHeaderName] != apiKey {
			return ctx.SendStatus(fiber.StatusUnauthorized)
		}

		return ctx.Next()
	}
}
