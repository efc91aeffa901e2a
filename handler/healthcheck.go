package handler

import "github.com/gofiber/fiber/v2"

// HealthCheck reports the status of the server.
func HealthCheck(ctx *fiber.Ctx) error {
	return ctx.SendStatus(fiber.StatusOK)
}
