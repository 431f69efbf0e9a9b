package api

import (
	"github.com/agrisetu/farmlink-backend/internal/apierr"
	"github.com/gofiber/fiber/v2"
)

// respondError translates a service error into the JSON error envelope.
// Internal causes are logged and replaced with a generic message so
// storage or codec details never reach the client.
func (s *APIServer) respondError(c *fiber.Ctx, err error) error {
	e := apierr.From(err)
	if e.Status >= fiber.StatusInternalServerError {
		s.log.Error("request failed",
			"method", c.Method(), "path", c.Path(), "code", e.Code, "error", e)
		return c.Status(e.Status).JSON(fiber.Map{"message": "Something went wrong"})
	}

	message := e.Code
	if e.Err != nil {
		message = e.Err.Error()
	}
	return c.Status(e.Status).JSON(fiber.Map{"message": message})
}
