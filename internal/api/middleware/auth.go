package middleware

import (
	"github.com/agrisetu/farmlink-backend/internal/models"
	"github.com/agrisetu/farmlink-backend/internal/services"
	"github.com/agrisetu/farmlink-backend/internal/utils"
	"github.com/gofiber/fiber/v2"
)

const userLocalKey = "user"

// AuthConfig holds the collaborators the auth middleware needs: the
// authenticator checks the signature and expiry, the auth service
// resolves the embedded mobile number to an account.
type AuthConfig struct {
	Authenticator *utils.JwtAuthenticator
	AuthService   services.AuthService
}

// AuthMiddleware returns a Fiber middleware for bearer-token
// authentication. Both "Bearer <token>" and a raw token in the
// Authorization header are accepted. The resolved user is stored in the
// request locals.
func AuthMiddleware(cfg AuthConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := utils.ExtractBearerToken(c.Get("Authorization"))
		if token == "" {
			return unauthorized(c)
		}

		payload, err := cfg.Authenticator.ValidateToken(token)
		if err != nil {
			return unauthorized(c)
		}

		user, err := cfg.AuthService.ResolveUser(payload.MobileNumber)
		if err != nil {
			return unauthorized(c)
		}

		c.Locals(userLocalKey, user)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx) error {
	c.Set("WWW-Authenticate", `Bearer realm="Access to protected resource"`)
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": "Unauthorized",
	})
}

// GetAuthenticatedUser retrieves the authenticated user from the Fiber
// context. Returns nil if the middleware did not run or resolution
// failed.
func GetAuthenticatedUser(c *fiber.Ctx) *models.User {
	user, ok := c.Locals(userLocalKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}
