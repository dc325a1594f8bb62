package middleware

import (
	"strings"

	"uni-cmcs/internal/config"
	"uni-cmcs/internal/pkg/jwt"
	"uni-cmcs/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware creates authentication middleware. The authenticated
// user id is set in locals and threaded into the core as an explicit
// actor id; no handler reads ambient session state.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		authHeader := c.Get("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			accessToken = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		c.Locals("userID", claims.UserID)
		c.Locals("username", claims.Username)
		c.Locals("role", claims.Role)

		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowedRole := range allowedRoles {
			if role == allowedRole {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// LecturerOnly allows only the Lecturer role
func LecturerOnly() fiber.Handler {
	return RoleMiddleware("Lecturer")
}

// ReviewerOnly allows Coordinator or Manager roles
func ReviewerOnly() fiber.Handler {
	return RoleMiddleware("Coordinator", "Manager")
}

// ManagerOnly allows only the Manager role
func ManagerOnly() fiber.Handler {
	return RoleMiddleware("Manager")
}
