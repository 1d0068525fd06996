package middleware

import (
	"strings"

	"go-toko-api/internal/model"
	"go-toko-api/internal/repository"
	"go-toko-api/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth validates the bearer token and loads the acting user from the
// database so downstream code always sees the current role, not the role at
// token-issue time.
func RequireAuth(userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "User not found"})
		}

		// Set the acting user in context for downstream handlers
		c.Locals("auth_user", user)
		c.Locals("user_id", user.ID.String())

		return c.Next()
	}
}

// RequireRole checks that the authenticated user holds one of the given roles.
func RequireRole(roles ...model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals("auth_user").(*model.User)
		if !ok {
			return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
		}

		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}

		return c.Status(403).JSON(fiber.Map{"error": "Forbidden: Insufficient permissions"})
	}
}
