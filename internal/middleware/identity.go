// Package middleware resolves the caller identity forwarded by the gateway.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	UserIDHeader   = "X-User-ID"
	UserRoleHeader = "X-User-Role"

	RoleStaff = "staff"

	userIDKey   = "identity.user_id"
	userRoleKey = "identity.role"
)

// Identity requires a valid user id header and stores it on the request.
func Identity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Get(UserIDHeader))
		if raw == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(map[string]interface{}{"error": "missing " + UserIDHeader + " header"})
		}
		id, err := uuid.Parse(raw)
		if err != nil || id == uuid.Nil {
			return c.Status(fiber.StatusUnauthorized).JSON(map[string]interface{}{"error": "invalid " + UserIDHeader + " header"})
		}
		c.Locals(userIDKey, id)
		c.Locals(userRoleKey, strings.ToLower(strings.TrimSpace(c.Get(UserRoleHeader))))
		return c.Next()
	}
}

// RequireRole must run after Identity.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if current, _ := c.Locals(userRoleKey).(string); current != role {
			return c.Status(fiber.StatusForbidden).JSON(map[string]interface{}{"error": "requires role " + role})
		}
		return c.Next()
	}
}

// UserID returns the caller set by Identity, uuid.Nil when absent.
func UserID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(userIDKey).(uuid.UUID)
	return id
}
