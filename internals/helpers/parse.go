package helper

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ParseUUIDParam reads a path parameter and parses it as UUID.
func ParseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	idStr := strings.TrimSpace(c.Params(name))
	if idStr == "" {
		return uuid.Nil, errors.New(name + " is required")
	}
	u, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, errors.New(name + " is invalid uuid")
	}
	return u, nil
}

// ParseUUIDQuery parses an optional uuid query parameter. Returns uuid.Nil
// when absent, an error when present but malformed.
func ParseUUIDQuery(c *fiber.Ctx, name string) (uuid.UUID, error) {
	s := strings.TrimSpace(c.Query(name))
	if s == "" {
		return uuid.Nil, nil
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, errors.New(name + " is invalid uuid")
	}
	return u, nil
}

// GetUserUUID returns the authenticated user id stored by the auth middleware.
func GetUserUUID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok || raw == "" {
		return uuid.Nil, errors.New("missing user id in context")
	}
	u, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.New("invalid user id in context")
	}
	return u, nil
}

// GetUserRole returns the role claim stored by the auth middleware.
func GetUserRole(c *fiber.Ctx) string {
	role, _ := c.Locals("user_role").(string)
	return role
}
