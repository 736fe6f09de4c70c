package middleware

import (
	config "evcharge-backend/configs"
	"evcharge-backend/models"
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
)

func Protected() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(config.Config("JWT_SECRET")),
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"status": "error", "message": "Missing or malformed JWT", "data": nil})
	}
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"status": "error", "message": "Invalid or expired JWT", "data": nil})
}

func claimRole(c *fiber.Ctx) string {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	role, _ := claims["role"].(string)
	return role
}

func BackofficeRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if claimRole(c) != models.RoleBackoffice {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden: Backoffice access required",
			})
		}
		return c.Next()
	}
}

// OperatorRequired admits station operators and backoffice staff.
func OperatorRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := claimRole(c)
		if role != models.RoleOperator && role != models.RoleBackoffice {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden: Operator access required",
			})
		}
		return c.Next()
	}
}

func OwnerRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if claimRole(c) != models.RoleOwner {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden: EV owner access required",
			})
		}
		return c.Next()
	}
}
