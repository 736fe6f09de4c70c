package handlers

import (
	"errors"

	"evcharge-backend/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

var validate = validator.New()

var (
	bookingService      *services.BookingService
	stationService      *services.StationService
	notificationService *services.NotificationService
)

// Setup hands the handler package its service dependencies; called once from
// main before routes are registered.
func Setup(bookings *services.BookingService, stations *services.StationService, notifications *services.NotificationService) {
	bookingService = bookings
	stationService = stations
	notificationService = notifications
}

func callerNIC(c *fiber.Ctx) string {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	nic, _ := claims["nic"].(string)
	return nic
}

func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrUnauthorized):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case services.IsRejection(err):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong"})
	}
}
