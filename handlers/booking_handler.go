package handlers

import (
	"time"

	"evcharge-backend/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	StationID string `json:"station_id" validate:"required,uuid"`
	StartTime string `json:"start_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	EndTime   string `json:"end_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

type UpdateBookingRequest struct {
	StartTime *string `json:"start_time" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	EndTime   *string `json:"end_time" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Status    *string `json:"status" validate:"omitempty,oneof=active confirmed completed cancelled no_show"`
}

type OperatorCancelRequest struct {
	Reason string `json:"reason"`
}

func CreateBooking(c *fiber.Ctx) error {
	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	stationID, _ := uuid.Parse(req.StationID)
	startTime, _ := time.Parse(time.RFC3339, req.StartTime)
	endTime, _ := time.Parse(time.RFC3339, req.EndTime)

	booking, err := bookingService.CreateBooking(c.Context(), services.CreateBookingInput{
		StationID: stationID,
		StartTime: startTime,
		EndTime:   endTime,
	}, callerNIC(c))
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(booking)
}

func GetAllBookings(c *fiber.Ctx) error {
	bookings, err := bookingService.GetAllBookings(c.Context())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(bookings)
}

func GetMyBookings(c *fiber.Ctx) error {
	bookings, err := bookingService.GetUserBookings(c.Context(), callerNIC(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(bookings)
}

func GetStationBookings(c *fiber.Ctx) error {
	stationID, err := uuid.Parse(c.Params("stationId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid station id"})
	}

	bookings, err := bookingService.GetStationBookings(c.Context(), stationID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(bookings)
}

func GetBooking(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	booking, err := bookingService.GetBookingByID(c.Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(booking)
}

func UpdateBooking(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	var req UpdateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	input := services.UpdateBookingInput{Status: req.Status}
	if req.StartTime != nil {
		startTime, _ := time.Parse(time.RFC3339, *req.StartTime)
		input.StartTime = &startTime
	}
	if req.EndTime != nil {
		endTime, _ := time.Parse(time.RFC3339, *req.EndTime)
		input.EndTime = &endTime
	}

	booking, err := bookingService.UpdateBooking(c.Context(), id, input, callerNIC(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(booking)
}

func ConfirmBooking(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	confirmed, err := bookingService.ConfirmBooking(c.Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	if !confirmed {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Booking could not be confirmed"})
	}
	return c.JSON(fiber.Map{"message": "Booking confirmed successfully"})
}

func CancelBooking(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	cancelled, err := bookingService.CancelBooking(c.Context(), id, callerNIC(c))
	if err != nil {
		return serviceError(c, err)
	}
	if !cancelled {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Booking could not be cancelled"})
	}
	return c.JSON(fiber.Map{"message": "Booking cancelled successfully"})
}

func CancelBookingByOperator(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	var req OperatorCancelRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	cancelled, err := bookingService.CancelBookingByOperator(c.Context(), id, req.Reason)
	if err != nil {
		return serviceError(c, err)
	}
	if !cancelled {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Booking could not be cancelled"})
	}
	return c.JSON(fiber.Map{"message": "Booking cancelled successfully"})
}

func DeleteBooking(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	if err := bookingService.DeleteBooking(c.Context(), id); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Booking deleted successfully"})
}
