package handlers

import (
	"evcharge-backend/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateStationRequest struct {
	Name         string `json:"name" validate:"required"`
	Location     string `json:"location" validate:"required"`
	Type         string `json:"type" validate:"required,oneof=AC DC"`
	TotalSlots   int    `json:"total_slots" validate:"required,min=1"`
	PricePerHour string `json:"price_per_hour" validate:"required"`
}

type UpdateStationRequest struct {
	Name         *string `json:"name"`
	Location     *string `json:"location"`
	Type         *string `json:"type" validate:"omitempty,oneof=AC DC"`
	TotalSlots   *int    `json:"total_slots" validate:"omitempty,min=1"`
	PricePerHour *string `json:"price_per_hour"`
	Status       *string `json:"status" validate:"omitempty,oneof=active inactive maintenance"`
}

func CreateStation(c *fiber.Ctx) error {
	var req CreateStationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	price, err := decimal.NewFromString(req.PricePerHour)
	if err != nil || price.IsNegative() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid price per hour"})
	}

	station, err := stationService.CreateStation(c.Context(), services.CreateStationInput{
		Name:         req.Name,
		Location:     req.Location,
		Type:         req.Type,
		TotalSlots:   req.TotalSlots,
		PricePerHour: price,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(station)
}

func GetAllStations(c *fiber.Ctx) error {
	stations, err := stationService.GetAllStations(c.Context())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(stations)
}

func GetActiveStations(c *fiber.Ctx) error {
	stations, err := stationService.GetActiveStations(c.Context())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(stations)
}

func GetStation(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid station id"})
	}

	station, err := stationService.GetStationByID(c.Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(station)
}

func UpdateStation(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid station id"})
	}

	var req UpdateStationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	input := services.UpdateStationInput{
		Name:       req.Name,
		Location:   req.Location,
		Type:       req.Type,
		TotalSlots: req.TotalSlots,
		Status:     req.Status,
	}
	if req.PricePerHour != nil {
		price, err := decimal.NewFromString(*req.PricePerHour)
		if err != nil || price.IsNegative() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid price per hour"})
		}
		input.PricePerHour = &price
	}

	station, err := stationService.UpdateStation(c.Context(), id, input)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(station)
}

func DeactivateStation(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid station id"})
	}

	if err := stationService.DeactivateStation(c.Context(), id); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Station deactivated successfully"})
}

func DeleteStation(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid station id"})
	}

	if err := stationService.DeleteStation(c.Context(), id); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Station deleted successfully"})
}
