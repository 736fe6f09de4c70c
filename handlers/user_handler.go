package handlers

import (
	"evcharge-backend/database"
	"evcharge-backend/models"
	"github.com/gofiber/fiber/v2"
)

func GetAllUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := database.DB.Order("created_at desc").Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch users"})
	}
	return c.JSON(users)
}

func GetUserByNIC(c *fiber.Ctx) error {
	var user models.User
	if err := database.DB.Where("nic = ?", c.Params("nic")).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	return c.JSON(user)
}

func ActivateUser(c *fiber.Ctx) error {
	var user models.User
	if err := database.DB.Where("nic = ?", c.Params("nic")).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	user.IsActive = true
	user.ReactivationRequested = false
	if err := database.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to activate user"})
	}
	return c.JSON(fiber.Map{"message": "User activated successfully"})
}

func DeactivateUser(c *fiber.Ctx) error {
	var user models.User
	if err := database.DB.Where("nic = ?", c.Params("nic")).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	user.IsActive = false
	if err := database.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to deactivate user"})
	}
	return c.JSON(fiber.Map{"message": "User deactivated successfully"})
}

// DeactivateOwnAccount lets an EV owner switch their own account off.
// Reactivation needs the backoffice, requested through RequestReactivation.
func DeactivateOwnAccount(c *fiber.Ctx) error {
	var user models.User
	if err := database.DB.Where("nic = ?", callerNIC(c)).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	user.IsActive = false
	if err := database.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to deactivate account"})
	}
	return c.JSON(fiber.Map{"message": "Account deactivated successfully"})
}

func RequestReactivation(c *fiber.Ctx) error {
	type Request struct {
		NIC string `json:"nic" validate:"required"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var user models.User
	if err := database.DB.Where("nic = ?", req.NIC).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	if user.IsActive {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Account is already active"})
	}

	user.ReactivationRequested = true
	if err := database.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to request reactivation"})
	}
	return c.JSON(fiber.Map{"message": "Reactivation request submitted. A backoffice administrator will review it."})
}
