package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func GetMyNotifications(c *fiber.Ctx) error {
	includeRead := c.QueryBool("include_read", true)
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	notifications, err := notificationService.GetUserNotifications(c.Context(), callerNIC(c), includeRead, limit, offset)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(notifications)
}

func GetUnreadNotifications(c *fiber.Ctx) error {
	notifications, err := notificationService.GetUnreadNotifications(c.Context(), callerNIC(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(notifications)
}

func GetUnreadNotificationCount(c *fiber.Ctx) error {
	count, err := notificationService.CountUnread(c.Context(), callerNIC(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"unread_count": count})
}

func MarkNotificationAsRead(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid notification id"})
	}

	if err := notificationService.MarkAsRead(c.Context(), id, callerNIC(c)); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Notification marked as read"})
}

func MarkAllNotificationsAsRead(c *fiber.Ctx) error {
	updated, err := notificationService.MarkAllAsRead(c.Context(), callerNIC(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "All notifications marked as read", "updated": updated})
}
