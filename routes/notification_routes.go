package routes

import (
	"evcharge-backend/handlers"
	"evcharge-backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func NotificationRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	notification := api.Group("/notifications", middleware.Protected())
	notification.Get("/me", handlers.GetMyNotifications)
	notification.Get("/me/unread", handlers.GetUnreadNotifications)
	notification.Get("/me/unread/count", handlers.GetUnreadNotificationCount)
	notification.Post("/:id/read", handlers.MarkNotificationAsRead)
	notification.Post("/read-all", handlers.MarkAllNotificationsAsRead)
}
