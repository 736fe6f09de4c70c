package routes

import (
	"evcharge-backend/handlers"
	"evcharge-backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func BookingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	booking := api.Group("/bookings", middleware.Protected())
	booking.Post("", middleware.OwnerRequired(), handlers.CreateBooking)
	booking.Get("", middleware.OperatorRequired(), handlers.GetAllBookings)
	booking.Get("/me", middleware.OwnerRequired(), handlers.GetMyBookings)
	booking.Get("/station/:stationId", middleware.OperatorRequired(), handlers.GetStationBookings)
	booking.Get("/:id", handlers.GetBooking)
	booking.Put("/:id", middleware.OwnerRequired(), handlers.UpdateBooking)
	booking.Post("/:id/confirm", middleware.OperatorRequired(), handlers.ConfirmBooking)
	booking.Post("/:id/cancel", middleware.OwnerRequired(), handlers.CancelBooking)
	booking.Post("/:id/operator-cancel", middleware.OperatorRequired(), handlers.CancelBookingByOperator)
	booking.Delete("/:id", middleware.BackofficeRequired(), handlers.DeleteBooking)
}
