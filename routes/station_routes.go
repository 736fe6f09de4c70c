package routes

import (
	"evcharge-backend/handlers"
	"evcharge-backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func StationRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	station := api.Group("/stations", middleware.Protected())
	station.Get("/active", handlers.GetActiveStations)
	station.Get("", middleware.OperatorRequired(), handlers.GetAllStations)
	station.Get("/:id", handlers.GetStation)
	station.Post("", middleware.BackofficeRequired(), handlers.CreateStation)
	station.Put("/:id", middleware.BackofficeRequired(), handlers.UpdateStation)
	station.Post("/:id/deactivate", middleware.BackofficeRequired(), handlers.DeactivateStation)
	station.Delete("/:id", middleware.BackofficeRequired(), handlers.DeleteStation)
}
