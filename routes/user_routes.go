package routes

import (
	"evcharge-backend/handlers"
	"evcharge-backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func UserRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	user := api.Group("/users", middleware.Protected())
	user.Get("", middleware.BackofficeRequired(), handlers.GetAllUsers)
	user.Get("/:nic", middleware.BackofficeRequired(), handlers.GetUserByNIC)
	user.Post("/:nic/activate", middleware.BackofficeRequired(), handlers.ActivateUser)
	user.Post("/:nic/deactivate", middleware.BackofficeRequired(), handlers.DeactivateUser)
	user.Post("/me/deactivate", middleware.OwnerRequired(), handlers.DeactivateOwnAccount)
}
