package main

import (
	"log"
	"time"

	"evcharge-backend/database"
	"evcharge-backend/handlers"
	"evcharge-backend/jobs"
	"evcharge-backend/repositories"
	"evcharge-backend/routes"
	"evcharge-backend/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
)

func main() {
	database.ConnectDB()
	database.Migrate()
	database.SeedAdmin()
	database.SeedStations()

	bookingRepo := repositories.NewBookingRepository(database.DB)
	stationRepo := repositories.NewStationRepository(database.DB)
	notificationRepo := repositories.NewNotificationRepository(database.DB)

	notificationService := services.NewNotificationService(notificationRepo)
	bookingService := services.NewBookingService(bookingRepo, stationRepo, notificationService)
	stationService := services.NewStationService(stationRepo, bookingRepo)

	handlers.Setup(bookingService, stationService, notificationService)

	notificationJob := jobs.NewNotificationJob(bookingRepo, stationRepo, notificationService)
	c := cron.New()
	c.AddFunc("*/30 * * * *", notificationJob.Run)
	go c.Start()
	defer c.Stop()
	log.Println("✅ Notification sweep scheduled successfully.")

	app := fiber.New(fiber.Config{
		AppName:       "EV Charge Booking",
		CaseSensitive: true,
		StrictRouting: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	routes.AuthRoutes(app)
	routes.UserRoutes(app)
	routes.StationRoutes(app)
	routes.BookingRoutes(app)
	routes.NotificationRoutes(app)

	log.Println("✅ Server is running on port 8080")
	if err := app.Listen(":8080"); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
