package database

import (
	"fmt"
	"log"

	config "evcharge-backend/configs"
	"evcharge-backend/models"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.ChargingStation{},
		&models.Booking{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

func SeedAdmin() {
	adminEmail := config.Config("ADMIN_EMAIL")
	adminPassword := config.Config("ADMIN_PASSWORD")

	var count int64
	if err := DB.Model(&models.User{}).Where("email = ?", adminEmail).Count(&count).Error; err != nil {
		log.Fatalf("🔥 Failed to check for admin user: %v", err)
		return
	}
	if count > 0 {
		log.Println("Backoffice admin already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash admin password: %v", err)
		return
	}

	admin := models.User{
		NIC:       config.Config("ADMIN_NIC"),
		FirstName: "Admin",
		LastName:  "User",
		Email:     adminEmail,
		Password:  string(hashedPassword),
		Role:      models.RoleBackoffice,
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Fatalf("🔥 Failed to seed admin user: %v", err)
		return
	}

	log.Println("✅ Backoffice admin seeded successfully")
}

// SeedStations loads the demo station catalogue on an empty database.
func SeedStations() {
	var count int64
	if err := DB.Model(&models.ChargingStation{}).Count(&count).Error; err != nil {
		log.Fatalf("🔥 Failed to check for stations: %v", err)
		return
	}
	if count > 0 {
		return
	}

	stations := []models.ChargingStation{
		{
			Name: "City Center DC Fast Charger", Location: "Colombo 03",
			Type: models.StationTypeDC, TotalSlots: 4, AvailableSlots: 4,
			Status: models.StationStatusActive, PricePerHour: decimal.NewFromInt(500),
		},
		{
			Name: "Shopping Mall AC Charger", Location: "Colombo 05",
			Type: models.StationTypeAC, TotalSlots: 8, AvailableSlots: 8,
			Status: models.StationStatusActive, PricePerHour: decimal.NewFromInt(300),
		},
		{
			Name: "Highway Rest Stop Charger", Location: "Southern Expressway",
			Type: models.StationTypeDC, TotalSlots: 6, AvailableSlots: 6,
			Status: models.StationStatusActive, PricePerHour: decimal.NewFromInt(600),
		},
		{
			Name: "University Campus Charger", Location: "Moratuwa",
			Type: models.StationTypeAC, TotalSlots: 12, AvailableSlots: 12,
			Status: models.StationStatusActive, PricePerHour: decimal.NewFromInt(250),
		},
		{
			Name: "Business District Charger", Location: "Colombo 01",
			Type: models.StationTypeDC, TotalSlots: 3, AvailableSlots: 3,
			Status: models.StationStatusActive, PricePerHour: decimal.NewFromInt(550),
		},
	}
	if err := DB.Create(&stations).Error; err != nil {
		log.Fatalf("🔥 Failed to seed stations: %v", err)
		return
	}

	log.Printf("✅ Seeded %d charging stations", len(stations))
}
