// Package config resolves runtime settings for the booking platform from the
// environment, loading a local .env file when one is present.
package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config returns the value of an environment variable. Required keys
// (DATABASE_URL, JWT_SECRET, ADMIN_*) are validated where they are consumed.
func Config(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("Warning: .env file not found, reading from system environment variables")
	}

	return os.Getenv(key)
}
