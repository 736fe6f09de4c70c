package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateQRToken returns the opaque token attached to a booking at creation.
// It is generated once and never changes for the lifetime of the booking.
func GenerateQRToken() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}
