package services

import (
	"context"
	"testing"
	"time"

	"evcharge-backend/models"
	"github.com/google/uuid"
)

func TestConfirmationMetadataRoundTrips(t *testing.T) {
	env := newTestEnv(t)
	bookingID := uuid.New()
	start := time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)

	err := env.notifier.SendBookingConfirmation(context.Background(),
		"990012345V", bookingID, "Harbor DC Hub", start, start.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("send confirmation failed: %v", err)
	}

	notifications, err := env.notifications.GetByRelatedEntity(context.Background(), bookingID.String(), models.RelatedEntityBooking)
	if err != nil {
		t.Fatalf("failed to load notifications: %v", err)
	}
	if len(notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifications))
	}

	meta := notifications[0].Meta
	if meta["stationName"] != "Harbor DC Hub" {
		t.Fatalf("expected stationName in metadata, got %v", meta["stationName"])
	}
	if meta["bookingId"] != bookingID.String() {
		t.Fatalf("expected bookingId in metadata, got %v", meta["bookingId"])
	}
}

func TestMarkAsReadOwnership(t *testing.T) {
	env := newTestEnv(t)
	bookingID := uuid.New()

	err := env.notifier.SendBookingCancellation(context.Background(),
		"990012345V", bookingID, "Harbor DC Hub", "Cancelled by user")
	if err != nil {
		t.Fatalf("send cancellation failed: %v", err)
	}

	notifications, err := env.notifications.GetByRelatedEntity(context.Background(), bookingID.String(), models.RelatedEntityBooking)
	if err != nil || len(notifications) != 1 {
		t.Fatalf("failed to load notification: %v", err)
	}

	if err := env.notifier.MarkAsRead(context.Background(), notifications[0].ID, "880012345V"); err != ErrUnauthorized {
		t.Fatalf("expected unauthorized for another user's notification, got: %v", err)
	}
	if err := env.notifier.MarkAsRead(context.Background(), notifications[0].ID, "990012345V"); err != nil {
		t.Fatalf("mark as read failed: %v", err)
	}

	count, err := env.notifier.CountUnread(context.Background(), "990012345V")
	if err != nil {
		t.Fatalf("count unread failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 unread after read, got %d", count)
	}
}
