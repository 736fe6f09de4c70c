package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"evcharge-backend/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func newStationService(t *testing.T) (*StationService, *testEnv) {
	t.Helper()
	env := newTestEnv(t)
	return NewStationService(env.stations, env.bookings), env
}

func TestCreateStationInitialisesSlots(t *testing.T) {
	service, _ := newStationService(t)

	station, err := service.CreateStation(context.Background(), CreateStationInput{
		Name:         "Airport AC Park",
		Location:     "Airport Terminal 1",
		Type:         models.StationTypeAC,
		TotalSlots:   8,
		PricePerHour: decimal.NewFromInt(300),
	})
	if err != nil {
		t.Fatalf("create station failed: %v", err)
	}

	if station.AvailableSlots != 8 {
		t.Fatalf("expected availableSlots to start at totalSlots, got %d", station.AvailableSlots)
	}
	if station.Status != models.StationStatusActive {
		t.Fatalf("expected new station to be active, got %s", station.Status)
	}
}

func TestUpdateStationSlotResize(t *testing.T) {
	service, env := newStationService(t)

	t.Run("growth adds to the pool", func(t *testing.T) {
		station := env.createStation(t, 4, 2, 500)
		six := 6

		updated, err := service.UpdateStation(context.Background(), station.ID, UpdateStationInput{TotalSlots: &six})
		if err != nil {
			t.Fatalf("update failed: %v", err)
		}
		if updated.AvailableSlots != 4 {
			t.Fatalf("expected availableSlots 4 after growing by 2, got %d", updated.AvailableSlots)
		}
	})

	t.Run("shrink clamps at zero", func(t *testing.T) {
		station := env.createStation(t, 4, 1, 500)
		two := 2

		updated, err := service.UpdateStation(context.Background(), station.ID, UpdateStationInput{TotalSlots: &two})
		if err != nil {
			t.Fatalf("update failed: %v", err)
		}
		if updated.AvailableSlots != 0 {
			t.Fatalf("expected availableSlots clamped at 0, got %d", updated.AvailableSlots)
		}
		if updated.TotalSlots != 2 {
			t.Fatalf("expected totalSlots 2, got %d", updated.TotalSlots)
		}
	})
}

func TestDeactivateStationGuard(t *testing.T) {
	service, env := newStationService(t)
	station := env.createStation(t, 4, 3, 500)
	now := time.Now().UTC()

	booking := env.insertBooking(t, station.ID, "990012345V", models.BookingStatusConfirmed,
		now.Add(14*time.Hour), now.Add(16*time.Hour))

	err := service.DeactivateStation(context.Background(), station.ID)
	expectRejection(t, err)

	if _, err := env.service.CancelBookingByOperator(context.Background(), booking.ID, "station closing"); err != nil {
		t.Fatalf("operator cancel failed: %v", err)
	}

	if err := service.DeactivateStation(context.Background(), station.ID); err != nil {
		t.Fatalf("deactivation should succeed once bookings are gone, got: %v", err)
	}
	if got := env.stationByID(t, station.ID).Status; got != models.StationStatusInactive {
		t.Fatalf("expected inactive status, got %s", got)
	}
}

func TestDeleteStationGuard(t *testing.T) {
	service, env := newStationService(t)
	station := env.createStation(t, 4, 3, 500)
	now := time.Now().UTC()

	// Even a cancelled booking keeps the station's history alive.
	env.insertBooking(t, station.ID, "990012345V", models.BookingStatusCancelled,
		now.Add(-16*time.Hour), now.Add(-14*time.Hour))

	err := service.DeleteStation(context.Background(), station.ID)
	expectRejection(t, err)
}

func TestStationNotFound(t *testing.T) {
	service, _ := newStationService(t)
	missing := uuid.New()

	if _, err := service.GetStationByID(context.Background(), missing); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not-found, got: %v", err)
	}
	if err := service.DeactivateStation(context.Background(), missing); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not-found, got: %v", err)
	}
	if err := service.DeleteStation(context.Background(), missing); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not-found, got: %v", err)
	}
}
