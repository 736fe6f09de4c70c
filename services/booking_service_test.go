package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"evcharge-backend/models"
	"evcharge-backend/repositories"
	"evcharge-backend/utils"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type testEnv struct {
	db            *gorm.DB
	bookings      repositories.BookingRepository
	stations      repositories.StationRepository
	notifications repositories.NotificationRepository
	notifier      *NotificationService
	service       *BookingService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.ChargingStation{}, &models.Booking{}, &models.Notification{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	bookings := repositories.NewBookingRepository(db)
	stations := repositories.NewStationRepository(db)
	notifications := repositories.NewNotificationRepository(db)
	notifier := NewNotificationService(notifications)

	return &testEnv{
		db:            db,
		bookings:      bookings,
		stations:      stations,
		notifications: notifications,
		notifier:      notifier,
		service:       NewBookingService(bookings, stations, notifier),
	}
}

func (e *testEnv) createStation(t *testing.T, totalSlots, availableSlots int, pricePerHour int64) *models.ChargingStation {
	t.Helper()

	station := &models.ChargingStation{
		Name:           "Test Station",
		Location:       "Test Location",
		Type:           models.StationTypeDC,
		TotalSlots:     totalSlots,
		AvailableSlots: availableSlots,
		Status:         models.StationStatusActive,
		PricePerHour:   decimal.NewFromInt(pricePerHour),
	}
	if err := e.stations.Create(context.Background(), station); err != nil {
		t.Fatalf("failed to create station: %v", err)
	}
	return station
}

// insertBooking writes a booking straight through the repository, bypassing
// the service's time validation, for lockout and state-machine tests.
func (e *testEnv) insertBooking(t *testing.T, stationID uuid.UUID, ownerNIC, status string, start, end time.Time) *models.Booking {
	t.Helper()

	booking := &models.Booking{
		OwnerNIC:    ownerNIC,
		StationID:   stationID,
		StartTime:   start,
		EndTime:     end,
		Status:      status,
		QRCode:      utils.GenerateQRToken(),
		TotalAmount: decimal.Zero,
	}
	if err := e.bookings.Create(context.Background(), booking); err != nil {
		t.Fatalf("failed to insert booking: %v", err)
	}
	return booking
}

func (e *testEnv) stationByID(t *testing.T, id uuid.UUID) *models.ChargingStation {
	t.Helper()

	station, err := e.stations.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("failed to load station: %v", err)
	}
	if station == nil {
		t.Fatalf("station %s not found", id)
	}
	return station
}

func expectRejection(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected rejection, got nil error")
	}
	if !IsRejection(err) {
		t.Fatalf("expected rejection, got: %v", err)
	}
}

func TestCreateBookingTimeRules(t *testing.T) {
	env := newTestEnv(t)
	station := env.createStation(t, 4, 4, 500)
	now := time.Now().UTC()

	cases := []struct {
		name  string
		start time.Time
		end   time.Time
	}{
		{"start in the past", now.Add(-time.Hour), now.Add(time.Hour)},
		{"start exactly now-ish", now.Add(-time.Second), now.Add(2 * time.Hour)},
		{"end before start", now.Add(20 * time.Hour), now.Add(18 * time.Hour)},
		{"end equals start", now.Add(20 * time.Hour), now.Add(20 * time.Hour)},
		{"more than 7 days ahead", now.Add(8 * 24 * time.Hour), now.Add(8*24*time.Hour + 2*time.Hour)},
		{"shorter than 1 hour", now.Add(20 * time.Hour), now.Add(20*time.Hour + 30*time.Minute)},
		{"longer than 24 hours", now.Add(20 * time.Hour), now.Add(45 * time.Hour)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.service.CreateBooking(context.Background(), CreateBookingInput{
				StationID: station.ID,
				StartTime: tc.start,
				EndTime:   tc.end,
			}, "990012345V")
			expectRejection(t, err)
		})
	}
}

func TestCreateBookingStationChecks(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now().UTC()
	window := CreateBookingInput{StartTime: now.Add(14 * time.Hour), EndTime: now.Add(16 * time.Hour)}

	t.Run("unknown station", func(t *testing.T) {
		input := window
		input.StationID = uuid.New()
		_, err := env.service.CreateBooking(context.Background(), input, "990012345V")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected not-found, got: %v", err)
		}
	})

	t.Run("inactive station", func(t *testing.T) {
		station := env.createStation(t, 4, 4, 500)
		station.Status = models.StationStatusMaintenance
		if err := env.stations.Update(context.Background(), station); err != nil {
			t.Fatalf("failed to update station: %v", err)
		}

		input := window
		input.StationID = station.ID
		_, err := env.service.CreateBooking(context.Background(), input, "990012345V")
		expectRejection(t, err)
	})

	t.Run("no available slots", func(t *testing.T) {
		station := env.createStation(t, 4, 0, 500)
		input := window
		input.StationID = station.ID
		_, err := env.service.CreateBooking(context.Background(), input, "990012345V")
		expectRejection(t, err)
	})
}

func TestCreateBookingComputesAmount(t *testing.T) {
	env := newTestEnv(t)
	station := env.createStation(t, 4, 4, 500)
	now := time.Now().UTC()

	booking, err := env.service.CreateBooking(context.Background(), CreateBookingInput{
		StationID: station.ID,
		StartTime: now.Add(14 * time.Hour),
		EndTime:   now.Add(16 * time.Hour),
	}, "990012345V")
	if err != nil {
		t.Fatalf("create booking failed: %v", err)
	}

	if !booking.TotalAmount.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("expected total amount 1000.00, got %s", booking.TotalAmount)
	}
	if booking.Status != models.BookingStatusActive {
		t.Fatalf("expected active status, got %s", booking.Status)
	}
	if booking.QRCode == "" {
		t.Fatal("expected a QR token to be generated")
	}
}

func TestBookingAmountFractionalHours(t *testing.T) {
	start := time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)
	price := decimal.NewFromInt(500)

	cases := []struct {
		name     string
		duration time.Duration
		want     string
	}{
		{"whole hours", 2 * time.Hour, "1000"},
		{"half hour", 90 * time.Minute, "750"},
		{"sub-minute remainder", time.Hour + 30*time.Minute + 30*time.Second, "754.16"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := bookingAmount(start, start.Add(tc.duration), price)
			want := decimal.RequireFromString(tc.want)
			if !got.Equal(want) {
				t.Fatalf("expected amount %s, got %s", want, got)
			}
		})
	}
}

func TestCreateAndCancelRoundTripsAvailableSlots(t *testing.T) {
	env := newTestEnv(t)
	station := env.createStation(t, 4, 4, 500)
	now := time.Now().UTC()

	booking, err := env.service.CreateBooking(context.Background(), CreateBookingInput{
		StationID: station.ID,
		StartTime: now.Add(14 * time.Hour),
		EndTime:   now.Add(16 * time.Hour),
	}, "990012345V")
	if err != nil {
		t.Fatalf("create booking failed: %v", err)
	}

	if got := env.stationByID(t, station.ID).AvailableSlots; got != 3 {
		t.Fatalf("expected 3 available slots after create, got %d", got)
	}

	cancelled, err := env.service.CancelBooking(context.Background(), booking.ID, "990012345V")
	if err != nil {
		t.Fatalf("cancel booking failed: %v", err)
	}
	if !cancelled {
		t.Fatal("expected cancellation to succeed")
	}

	if got := env.stationByID(t, station.ID).AvailableSlots; got != 4 {
		t.Fatalf("expected 4 available slots after cancel, got %d", got)
	}
}

func TestOverlapBoundariesAreExclusive(t *testing.T) {
	env := newTestEnv(t)
	// availableSlots deliberately above totalSlots so the overlap count, not
	// the counter pre-check, decides.
	station := env.createStation(t, 1, 5, 500)
	now := time.Now().UTC()
	base := now.Add(24 * time.Hour)

	env.insertBooking(t, station.ID, "990012345V", models.BookingStatusActive, base, base.Add(2*time.Hour))

	t.Run("touching interval is accepted", func(t *testing.T) {
		_, err := env.service.CreateBooking(context.Background(), CreateBookingInput{
			StationID: station.ID,
			StartTime: base.Add(2 * time.Hour),
			EndTime:   base.Add(4 * time.Hour),
		}, "880012345V")
		if err != nil {
			t.Fatalf("adjacent booking should be accepted, got: %v", err)
		}
	})

	t.Run("overlapping interval is rejected", func(t *testing.T) {
		_, err := env.service.CreateBooking(context.Background(), CreateBookingInput{
			StationID: station.ID,
			StartTime: base.Add(time.Hour),
			EndTime:   base.Add(3 * time.Hour),
		}, "770012345V")
		expectRejection(t, err)
	})
}

func TestCapacityFreedByCancellation(t *testing.T) {
	env := newTestEnv(t)
	station := env.createStation(t, 1, 1, 500)
	now := time.Now().UTC()

	bookingA, err := env.service.CreateBooking(context.Background(), CreateBookingInput{
		StationID: station.ID,
		StartTime: now.Add(14 * time.Hour),
		EndTime:   now.Add(16 * time.Hour),
	}, "990012345V")
	if err != nil {
		t.Fatalf("owner A booking failed: %v", err)
	}

	requestB := CreateBookingInput{
		StationID: station.ID,
		StartTime: now.Add(15 * time.Hour),
		EndTime:   now.Add(17 * time.Hour),
	}
	if _, err := env.service.CreateBooking(context.Background(), requestB, "880012345V"); err == nil {
		t.Fatal("owner B booking should be rejected while A holds the slot")
	}

	if _, err := env.service.CancelBooking(context.Background(), bookingA.ID, "990012345V"); err != nil {
		t.Fatalf("owner A cancel failed: %v", err)
	}

	if _, err := env.service.CreateBooking(context.Background(), requestB, "880012345V"); err != nil {
		t.Fatalf("owner B booking should succeed after A cancelled, got: %v", err)
	}
}

func TestOwnerLockoutWindow(t *testing.T) {
	env := newTestEnv(t)
	station := env.createStation(t, 4, 4, 500)
	now := time.Now().UTC()

	booking := env.insertBooking(t, station.ID, "990012345V", models.BookingStatusActive,
		now.Add(2*time.Hour), now.Add(4*time.Hour))

	newStart := now.Add(20 * time.Hour)
	_, err := env.service.UpdateBooking(context.Background(), booking.ID, UpdateBookingInput{
		StartTime: &newStart,
	}, "990012345V")
	expectRejection(t, err)

	_, err = env.service.CancelBooking(context.Background(), booking.ID, "990012345V")
	expectRejection(t, err)
}

func TestOperatorCancelBypassesLockout(t *testing.T) {
	env := newTestEnv(t)
	station := env.createStation(t, 4, 3, 500)
	now := time.Now().UTC()

	booking := env.insertBooking(t, station.ID, "990012345V", models.BookingStatusConfirmed,
		now.Add(2*time.Hour), now.Add(4*time.Hour))

	cancelled, err := env.service.CancelBookingByOperator(context.Background(), booking.ID, "maintenance")
	if err != nil {
		t.Fatalf("operator cancel failed: %v", err)
	}
	if !cancelled {
		t.Fatal("expected operator cancellation to succeed")
	}

	if got := env.stationByID(t, station.ID).AvailableSlots; got != 4 {
		t.Fatalf("expected slot returned to pool, got %d available", got)
	}

	notifications, err := env.notifications.GetByRelatedEntity(context.Background(), booking.ID.String(), models.RelatedEntityBooking)
	if err != nil {
		t.Fatalf("failed to load notifications: %v", err)
	}
	if len(notifications) != 1 {
		t.Fatalf("expected 1 cancellation notification, got %d", len(notifications))
	}
	if notifications[0].Type != models.NotificationBookingCancellation {
		t.Fatalf("unexpected notification type %s", notifications[0].Type)
	}
	if want := "Cancelled by station operator - maintenance"; !strings.Contains(notifications[0].Message, want) {
		t.Fatalf("expected reason %q in message %q", want, notifications[0].Message)
	}
}

func TestConfirmBooking(t *testing.T) {
	env := newTestEnv(t)
	station := env.createStation(t, 4, 4, 500)
	now := time.Now().UTC()

	booking, err := env.service.CreateBooking(context.Background(), CreateBookingInput{
		StationID: station.ID,
		StartTime: now.Add(14 * time.Hour),
		EndTime:   now.Add(16 * time.Hour),
	}, "990012345V")
	if err != nil {
		t.Fatalf("create booking failed: %v", err)
	}

	confirmed, err := env.service.ConfirmBooking(context.Background(), booking.ID)
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if !confirmed {
		t.Fatal("expected confirmation to succeed")
	}

	stored, err := env.bookings.GetByID(context.Background(), booking.ID)
	if err != nil || stored == nil {
		t.Fatalf("failed to reload booking: %v", err)
	}
	if stored.Status != models.BookingStatusConfirmed {
		t.Fatalf("expected confirmed status, got %s", stored.Status)
	}
	if stored.ConfirmedAt == nil {
		t.Fatal("expected confirmedAt to be set")
	}

	notifications, err := env.notifications.GetByRelatedEntity(context.Background(), booking.ID.String(), models.RelatedEntityBooking)
	if err != nil {
		t.Fatalf("failed to load notifications: %v", err)
	}
	if len(notifications) != 1 || notifications[0].Type != models.NotificationBookingConfirmation {
		t.Fatalf("expected exactly one confirmation notification, got %+v", notifications)
	}

	// Second confirm must be rejected: the booking is no longer Active.
	_, err = env.service.ConfirmBooking(context.Background(), booking.ID)
	expectRejection(t, err)
}

type failingNotifier struct{}

func (failingNotifier) SendBookingConfirmation(context.Context, string, uuid.UUID, string, time.Time, time.Time) error {
	return errors.New("notification store unavailable")
}

func (failingNotifier) SendBookingCancellation(context.Context, string, uuid.UUID, string, string) error {
	return errors.New("notification store unavailable")
}

func (failingNotifier) SendBookingReminder(context.Context, string, uuid.UUID, string, time.Time) error {
	return errors.New("notification store unavailable")
}

func TestNotificationFailureDoesNotFailPrimaryOperation(t *testing.T) {
	env := newTestEnv(t)
	service := NewBookingService(env.bookings, env.stations, failingNotifier{})
	station := env.createStation(t, 4, 4, 500)
	now := time.Now().UTC()

	booking, err := service.CreateBooking(context.Background(), CreateBookingInput{
		StationID: station.ID,
		StartTime: now.Add(14 * time.Hour),
		EndTime:   now.Add(16 * time.Hour),
	}, "990012345V")
	if err != nil {
		t.Fatalf("create booking failed: %v", err)
	}

	confirmed, err := service.ConfirmBooking(context.Background(), booking.ID)
	if err != nil {
		t.Fatalf("confirm must not fail on notification error, got: %v", err)
	}
	if !confirmed {
		t.Fatal("expected confirmation to succeed despite notifier failure")
	}

	cancelled, err := service.CancelBookingByOperator(context.Background(), booking.ID, "")
	if err != nil {
		t.Fatalf("cancel must not fail on notification error, got: %v", err)
	}
	if !cancelled {
		t.Fatal("expected cancellation to succeed despite notifier failure")
	}
}

func TestUpdateBooking(t *testing.T) {
	env := newTestEnv(t)
	station := env.createStation(t, 1, 5, 500)
	now := time.Now().UTC()

	booking := env.insertBooking(t, station.ID, "990012345V", models.BookingStatusActive,
		now.Add(20*time.Hour), now.Add(22*time.Hour))

	t.Run("wrong owner", func(t *testing.T) {
		newStart := now.Add(21 * time.Hour)
		_, err := env.service.UpdateBooking(context.Background(), booking.ID, UpdateBookingInput{StartTime: &newStart}, "880012345V")
		if !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected unauthorized, got: %v", err)
		}
	})

	t.Run("status override rejected", func(t *testing.T) {
		completed := models.BookingStatusCompleted
		_, err := env.service.UpdateBooking(context.Background(), booking.ID, UpdateBookingInput{Status: &completed}, "990012345V")
		expectRejection(t, err)
	})

	t.Run("own overlap excluded and amount recomputed", func(t *testing.T) {
		newStart := now.Add(21 * time.Hour)
		newEnd := now.Add(24 * time.Hour)

		updated, err := env.service.UpdateBooking(context.Background(), booking.ID, UpdateBookingInput{
			StartTime: &newStart,
			EndTime:   &newEnd,
		}, "990012345V")
		if err != nil {
			t.Fatalf("update failed: %v", err)
		}
		if !updated.TotalAmount.Equal(decimal.NewFromInt(1500)) {
			t.Fatalf("expected recomputed amount 1500.00, got %s", updated.TotalAmount)
		}
	})

	t.Run("conflict with another booking rejected", func(t *testing.T) {
		env.insertBooking(t, station.ID, "770012345V", models.BookingStatusConfirmed,
			now.Add(30*time.Hour), now.Add(32*time.Hour))

		newStart := now.Add(31 * time.Hour)
		newEnd := now.Add(33 * time.Hour)
		_, err := env.service.UpdateBooking(context.Background(), booking.ID, UpdateBookingInput{
			StartTime: &newStart,
			EndTime:   &newEnd,
		}, "990012345V")
		expectRejection(t, err)
	})

	t.Run("non-active booking rejected", func(t *testing.T) {
		confirmed := env.insertBooking(t, station.ID, "990012345V", models.BookingStatusConfirmed,
			now.Add(40*time.Hour), now.Add(42*time.Hour))

		newStart := now.Add(41 * time.Hour)
		_, err := env.service.UpdateBooking(context.Background(), confirmed.ID, UpdateBookingInput{StartTime: &newStart}, "990012345V")
		expectRejection(t, err)
	})
}

func TestCancelMissingBooking(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.CancelBooking(context.Background(), uuid.New(), "990012345V")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not-found, got: %v", err)
	}
	_, err = env.service.ConfirmBooking(context.Background(), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not-found, got: %v", err)
	}
}
