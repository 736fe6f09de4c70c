package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"evcharge-backend/models"
	"evcharge-backend/repositories"
	"evcharge-backend/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	maxAdvanceBooking   = 7 * 24 * time.Hour
	minBookingDuration  = time.Hour
	maxBookingDuration  = 24 * time.Hour
	modificationLockout = 12 * time.Hour
)

// BookingNotifier records a notification for a booking owner. Failures are the
// caller's problem to log; they never abort the booking operation that
// triggered them.
type BookingNotifier interface {
	SendBookingConfirmation(ctx context.Context, recipientNIC string, bookingID uuid.UUID, stationName string, start, end time.Time) error
	SendBookingCancellation(ctx context.Context, recipientNIC string, bookingID uuid.UUID, stationName, reason string) error
	SendBookingReminder(ctx context.Context, recipientNIC string, bookingID uuid.UUID, stationName string, start time.Time) error
}

// BookingService drives the booking lifecycle: creation, modification,
// confirmation and cancellation, plus the slot accounting on the station.
type BookingService struct {
	bookings repositories.BookingRepository
	stations repositories.StationRepository
	notifier BookingNotifier
}

func NewBookingService(
	bookings repositories.BookingRepository,
	stations repositories.StationRepository,
	notifier BookingNotifier,
) *BookingService {
	return &BookingService{
		bookings: bookings,
		stations: stations,
		notifier: notifier,
	}
}

type CreateBookingInput struct {
	StationID uuid.UUID
	StartTime time.Time
	EndTime   time.Time
}

type UpdateBookingInput struct {
	StartTime *time.Time
	EndTime   *time.Time
	Status    *string
}

// CreateBooking validates the time window and station capacity, then persists
// a new Active booking and takes one slot from the station's available pool.
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput, ownerNIC string) (*models.Booking, error) {
	if err := validateBookingTimes(input.StartTime, input.EndTime); err != nil {
		return nil, err
	}

	station, err := s.stations.GetByID(ctx, input.StationID)
	if err != nil {
		return nil, err
	}
	if station == nil {
		return nil, fmt.Errorf("charging station %w", ErrNotFound)
	}
	if station.Status != models.StationStatusActive {
		return nil, reject("charging station is not active")
	}
	if station.AvailableSlots <= 0 {
		return nil, reject("no available slots at this charging station")
	}

	// The counter above is only a fast pre-filter; the overlap count against
	// totalSlots is the authoritative capacity check.
	overlapping, err := s.bookings.GetOverlapping(ctx, input.StationID, input.StartTime, input.EndTime)
	if err != nil {
		return nil, err
	}
	if len(overlapping) >= station.TotalSlots {
		return nil, reject("no available slots for the requested time period")
	}

	booking := &models.Booking{
		OwnerNIC:    ownerNIC,
		StationID:   input.StationID,
		StartTime:   input.StartTime.UTC(),
		EndTime:     input.EndTime.UTC(),
		Status:      models.BookingStatusActive,
		QRCode:      utils.GenerateQRToken(),
		TotalAmount: bookingAmount(input.StartTime, input.EndTime, station.PricePerHour),
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	if err := s.stations.AdjustAvailableSlots(ctx, input.StationID, -1); err != nil {
		log.Printf("Failed to decrement available slots for station %s: %v", input.StationID, err)
	}

	log.Printf("Booking created: %s for station %s", booking.ID, input.StationID)
	return booking, nil
}

// UpdateBooking modifies the time window of an Active booking owned by the
// caller. The booking may not be touched within 12 hours of its start time.
func (s *BookingService) UpdateBooking(ctx context.Context, id uuid.UUID, input UpdateBookingInput, ownerNIC string) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %w", ErrNotFound)
	}
	if booking.OwnerNIC != ownerNIC {
		return nil, ErrUnauthorized
	}
	if time.Now().UTC().Add(modificationLockout).After(booking.StartTime) {
		return nil, reject("cannot modify booking within 12 hours of start time")
	}
	if booking.Status != models.BookingStatusActive {
		return nil, reject("only active bookings can be updated")
	}

	if input.Status != nil && *input.Status != booking.Status {
		// Status changes go through the confirm/cancel paths so the station's
		// slot counter stays paired with them.
		return nil, reject("booking status cannot be changed through update")
	}

	if input.StartTime != nil || input.EndTime != nil {
		newStart := booking.StartTime
		if input.StartTime != nil {
			newStart = input.StartTime.UTC()
		}
		newEnd := booking.EndTime
		if input.EndTime != nil {
			newEnd = input.EndTime.UTC()
		}

		if err := validateBookingTimes(newStart, newEnd); err != nil {
			return nil, err
		}

		overlapping, err := s.bookings.GetOverlapping(ctx, booking.StationID, newStart, newEnd)
		if err != nil {
			return nil, err
		}
		conflicting := 0
		for _, other := range overlapping {
			if other.ID != booking.ID {
				conflicting++
			}
		}

		station, err := s.stations.GetByID(ctx, booking.StationID)
		if err != nil {
			return nil, err
		}
		if station == nil {
			return nil, fmt.Errorf("charging station %w", ErrNotFound)
		}
		if conflicting >= station.TotalSlots {
			return nil, reject("no available slots for the requested time period")
		}

		booking.StartTime = newStart
		booking.EndTime = newEnd
		booking.TotalAmount = bookingAmount(newStart, newEnd, station.PricePerHour)
	}

	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, err
	}

	log.Printf("Booking updated: %s", booking.ID)
	return booking, nil
}

// ConfirmBooking is a station operator action; any operator may confirm any
// Active booking. The confirmation notification is best-effort.
func (s *BookingService) ConfirmBooking(ctx context.Context, id uuid.UUID) (bool, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if booking == nil {
		return false, fmt.Errorf("booking %w", ErrNotFound)
	}
	if booking.Status != models.BookingStatusActive {
		return false, reject("only active bookings can be confirmed")
	}

	confirmed, err := s.bookings.Confirm(ctx, id)
	if err != nil {
		return false, err
	}
	if !confirmed {
		return false, nil
	}

	log.Printf("Booking confirmed: %s", id)

	if err := s.notifier.SendBookingConfirmation(ctx, booking.OwnerNIC, booking.ID, s.stationName(ctx, booking.StationID), booking.StartTime, booking.EndTime); err != nil {
		log.Printf("Failed to send confirmation notification for booking %s: %v", id, err)
	}

	return true, nil
}

// CancelBooking is the owner path: it honours the 12-hour lockout window and
// returns the slot to the station's pool on success.
func (s *BookingService) CancelBooking(ctx context.Context, id uuid.UUID, ownerNIC string) (bool, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if booking == nil {
		return false, fmt.Errorf("booking %w", ErrNotFound)
	}
	if booking.OwnerNIC != ownerNIC {
		return false, ErrUnauthorized
	}
	if time.Now().UTC().Add(modificationLockout).After(booking.StartTime) {
		return false, reject("cannot cancel booking within 12 hours of start time")
	}
	if booking.Status != models.BookingStatusActive && booking.Status != models.BookingStatusConfirmed {
		return false, reject("only active or confirmed bookings can be cancelled")
	}

	return s.cancel(ctx, booking, "Cancelled by user")
}

// CancelBookingByOperator skips the ownership check and the lockout window;
// operators may cancel at any time before completion.
func (s *BookingService) CancelBookingByOperator(ctx context.Context, id uuid.UUID, reason string) (bool, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if booking == nil {
		return false, fmt.Errorf("booking %w", ErrNotFound)
	}
	if booking.Status != models.BookingStatusActive && booking.Status != models.BookingStatusConfirmed {
		return false, reject("only active or confirmed bookings can be cancelled")
	}

	fullReason := "Cancelled by station operator"
	if reason != "" {
		fullReason += " - " + reason
	}
	return s.cancel(ctx, booking, fullReason)
}

func (s *BookingService) cancel(ctx context.Context, booking *models.Booking, reason string) (bool, error) {
	cancelled, err := s.bookings.Cancel(ctx, booking.ID)
	if err != nil {
		return false, err
	}
	if !cancelled {
		return false, nil
	}

	// Return the slot to the pool; this mirrors the decrement at creation.
	if err := s.stations.AdjustAvailableSlots(ctx, booking.StationID, 1); err != nil {
		log.Printf("Failed to increment available slots for station %s: %v", booking.StationID, err)
	}

	log.Printf("Booking cancelled: %s (%s)", booking.ID, reason)

	if err := s.notifier.SendBookingCancellation(ctx, booking.OwnerNIC, booking.ID, s.stationName(ctx, booking.StationID), reason); err != nil {
		log.Printf("Failed to send cancellation notification for booking %s: %v", booking.ID, err)
	}

	return true, nil
}

func (s *BookingService) GetBookingByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %w", ErrNotFound)
	}
	return booking, nil
}

func (s *BookingService) GetUserBookings(ctx context.Context, ownerNIC string) ([]models.Booking, error) {
	return s.bookings.GetByOwner(ctx, ownerNIC)
}

func (s *BookingService) GetStationBookings(ctx context.Context, stationID uuid.UUID) ([]models.Booking, error) {
	return s.bookings.GetByStation(ctx, stationID)
}

func (s *BookingService) GetAllBookings(ctx context.Context) ([]models.Booking, error) {
	return s.bookings.GetAll(ctx)
}

func (s *BookingService) DeleteBooking(ctx context.Context, id uuid.UUID) error {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if booking == nil {
		return fmt.Errorf("booking %w", ErrNotFound)
	}
	return s.bookings.Delete(ctx, id)
}

func (s *BookingService) stationName(ctx context.Context, stationID uuid.UUID) string {
	station, err := s.stations.GetByID(ctx, stationID)
	if err != nil || station == nil {
		return "Charging Station"
	}
	return station.Name
}

func validateBookingTimes(start, end time.Time) error {
	now := time.Now().UTC()

	if !start.After(now) {
		return reject("booking start time must be in the future")
	}
	if !end.After(start) {
		return reject("booking end time must be after start time")
	}
	if start.After(now.Add(maxAdvanceBooking)) {
		return reject("bookings can only be made up to 7 days in advance")
	}

	duration := end.Sub(start)
	if duration < minBookingDuration {
		return reject("minimum booking duration is 1 hour")
	}
	if duration > maxBookingDuration {
		return reject("maximum booking duration is 24 hours")
	}
	return nil
}

// bookingAmount computes duration * pricePerHour in decimal arithmetic from
// whole seconds, truncated to cents.
func bookingAmount(start, end time.Time, pricePerHour decimal.Decimal) decimal.Decimal {
	seconds := int64(end.Sub(start) / time.Second)
	hours := decimal.NewFromInt(seconds).Div(decimal.NewFromInt(3600))
	return hours.Mul(pricePerHour).Truncate(2)
}
