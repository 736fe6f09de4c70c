package jobs

import (
	"context"
	"log"
	"time"

	"evcharge-backend/models"
	"evcharge-backend/repositories"
	"evcharge-backend/services"
)

const (
	reminderWindow  = 2 * time.Hour
	cleanupInterval = 6 * time.Hour
)

// NotificationJob runs the periodic notification work: booking reminders on
// every tick, expired-notification cleanup once the 6-hour watermark is due.
type NotificationJob struct {
	bookings      repositories.BookingRepository
	stations      repositories.StationRepository
	notifications *services.NotificationService

	lastCleanup time.Time
}

func NewNotificationJob(
	bookings repositories.BookingRepository,
	stations repositories.StationRepository,
	notifications *services.NotificationService,
) *NotificationJob {
	return &NotificationJob{
		bookings:      bookings,
		stations:      stations,
		notifications: notifications,
		lastCleanup:   time.Now().UTC(),
	}
}

// Run is one scheduler tick. Either sub-task may fail without aborting the
// other.
func (j *NotificationJob) Run() {
	log.Println("Running job: NotificationSweep...")
	ctx := context.Background()

	if err := j.SendBookingReminders(ctx); err != nil {
		log.Printf("Error sending booking reminders: %v", err)
	}

	now := time.Now().UTC()
	if now.Sub(j.lastCleanup) >= cleanupInterval {
		if _, err := j.notifications.CleanupExpiredNotifications(ctx); err != nil {
			log.Printf("Error cleaning up expired notifications: %v", err)
		}
		j.lastCleanup = now
	}
}

// SendBookingReminders emits one reminder per confirmed booking starting
// within the next two hours. A booking that already has a reminder for its
// owner is skipped, so running the sweep twice sends nothing new.
func (j *NotificationJob) SendBookingReminders(ctx context.Context) error {
	now := time.Now().UTC()
	upcoming, err := j.bookings.GetUpcomingConfirmed(ctx, now, now.Add(reminderWindow))
	if err != nil {
		return err
	}

	for _, booking := range upcoming {
		if err := j.remind(ctx, booking); err != nil {
			log.Printf("Failed to send reminder for booking %s: %v", booking.ID, err)
		}
	}
	return nil
}

func (j *NotificationJob) remind(ctx context.Context, booking models.Booking) error {
	exists, err := j.notifications.HasBookingReminder(ctx, booking.ID, booking.OwnerNIC)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	stationName := "Charging Station"
	if station, err := j.stations.GetByID(ctx, booking.StationID); err == nil && station != nil {
		stationName = station.Name
	}

	if err := j.notifications.SendBookingReminder(ctx, booking.OwnerNIC, booking.ID, stationName, booking.StartTime); err != nil {
		return err
	}

	log.Printf("Sent booking reminder for booking %s to user %s", booking.ID, booking.OwnerNIC)
	return nil
}
