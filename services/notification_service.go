package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"evcharge-backend/models"
	"evcharge-backend/repositories"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const notificationTimeFormat = "2006-01-02 15:04"

// NotificationService records in-app notifications for users. It is the
// concrete BookingNotifier used by the booking service and the reminder job.
type NotificationService struct {
	notifications repositories.NotificationRepository
}

func NewNotificationService(notifications repositories.NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

type CreateNotificationInput struct {
	RecipientNIC      string
	Title             string
	Message           string
	Type              string
	RelatedEntityID   *string
	RelatedEntityType *string
	Priority          string
	ExpiresAt         *time.Time
	Meta              datatypes.JSONMap
}

func (s *NotificationService) CreateNotification(ctx context.Context, input CreateNotificationInput) (*models.Notification, error) {
	notification := &models.Notification{
		RecipientNIC:      input.RecipientNIC,
		Title:             input.Title,
		Message:           input.Message,
		Type:              input.Type,
		RelatedEntityID:   input.RelatedEntityID,
		RelatedEntityType: input.RelatedEntityType,
		Priority:          input.Priority,
		ExpiresAt:         input.ExpiresAt,
		Meta:              input.Meta,
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		return nil, err
	}

	log.Printf("Created notification %s for user %s", notification.ID, input.RecipientNIC)
	return notification, nil
}

func (s *NotificationService) SendBookingConfirmation(ctx context.Context, recipientNIC string, bookingID uuid.UUID, stationName string, start, end time.Time) error {
	message := fmt.Sprintf(
		"Your booking at %s has been confirmed for %s - %s. Your charging session is ready!",
		stationName, start.Format(notificationTimeFormat), end.Format(notificationTimeFormat),
	)

	_, err := s.CreateNotification(ctx, CreateNotificationInput{
		RecipientNIC:      recipientNIC,
		Title:             "Booking Confirmed",
		Message:           message,
		Type:              models.NotificationBookingConfirmation,
		RelatedEntityID:   relatedBooking(bookingID),
		RelatedEntityType: related(models.RelatedEntityBooking),
		Priority:          models.PriorityHigh,
		Meta: datatypes.JSONMap{
			"stationName": stationName,
			"startTime":   start,
			"endTime":     end,
			"bookingId":   bookingID.String(),
		},
	})
	return err
}

func (s *NotificationService) SendBookingCancellation(ctx context.Context, recipientNIC string, bookingID uuid.UUID, stationName, reason string) error {
	message := fmt.Sprintf("Your booking at %s has been cancelled", stationName)
	if reason != "" {
		message += ". Reason: " + reason
	}
	message += ". You can make a new booking anytime."

	_, err := s.CreateNotification(ctx, CreateNotificationInput{
		RecipientNIC:      recipientNIC,
		Title:             "Booking Cancelled",
		Message:           message,
		Type:              models.NotificationBookingCancellation,
		RelatedEntityID:   relatedBooking(bookingID),
		RelatedEntityType: related(models.RelatedEntityBooking),
		Priority:          models.PriorityHigh,
		Meta: datatypes.JSONMap{
			"stationName": stationName,
			"bookingId":   bookingID.String(),
			"reason":      reason,
		},
	})
	return err
}

// SendBookingReminder records a reminder that expires two hours after the
// booking's start time, so the cleanup sweep removes it once it is stale.
func (s *NotificationService) SendBookingReminder(ctx context.Context, recipientNIC string, bookingID uuid.UUID, stationName string, start time.Time) error {
	message := fmt.Sprintf(
		"Reminder: Your charging session at %s starts at %s. Don't forget to arrive on time!",
		stationName, start.Format(notificationTimeFormat),
	)
	expiresAt := start.Add(2 * time.Hour)

	_, err := s.CreateNotification(ctx, CreateNotificationInput{
		RecipientNIC:      recipientNIC,
		Title:             "Booking Reminder",
		Message:           message,
		Type:              models.NotificationBookingReminder,
		RelatedEntityID:   relatedBooking(bookingID),
		RelatedEntityType: related(models.RelatedEntityBooking),
		Priority:          models.PriorityNormal,
		ExpiresAt:         &expiresAt,
		Meta: datatypes.JSONMap{
			"stationName": stationName,
			"startTime":   start,
			"bookingId":   bookingID.String(),
		},
	})
	return err
}

// HasBookingReminder reports whether a reminder for this booking and recipient
// already exists. The reminder job uses it as its idempotency guard.
func (s *NotificationService) HasBookingReminder(ctx context.Context, bookingID uuid.UUID, recipientNIC string) (bool, error) {
	existing, err := s.notifications.GetByRelatedEntity(ctx, bookingID.String(), models.RelatedEntityBooking)
	if err != nil {
		return false, err
	}
	for _, notification := range existing {
		if notification.Type == models.NotificationBookingReminder && notification.RecipientNIC == recipientNIC {
			return true, nil
		}
	}
	return false, nil
}

func (s *NotificationService) GetUserNotifications(ctx context.Context, recipientNIC string, includeRead bool, limit, offset int) ([]models.Notification, error) {
	return s.notifications.GetByRecipient(ctx, recipientNIC, includeRead, limit, offset)
}

func (s *NotificationService) GetUnreadNotifications(ctx context.Context, recipientNIC string) ([]models.Notification, error) {
	return s.notifications.GetUnreadByRecipient(ctx, recipientNIC)
}

func (s *NotificationService) CountUnread(ctx context.Context, recipientNIC string) (int64, error) {
	return s.notifications.CountUnread(ctx, recipientNIC)
}

// MarkAsRead flips one notification to read; recipients may only touch their
// own notifications.
func (s *NotificationService) MarkAsRead(ctx context.Context, id uuid.UUID, recipientNIC string) error {
	notification, err := s.notifications.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if notification == nil {
		return fmt.Errorf("notification %w", ErrNotFound)
	}
	if notification.RecipientNIC != recipientNIC {
		return ErrUnauthorized
	}
	_, err = s.notifications.MarkAsRead(ctx, id)
	return err
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, recipientNIC string) (int64, error) {
	return s.notifications.MarkAllAsRead(ctx, recipientNIC)
}

// CleanupExpiredNotifications deletes every notification whose expiry has
// passed and returns how many went away.
func (s *NotificationService) CleanupExpiredNotifications(ctx context.Context) (int64, error) {
	deleted, err := s.notifications.DeleteExpired(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		log.Printf("Cleaned up %d expired notifications", deleted)
	}
	return deleted, nil
}

func relatedBooking(bookingID uuid.UUID) *string {
	id := bookingID.String()
	return &id
}

func related(entityType string) *string {
	return &entityType
}
