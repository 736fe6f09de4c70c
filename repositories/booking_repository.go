package repositories

import (
	"context"
	"errors"
	"time"

	"evcharge-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingRepository defines the store operations the booking service depends on.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	GetByOwner(ctx context.Context, ownerNIC string) ([]models.Booking, error)
	GetByStation(ctx context.Context, stationID uuid.UUID) ([]models.Booking, error)
	GetAll(ctx context.Context) ([]models.Booking, error)
	Update(ctx context.Context, booking *models.Booking) error
	Confirm(ctx context.Context, id uuid.UUID) (bool, error)
	Cancel(ctx context.Context, id uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// GetOverlapping returns Active and Confirmed bookings at the station whose
	// interval overlaps [start, end). Touching boundaries do not overlap.
	GetOverlapping(ctx context.Context, stationID uuid.UUID, start, end time.Time) ([]models.Booking, error)
	CountActiveForStation(ctx context.Context, stationID uuid.UUID) (int64, error)
	GetUpcomingConfirmed(ctx context.Context, from, to time.Time) ([]models.Booking, error)
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).First(&booking, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) GetByOwner(ctx context.Context, ownerNIC string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Where("owner_nic = ?", ownerNIC).
		Order("created_at desc").
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) GetByStation(ctx context.Context, stationID uuid.UUID) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Where("station_id = ?", stationID).
		Order("start_time desc").
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) GetAll(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) Update(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Save(booking).Error
}

// Confirm flips an Active booking to Confirmed. The status guard in the WHERE
// clause keeps a concurrent double-confirm from both reporting success.
func (r *bookingRepository) Confirm(ctx context.Context, id uuid.UUID) (bool, error) {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).Model(&models.Booking{}).
		Where("id = ? AND status = ?", id, models.BookingStatusActive).
		Updates(map[string]any{
			"status":       models.BookingStatusConfirmed,
			"confirmed_at": now,
			"updated_at":   now,
		})
	return result.RowsAffected > 0, result.Error
}

func (r *bookingRepository) Cancel(ctx context.Context, id uuid.UUID) (bool, error) {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).Model(&models.Booking{}).
		Where("id = ? AND status IN ?", id, []string{models.BookingStatusActive, models.BookingStatusConfirmed}).
		Updates(map[string]any{
			"status":       models.BookingStatusCancelled,
			"cancelled_at": now,
			"updated_at":   now,
		})
	return result.RowsAffected > 0, result.Error
}

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Booking{}, "id = ?", id).Error
}

func (r *bookingRepository) GetOverlapping(ctx context.Context, stationID uuid.UUID, start, end time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	// Three overlap cases: existing booking spans the new start, spans the new
	// end, or sits fully inside the new interval. End boundaries are exclusive,
	// so a booking ending exactly at `start` does not count.
	overlap := r.db.
		Where("start_time <= ? AND end_time > ?", start, start).
		Or("start_time < ? AND end_time >= ?", end, end).
		Or("start_time >= ? AND end_time <= ?", start, end)

	err := r.db.WithContext(ctx).
		Where("station_id = ? AND status IN ?", stationID, []string{models.BookingStatusActive, models.BookingStatusConfirmed}).
		Where(overlap).
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) CountActiveForStation(ctx context.Context, stationID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Booking{}).
		Where("station_id = ? AND status IN ?", stationID, []string{models.BookingStatusActive, models.BookingStatusConfirmed}).
		Count(&count).Error
	return count, err
}

func (r *bookingRepository) GetUpcomingConfirmed(ctx context.Context, from, to time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Where("status = ? AND start_time >= ? AND start_time <= ?", models.BookingStatusConfirmed, from, to).
		Find(&bookings).Error
	return bookings, err
}
