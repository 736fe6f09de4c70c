package repositories

import (
	"context"
	"errors"
	"time"

	"evcharge-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StationRepository interface {
	Create(ctx context.Context, station *models.ChargingStation) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ChargingStation, error)
	GetAll(ctx context.Context) ([]models.ChargingStation, error)
	GetActive(ctx context.Context) ([]models.ChargingStation, error)
	Update(ctx context.Context, station *models.ChargingStation) error
	Delete(ctx context.Context, id uuid.UUID) error

	// AdjustAvailableSlots applies an atomic counter change (+1 / -1) without
	// reading the row first.
	AdjustAvailableSlots(ctx context.Context, id uuid.UUID, delta int) error
}

type stationRepository struct {
	db *gorm.DB
}

func NewStationRepository(db *gorm.DB) StationRepository {
	return &stationRepository{db: db}
}

func (r *stationRepository) Create(ctx context.Context, station *models.ChargingStation) error {
	return r.db.WithContext(ctx).Create(station).Error
}

func (r *stationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ChargingStation, error) {
	var station models.ChargingStation
	err := r.db.WithContext(ctx).First(&station, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &station, nil
}

func (r *stationRepository) GetAll(ctx context.Context) ([]models.ChargingStation, error) {
	var stations []models.ChargingStation
	err := r.db.WithContext(ctx).Order("name asc").Find(&stations).Error
	return stations, err
}

func (r *stationRepository) GetActive(ctx context.Context) ([]models.ChargingStation, error) {
	var stations []models.ChargingStation
	err := r.db.WithContext(ctx).
		Where("status = ?", models.StationStatusActive).
		Order("name asc").
		Find(&stations).Error
	return stations, err
}

func (r *stationRepository) Update(ctx context.Context, station *models.ChargingStation) error {
	return r.db.WithContext(ctx).Save(station).Error
}

func (r *stationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.ChargingStation{}, "id = ?", id).Error
}

func (r *stationRepository) AdjustAvailableSlots(ctx context.Context, id uuid.UUID, delta int) error {
	return r.db.WithContext(ctx).Model(&models.ChargingStation{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"available_slots": gorm.Expr("available_slots + ?", delta),
			"updated_at":      time.Now().UTC(),
		}).Error
}
