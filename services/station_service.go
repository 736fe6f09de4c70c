package services

import (
	"context"
	"fmt"
	"log"

	"evcharge-backend/models"
	"evcharge-backend/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StationService owns station CRUD plus the capacity bookkeeping that has to
// stay consistent with the booking lifecycle.
type StationService struct {
	stations repositories.StationRepository
	bookings repositories.BookingRepository
}

func NewStationService(stations repositories.StationRepository, bookings repositories.BookingRepository) *StationService {
	return &StationService{stations: stations, bookings: bookings}
}

type CreateStationInput struct {
	Name         string
	Location     string
	Type         string
	TotalSlots   int
	PricePerHour decimal.Decimal
}

type UpdateStationInput struct {
	Name         *string
	Location     *string
	Type         *string
	TotalSlots   *int
	PricePerHour *decimal.Decimal
	Status       *string
}

func (s *StationService) CreateStation(ctx context.Context, input CreateStationInput) (*models.ChargingStation, error) {
	station := &models.ChargingStation{
		Name:           input.Name,
		Location:       input.Location,
		Type:           input.Type,
		TotalSlots:     input.TotalSlots,
		AvailableSlots: input.TotalSlots,
		Status:         models.StationStatusActive,
		PricePerHour:   input.PricePerHour,
	}
	if err := s.stations.Create(ctx, station); err != nil {
		return nil, err
	}

	log.Printf("Charging station created: %s", station.ID)
	return station, nil
}

func (s *StationService) GetAllStations(ctx context.Context) ([]models.ChargingStation, error) {
	return s.stations.GetAll(ctx)
}

func (s *StationService) GetActiveStations(ctx context.Context) ([]models.ChargingStation, error) {
	return s.stations.GetActive(ctx)
}

func (s *StationService) GetStationByID(ctx context.Context, id uuid.UUID) (*models.ChargingStation, error) {
	station, err := s.stations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if station == nil {
		return nil, fmt.Errorf("charging station %w", ErrNotFound)
	}
	return station, nil
}

// UpdateStation applies partial updates. A change to totalSlots shifts
// availableSlots by the same delta, clamped at zero.
func (s *StationService) UpdateStation(ctx context.Context, id uuid.UUID, input UpdateStationInput) (*models.ChargingStation, error) {
	station, err := s.stations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if station == nil {
		return nil, fmt.Errorf("charging station %w", ErrNotFound)
	}

	if input.Name != nil && *input.Name != "" {
		station.Name = *input.Name
	}
	if input.Location != nil && *input.Location != "" {
		station.Location = *input.Location
	}
	if input.Type != nil && *input.Type != "" {
		station.Type = *input.Type
	}
	if input.TotalSlots != nil {
		delta := *input.TotalSlots - station.TotalSlots
		station.TotalSlots = *input.TotalSlots
		station.AvailableSlots += delta
		if station.AvailableSlots < 0 {
			station.AvailableSlots = 0
		}
	}
	if input.PricePerHour != nil {
		station.PricePerHour = *input.PricePerHour
	}
	if input.Status != nil && *input.Status != "" {
		station.Status = *input.Status
	}

	if err := s.stations.Update(ctx, station); err != nil {
		return nil, err
	}

	log.Printf("Charging station updated: %s", id)
	return station, nil
}

// DeactivateStation refuses while the station still has Active or Confirmed
// bookings against it.
func (s *StationService) DeactivateStation(ctx context.Context, id uuid.UUID) error {
	station, err := s.stations.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if station == nil {
		return fmt.Errorf("charging station %w", ErrNotFound)
	}

	activeBookings, err := s.bookings.CountActiveForStation(ctx, id)
	if err != nil {
		return err
	}
	if activeBookings > 0 {
		return reject("cannot deactivate station with active bookings")
	}

	station.Status = models.StationStatusInactive
	if err := s.stations.Update(ctx, station); err != nil {
		return err
	}

	log.Printf("Charging station deactivated: %s", id)
	return nil
}

func (s *StationService) DeleteStation(ctx context.Context, id uuid.UUID) error {
	station, err := s.stations.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if station == nil {
		return fmt.Errorf("charging station %w", ErrNotFound)
	}

	bookings, err := s.bookings.GetByStation(ctx, id)
	if err != nil {
		return err
	}
	if len(bookings) > 0 {
		return reject("cannot delete station with existing bookings")
	}

	if err := s.stations.Delete(ctx, id); err != nil {
		return err
	}

	log.Printf("Charging station deleted: %s", id)
	return nil
}
