package services

import (
	"context"

	"github.com/yogeshtekawade0602/bicycle-project/internal/domain/entities"
	"github.com/yogeshtekawade0602/bicycle-project/internal/domain/repositories"
	apperrors "github.com/yogeshtekawade0602/bicycle-project/pkg/errors"
)

// RentalService coordinates the paired rental and bicycle writes for
// starting and stopping a rental. The two writes are sequential store
// calls with no transaction; a failure between them leaves the records
// out of step, matching the behavior of the record store's other
// multi-step flows.
type RentalService struct {
	rentals  repositories.RentalRepository
	bicycles repositories.BicycleRepository
}

// NewRentalService creates a new rental service
func NewRentalService(rentals repositories.RentalRepository, bicycles repositories.BicycleRepository) *RentalService {
	return &RentalService{
		rentals:  rentals,
		bicycles: bicycles,
	}
}

// Start opens an active rental for the resident and marks the bicycle
// in use.
func (s *RentalService) Start(ctx context.Context, dwellerID, bicycleID, lat, lng string) (*entities.Rental, error) {
	if dwellerID == "" {
		return nil, apperrors.NewValidationError("dweller id is required")
	}
	if bicycleID == "" {
		return nil, apperrors.NewValidationError("bike_id is required")
	}

	rental, err := s.rentals.Create(ctx, &entities.Rental{
		DwellerID: dwellerID,
		BicycleID: bicycleID,
		StartLat:  lat,
		StartLng:  lng,
	})
	if err != nil {
		return nil, err
	}

	if err := s.bicycles.SetStatus(ctx, bicycleID, entities.BicycleStatusInUse); err != nil {
		return nil, err
	}

	return rental, nil
}

// Stop completes the resident's most recent active rental and marks its
// bicycle available. When no active rental exists, a NotFound error is
// returned and no bicycle is touched.
func (s *RentalService) Stop(ctx context.Context, dwellerID, lat, lng string) (*entities.Rental, error) {
	if dwellerID == "" {
		return nil, apperrors.NewValidationError("dweller id is required")
	}

	rental, err := s.rentals.CompleteActive(ctx, dwellerID, lat, lng)
	if err != nil {
		return nil, err
	}

	if err := s.bicycles.SetStatus(ctx, rental.BicycleID, entities.BicycleStatusAvailable); err != nil {
		return nil, err
	}

	return rental, nil
}
