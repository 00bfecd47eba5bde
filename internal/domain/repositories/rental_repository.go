package repositories

import (
	"context"

	"github.com/yogeshtekawade0602/bicycle-project/internal/domain/entities"
)

// RentalRepository defines persistence operations over the rentals
// collection.
type RentalRepository interface {
	// Create inserts a rental with status=active and start coordinates.
	Create(ctx context.Context, rental *entities.Rental) (*entities.Rental, error)

	// CompleteActive marks the most recent active rental for the
	// resident as completed with end metadata and returns the updated
	// row. No active rental yields a NotFound error.
	CompleteActive(ctx context.Context, dwellerID, endLat, endLng string) (*entities.Rental, error)

	// HasActive reports whether the resident has any rental with
	// status=active.
	HasActive(ctx context.Context, dwellerID string) (bool, error)
}

// BicycleRepository defines status mutations over the bicycles
// collection.
type BicycleRepository interface {
	// SetStatus updates a bicycle's status. Zero affected rows yields
	// a NotFound error.
	SetStatus(ctx context.Context, bicycleID, status string) error
}
