package repositories

import (
	"context"

	"github.com/yogeshtekawade0602/bicycle-project/internal/domain/entities"
)

// ResidentRepository defines persistence operations over the
// city_dwellers collection.
type ResidentRepository interface {
	// ListActive returns every resident with account_status=active.
	// No ordering is imposed. Date fields carry display form and
	// numeric fields default to 0 when the stored value is malformed.
	ListActive(ctx context.Context) ([]*entities.Resident, error)

	// GetByID returns a resident regardless of account status.
	GetByID(ctx context.Context, id string) (*entities.Resident, error)

	// Create inserts a new active resident and returns it with the
	// store-generated identifier.
	Create(ctx context.Context, resident *entities.Resident) (*entities.Resident, error)

	// Update overwrites the editable fields of a resident. Zero
	// affected rows yields a NotFound error.
	Update(ctx context.Context, id string, resident *entities.Resident) error

	// Deactivate sets account_status=inactive. Zero affected rows
	// yields a NotFound error. The record is never deleted.
	Deactivate(ctx context.Context, id string) error
}
