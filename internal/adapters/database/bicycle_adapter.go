package database

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/yogeshtekawade0602/bicycle-project/internal/domain/repositories"
	"github.com/yogeshtekawade0602/bicycle-project/internal/infrastructure/clients/postgres"
	"github.com/yogeshtekawade0602/bicycle-project/internal/infrastructure/observability"
	apperrors "github.com/yogeshtekawade0602/bicycle-project/pkg/errors"
)

const bicyclesTable = "bicycles"

// BicycleAdapter implements the BicycleRepository interface over the
// external store.
type BicycleAdapter struct {
	client  *postgres.Client
	db      *goqu.Database
	metrics *observability.Metrics
}

// NewBicycleAdapter creates a new bicycle adapter. metrics may be nil.
func NewBicycleAdapter(client *postgres.Client, metrics *observability.Metrics) repositories.BicycleRepository {
	return &BicycleAdapter{
		client:  client,
		db:      goqu.New("postgres", client.DB()),
		metrics: metrics,
	}
}

// SetStatus updates a bicycle's status.
func (a *BicycleAdapter) SetStatus(ctx context.Context, bicycleID, status string) error {
	start := time.Now()
	defer func() {
		if a.metrics != nil {
			observability.RecordDBMetric(ctx, a.metrics, "bicycle.set_status", time.Since(start))
		}
	}()

	query, args, err := a.db.Update(bicyclesTable).
		Set(goqu.Record{"status": status}).
		Where(goqu.Ex{"id": bicycleID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build bicycle update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return storeError("failed to update bicycle status", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("bicycle with id %s not found", bicycleID))
	}

	return nil
}
