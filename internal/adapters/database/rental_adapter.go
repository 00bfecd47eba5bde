package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/yogeshtekawade0602/bicycle-project/internal/domain/entities"
	"github.com/yogeshtekawade0602/bicycle-project/internal/domain/repositories"
	"github.com/yogeshtekawade0602/bicycle-project/internal/infrastructure/clients/postgres"
	"github.com/yogeshtekawade0602/bicycle-project/internal/infrastructure/observability"
	apperrors "github.com/yogeshtekawade0602/bicycle-project/pkg/errors"
)

const rentalsTable = "rentals"

// RentalAdapter implements the RentalRepository interface over the
// external store.
type RentalAdapter struct {
	client  *postgres.Client
	db      *goqu.Database
	metrics *observability.Metrics
}

// NewRentalAdapter creates a new rental adapter. metrics may be nil.
func NewRentalAdapter(client *postgres.Client, metrics *observability.Metrics) repositories.RentalRepository {
	return &RentalAdapter{
		client:  client,
		db:      goqu.New("postgres", client.DB()),
		metrics: metrics,
	}
}

func (a *RentalAdapter) observe(ctx context.Context, op string, start time.Time) {
	if a.metrics != nil {
		observability.RecordDBMetric(ctx, a.metrics, op, time.Since(start))
	}
}

// Create inserts a rental with status=active and start coordinates.
func (a *RentalAdapter) Create(ctx context.Context, rental *entities.Rental) (*entities.Rental, error) {
	defer a.observe(ctx, "rental.create", time.Now())

	rental.Status = entities.RentalStatusActive
	rental.CreatedAt = time.Now()

	record := goqu.Record{
		"dweller_id":         rental.DwellerID,
		"bicycle_id":         rental.BicycleID,
		"status":             rental.Status,
		"start_location_lat": rental.StartLat,
		"start_location_lng": rental.StartLng,
		"created_at":         rental.CreatedAt,
	}

	query, args, err := a.db.Insert(rentalsTable).
		Rows(record).
		Returning("id").
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build rental insert query", err)
	}

	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&rental.ID); err != nil {
		return nil, storeError("failed to create rental", err)
	}

	return rental, nil
}

// CompleteActive marks the most recent active rental for the resident as
// completed and returns the updated row.
//
// Postgres cannot order an UPDATE directly, so the target row is picked
// with a subquery on created_at.
func (a *RentalAdapter) CompleteActive(ctx context.Context, dwellerID, endLat, endLng string) (*entities.Rental, error) {
	defer a.observe(ctx, "rental.complete_active", time.Now())

	endTime := time.Now()

	latest := a.db.Select("id").
		From(rentalsTable).
		Where(goqu.Ex{
			"dweller_id": dwellerID,
			"status":     entities.RentalStatusActive,
		}).
		Order(goqu.I("created_at").Desc()).
		Limit(1)

	query, args, err := a.db.Update(rentalsTable).
		Set(goqu.Record{
			"status":           entities.RentalStatusCompleted,
			"end_time":         endTime,
			"end_location_lat": endLat,
			"end_location_lng": endLng,
		}).
		Where(goqu.C("id").Eq(latest)).
		Returning("id", "dweller_id", "bicycle_id", "status", "created_at").
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build rental update query", err)
	}

	rental := &entities.Rental{
		EndLat:  endLat,
		EndLng:  endLng,
		EndTime: &endTime,
	}

	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&rental.ID,
		&rental.DwellerID,
		&rental.BicycleID,
		&rental.Status,
		&rental.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError("no active rental found for city dweller")
	}
	if err != nil {
		return nil, storeError("failed to complete rental", err)
	}

	return rental, nil
}

// HasActive reports whether the resident has any active rental.
func (a *RentalAdapter) HasActive(ctx context.Context, dwellerID string) (bool, error) {
	defer a.observe(ctx, "rental.has_active", time.Now())

	query, args, err := a.db.Select(goqu.COUNT("*")).
		From(rentalsTable).
		Where(goqu.Ex{
			"dweller_id": dwellerID,
			"status":     entities.RentalStatusActive,
		}).
		ToSQL()
	if err != nil {
		return false, apperrors.NewInternalError("failed to build rental count query", err)
	}

	var count int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, storeError("failed to check active rentals", err)
	}

	return count > 0, nil
}
