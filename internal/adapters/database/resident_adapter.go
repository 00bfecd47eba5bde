package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/yogeshtekawade0602/bicycle-project/internal/domain/entities"
	"github.com/yogeshtekawade0602/bicycle-project/internal/domain/repositories"
	"github.com/yogeshtekawade0602/bicycle-project/internal/infrastructure/clients/postgres"
	"github.com/yogeshtekawade0602/bicycle-project/internal/infrastructure/observability"
	"github.com/yogeshtekawade0602/bicycle-project/pkg/dates"
	apperrors "github.com/yogeshtekawade0602/bicycle-project/pkg/errors"
)

const dwellersTable = "city_dwellers"

// ResidentAdapter implements the ResidentRepository interface over the
// external store.
type ResidentAdapter struct {
	client  *postgres.Client
	db      *goqu.Database
	metrics *observability.Metrics
}

// NewResidentAdapter creates a new resident adapter. metrics may be nil.
func NewResidentAdapter(client *postgres.Client, metrics *observability.Metrics) repositories.ResidentRepository {
	return &ResidentAdapter{
		client:  client,
		db:      goqu.New("postgres", client.DB()),
		metrics: metrics,
	}
}

func (a *ResidentAdapter) observe(ctx context.Context, op string, start time.Time) {
	if a.metrics != nil {
		observability.RecordDBMetric(ctx, a.metrics, op, time.Since(start))
	}
}

// residentColumns selects every listing column. Date and numeric columns
// are cast to text so a single malformed value defaults instead of
// failing the whole row.
func (a *ResidentAdapter) residentColumns() []interface{} {
	return []interface{}{
		"id", "first_name", "last_name", "email", "phone_number",
		goqu.Cast(goqu.C("date_of_birth"), "TEXT").As("date_of_birth"),
		"address",
		goqu.Cast(goqu.C("registration_date"), "TEXT").As("registration_date"),
		"preferred_language", "verification_code", "verification_status",
		"account_status",
		goqu.Cast(goqu.C("credit_balance"), "TEXT").As("credit_balance"),
		goqu.Cast(goqu.C("rating"), "TEXT").As("rating"),
	}
}

func scanResident(scan func(dest ...interface{}) error) (*entities.Resident, error) {
	resident := &entities.Resident{}
	var phoneNumber, dateOfBirth, address, registrationDate sql.NullString
	var preferredLanguage, verificationCode, verificationStatus sql.NullString
	var creditBalance, rating sql.NullString

	err := scan(
		&resident.ID,
		&resident.FirstName,
		&resident.LastName,
		&resident.Email,
		&phoneNumber,
		&dateOfBirth,
		&address,
		&registrationDate,
		&preferredLanguage,
		&verificationCode,
		&verificationStatus,
		&resident.AccountStatus,
		&creditBalance,
		&rating,
	)
	if err != nil {
		return nil, err
	}

	resident.PhoneNumber = phoneNumber.String
	resident.Address = address.String
	resident.PreferredLanguage = preferredLanguage.String
	if resident.PreferredLanguage == "" {
		resident.PreferredLanguage = "en"
	}
	resident.VerificationCode = verificationCode.String
	resident.VerificationStatus = verificationStatus.String
	if resident.VerificationStatus == "" {
		resident.VerificationStatus = entities.VerificationStatusPending
	}

	// A malformed stored value defaults the field, never drops the row.
	resident.DateOfBirth = displayDateOrEmpty(dateOfBirth.String)
	resident.RegistrationDate = displayDateOrEmpty(registrationDate.String)
	resident.CreditBalance = floatOrZero(creditBalance.String)
	resident.Rating = floatOrZero(rating.String)

	return resident, nil
}

func displayDateOrEmpty(iso string) string {
	if iso == "" {
		return ""
	}
	display, err := dates.ToDisplay(iso)
	if err != nil {
		return ""
	}
	return display
}

func floatOrZero(value string) float64 {
	if value == "" {
		return 0
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return f
}

// ListActive retrieves every resident with account_status=active.
func (a *ResidentAdapter) ListActive(ctx context.Context) ([]*entities.Resident, error) {
	defer a.observe(ctx, "resident.list_active", time.Now())

	query, args, err := a.db.Select(a.residentColumns()...).
		From(dwellersTable).
		Where(goqu.Ex{"account_status": entities.AccountStatusActive}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeError("failed to list city dwellers", err)
	}
	defer rows.Close()

	var residents []*entities.Resident
	for rows.Next() {
		resident, err := scanResident(rows.Scan)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan city dweller", err)
		}
		residents = append(residents, resident)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("failed to list city dwellers", err)
	}

	return residents, nil
}

// GetByID retrieves a resident by identifier regardless of status.
func (a *ResidentAdapter) GetByID(ctx context.Context, id string) (*entities.Resident, error) {
	defer a.observe(ctx, "resident.get_by_id", time.Now())

	query, args, err := a.db.Select(a.residentColumns()...).
		From(dwellersTable).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build get query", err)
	}

	row := a.client.DB().QueryRowContext(ctx, query, args...)
	resident, err := scanResident(row.Scan)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("city dweller with id %s not found", id))
	}
	if err != nil {
		return nil, storeError("failed to get city dweller", err)
	}

	return resident, nil
}

// Create inserts a new resident with registration defaults applied.
// Date fields on the entity must already carry storage form.
func (a *ResidentAdapter) Create(ctx context.Context, resident *entities.Resident) (*entities.Resident, error) {
	defer a.observe(ctx, "resident.create", time.Now())

	record := goqu.Record{
		"first_name":          resident.FirstName,
		"last_name":           resident.LastName,
		"email":               resident.Email,
		"phone_number":        sql.NullString{String: resident.PhoneNumber, Valid: resident.PhoneNumber != ""},
		"date_of_birth":       resident.DateOfBirth,
		"address":             sql.NullString{String: resident.Address, Valid: resident.Address != ""},
		"registration_date":   resident.RegistrationDate,
		"password_hash":       sql.NullString{String: resident.PasswordHash, Valid: resident.PasswordHash != ""},
		"salt":                sql.NullString{String: resident.Salt, Valid: resident.Salt != ""},
		"preferred_language":  resident.PreferredLanguage,
		"verification_code":   resident.VerificationCode,
		"verification_status": entities.VerificationStatusPending,
		"account_status":      entities.AccountStatusActive,
		"credit_balance":      0,
		"rating":              0,
	}

	query, args, err := a.db.Insert(dwellersTable).
		Rows(record).
		Returning("id").
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build insert query", err)
	}

	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&resident.ID); err != nil {
		return nil, storeError("failed to create city dweller", err)
	}

	resident.VerificationStatus = entities.VerificationStatusPending
	resident.AccountStatus = entities.AccountStatusActive
	resident.CreditBalance = 0
	resident.Rating = 0

	return resident, nil
}

// Update overwrites the editable fields of a resident. Date fields on
// the entity must already carry storage form.
func (a *ResidentAdapter) Update(ctx context.Context, id string, resident *entities.Resident) error {
	defer a.observe(ctx, "resident.update", time.Now())

	record := goqu.Record{
		"first_name":          resident.FirstName,
		"last_name":           resident.LastName,
		"email":               resident.Email,
		"phone_number":        sql.NullString{String: resident.PhoneNumber, Valid: resident.PhoneNumber != ""},
		"date_of_birth":       resident.DateOfBirth,
		"address":             sql.NullString{String: resident.Address, Valid: resident.Address != ""},
		"registration_date":   resident.RegistrationDate,
		"credit_balance":      resident.CreditBalance,
		"rating":              resident.Rating,
		"verification_status": resident.VerificationStatus,
		"preferred_language":  resident.PreferredLanguage,
	}

	query, args, err := a.db.Update(dwellersTable).
		Set(record).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return storeError("failed to update city dweller", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError("no changes were made")
	}

	return nil
}

// Deactivate soft-deletes a resident by flipping account_status. The
// record stays queryable by identifier.
func (a *ResidentAdapter) Deactivate(ctx context.Context, id string) error {
	defer a.observe(ctx, "resident.deactivate", time.Now())

	query, args, err := a.db.Update(dwellersTable).
		Set(goqu.Record{"account_status": entities.AccountStatusInactive}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build deactivate query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return storeError("failed to deactivate city dweller", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("city dweller with id %s not found", id))
	}

	return nil
}
