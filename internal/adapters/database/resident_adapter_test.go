package database_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yogeshtekawade0602/bicycle-project/internal/adapters/database"
	"github.com/yogeshtekawade0602/bicycle-project/internal/domain/entities"
	"github.com/yogeshtekawade0602/bicycle-project/internal/domain/repositories"
	"github.com/yogeshtekawade0602/bicycle-project/internal/infrastructure/clients/postgres"
	apperrors "github.com/yogeshtekawade0602/bicycle-project/pkg/errors"
)

func newResidentAdapter(t *testing.T) (repositories.ResidentRepository, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	adapter := database.NewResidentAdapter(postgres.NewClientFromDB(mockDB), nil)
	return adapter, mock
}

func residentColumns() []string {
	return []string{
		"id", "first_name", "last_name", "email", "phone_number",
		"date_of_birth", "address", "registration_date",
		"preferred_language", "verification_code", "verification_status",
		"account_status", "credit_balance", "rating",
	}
}

func TestResidentAdapter_ListActive(t *testing.T) {
	adapter, mock := newResidentAdapter(t)

	rows := sqlmock.NewRows(residentColumns()).
		AddRow("dweller-1", "Ada", "Lovelace", "ada@example.com", "+123456",
			"1990-12-10", "1 Analytical Way", "2024-01-15",
			"en", "ABC123", "verified", "active", "12.50", "4.5").
		AddRow("dweller-2", "Alan", "Turing", "alan@example.com", nil,
			nil, nil, "2024-02-01",
			nil, nil, nil, "active", nil, nil)

	mock.ExpectQuery(`SELECT .* FROM "city_dwellers"`).WillReturnRows(rows)

	residents, err := adapter.ListActive(context.Background())

	require.NoError(t, err)
	require.Len(t, residents, 2)

	assert.Equal(t, "12/10/1990", residents[0].DateOfBirth)
	assert.Equal(t, "01/15/2024", residents[0].RegistrationDate)
	assert.Equal(t, 12.50, residents[0].CreditBalance)
	assert.Equal(t, 4.5, residents[0].Rating)

	assert.Equal(t, "", residents[1].DateOfBirth)
	assert.Equal(t, "en", residents[1].PreferredLanguage)
	assert.Equal(t, entities.VerificationStatusPending, residents[1].VerificationStatus)
	assert.Equal(t, 0.0, residents[1].CreditBalance)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResidentAdapter_ListActive_MalformedValuesDefault(t *testing.T) {
	adapter, mock := newResidentAdapter(t)

	rows := sqlmock.NewRows(residentColumns()).
		AddRow("dweller-1", "Ada", "Lovelace", "ada@example.com", nil,
			"not-a-date", nil, "2024-01-15",
			"en", nil, "pending", "active", "garbage", "4.5")

	mock.ExpectQuery(`SELECT .* FROM "city_dwellers"`).WillReturnRows(rows)

	residents, err := adapter.ListActive(context.Background())

	require.NoError(t, err)
	require.Len(t, residents, 1)
	assert.Equal(t, "", residents[0].DateOfBirth)
	assert.Equal(t, "01/15/2024", residents[0].RegistrationDate)
	assert.Equal(t, 0.0, residents[0].CreditBalance)
	assert.Equal(t, 4.5, residents[0].Rating)
}

func TestResidentAdapter_GetByID_NotFound(t *testing.T) {
	adapter, mock := newResidentAdapter(t)

	mock.ExpectQuery(`SELECT .* FROM "city_dwellers"`).
		WillReturnRows(sqlmock.NewRows(residentColumns()))

	resident, err := adapter.GetByID(context.Background(), "missing")

	assert.Nil(t, resident)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestResidentAdapter_Create(t *testing.T) {
	adapter, mock := newResidentAdapter(t)

	mock.ExpectQuery(`INSERT INTO "city_dwellers"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("generated-id"))

	created, err := adapter.Create(context.Background(), &entities.Resident{
		FirstName:        "Ada",
		LastName:         "Lovelace",
		Email:            "ada@example.com",
		DateOfBirth:      "1990-12-10",
		RegistrationDate: "2024-01-15",
	})

	require.NoError(t, err)
	assert.Equal(t, "generated-id", created.ID)
	assert.Equal(t, entities.AccountStatusActive, created.AccountStatus)
	assert.Equal(t, entities.VerificationStatusPending, created.VerificationStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResidentAdapter_Update_NoRowsIsNotFound(t *testing.T) {
	adapter, mock := newResidentAdapter(t)

	mock.ExpectExec(`UPDATE "city_dwellers"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := adapter.Update(context.Background(), "missing", &entities.Resident{
		FirstName:        "Ada",
		LastName:         "Lovelace",
		Email:            "ada@example.com",
		DateOfBirth:      "1990-12-10",
		RegistrationDate: "2024-01-15",
	})

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	assert.Contains(t, err.Error(), "no changes were made")
}

func TestResidentAdapter_Update(t *testing.T) {
	adapter, mock := newResidentAdapter(t)

	mock.ExpectExec(`UPDATE "city_dwellers"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := adapter.Update(context.Background(), "dweller-1", &entities.Resident{
		FirstName:        "Ada",
		LastName:         "Lovelace",
		Email:            "ada@example.com",
		DateOfBirth:      "1990-12-10",
		RegistrationDate: "2024-01-15",
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResidentAdapter_Deactivate(t *testing.T) {
	adapter, mock := newResidentAdapter(t)

	mock.ExpectExec(`UPDATE "city_dwellers"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, adapter.Deactivate(context.Background(), "dweller-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResidentAdapter_Deactivate_NotFound(t *testing.T) {
	adapter, mock := newResidentAdapter(t)

	mock.ExpectExec(`UPDATE "city_dwellers"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := adapter.Deactivate(context.Background(), "missing")

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}
