package services

import (
	"context"

	"github.com/yogeshtekawade0602/bicycle-project/internal/application/forms"
	"github.com/yogeshtekawade0602/bicycle-project/internal/domain/entities"
	"github.com/yogeshtekawade0602/bicycle-project/internal/domain/repositories"
	"github.com/yogeshtekawade0602/bicycle-project/pkg/credentials"
	"github.com/yogeshtekawade0602/bicycle-project/pkg/dates"
	apperrors "github.com/yogeshtekawade0602/bicycle-project/pkg/errors"
)

// ResidentService orchestrates validation, normalization and credential
// hashing around the resident repository.
type ResidentService struct {
	repo    repositories.ResidentRepository
	rentals repositories.RentalRepository
}

// NewResidentService creates a new resident service
func NewResidentService(repo repositories.ResidentRepository, rentals repositories.RentalRepository) *ResidentService {
	return &ResidentService{
		repo:    repo,
		rentals: rentals,
	}
}

// ListActive returns every active resident with display-format dates.
func (s *ResidentService) ListActive(ctx context.Context) ([]*entities.Resident, error) {
	return s.repo.ListActive(ctx)
}

// Get returns a resident by identifier.
func (s *ResidentService) Get(ctx context.Context, id string) (*entities.Resident, error) {
	return s.repo.GetByID(ctx, id)
}

// Register creates a resident from a full add-form submission: the form
// is validated, dates are normalized to storage form and the password is
// hashed with a fresh salt.
func (s *ResidentService) Register(ctx context.Context, form *forms.ResidentForm) (*entities.Resident, error) {
	if err := form.Validate(forms.ActionAdd); err != nil {
		return nil, err
	}

	dateOfBirth, err := dates.ToStorage(form.DateOfBirth)
	if err != nil {
		return nil, err
	}
	registrationDate, err := dates.ToStorage(form.RegistrationDate)
	if err != nil {
		return nil, err
	}

	digest, salt := credentials.HashWithNewSalt(form.Password)

	resident := &entities.Resident{
		FirstName:         form.FirstName,
		LastName:          form.LastName,
		Email:             form.Email,
		PhoneNumber:       form.PhoneNumber,
		DateOfBirth:       dateOfBirth,
		Address:           form.Address,
		RegistrationDate:  registrationDate,
		PasswordHash:      digest,
		Salt:              salt,
		PreferredLanguage: form.PreferredLanguage,
		VerificationCode:  credentials.VerificationCode(),
	}

	return s.repo.Create(ctx, resident)
}

// RegisterBasic creates a resident from the minimal standalone add form
// (name, email, phone and registration date only). No credentials are
// stored; the account remains pending verification.
func (s *ResidentService) RegisterBasic(ctx context.Context, form *forms.ResidentForm) (*entities.Resident, error) {
	for _, field := range []struct{ name, value string }{
		{"first_name", form.FirstName},
		{"last_name", form.LastName},
		{"email", form.Email},
		{"registration_date", form.RegistrationDate},
	} {
		if field.value == "" {
			return nil, apperrors.NewValidationError(field.name + " is required")
		}
	}

	registrationDate, err := dates.ToStorage(form.RegistrationDate)
	if err != nil {
		return nil, apperrors.NewValidationError("registration_date: invalid date format, expected MM/DD/YYYY")
	}

	var dateOfBirth string
	if form.DateOfBirth != "" {
		dateOfBirth, err = dates.ToStorage(form.DateOfBirth)
		if err != nil {
			return nil, apperrors.NewValidationError("date_of_birth: invalid date format, expected MM/DD/YYYY")
		}
	}

	resident := &entities.Resident{
		FirstName:         form.FirstName,
		LastName:          form.LastName,
		Email:             form.Email,
		PhoneNumber:       form.PhoneNumber,
		DateOfBirth:       dateOfBirth,
		RegistrationDate:  registrationDate,
		PreferredLanguage: form.PreferredLanguage,
		VerificationCode:  credentials.VerificationCode(),
	}

	return s.repo.Create(ctx, resident)
}

// Update overwrites the editable fields of a resident from an edit-form
// submission.
func (s *ResidentService) Update(ctx context.Context, form *forms.ResidentForm) error {
	if err := form.Validate(forms.ActionEdit); err != nil {
		return err
	}

	dateOfBirth, err := dates.ToStorage(form.DateOfBirth)
	if err != nil {
		return err
	}
	registrationDate, err := dates.ToStorage(form.RegistrationDate)
	if err != nil {
		return err
	}

	resident := &entities.Resident{
		FirstName:          form.FirstName,
		LastName:           form.LastName,
		Email:              form.Email,
		PhoneNumber:        form.PhoneNumber,
		DateOfBirth:        dateOfBirth,
		Address:            form.Address,
		RegistrationDate:   registrationDate,
		CreditBalance:      form.CreditBalance,
		Rating:             form.Rating,
		VerificationStatus: form.VerificationStatus,
		PreferredLanguage:  form.PreferredLanguage,
	}

	return s.repo.Update(ctx, form.ID, resident)
}

// Deactivate soft-deletes a resident. A resident with an active rental
// cannot be removed; the check and the mutation are separate store
// calls with no transaction between them.
func (s *ResidentService) Deactivate(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.NewValidationError("user_id is required")
	}

	hasActive, err := s.rentals.HasActive(ctx, id)
	if err != nil {
		return err
	}
	if hasActive {
		return apperrors.NewBlockedError("cannot remove city dweller with active rentals")
	}

	return s.repo.Deactivate(ctx, id)
}
