// Package forms decodes and validates submitted form fields before any
// mutation reaches the external store.
package forms

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/yogeshtekawade0602/bicycle-project/pkg/dates"
	apperrors "github.com/yogeshtekawade0602/bicycle-project/pkg/errors"
)

// Action identifies the kind of dweller mutation requested by a form.
type Action string

const (
	ActionAdd    Action = "add_dweller"
	ActionEdit   Action = "edit_dweller"
	ActionDelete Action = "delete_dweller"
)

// ResidentForm holds a decoded dweller form submission. Date fields
// carry display form (MM/DD/YYYY) until normalized for storage.
type ResidentForm struct {
	ID                 string
	FirstName          string
	LastName           string
	Email              string
	Password           string
	PhoneNumber        string
	DateOfBirth        string
	Address            string
	RegistrationDate   string
	PreferredLanguage  string
	VerificationStatus string
	CreditBalance      float64
	Rating             float64
}

// ParseResidentForm decodes form values into a ResidentForm. Numeric
// fields are coerced with a 0 fallback; unset preferred_language
// defaults to "en" and verification_status to "pending".
func ParseResidentForm(values url.Values) *ResidentForm {
	form := &ResidentForm{
		ID:                 strings.TrimSpace(values.Get("user_id")),
		FirstName:          strings.TrimSpace(values.Get("first_name")),
		LastName:           strings.TrimSpace(values.Get("last_name")),
		Email:              strings.TrimSpace(values.Get("email")),
		Password:           values.Get("password"),
		PhoneNumber:        strings.TrimSpace(values.Get("phone_number")),
		DateOfBirth:        strings.TrimSpace(values.Get("date_of_birth")),
		Address:            strings.TrimSpace(values.Get("address")),
		RegistrationDate:   strings.TrimSpace(values.Get("registration_date")),
		PreferredLanguage:  strings.TrimSpace(values.Get("preferred_language")),
		VerificationStatus: strings.TrimSpace(values.Get("verification_status")),
		CreditBalance:      floatField(values.Get("credit_balance")),
		Rating:             floatField(values.Get("rating")),
	}

	if form.PreferredLanguage == "" {
		form.PreferredLanguage = "en"
	}
	if form.VerificationStatus == "" {
		form.VerificationStatus = "pending"
	}

	return form
}

func floatField(value string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return f
}

// requiredByAction lists required field names in reporting order. The
// first absent one names the validation failure.
func (f *ResidentForm) requiredByAction(action Action) []fieldValue {
	switch action {
	case ActionAdd:
		return []fieldValue{
			{"first_name", f.FirstName},
			{"last_name", f.LastName},
			{"email", f.Email},
			{"password", f.Password},
			{"date_of_birth", f.DateOfBirth},
			{"registration_date", f.RegistrationDate},
		}
	case ActionEdit:
		return []fieldValue{
			{"user_id", f.ID},
			{"first_name", f.FirstName},
			{"last_name", f.LastName},
			{"email", f.Email},
			{"date_of_birth", f.DateOfBirth},
			{"registration_date", f.RegistrationDate},
		}
	case ActionDelete:
		return []fieldValue{
			{"user_id", f.ID},
		}
	default:
		return nil
	}
}

type fieldValue struct {
	name  string
	value string
}

// Validate checks field presence and date format for the given action.
// A missing field and a malformed date are distinct failures; both name
// the offending field in user-visible text.
func (f *ResidentForm) Validate(action Action) error {
	required := f.requiredByAction(action)
	if required == nil {
		return apperrors.NewValidationError(fmt.Sprintf("unknown action %q", string(action)))
	}

	for _, field := range required {
		if field.value == "" {
			return apperrors.NewValidationError(fmt.Sprintf("%s is required", field.name))
		}
	}

	if action == ActionDelete {
		return nil
	}

	for _, field := range []fieldValue{
		{"date_of_birth", f.DateOfBirth},
		{"registration_date", f.RegistrationDate},
	} {
		if field.value == "" {
			continue
		}
		if _, err := dates.ToStorage(field.value); err != nil {
			return apperrors.NewValidationError(fmt.Sprintf("%s: invalid date format, expected MM/DD/YYYY", field.name))
		}
	}

	return nil
}
