package forms_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yogeshtekawade0602/bicycle-project/internal/application/forms"
	apperrors "github.com/yogeshtekawade0602/bicycle-project/pkg/errors"
)

func fullFormValues() url.Values {
	return url.Values{
		"user_id":           {"dweller-1"},
		"first_name":        {"Ada"},
		"last_name":         {"Lovelace"},
		"email":             {"ada@example.com"},
		"password":          {"secret"},
		"phone_number":      {"+123456"},
		"date_of_birth":     {"12/10/1990"},
		"address":           {"1 Analytical Way"},
		"registration_date": {"01/15/2024"},
		"credit_balance":    {"12.50"},
		"rating":            {"4.5"},
	}
}

func TestParseResidentForm(t *testing.T) {
	form := forms.ParseResidentForm(fullFormValues())

	assert.Equal(t, "dweller-1", form.ID)
	assert.Equal(t, "Ada", form.FirstName)
	assert.Equal(t, "ada@example.com", form.Email)
	assert.Equal(t, 12.50, form.CreditBalance)
	assert.Equal(t, 4.5, form.Rating)
	assert.Equal(t, "en", form.PreferredLanguage)
	assert.Equal(t, "pending", form.VerificationStatus)
}

func TestParseResidentForm_TrimsAndDefaults(t *testing.T) {
	values := url.Values{
		"first_name":     {"  Ada  "},
		"credit_balance": {"not-a-number"},
	}

	form := forms.ParseResidentForm(values)

	assert.Equal(t, "Ada", form.FirstName)
	assert.Equal(t, 0.0, form.CreditBalance)
	assert.Equal(t, "en", form.PreferredLanguage)
	assert.Equal(t, "pending", form.VerificationStatus)
}

func TestValidate_Add(t *testing.T) {
	form := forms.ParseResidentForm(fullFormValues())
	assert.NoError(t, form.Validate(forms.ActionAdd))
}

func TestValidate_Add_MissingFieldNamesField(t *testing.T) {
	values := fullFormValues()
	values.Del("email")

	err := forms.ParseResidentForm(values).Validate(forms.ActionAdd)

	assert.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	assert.Contains(t, err.Error(), "email is required")
}

func TestValidate_Add_MalformedDate(t *testing.T) {
	values := fullFormValues()
	values.Set("date_of_birth", "1990-12-10")

	err := forms.ParseResidentForm(values).Validate(forms.ActionAdd)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "date_of_birth: invalid date format, expected MM/DD/YYYY")
}

func TestValidate_Edit(t *testing.T) {
	values := fullFormValues()
	values.Del("password")

	assert.NoError(t, forms.ParseResidentForm(values).Validate(forms.ActionEdit))
}

func TestValidate_Edit_RequiresID(t *testing.T) {
	values := fullFormValues()
	values.Del("user_id")

	err := forms.ParseResidentForm(values).Validate(forms.ActionEdit)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "user_id is required")
}

func TestValidate_Delete_OnlyNeedsID(t *testing.T) {
	form := forms.ParseResidentForm(url.Values{"user_id": {"dweller-1"}})

	assert.NoError(t, form.Validate(forms.ActionDelete))
}

func TestValidate_UnknownAction(t *testing.T) {
	err := forms.ParseResidentForm(fullFormValues()).Validate(forms.Action("promote_dweller"))

	assert.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}
