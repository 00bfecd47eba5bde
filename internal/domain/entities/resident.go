package entities

// Account status values. Residents are never physically removed;
// deactivation flips this flag and the record stays queryable.
const (
	AccountStatusActive   = "active"
	AccountStatusInactive = "inactive"
)

// Verification status values.
const (
	VerificationStatusPending  = "pending"
	VerificationStatusVerified = "verified"
)

// Resident represents a registered city dweller.
//
// DateOfBirth and RegistrationDate carry the display form (MM/DD/YYYY)
// on the way out of the repository and the storage form (YYYY-MM-DD) on
// the way in.
type Resident struct {
	ID                 string  `json:"id" db:"id"`
	FirstName          string  `json:"first_name" db:"first_name"`
	LastName           string  `json:"last_name" db:"last_name"`
	Email              string  `json:"email" db:"email"`
	PhoneNumber        string  `json:"phone_number" db:"phone_number"`
	DateOfBirth        string  `json:"date_of_birth" db:"date_of_birth"`
	Address            string  `json:"address" db:"address"`
	RegistrationDate   string  `json:"registration_date" db:"registration_date"`
	PasswordHash       string  `json:"-" db:"password_hash"`
	Salt               string  `json:"-" db:"salt"`
	PreferredLanguage  string  `json:"preferred_language" db:"preferred_language"`
	VerificationCode   string  `json:"-" db:"verification_code"`
	VerificationStatus string  `json:"verification_status" db:"verification_status"`
	AccountStatus      string  `json:"account_status" db:"account_status"`
	CreditBalance      float64 `json:"credit_balance" db:"credit_balance"`
	Rating             float64 `json:"rating" db:"rating"`
}
