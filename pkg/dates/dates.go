// Package dates converts calendar dates between the display format used
// on forms and listings (MM/DD/YYYY) and the storage format used by the
// external store (ISO 8601 date).
package dates

import (
	"time"

	apperrors "github.com/yogeshtekawade0602/bicycle-project/pkg/errors"
)

const (
	// DisplayLayout is the MM/DD/YYYY form and listing format.
	DisplayLayout = "01/02/2006"

	// StorageLayout is the ISO 8601 date format held by the store.
	StorageLayout = "2006-01-02"
)

// ToStorage parses a MM/DD/YYYY string and renders it as an ISO date.
func ToStorage(display string) (string, error) {
	t, err := time.Parse(DisplayLayout, display)
	if err != nil {
		return "", apperrors.NewValidationError("invalid date format, expected MM/DD/YYYY")
	}
	return t.Format(StorageLayout), nil
}

// ToDisplay parses an ISO date string and renders it as MM/DD/YYYY.
func ToDisplay(iso string) (string, error) {
	t, err := time.Parse(StorageLayout, iso)
	if err != nil {
		return "", apperrors.NewValidationError("invalid date format, expected YYYY-MM-DD")
	}
	return t.Format(DisplayLayout), nil
}
