package entities

import "time"

// Rental status values.
const (
	RentalStatusActive    = "active"
	RentalStatusCompleted = "completed"
)

// Bicycle status values.
const (
	BicycleStatusAvailable = "available"
	BicycleStatusInUse     = "in_use"
)

// Rental represents a time-bounded bicycle checkout session linked to a
// resident and a bicycle.
type Rental struct {
	ID          string     `json:"id" db:"id"`
	DwellerID   string     `json:"dweller_id" db:"dweller_id"`
	BicycleID   string     `json:"bicycle_id" db:"bicycle_id"`
	Status      string     `json:"status" db:"status"`
	StartLat    string     `json:"start_location_lat" db:"start_location_lat"`
	StartLng    string     `json:"start_location_lng" db:"start_location_lng"`
	EndLat      string     `json:"end_location_lat" db:"end_location_lat"`
	EndLng      string     `json:"end_location_lng" db:"end_location_lng"`
	EndTime     *time.Time `json:"end_time,omitempty" db:"end_time"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

// Bicycle represents a rentable bicycle. Its status is mutated only as a
// side effect of rental start and stop.
type Bicycle struct {
	ID     string `json:"id" db:"id"`
	Status string `json:"status" db:"status"`
}
