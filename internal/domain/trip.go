// Package domain contains the core data types for the milelog application.
// This package has no dependencies beyond the standard library and is
// imported by every other internal package (state, service, handler).
package domain

import "time"

// Trip represents one logged journey. Trips are immutable after creation:
// the only lifecycle operations are logging and deletion. The distance unit
// is whatever the user tracks in (miles or km) — the system never converts.
type Trip struct {
	ID              string          `json:"id"`
	Date            time.Time       `json:"date"`
	StartLocation   string          `json:"start_location"`
	EndLocation     string          `json:"end_location"`
	Distance        float64         `json:"distance"`
	PurposeCategory PurposeCategory `json:"purpose_category"`
	PurposeDetail   string          `json:"purpose_detail,omitempty"`
	VehicleID       string          `json:"vehicle_id,omitempty"` // optional link to a Vehicle; cleared when that vehicle is deleted
	Notes           string          `json:"notes,omitempty"`
}
