package domain

import "fmt"

// Vehicle is a named asset a trip may be attributed to.
// IDs are assigned at creation and never reused.
type Vehicle struct {
	ID       string `json:"id"`
	Make     string `json:"make"`
	Model    string `json:"model"`
	Year     int    `json:"year"`
	Nickname string `json:"nickname"`
}

// DisplayName is the label shown for a vehicle in lists and used when
// matching free-text searches, e.g. `Truck (Ford F-150)`.
func (v Vehicle) DisplayName() string {
	return fmt.Sprintf("%s (%s %s)", v.Nickname, v.Make, v.Model)
}
