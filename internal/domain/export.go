package domain

// TripExportRow is a single row in the full-data export: one row per trip,
// flattened for CSV and PDF rendering. The vehicle reference is resolved to
// a display name; trips with no vehicle carry "Unspecified" so the export
// matches the report groupings.
type TripExportRow struct {
	Date          string  `json:"date"` // "2006-01-02"
	StartLocation string  `json:"start_location"`
	EndLocation   string  `json:"end_location"`
	Distance      float64 `json:"distance"`
	Purpose       string  `json:"purpose"`
	PurposeDetail string  `json:"purpose_detail,omitempty"`
	Vehicle       string  `json:"vehicle"`
	Notes         string  `json:"notes,omitempty"`
}
