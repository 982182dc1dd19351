package domain

import (
	"sort"
	"strings"
)

// TripFilter selects a subsequence of a trip collection. The zero value
// matches every trip. Filters are pure: applying the same filter twice
// yields the same result as applying it once, and the input is never
// mutated.
type TripFilter struct {
	// Search is matched case-insensitively as a substring of the start and
	// end locations, the purpose detail, the notes, and the resolved
	// vehicle display name.
	Search string
	// Purpose, when set, requires an exact category match.
	Purpose PurposeCategory
	// VehicleID, when set, requires an exact vehicle match.
	VehicleID string
}

// Apply returns the trips matching f, sorted by date descending.
// The vehicle collection is consulted only to resolve display names for the
// free-text search; a dangling vehicle reference resolves to
// "Unknown Vehicle" so it is still searchable.
func (f TripFilter) Apply(trips []Trip, vehicles []Vehicle) []Trip {
	byID := make(map[string]Vehicle, len(vehicles))
	for _, v := range vehicles {
		byID[v.ID] = v
	}

	term := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]Trip, 0, len(trips))
	for _, t := range trips {
		if term != "" && !matchesTerm(t, term, resolveVehicleName(t.VehicleID, byID)) {
			continue
		}
		if f.Purpose != "" && t.PurposeCategory != f.Purpose {
			continue
		}
		if f.VehicleID != "" && t.VehicleID != f.VehicleID {
			continue
		}
		out = append(out, t)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// matchesTerm reports whether term appears in any of the trip's searchable
// text fields. term must already be lowercased.
func matchesTerm(t Trip, term, vehicleName string) bool {
	for _, field := range []string{
		t.StartLocation,
		t.EndLocation,
		t.PurposeDetail,
		t.Notes,
		vehicleName,
	} {
		if field != "" && strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// resolveVehicleName returns the display name for a trip's vehicle
// reference: empty when no vehicle is linked, "Unknown Vehicle" when the
// reference dangles.
func resolveVehicleName(vehicleID string, byID map[string]Vehicle) string {
	if vehicleID == "" {
		return ""
	}
	v, ok := byID[vehicleID]
	if !ok {
		return "Unknown Vehicle"
	}
	return v.DisplayName()
}
