// Package report computes aggregate mileage statistics. Every function is a
// pure derivation over the collections it is passed: no state, no mutation.
package report

import (
	"math"
	"sort"
	"strconv"

	"github.com/milelog/backend/internal/domain"
)

// UnspecifiedBucket is the by-vehicle bucket name for trips that have no
// resolvable vehicle (no reference, or a dangling one).
const UnspecifiedBucket = "Unspecified"

// Bucket is one named mileage aggregate, rounded to a tenth.
type Bucket struct {
	Name  string  `json:"name"`
	Miles float64 `json:"miles"`
}

// Summary is the full report payload for the reports screen.
type Summary struct {
	TotalMiles      string   `json:"total_miles"` // formatted with one decimal, e.g. "15.0"
	TotalTrips      int      `json:"total_trips"`
	VehiclesTracked int      `json:"vehicles_tracked"`
	ByPurpose       []Bucket `json:"by_purpose"`
	ByVehicle       []Bucket `json:"by_vehicle"`
}

// Summarize assembles the Summary for the given collections.
func Summarize(trips []domain.Trip, vehicles []domain.Vehicle) Summary {
	return Summary{
		TotalMiles:      FormatMiles(TotalMiles(trips)),
		TotalTrips:      len(trips),
		VehiclesTracked: len(vehicles),
		ByPurpose:       ByPurpose(trips),
		ByVehicle:       ByVehicle(trips, vehicles),
	}
}

// TotalMiles is the sum of distance over all trips.
func TotalMiles(trips []domain.Trip) float64 {
	var sum float64
	for _, t := range trips {
		sum += t.Distance
	}
	return sum
}

// ByPurpose groups mileage by purpose category. Zero-valued categories are
// excluded and the result is sorted by mileage descending.
func ByPurpose(trips []domain.Trip) []Bucket {
	totals := make(map[string]float64)
	for _, t := range trips {
		totals[string(t.PurposeCategory)] += t.Distance
	}
	return sortedBuckets(totals)
}

// ByVehicle groups mileage by vehicle nickname. Trips with no matching
// vehicle (unset or dangling reference) bucket under UnspecifiedBucket.
// Zero-valued buckets are excluded and the result is sorted descending.
func ByVehicle(trips []domain.Trip, vehicles []domain.Vehicle) []Bucket {
	nicknames := make(map[string]string, len(vehicles))
	for _, v := range vehicles {
		nicknames[v.ID] = v.Nickname
	}

	totals := make(map[string]float64)
	for _, t := range trips {
		name, ok := nicknames[t.VehicleID]
		if !ok {
			name = UnspecifiedBucket
		}
		totals[name] += t.Distance
	}
	return sortedBuckets(totals)
}

// FormatMiles renders a mileage value with exactly one decimal place.
func FormatMiles(v float64) string {
	return strconv.FormatFloat(round1(v), 'f', 1, 64)
}

// sortedBuckets drops zero buckets and orders the rest by mileage
// descending, breaking ties by name so the output is deterministic.
func sortedBuckets(totals map[string]float64) []Bucket {
	out := make([]Bucket, 0, len(totals))
	for name, miles := range totals {
		if miles <= 0 {
			continue
		}
		out = append(out, Bucket{Name: name, Miles: round1(miles)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Miles != out[j].Miles {
			return out[i].Miles > out[j].Miles
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
