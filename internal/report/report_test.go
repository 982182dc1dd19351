package report_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milelog/backend/internal/domain"
	"github.com/milelog/backend/internal/report"
)

func trip(distance float64, purpose domain.PurposeCategory, vehicleID string) domain.Trip {
	return domain.Trip{
		ID:              "t-" + string(purpose),
		Date:            time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		StartLocation:   "A",
		EndLocation:     "B",
		Distance:        distance,
		PurposeCategory: purpose,
		VehicleID:       vehicleID,
	}
}

func TestSummarize_TwoTripScenario(t *testing.T) {
	trips := []domain.Trip{
		trip(10, domain.PurposeBusiness, ""),
		trip(5, domain.PurposePersonal, ""),
	}

	s := report.Summarize(trips, nil)

	assert.Equal(t, "15.0", s.TotalMiles)
	assert.Equal(t, 2, s.TotalTrips)
	require.Len(t, s.ByPurpose, 2)
	assert.Equal(t, report.Bucket{Name: "Business", Miles: 10.0}, s.ByPurpose[0])
	assert.Equal(t, report.Bucket{Name: "Personal", Miles: 5.0}, s.ByPurpose[1])
}

func TestByPurpose_ExcludesZeroBuckets_SortsDescending(t *testing.T) {
	trips := []domain.Trip{
		trip(3, domain.PurposeCommute, ""),
		trip(20, domain.PurposeBusiness, ""),
		trip(7, domain.PurposeMedical, ""),
	}

	buckets := report.ByPurpose(trips)

	require.Len(t, buckets, 3) // no Personal/Charity/Other buckets
	assert.Equal(t, "Business", buckets[0].Name)
	assert.Equal(t, "Medical", buckets[1].Name)
	assert.Equal(t, "Commute", buckets[2].Name)
}

func TestByVehicle_UnspecifiedBucketAndDanglingRefs(t *testing.T) {
	vehicles := []domain.Vehicle{
		{ID: "v1", Nickname: "Truck", Make: "Ford", Model: "F-150"},
	}
	trips := []domain.Trip{
		trip(12, domain.PurposeBusiness, "v1"),
		trip(4, domain.PurposePersonal, ""),       // no vehicle
		trip(6, domain.PurposeCommute, "deleted"), // dangling reference
	}

	buckets := report.ByVehicle(trips, vehicles)

	require.Len(t, buckets, 2)
	assert.Equal(t, report.Bucket{Name: "Truck", Miles: 12.0}, buckets[0])
	assert.Equal(t, report.Bucket{Name: report.UnspecifiedBucket, Miles: 10.0}, buckets[1])
}

// Per-purpose and per-vehicle buckets must each partition the total: their
// sums equal total mileage for any trip collection.
func TestBuckets_SumToTotal(t *testing.T) {
	vehicles := []domain.Vehicle{
		{ID: "v1", Nickname: "Truck"},
		{ID: "v2", Nickname: "Commuter"},
	}
	trips := []domain.Trip{
		trip(10.4, domain.PurposeBusiness, "v1"),
		trip(5.3, domain.PurposePersonal, "v2"),
		trip(2.8, domain.PurposeCommute, "v2"),
		trip(9.5, domain.PurposeBusiness, ""),
	}

	total := report.TotalMiles(trips)

	var byPurpose, byVehicle float64
	for _, b := range report.ByPurpose(trips) {
		byPurpose += b.Miles
	}
	for _, b := range report.ByVehicle(trips, vehicles) {
		byVehicle += b.Miles
	}

	assert.InDelta(t, total, byPurpose, 0.05)
	assert.InDelta(t, total, byVehicle, 0.05)
}

func TestSummarize_EmptyCollection(t *testing.T) {
	s := report.Summarize(nil, nil)

	assert.Equal(t, "0.0", s.TotalMiles)
	assert.Zero(t, s.TotalTrips)
	assert.Empty(t, s.ByPurpose)
	assert.Empty(t, s.ByVehicle)
}

func TestFormatMiles(t *testing.T) {
	assert.Equal(t, "15.0", report.FormatMiles(15))
	assert.Equal(t, "0.1", report.FormatMiles(0.05001))
	assert.Equal(t, "1234.5", report.FormatMiles(1234.4999))
}
