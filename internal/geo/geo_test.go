package geo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milelog/backend/internal/domain"
	"github.com/milelog/backend/internal/geo"
)

type providerFunc func(ctx context.Context) (geo.Coords, error)

func (f providerFunc) Position(ctx context.Context) (geo.Coords, error) { return f(ctx) }

func TestCurrentLocation_NoProvider(t *testing.T) {
	svc := geo.NewService(nil, "")

	_, err := svc.CurrentLocation(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestCurrentLocation_StaticProvider(t *testing.T) {
	svc := geo.NewService(geo.StaticProvider{Coords: geo.Coords{Lat: 40.7128, Lon: -74.0060}}, "")

	coords, err := svc.CurrentLocation(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 40.7128, coords.Lat)
	assert.Equal(t, -74.0060, coords.Lon)
}

func TestCurrentLocation_ProviderFailure(t *testing.T) {
	svc := geo.NewService(providerFunc(func(ctx context.Context) (geo.Coords, error) {
		return geo.Coords{}, errors.New("gps timeout")
	}), "")

	_, err := svc.CurrentLocation(context.Background())
	assert.ErrorIs(t, err, domain.ErrRequestFailed)
}

func TestCurrentLocation_OutOfRange(t *testing.T) {
	svc := geo.NewService(geo.StaticProvider{Coords: geo.Coords{Lat: 91, Lon: 0}}, "")

	_, err := svc.CurrentLocation(context.Background())
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAddressFromCoords_NoKeyFallsBackToCoordinates(t *testing.T) {
	svc := geo.NewService(nil, "")

	addr, err := svc.AddressFromCoords(context.Background(), geo.Coords{Lat: 51.5074, Lon: -0.1278})
	require.NoError(t, err)
	assert.Equal(t, "Lat: 51.5074, Lon: -0.1278", addr)
}

func TestAddressFromCoords_KeyedLookup(t *testing.T) {
	svc := geo.NewService(nil, "geo-key", geo.WithGeocodeDelay(0))

	addr, err := svc.AddressFromCoords(context.Background(), geo.Coords{Lat: 37.7749, Lon: -122.4194})
	require.NoError(t, err)
	assert.Equal(t, "San Francisco, CA, USA", addr)

	addr, err = svc.AddressFromCoords(context.Background(), geo.Coords{Lat: 48.8566, Lon: 2.3522})
	require.NoError(t, err)
	assert.Equal(t, "Approx. address for 48.86, 2.35", addr)
}

func TestAddressFromCoords_ContextCancelled(t *testing.T) {
	svc := geo.NewService(nil, "geo-key", geo.WithGeocodeDelay(time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.AddressFromCoords(ctx, geo.Coords{Lat: 1, Lon: 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAddressFromCoords_InvalidCoords(t *testing.T) {
	svc := geo.NewService(nil, "geo-key")

	_, err := svc.AddressFromCoords(context.Background(), geo.Coords{Lat: 0, Lon: -181})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
