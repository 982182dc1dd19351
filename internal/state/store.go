// Package state holds the application-state container: the single owner of
// the trip list, the vehicle list, and the current user. Handlers receive
// read access plus specific mutation methods — nothing mutates the
// collections directly. Every mutation persists the affected collection as
// one complete unit through a Store.
package state

import (
	"context"
	"errors"
)

// Keys for the three persisted collections. Each key holds one
// self-contained JSON document.
const (
	KeyTrips    = "milelog.trips"
	KeyVehicles = "milelog.vehicles"
	KeyUser     = "milelog.user"
)

// ErrNoValue is returned by Store.Read when the key has never been written.
var ErrNoValue = errors.New("no value for key")

// Store persists JSON-encoded values under opaque string keys.
// Implementations: store.PG (Postgres) in production, MemStore in tests.
type Store interface {
	// Read decodes the value stored under key into dest.
	// Returns ErrNoValue when the key is absent; any other error means the
	// stored value could not be read or decoded.
	Read(ctx context.Context, key string, dest any) error

	// Write replaces the value stored under key. The value is persisted
	// whole — there is no partial or incremental update.
	Write(ctx context.Context, key string, value any) error

	// WriteAll persists several entries as one atomic unit: either every
	// entry is written or none is.
	WriteAll(ctx context.Context, entries map[string]any) error
}
