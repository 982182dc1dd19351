package state

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/milelog/backend/internal/domain"
)

// App is the owned, injected application-state object. It keeps an
// in-memory mirror of the persisted collections, serializes all writes
// through one mutex, and notifies subscribers after every successful
// mutation. Reads return copies so callers can never mutate owned state.
type App struct {
	store Store

	mu       sync.RWMutex
	trips    []domain.Trip
	vehicles []domain.Vehicle
	user     *domain.User

	subMu sync.Mutex
	subs  []func()
}

// Load builds an App from whatever the store currently holds. A missing or
// corrupt entry falls back to its empty default silently — bad persisted
// data must never prevent startup.
func Load(ctx context.Context, s Store) *App {
	a := &App{store: s}
	loadKey(ctx, s, KeyTrips, &a.trips)
	loadKey(ctx, s, KeyVehicles, &a.vehicles)
	loadKey(ctx, s, KeyUser, &a.user)
	return a
}

// loadKey reads one collection, zeroing dest again if the read fails partway.
func loadKey[T any](ctx context.Context, s Store, key string, dest *T) {
	if err := s.Read(ctx, key, dest); err != nil {
		if !errors.Is(err, ErrNoValue) {
			slog.Debug("state: ignoring unreadable entry", "key", key, "error", err)
		}
		var zero T
		*dest = zero
	}
}

// Subscribe registers fn to run after every successful mutation.
// Callbacks run synchronously on the mutating goroutine, after the state
// lock has been released, so they may read back through the App.
func (a *App) Subscribe(fn func()) {
	a.subMu.Lock()
	a.subs = append(a.subs, fn)
	a.subMu.Unlock()
}

func (a *App) notify() {
	a.subMu.Lock()
	subs := make([]func(), len(a.subs))
	copy(subs, a.subs)
	a.subMu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

// Trips returns a copy of the trip collection, most recent insertion first.
func (a *App) Trips() []domain.Trip {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]domain.Trip, len(a.trips))
	copy(out, a.trips)
	return out
}

// Vehicles returns a copy of the vehicle collection.
func (a *App) Vehicles() []domain.Vehicle {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]domain.Vehicle, len(a.vehicles))
	copy(out, a.vehicles)
	return out
}

// CurrentUser returns the active user, if any.
func (a *App) CurrentUser() (domain.User, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.user == nil {
		return domain.User{}, false
	}
	return *a.user, true
}

// AddTrip prepends a trip to the collection and persists it.
// Most-recent-first ordering is a property of insertion, not of a sort.
func (a *App) AddTrip(ctx context.Context, t domain.Trip) error {
	a.mu.Lock()
	trips := make([]domain.Trip, 0, len(a.trips)+1)
	trips = append(trips, t)
	trips = append(trips, a.trips...)

	if err := a.store.Write(ctx, KeyTrips, trips); err != nil {
		a.mu.Unlock()
		return fmt.Errorf("state.App.AddTrip: %w", err)
	}
	a.trips = trips
	a.mu.Unlock()

	a.notify()
	return nil
}

// DeleteTrip removes the trip with the given id. Deleting an absent id is a
// no-op, not an error.
func (a *App) DeleteTrip(ctx context.Context, id string) error {
	a.mu.Lock()
	trips := make([]domain.Trip, 0, len(a.trips))
	for _, t := range a.trips {
		if t.ID != id {
			trips = append(trips, t)
		}
	}
	if len(trips) == len(a.trips) {
		a.mu.Unlock()
		return nil
	}

	if err := a.store.Write(ctx, KeyTrips, trips); err != nil {
		a.mu.Unlock()
		return fmt.Errorf("state.App.DeleteTrip: %w", err)
	}
	a.trips = trips
	a.mu.Unlock()

	a.notify()
	return nil
}

// AddVehicle assigns a fresh id, prepends the vehicle, and persists the
// collection. The persisted record is returned.
func (a *App) AddVehicle(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error) {
	a.mu.Lock()
	v.ID = uuid.NewString()
	vehicles := make([]domain.Vehicle, 0, len(a.vehicles)+1)
	vehicles = append(vehicles, v)
	vehicles = append(vehicles, a.vehicles...)

	if err := a.store.Write(ctx, KeyVehicles, vehicles); err != nil {
		a.mu.Unlock()
		return domain.Vehicle{}, fmt.Errorf("state.App.AddVehicle: %w", err)
	}
	a.vehicles = vehicles
	a.mu.Unlock()

	a.notify()
	return v, nil
}

// UpdateVehicle replaces the vehicle with a matching id. Updating an absent
// id is a no-op, not an error.
func (a *App) UpdateVehicle(ctx context.Context, v domain.Vehicle) error {
	a.mu.Lock()
	idx := -1
	for i := range a.vehicles {
		if a.vehicles[i].ID == v.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		a.mu.Unlock()
		return nil
	}

	vehicles := make([]domain.Vehicle, len(a.vehicles))
	copy(vehicles, a.vehicles)
	vehicles[idx] = v

	if err := a.store.Write(ctx, KeyVehicles, vehicles); err != nil {
		a.mu.Unlock()
		return fmt.Errorf("state.App.UpdateVehicle: %w", err)
	}
	a.vehicles = vehicles
	a.mu.Unlock()

	a.notify()
	return nil
}

// DeleteVehicle removes the vehicle and clears VehicleID on every trip that
// referenced it. Both collections are persisted as one atomic unit, so a
// dangling reference can never be observed in the store. Deleting an absent
// id is a no-op.
func (a *App) DeleteVehicle(ctx context.Context, id string) error {
	a.mu.Lock()
	vehicles := make([]domain.Vehicle, 0, len(a.vehicles))
	for _, v := range a.vehicles {
		if v.ID != id {
			vehicles = append(vehicles, v)
		}
	}
	if len(vehicles) == len(a.vehicles) {
		a.mu.Unlock()
		return nil
	}

	trips := make([]domain.Trip, len(a.trips))
	copy(trips, a.trips)
	for i := range trips {
		if trips[i].VehicleID == id {
			trips[i].VehicleID = ""
		}
	}

	err := a.store.WriteAll(ctx, map[string]any{
		KeyVehicles: vehicles,
		KeyTrips:    trips,
	})
	if err != nil {
		a.mu.Unlock()
		return fmt.Errorf("state.App.DeleteVehicle: %w", err)
	}
	a.vehicles = vehicles
	a.trips = trips
	a.mu.Unlock()

	a.notify()
	return nil
}

// SetUser records u as the active session user.
func (a *App) SetUser(ctx context.Context, u domain.User) error {
	a.mu.Lock()
	if err := a.store.Write(ctx, KeyUser, &u); err != nil {
		a.mu.Unlock()
		return fmt.Errorf("state.App.SetUser: %w", err)
	}
	a.user = &u
	a.mu.Unlock()

	a.notify()
	return nil
}

// ClearUser ends the session. The absence marker (JSON null) is persisted
// so a restart comes back logged out.
func (a *App) ClearUser(ctx context.Context) error {
	a.mu.Lock()
	if err := a.store.Write(ctx, KeyUser, (*domain.User)(nil)); err != nil {
		a.mu.Unlock()
		return fmt.Errorf("state.App.ClearUser: %w", err)
	}
	a.user = nil
	a.mu.Unlock()

	a.notify()
	return nil
}
