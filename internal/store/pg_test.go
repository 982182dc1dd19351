package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milelog/backend/internal/domain"
	"github.com/milelog/backend/internal/state"
	"github.com/milelog/backend/internal/store"
	"github.com/milelog/backend/testutil"
)

// newTestStore opens a transaction against the test database and returns a
// PG store backed by it. The transaction is rolled back when the test
// finishes, giving free per-test isolation.
func newTestStore(t *testing.T) *store.PG {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})

	return store.NewPG(tx)
}

func TestPG_Read_MissingKey(t *testing.T) {
	s := newTestStore(t)

	var trips []domain.Trip
	err := s.Read(context.Background(), state.KeyTrips, &trips)

	assert.ErrorIs(t, err, state.ErrNoValue)
}

func TestPG_WriteRead_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	in := []domain.Vehicle{
		{ID: "v1", Make: "Ford", Model: "F-150", Year: 2021, Nickname: "Truck"},
		{ID: "v2", Make: "Honda", Model: "Civic", Year: 2019, Nickname: "Commuter"},
	}
	require.NoError(t, s.Write(ctx, state.KeyVehicles, in))

	var out []domain.Vehicle
	require.NoError(t, s.Read(ctx, state.KeyVehicles, &out))
	assert.Equal(t, in, out)
}

func TestPG_Write_ReplacesWholeDocument(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Write(ctx, state.KeyTrips, []string{"a", "b", "c"}))
	require.NoError(t, s.Write(ctx, state.KeyTrips, []string{"only"}))

	var out []string
	require.NoError(t, s.Read(ctx, state.KeyTrips, &out))
	assert.Equal(t, []string{"only"}, out)
}

func TestPG_Write_NullSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Logout persists a JSON null as the absence marker.
	require.NoError(t, s.Write(ctx, state.KeyUser, (*domain.User)(nil)))

	var u *domain.User
	require.NoError(t, s.Read(ctx, state.KeyUser, &u))
	assert.Nil(t, u)
}

func TestPG_WriteAll_PersistsEveryEntry(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.WriteAll(ctx, map[string]any{
		state.KeyTrips:    []string{"t1"},
		state.KeyVehicles: []string{"v1"},
	})
	require.NoError(t, err)

	var trips, vehicles []string
	require.NoError(t, s.Read(ctx, state.KeyTrips, &trips))
	require.NoError(t, s.Read(ctx, state.KeyVehicles, &vehicles))
	assert.Equal(t, []string{"t1"}, trips)
	assert.Equal(t, []string{"v1"}, vehicles)
}
