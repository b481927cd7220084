package network

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/subway/pkg/ctdf"
)

func newTestCachedStore(t *testing.T) (*CachedStore, *MemoryStore, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })

	backing := newTestStore(t, "A", "B")

	return NewCachedStore(client, backing), backing, server
}

func TestCachedStoreCachesStations(t *testing.T) {
	ctx := context.Background()
	cached, _, server := newTestCachedStore(t)

	station, err := cached.GetStation(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, "A Station", station.PrimaryName)
	assert.True(t, server.Exists("station:A"))

	station, err = cached.GetStation(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, "A", station.PrimaryIdentifier)
}

func TestCachedStoreRemembersMissingStations(t *testing.T) {
	ctx := context.Background()
	cached, _, server := newTestCachedStore(t)

	_, err := cached.GetStation(ctx, "Z")
	assert.ErrorIs(t, err, ctdf.ErrStationNotFound)

	value, err := server.Get("station:Z")
	require.NoError(t, err)
	assert.Equal(t, missingStation, value)

	_, err = cached.GetStation(ctx, "Z")
	assert.ErrorIs(t, err, ctdf.ErrStationNotFound)
}

func TestCachedStoreClearsOnSave(t *testing.T) {
	ctx := context.Background()
	cached, _, _ := newTestCachedStore(t)

	_, err := cached.GetStation(ctx, "A")
	require.NoError(t, err)

	require.NoError(t, cached.SaveStation(ctx, &ctdf.Station{PrimaryIdentifier: "A", PrimaryName: "Renamed"}))

	station, err := cached.GetStation(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", station.PrimaryName)
}

func TestCachedStoreImportClearsMissingStation(t *testing.T) {
	ctx := context.Background()
	cached, _, server := newTestCachedStore(t)

	_, err := cached.GetStation(ctx, "C")
	require.ErrorIs(t, err, ctdf.ErrStationNotFound)
	require.True(t, server.Exists("station:C"))

	require.NoError(t, Import(ctx, cached, []SeedDocument{{
		Stations: []SeedStation{{Identifier: "C", Name: "Charlie"}},
		Lines: []SeedLine{{
			Identifier: "L2",
			Name:       "Line 2",
			Sections:   []SeedSection{{Up: "A", Down: "C", Distance: 3, Duration: 2}},
		}},
	}}))

	station, err := cached.GetStation(ctx, "C")
	require.NoError(t, err)
	assert.Equal(t, "Charlie", station.PrimaryName)

	line, err := cached.GetLine(ctx, "L2")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C"}, line.GetStations())
}
