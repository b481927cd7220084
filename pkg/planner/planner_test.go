package planner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/subway/pkg/ctdf"
	"github.com/travigo/subway/pkg/fare"
	"github.com/travigo/subway/pkg/network"
	"github.com/travigo/subway/pkg/pathfinder"
)

// Gyodae-Gangnam-Yangjae is the quick route, Gyodae-Nambu-Yangjae the short one.
func newTestNetwork(t *testing.T) *network.MemoryStore {
	t.Helper()
	ctx := context.Background()

	store := network.NewMemoryStore()
	for _, stationRef := range []string{"GYODAE", "GANGNAM", "YANGJAE", "NAMBU", "ISLAND-A", "ISLAND-B"} {
		require.NoError(t, store.SaveStation(ctx, &ctdf.Station{PrimaryIdentifier: stationRef, PrimaryName: stationRef}))
	}

	lines := []network.CreateLineRequest{
		{Identifier: "LINE-2", Name: "Line 2", Colour: "green", ExtraCharge: 100, UpStationRef: "GYODAE", DownStationRef: "GANGNAM", Distance: 10, Duration: 5},
		{Identifier: "SHINBUNDANG", Name: "Shinbundang", Colour: "red", ExtraCharge: 500, UpStationRef: "GANGNAM", DownStationRef: "YANGJAE", Distance: 10, Duration: 4},
		{Identifier: "LINE-3", Name: "Line 3", Colour: "orange", ExtraCharge: 200, UpStationRef: "GYODAE", DownStationRef: "NAMBU", Distance: 2, Duration: 6},
		{Identifier: "ISLAND", Name: "Island", Colour: "blue", UpStationRef: "ISLAND-A", DownStationRef: "ISLAND-B", Distance: 3, Duration: 3},
	}
	for _, request := range lines {
		_, err := network.CreateLine(ctx, store, request)
		require.NoError(t, err)
	}

	_, err := network.AddSection(ctx, store, "LINE-3", "NAMBU", "YANGJAE", 10, 6)
	require.NoError(t, err)

	return store
}

func stationRefs(plan *ctdf.PathPlan) []string {
	var refs []string
	for _, station := range plan.Stations {
		refs = append(refs, station.PrimaryIdentifier)
	}
	return refs
}

func TestFindPathByDistance(t *testing.T) {
	store := newTestNetwork(t)

	plan, err := FindPath(context.Background(), store, Query{
		SourceRef: "GYODAE",
		TargetRef: "YANGJAE",
		Criterion: pathfinder.CriterionDistance,
		Rider:     fare.RiderAdult,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"GYODAE", "NAMBU", "YANGJAE"}, stationRefs(plan))
	assert.Equal(t, 12, plan.Distance)
	assert.Equal(t, 12, plan.Duration)
	assert.Equal(t, 1550, plan.Fare)
}

func TestFindPathByDuration(t *testing.T) {
	store := newTestNetwork(t)

	tests := []struct {
		rider fare.RiderCategory
		fare  int
	}{
		{fare.RiderAdult, 1850},
		{fare.RiderYouth, 1200},
		{fare.RiderChild, 750},
		{fare.RiderInfant, 0},
	}

	for _, test := range tests {
		t.Run(test.rider.String(), func(t *testing.T) {
			plan, err := FindPath(context.Background(), store, Query{
				SourceRef: "GYODAE",
				TargetRef: "YANGJAE",
				Criterion: pathfinder.CriterionDuration,
				Rider:     test.rider,
			})
			require.NoError(t, err)

			assert.Equal(t, []string{"GYODAE", "GANGNAM", "YANGJAE"}, stationRefs(plan))
			assert.Equal(t, 20, plan.Distance)
			assert.Equal(t, 9, plan.Duration)
			assert.Equal(t, test.fare, plan.Fare)
		})
	}
}

func TestFindPathErrors(t *testing.T) {
	store := newTestNetwork(t)
	ctx := context.Background()

	_, err := FindPath(ctx, store, Query{SourceRef: "GYODAE", TargetRef: "GYODAE", Criterion: pathfinder.CriterionDistance})
	assert.ErrorIs(t, err, ctdf.ErrSameStation)

	_, err = FindPath(ctx, store, Query{SourceRef: "GYODAE", TargetRef: "NOWHERE", Criterion: pathfinder.CriterionDistance})
	assert.ErrorIs(t, err, ctdf.ErrStationNotFound)

	_, err = FindPath(ctx, store, Query{SourceRef: "GYODAE", TargetRef: "ISLAND-B", Criterion: pathfinder.CriterionDuration})
	assert.ErrorIs(t, err, ctdf.ErrNoRoute)
}

func TestFindPathSeesSectionChanges(t *testing.T) {
	store := newTestNetwork(t)
	ctx := context.Background()

	_, err := network.DeleteSection(ctx, store, "LINE-3", "NAMBU")
	require.NoError(t, err)

	plan, err := FindPath(ctx, store, Query{SourceRef: "GYODAE", TargetRef: "YANGJAE", Criterion: pathfinder.CriterionDistance})
	require.NoError(t, err)

	assert.Equal(t, []string{"GYODAE", "YANGJAE"}, stationRefs(plan))
	assert.Equal(t, 12, plan.Distance)

	_, err = FindPath(ctx, store, Query{SourceRef: "GYODAE", TargetRef: "NAMBU", Criterion: pathfinder.CriterionDistance})
	assert.ErrorIs(t, err, ctdf.ErrStationNotFound)
}
