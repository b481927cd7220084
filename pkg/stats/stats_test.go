package stats

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/subway/pkg/ctdf"
	"github.com/travigo/subway/pkg/network"
)

func TestGetNetworkStats(t *testing.T) {
	ctx := context.Background()
	store := network.NewMemoryStore()

	for _, stationRef := range []string{"A", "B", "C", "D"} {
		require.NoError(t, store.SaveStation(ctx, &ctdf.Station{PrimaryIdentifier: stationRef, PrimaryName: stationRef}))
	}
	for _, request := range []network.CreateLineRequest{
		{Identifier: "RED", Name: "Red", UpStationRef: "A", DownStationRef: "B", Distance: 4, Duration: 2},
		{Identifier: "BLUE", Name: "Blue", UpStationRef: "B", DownStationRef: "C", Distance: 6, Duration: 5},
	} {
		_, err := network.CreateLine(ctx, store, request)
		require.NoError(t, err)
	}
	_, err := network.AddSection(ctx, store, "BLUE", "C", "D", 3, 3)
	require.NoError(t, err)

	networkStats, err := GetNetworkStats(ctx, store)
	require.NoError(t, err)

	assert.Equal(t, &NetworkStats{
		Stations:            4,
		Lines:               2,
		Sections:            3,
		TotalDistance:       13,
		TotalDuration:       10,
		InterchangeStations: 1,
	}, networkStats)
}

func TestParsePathQueriesResponse(t *testing.T) {
	body := `{
		"hits": {"total": {"value": 3}},
		"aggregations": {
			"average_fare": {"value": 1450.5},
			"criteria": {"buckets": [{"key": "DISTANCE", "doc_count": 2}, {"key": "DURATION", "doc_count": 1}]},
			"riders": {"buckets": [{"key": "adult", "doc_count": 3}]}
		}
	}`

	queryStats, err := parsePathQueriesResponse(strings.NewReader(body))
	require.NoError(t, err)

	assert.Equal(t, 3, queryStats.TotalQueries)
	assert.Equal(t, 1450.5, queryStats.AverageFare)
	assert.Equal(t, map[string]int{"DISTANCE": 2, "DURATION": 1}, queryStats.Criteria)
	assert.Equal(t, map[string]int{"adult": 3}, queryStats.Riders)
}

func TestParsePathQueriesResponseError(t *testing.T) {
	_, err := parsePathQueriesResponse(strings.NewReader(`{"error": {"reason": "no such index"}}`))
	assert.ErrorContains(t, err, "no such index")
}

func TestGetPathQueryStatsWithoutElasticsearch(t *testing.T) {
	queryStats, err := GetPathQueryStats(context.Background(), "1d")
	assert.NoError(t, err)
	assert.Nil(t, queryStats)
}
