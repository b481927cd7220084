package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/subway/pkg/ctdf"
	"github.com/travigo/subway/pkg/network"
)

func newTestStore(t *testing.T) *network.MemoryStore {
	t.Helper()
	ctx := context.Background()

	store := network.NewMemoryStore()
	for _, stationRef := range []string{"GYODAE", "GANGNAM", "YANGJAE", "NAMBU", "SINSA"} {
		require.NoError(t, store.SaveStation(ctx, &ctdf.Station{PrimaryIdentifier: stationRef, PrimaryName: strings.ToLower(stationRef)}))
	}

	for _, request := range []network.CreateLineRequest{
		{Identifier: "LINE-2", Name: "Line 2", Colour: "green", ExtraCharge: 100, UpStationRef: "GYODAE", DownStationRef: "GANGNAM", Distance: 10, Duration: 5},
		{Identifier: "SHINBUNDANG", Name: "Shinbundang", Colour: "red", ExtraCharge: 500, UpStationRef: "GANGNAM", DownStationRef: "YANGJAE", Distance: 10, Duration: 4},
		{Identifier: "LINE-3", Name: "Line 3", Colour: "orange", ExtraCharge: 200, UpStationRef: "GYODAE", DownStationRef: "NAMBU", Distance: 2, Duration: 6},
	} {
		_, err := network.CreateLine(ctx, store, request)
		require.NoError(t, err)
	}

	_, err := network.AddSection(ctx, store, "LINE-3", "NAMBU", "YANGJAE", 10, 6)
	require.NoError(t, err)

	return store
}

func doRequest(t *testing.T, store network.Store, method string, target string, body string) (int, map[string]any) {
	t.Helper()

	var bodyReader io.Reader
	if body != "" {
		bodyReader = strings.NewReader(body)
	}

	request := httptest.NewRequest(method, target, bodyReader)
	if body != "" {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := NewApp(store).Test(request)
	require.NoError(t, err)
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(responseBody) > 0 {
		_ = json.Unmarshal(responseBody, &decoded)
	}

	return response.StatusCode, decoded
}

func stationIdentifiers(t *testing.T, value any) []string {
	t.Helper()

	var identifiers []string
	for _, station := range value.([]any) {
		identifiers = append(identifiers, station.(map[string]any)["PrimaryIdentifier"].(string))
	}
	return identifiers
}

func TestVersion(t *testing.T) {
	status, body := doRequest(t, network.NewMemoryStore(), http.MethodGet, "/core/version", "")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "v1.0", body["version"])
}

func TestStations(t *testing.T) {
	store := newTestStore(t)

	status, _ := doRequest(t, store, http.MethodPost, "/core/stations", `{"id": "SEOLLEUNG", "name": "seolleung"}`)
	assert.Equal(t, http.StatusCreated, status)

	status, body := doRequest(t, store, http.MethodGet, "/core/stations/SEOLLEUNG", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "seolleung", body["PrimaryName"])

	status, body = doRequest(t, store, http.MethodGet, "/core/stations/NOWHERE", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body["error"], "NOWHERE")

	status, _ = doRequest(t, store, http.MethodPost, "/core/stations", `{"id": "EMPTY"}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestGetLine(t *testing.T) {
	store := newTestStore(t)

	status, body := doRequest(t, store, http.MethodGet, "/core/lines/LINE-3", "")
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, "Line 3", body["Name"])
	assert.Equal(t, []string{"GYODAE", "NAMBU", "YANGJAE"}, stationIdentifiers(t, body["Stations"]))
	assert.Len(t, body["Sections"], 2)

	status, _ = doRequest(t, store, http.MethodGet, "/core/lines/LINE-9", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCreateLine(t *testing.T) {
	store := newTestStore(t)

	status, body := doRequest(t, store, http.MethodPost, "/core/lines",
		`{"id": "LINE-9", "name": "Line 9", "colour": "gold", "extraCharge": 0, "upStationId": "NAMBU", "downStationId": "GANGNAM", "distance": 8, "duration": 7}`)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, []string{"NAMBU", "GANGNAM"}, stationIdentifiers(t, body["Stations"]))

	status, _ = doRequest(t, store, http.MethodPost, "/core/lines",
		`{"id": "LINE-9", "name": "Line 9", "upStationId": "NAMBU", "downStationId": "GANGNAM", "distance": 8, "duration": 7}`)
	assert.Equal(t, http.StatusConflict, status)

	status, _ = doRequest(t, store, http.MethodPost, "/core/lines",
		`{"id": "LINE-10", "name": "Line 10", "upStationId": "NAMBU", "downStationId": "NOWHERE", "distance": 8, "duration": 7}`)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = doRequest(t, store, http.MethodDelete, "/core/lines/LINE-9", "")
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = doRequest(t, store, http.MethodDelete, "/core/lines/LINE-9", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestListLines(t *testing.T) {
	status, _ := doRequest(t, newTestStore(t), http.MethodGet, "/core/lines", "")
	assert.Equal(t, http.StatusOK, status)
}

func TestSections(t *testing.T) {
	store := newTestStore(t)

	status, body := doRequest(t, store, http.MethodPost, "/core/lines/LINE-2/sections",
		`{"upStationId": "GANGNAM", "downStationId": "YANGJAE", "distance": 3, "duration": 2}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"GYODAE", "GANGNAM", "YANGJAE"}, stationIdentifiers(t, body["Stations"]))

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"duplicate", `{"upStationId": "GYODAE", "downStationId": "GANGNAM", "distance": 1, "duration": 1}`, http.StatusConflict},
		{"disconnected", `{"upStationId": "NAMBU", "downStationId": "SINSA", "distance": 1, "duration": 1}`, http.StatusBadRequest},
		{"unknown station", `{"upStationId": "NAMBU", "downStationId": "SEOLLEUNG", "distance": 1, "duration": 1}`, http.StatusNotFound},
		{"invalid split", `{"upStationId": "GYODAE", "downStationId": "NAMBU", "distance": 10, "duration": 1}`, http.StatusBadRequest},
		{"invalid section", `{"upStationId": "GYODAE", "downStationId": "NAMBU", "distance": 0, "duration": 1}`, http.StatusBadRequest},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			status, _ := doRequest(t, store, http.MethodPost, "/core/lines/LINE-2/sections", test.body)
			assert.Equal(t, test.status, status)
		})
	}

	status, body = doRequest(t, store, http.MethodDelete, "/core/lines/LINE-2/sections?stationId=GANGNAM", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"GYODAE", "YANGJAE"}, stationIdentifiers(t, body["Stations"]))

	status, _ = doRequest(t, store, http.MethodDelete, "/core/lines/LINE-2/sections?stationId=YANGJAE", "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doRequest(t, store, http.MethodDelete, "/core/lines/LINE-2/sections", "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestPaths(t *testing.T) {
	store := newTestStore(t)

	status, body := doRequest(t, store, http.MethodGet, "/core/paths?source=GYODAE&target=YANGJAE&type=DISTANCE", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"GYODAE", "NAMBU", "YANGJAE"}, stationIdentifiers(t, body["Stations"]))
	assert.EqualValues(t, 12, body["Distance"])
	assert.EqualValues(t, 1550, body["Fare"])

	status, body = doRequest(t, store, http.MethodGet, "/core/paths?source=GYODAE&target=YANGJAE&type=duration&age=15", "")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 9, body["Duration"])
	assert.EqualValues(t, 1200, body["Fare"])

	tests := []struct {
		name   string
		query  string
		status int
	}{
		{"same station", "source=GYODAE&target=GYODAE", http.StatusBadRequest},
		{"unknown station", "source=GYODAE&target=NOWHERE", http.StatusNotFound},
		{"bad criterion", "source=GYODAE&target=YANGJAE&type=FARE", http.StatusBadRequest},
		{"bad age", "source=GYODAE&target=YANGJAE&age=old", http.StatusBadRequest},
		{"missing target", "source=GYODAE", http.StatusBadRequest},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			status, _ := doRequest(t, store, http.MethodGet, "/core/paths?"+test.query, "")
			assert.Equal(t, test.status, status)
		})
	}
}

func TestStats(t *testing.T) {
	status, body := doRequest(t, newTestStore(t), http.MethodGet, "/core/stats", "")
	require.Equal(t, http.StatusOK, status)

	networkStats := body["network"].(map[string]any)
	assert.EqualValues(t, 5, networkStats["Stations"])
	assert.EqualValues(t, 3, networkStats["Lines"])
	assert.EqualValues(t, 4, networkStats["Sections"])
	assert.Nil(t, body["pathQueries"])
}
