package stats

import (
	"context"

	"github.com/travigo/subway/pkg/network"
)

type NetworkStats struct {
	Stations int
	Lines    int
	Sections int

	TotalDistance int
	TotalDuration int

	// Stations served by more than one line
	InterchangeStations int
}

func GetNetworkStats(ctx context.Context, store network.Store) (*NetworkStats, error) {
	stations, err := store.ListStations(ctx)
	if err != nil {
		return nil, err
	}
	lines, err := store.ListLines(ctx)
	if err != nil {
		return nil, err
	}

	networkStats := &NetworkStats{
		Stations: len(stations),
		Lines:    len(lines),
	}

	linesPerStation := map[string]int{}
	for _, line := range lines {
		networkStats.Sections += len(line.Sections)
		networkStats.TotalDistance += line.TotalDistance()
		networkStats.TotalDuration += line.TotalDuration()

		for _, stationRef := range line.GetStations() {
			linesPerStation[stationRef]++
		}
	}

	for _, count := range linesPerStation {
		if count > 1 {
			networkStats.InterchangeStations++
		}
	}

	return networkStats, nil
}
