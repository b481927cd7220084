package network

import (
	"context"
	"errors"

	"github.com/cenkalti/backoff/v4"
	"github.com/travigo/subway/pkg/ctdf"
)

const maxMutationRetries = 5

// MutateLine loads a line, applies mutate and writes it back. A concurrent
// write to the same line makes the update retry from a fresh copy; any other
// error is returned straight away and nothing is written.
func MutateLine(ctx context.Context, store Store, lineRef string, mutate func(line *ctdf.Line) error) (*ctdf.Line, error) {
	var line *ctdf.Line

	operation := func() error {
		var err error

		line, err = store.GetLine(ctx, lineRef)
		if err != nil {
			return backoff.Permanent(err)
		}

		if err := mutate(line); err != nil {
			return backoff.Permanent(err)
		}

		err = store.UpdateLine(ctx, line)
		if errors.Is(err, ctdf.ErrLineConflict) {
			return err
		} else if err != nil {
			return backoff.Permanent(err)
		}

		return nil
	}

	retry := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxMutationRetries), ctx)
	if err := backoff.Retry(operation, retry); err != nil {
		return nil, err
	}

	return line, nil
}

// EnsureStations fails with ErrStationNotFound on the first unknown station.
func EnsureStations(ctx context.Context, stations StationLookup, stationRefs ...string) error {
	for _, stationRef := range stationRefs {
		if _, err := stations.GetStation(ctx, stationRef); err != nil {
			return err
		}
	}

	return nil
}

type CreateLineRequest struct {
	Identifier  string
	Name        string
	Colour      string
	ExtraCharge int

	UpStationRef   string
	DownStationRef string
	Distance       int
	Duration       int
}

func CreateLine(ctx context.Context, store Store, request CreateLineRequest) (*ctdf.Line, error) {
	if err := EnsureStations(ctx, store, request.UpStationRef, request.DownStationRef); err != nil {
		return nil, err
	}

	line, err := ctdf.NewLine(
		request.Identifier, request.Name, request.Colour, request.ExtraCharge,
		request.UpStationRef, request.DownStationRef, request.Distance, request.Duration,
	)
	if err != nil {
		return nil, err
	}

	if err := store.InsertLine(ctx, line); err != nil {
		return nil, err
	}

	return line, nil
}

func AddSection(ctx context.Context, store Store, lineRef string, upStationRef string, downStationRef string, distance int, duration int) (*ctdf.Line, error) {
	if err := EnsureStations(ctx, store, upStationRef, downStationRef); err != nil {
		return nil, err
	}

	return MutateLine(ctx, store, lineRef, func(line *ctdf.Line) error {
		return line.AddSection(upStationRef, downStationRef, distance, duration)
	})
}

func DeleteSection(ctx context.Context, store Store, lineRef string, stationRef string) (*ctdf.Line, error) {
	return MutateLine(ctx, store, lineRef, func(line *ctdf.Line) error {
		return line.DeleteSection(stationRef)
	})
}

// GetLineStations resolves a line's station order into station records.
func GetLineStations(ctx context.Context, store Store, lineRef string) ([]*ctdf.Station, error) {
	line, err := store.GetLine(ctx, lineRef)
	if err != nil {
		return nil, err
	}

	return ResolveStations(ctx, store, line.GetStations())
}

func ResolveStations(ctx context.Context, stations StationLookup, stationRefs []string) ([]*ctdf.Station, error) {
	resolved := make([]*ctdf.Station, 0, len(stationRefs))

	for _, stationRef := range stationRefs {
		station, err := stations.GetStation(ctx, stationRef)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, station)
	}

	return resolved, nil
}
