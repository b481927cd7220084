package network

import (
	"context"

	"github.com/travigo/subway/pkg/ctdf"
)

// StationLookup resolves station identifiers to their records.
type StationLookup interface {
	GetStation(ctx context.Context, stationRef string) (*ctdf.Station, error)
}

// Store is the persistence boundary for stations and lines. Every line it
// returns is a private copy the caller may mutate freely.
type Store interface {
	StationLookup

	ListStations(ctx context.Context) ([]*ctdf.Station, error)
	SaveStation(ctx context.Context, station *ctdf.Station) error

	GetLine(ctx context.Context, lineRef string) (*ctdf.Line, error)
	ListLines(ctx context.Context) ([]*ctdf.Line, error)
	InsertLine(ctx context.Context, line *ctdf.Line) error
	// UpdateLine replaces the stored line if its version still matches
	// line.Version, then bumps line.Version. A mismatch is ErrLineConflict.
	UpdateLine(ctx context.Context, line *ctdf.Line) error
	DeleteLine(ctx context.Context, lineRef string) error
}
