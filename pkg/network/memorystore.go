package network

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jinzhu/copier"
	"github.com/travigo/subway/pkg/ctdf"
)

type MemoryStore struct {
	mutex sync.RWMutex

	stations map[string]ctdf.Station
	lines    map[string]*ctdf.Line
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		stations: map[string]ctdf.Station{},
		lines:    map[string]*ctdf.Line{},
	}
}

func copyLine(line *ctdf.Line) (*ctdf.Line, error) {
	copied := *line
	copied.Sections = nil
	copied.Stations = nil

	if err := copier.CopyWithOption(&copied.Sections, line.Sections, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}

	return &copied, nil
}

func (m *MemoryStore) GetStation(_ context.Context, stationRef string) (*ctdf.Station, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	station, exists := m.stations[stationRef]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ctdf.ErrStationNotFound, stationRef)
	}

	return &station, nil
}

func (m *MemoryStore) ListStations(_ context.Context) ([]*ctdf.Station, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	stations := make([]*ctdf.Station, 0, len(m.stations))
	for _, station := range m.stations {
		station := station
		stations = append(stations, &station)
	}

	sort.Slice(stations, func(i, j int) bool {
		return stations[i].PrimaryIdentifier < stations[j].PrimaryIdentifier
	})

	return stations, nil
}

func (m *MemoryStore) SaveStation(_ context.Context, station *ctdf.Station) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	now := time.Now()
	if existing, exists := m.stations[station.PrimaryIdentifier]; exists {
		station.CreationDateTime = existing.CreationDateTime
	} else {
		station.CreationDateTime = now
	}
	station.ModificationDateTime = now

	m.stations[station.PrimaryIdentifier] = *station

	return nil
}

func (m *MemoryStore) GetLine(_ context.Context, lineRef string) (*ctdf.Line, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	line, exists := m.lines[lineRef]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ctdf.ErrLineNotFound, lineRef)
	}

	return copyLine(line)
}

func (m *MemoryStore) ListLines(_ context.Context) ([]*ctdf.Line, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	lines := make([]*ctdf.Line, 0, len(m.lines))
	for _, line := range m.lines {
		copied, err := copyLine(line)
		if err != nil {
			return nil, err
		}
		lines = append(lines, copied)
	}

	sort.Slice(lines, func(i, j int) bool {
		return lines[i].PrimaryIdentifier < lines[j].PrimaryIdentifier
	})

	return lines, nil
}

func (m *MemoryStore) InsertLine(_ context.Context, line *ctdf.Line) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.lines[line.PrimaryIdentifier]; exists {
		return fmt.Errorf("%w: %s", ctdf.ErrLineExists, line.PrimaryIdentifier)
	}

	now := time.Now()
	line.CreationDateTime = now
	line.ModificationDateTime = now
	line.Version = 1

	stored, err := copyLine(line)
	if err != nil {
		return err
	}
	m.lines[line.PrimaryIdentifier] = stored

	return nil
}

func (m *MemoryStore) UpdateLine(_ context.Context, line *ctdf.Line) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	existing, exists := m.lines[line.PrimaryIdentifier]
	if !exists {
		return fmt.Errorf("%w: %s", ctdf.ErrLineNotFound, line.PrimaryIdentifier)
	}
	if existing.Version != line.Version {
		return fmt.Errorf("%w: %s has version %d, update was based on %d", ctdf.ErrLineConflict, line.PrimaryIdentifier, existing.Version, line.Version)
	}

	line.Version++
	line.ModificationDateTime = time.Now()

	stored, err := copyLine(line)
	if err != nil {
		line.Version--
		return err
	}
	m.lines[line.PrimaryIdentifier] = stored

	return nil
}

func (m *MemoryStore) DeleteLine(_ context.Context, lineRef string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.lines[lineRef]; !exists {
		return fmt.Errorf("%w: %s", ctdf.ErrLineNotFound, lineRef)
	}
	delete(m.lines, lineRef)

	return nil
}
