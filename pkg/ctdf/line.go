package ctdf

import (
	"fmt"
	"time"

	"golang.org/x/exp/slices"
)

// Line owns an ordered, non-branching chain of sections running from the
// up terminal to the down terminal. Each section's DownStationRef is the
// UpStationRef of the section that follows it.
type Line struct {
	PrimaryIdentifier string `groups:"basic,detailed"`

	Name        string `groups:"basic,detailed"`
	Colour      string `groups:"basic,detailed"`
	ExtraCharge int    `groups:"basic,detailed"`

	Sections []Section `groups:"detailed"`

	// Stations is only populated for API responses
	Stations []*Station `groups:"detailed" bson:"-"`

	Version int `groups:"detailed"`

	CreationDateTime     time.Time `groups:"detailed"`
	ModificationDateTime time.Time `groups:"detailed"`
}

// NewLine creates a line together with its first section. A line never
// exists without at least one section.
func NewLine(identifier string, name string, colour string, extraCharge int, upStationRef string, downStationRef string, distance int, duration int) (*Line, error) {
	line := &Line{
		PrimaryIdentifier: identifier,
		Name:              name,
		Colour:            colour,
		ExtraCharge:       extraCharge,
	}

	if err := line.AddSection(upStationRef, downStationRef, distance, duration); err != nil {
		return nil, err
	}

	return line, nil
}

func (l *Line) AddSection(upStationRef string, downStationRef string, distance int, duration int) error {
	section := Section{
		LineRef:        l.PrimaryIdentifier,
		UpStationRef:   upStationRef,
		DownStationRef: downStationRef,
		Distance:       distance,
		Duration:       duration,
	}

	if err := section.validate(); err != nil {
		return err
	}

	if len(l.Sections) == 0 {
		l.Sections = []Section{section}
		return nil
	}

	sections, err := l.insertSection(section)
	if err != nil {
		return err
	}

	l.Sections = sections

	return nil
}

// insertSection returns the new chain without touching l.Sections
func (l *Line) insertSection(section Section) ([]Section, error) {
	stations := l.GetStations()
	upIncluded := slices.Contains(stations, section.UpStationRef)
	downIncluded := slices.Contains(stations, section.DownStationRef)

	switch {
	case upIncluded && downIncluded:
		return nil, sectionError(ErrDuplicateSection, section, "both stations are already on line "+l.PrimaryIdentifier)
	case !upIncluded && !downIncluded:
		return nil, sectionError(ErrDisconnected, section, "neither station is on line "+l.PrimaryIdentifier)
	}

	sections := slices.Clone(l.Sections)
	last := len(sections) - 1

	switch {
	case section.DownStationRef == sections[0].UpStationRef:
		return slices.Insert(sections, 0, section), nil
	case section.UpStationRef == sections[last].DownStationRef:
		return append(sections, section), nil
	}

	if upIncluded {
		index := slices.IndexFunc(sections, func(s Section) bool {
			return s.UpStationRef == section.UpStationRef
		})
		existing := sections[index]

		remainder, err := splitRemainder(existing, section)
		if err != nil {
			return nil, err
		}
		remainder.UpStationRef = section.DownStationRef
		remainder.DownStationRef = existing.DownStationRef

		return slices.Replace(sections, index, index+1, section, remainder), nil
	}

	index := slices.IndexFunc(sections, func(s Section) bool {
		return s.DownStationRef == section.DownStationRef
	})
	existing := sections[index]

	remainder, err := splitRemainder(existing, section)
	if err != nil {
		return nil, err
	}
	remainder.UpStationRef = existing.UpStationRef
	remainder.DownStationRef = section.UpStationRef

	return slices.Replace(sections, index, index+1, remainder, section), nil
}

// splitRemainder is what is left of existing once section is cut out of it.
// Equal values are rejected as they would leave a zero length section.
func splitRemainder(existing Section, section Section) (Section, error) {
	if section.Distance >= existing.Distance || section.Duration >= existing.Duration {
		return Section{}, sectionError(ErrInvalidSplit, section, fmt.Sprintf(
			"existing section %s -> %s has distance %d and duration %d",
			existing.UpStationRef, existing.DownStationRef, existing.Distance, existing.Duration,
		))
	}

	return Section{
		LineRef:  existing.LineRef,
		Distance: existing.Distance - section.Distance,
		Duration: existing.Duration - section.Duration,
	}, nil
}

func (l *Line) DeleteSection(stationRef string) error {
	if len(l.Sections) <= 1 {
		return fmt.Errorf("%w: %s", ErrSingleSectionLine, l.PrimaryIdentifier)
	}

	sections := slices.Clone(l.Sections)
	last := len(sections) - 1

	switch {
	case stationRef == sections[0].UpStationRef:
		l.Sections = sections[1:]
	case stationRef == sections[last].DownStationRef:
		l.Sections = sections[:last]
	default:
		index := slices.IndexFunc(sections, func(s Section) bool {
			return s.DownStationRef == stationRef
		})
		if index < 0 {
			return fmt.Errorf("%w: %s is not on line %s", ErrStationNotFound, stationRef, l.PrimaryIdentifier)
		}

		upper := sections[index]
		lower := sections[index+1]

		merged := Section{
			LineRef:        l.PrimaryIdentifier,
			UpStationRef:   upper.UpStationRef,
			DownStationRef: lower.DownStationRef,
			Distance:       upper.Distance + lower.Distance,
			Duration:       upper.Duration + lower.Duration,
		}

		l.Sections = slices.Replace(sections, index, index+2, merged)
	}

	return nil
}

// GetStations walks the chain from the up terminal to the down terminal.
func (l *Line) GetStations() []string {
	stations := make([]string, 0, len(l.Sections)+1)

	if len(l.Sections) == 0 {
		return stations
	}

	stations = append(stations, l.Sections[0].UpStationRef)
	for _, section := range l.Sections {
		stations = append(stations, section.DownStationRef)
	}

	return stations
}

func (l *Line) GetSections() []Section {
	return slices.Clone(l.Sections)
}

func (l *Line) ContainsStation(stationRef string) bool {
	return slices.Contains(l.GetStations(), stationRef)
}

func (l *Line) UpTerminal() string {
	if len(l.Sections) == 0 {
		return ""
	}
	return l.Sections[0].UpStationRef
}

func (l *Line) DownTerminal() string {
	if len(l.Sections) == 0 {
		return ""
	}
	return l.Sections[len(l.Sections)-1].DownStationRef
}

func (l *Line) TotalDistance() int {
	total := 0
	for _, section := range l.Sections {
		total += section.Distance
	}
	return total
}

func (l *Line) TotalDuration() int {
	total := 0
	for _, section := range l.Sections {
		total += section.Duration
	}
	return total
}

// Validate checks a chain that was loaded from outside, rather than built up
// through AddSection.
func (l *Line) Validate() error {
	if len(l.Sections) == 0 {
		return fmt.Errorf("%w: line %s has no sections", ErrInvalidSection, l.PrimaryIdentifier)
	}

	for i, section := range l.Sections {
		if err := section.validate(); err != nil {
			return err
		}

		if i > 0 && l.Sections[i-1].DownStationRef != section.UpStationRef {
			return sectionError(ErrInvalidSection, section, "does not continue from "+l.Sections[i-1].DownStationRef)
		}
	}

	seen := map[string]bool{}
	for _, station := range l.GetStations() {
		if seen[station] {
			return fmt.Errorf("%w: station %s appears twice on line %s", ErrInvalidSection, station, l.PrimaryIdentifier)
		}
		seen[station] = true
	}

	return nil
}
