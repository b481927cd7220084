package ctdf

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSection    = errors.New("invalid section")
	ErrDuplicateSection  = errors.New("section already exists")
	ErrDisconnected      = errors.New("section is not connected to the line")
	ErrInvalidSplit      = errors.New("section is not shorter than the section it splits")
	ErrSingleSectionLine = errors.New("line must keep at least one section")
	ErrStationNotFound   = errors.New("station not found")
	ErrLineNotFound      = errors.New("line not found")
	ErrLineExists        = errors.New("line already exists")
	ErrLineConflict      = errors.New("line was modified concurrently")
	ErrSameStation       = errors.New("source and target are the same station")
	ErrNoRoute           = errors.New("no route between stations")
	ErrInvalidCriterion  = errors.New("invalid path criterion")
)

func sectionError(kind error, s Section, reason string) error {
	return fmt.Errorf("%w: %s -> %s: %s", kind, s.UpStationRef, s.DownStationRef, reason)
}
