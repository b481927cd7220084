package sections

import (
	"context"
	"errors"
	"fmt"

	"github.com/travigo/subway/pkg/ctdf"
	"github.com/travigo/subway/pkg/network"
)

const QueueName = "sections-queue"

type Action string

const (
	ActionAdd    Action = "add"
	ActionDelete Action = "delete"
)

var ErrInvalidChange = errors.New("invalid section change")

// Change is one queued mutation of a line's section chain.
type Change struct {
	Action  Action `json:"action"`
	LineRef string `json:"lineRef"`

	UpStationRef   string `json:"upStationRef,omitempty"`
	DownStationRef string `json:"downStationRef,omitempty"`
	Distance       int    `json:"distance,omitempty"`
	Duration       int    `json:"duration,omitempty"`

	StationRef string `json:"stationRef,omitempty"`
}

func (c Change) Validate() error {
	if c.LineRef == "" {
		return fmt.Errorf("%w: missing line", ErrInvalidChange)
	}

	switch c.Action {
	case ActionAdd:
		if c.UpStationRef == "" || c.DownStationRef == "" {
			return fmt.Errorf("%w: add needs both stations", ErrInvalidChange)
		}
	case ActionDelete:
		if c.StationRef == "" {
			return fmt.Errorf("%w: delete needs a station", ErrInvalidChange)
		}
	default:
		return fmt.Errorf("%w: unknown action %q", ErrInvalidChange, c.Action)
	}

	return nil
}

func (c Change) apply(ctx context.Context, store network.Store) (*ctdf.Line, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if c.Action == ActionAdd {
		return network.AddSection(ctx, store, c.LineRef, c.UpStationRef, c.DownStationRef, c.Distance, c.Duration)
	}

	return network.DeleteSection(ctx, store, c.LineRef, c.StationRef)
}
