package ctdf

import "golang.org/x/exp/slices"

type PathLine struct {
	PrimaryIdentifier string `groups:"basic"`
	ExtraCharge       int    `groups:"basic"`
}

// PathResult is a single route through the network. Distance and Duration are
// accumulated along the route whichever weight it was optimised for.
type PathResult struct {
	StationRefs []string

	Distance int
	Duration int

	Lines []PathLine
}

func (p *PathResult) AddLine(line PathLine) {
	if slices.ContainsFunc(p.Lines, func(l PathLine) bool {
		return l.PrimaryIdentifier == line.PrimaryIdentifier
	}) {
		return
	}

	p.Lines = append(p.Lines, line)
}

func (p *PathResult) MaxExtraCharge() int {
	charge := 0
	for _, line := range p.Lines {
		if line.ExtraCharge > charge {
			charge = line.ExtraCharge
		}
	}
	return charge
}

// PathPlan is the priced answer to a path query.
type PathPlan struct {
	Stations []*Station `groups:"basic"`

	Distance int `groups:"basic"`
	Duration int `groups:"basic"`
	Fare     int `groups:"basic"`

	Lines []PathLine `groups:"basic"`
}
