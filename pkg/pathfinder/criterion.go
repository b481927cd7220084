package pathfinder

import (
	"fmt"
	"strings"

	"github.com/travigo/subway/pkg/ctdf"
)

// Criterion is the edge weight a search minimises.
type Criterion string

const (
	CriterionDistance Criterion = "DISTANCE"
	CriterionDuration Criterion = "DURATION"
)

func ParseCriterion(value string) (Criterion, error) {
	switch Criterion(strings.ToUpper(value)) {
	case CriterionDistance:
		return CriterionDistance, nil
	case CriterionDuration:
		return CriterionDuration, nil
	default:
		return "", fmt.Errorf("%w: %q", ctdf.ErrInvalidCriterion, value)
	}
}

func (c Criterion) weight(edge *Edge) int {
	if c == CriterionDuration {
		return edge.Duration
	}
	return edge.Distance
}

func (c Criterion) Valid() bool {
	return c == CriterionDistance || c == CriterionDuration
}
