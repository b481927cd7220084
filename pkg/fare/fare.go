package fare

import (
	"github.com/travigo/subway/pkg/ctdf"
)

const (
	baseFare = 1250

	firstTierStart    = 10
	firstTierEnd      = 50
	firstTierStep     = 5
	secondTierStep    = 8
	fareStepIncrement = 100

	discountDeduction = 350
)

// DistanceFare is the tiered base fare for a distance.
func DistanceFare(distance int) int {
	fare := baseFare

	if distance <= firstTierStart {
		return fare
	}

	if distance <= firstTierEnd {
		return fare + startedSteps(distance-firstTierStart, firstTierStep)*fareStepIncrement
	}

	fare += startedSteps(firstTierEnd-firstTierStart, firstTierStep) * fareStepIncrement
	fare += startedSteps(distance-firstTierEnd, secondTierStep) * fareStepIncrement

	return fare
}

func startedSteps(distance int, step int) int {
	return (distance + step - 1) / step
}

// Calculate combines the base fare of the shortest possible distance, the
// largest surcharge of any line on the requested path and the rider discount.
func Calculate(shortestDistance int, requested *ctdf.PathResult, rider RiderCategory) int {
	combined := DistanceFare(shortestDistance) + requested.MaxExtraCharge()

	return rider.Discount(combined)
}
