package fare

import (
	"fmt"
	"strings"
)

// RiderCategory is the age based classification that decides the discount.
type RiderCategory int

const (
	RiderAdult RiderCategory = iota
	RiderYouth
	RiderChild
	RiderInfant
)

const (
	childMinimumAge = 6
	youthMinimumAge = 13
	adultMinimumAge = 19
)

func RiderCategoryForAge(age int) RiderCategory {
	switch {
	case age < childMinimumAge:
		return RiderInfant
	case age < youthMinimumAge:
		return RiderChild
	case age < adultMinimumAge:
		return RiderYouth
	default:
		return RiderAdult
	}
}

func ParseRiderCategory(value string) (RiderCategory, error) {
	switch strings.ToLower(value) {
	case "", "adult":
		return RiderAdult, nil
	case "youth":
		return RiderYouth, nil
	case "child":
		return RiderChild, nil
	case "infant":
		return RiderInfant, nil
	default:
		return RiderAdult, fmt.Errorf("unknown rider category %q", value)
	}
}

func (r RiderCategory) String() string {
	switch r {
	case RiderYouth:
		return "youth"
	case RiderChild:
		return "child"
	case RiderInfant:
		return "infant"
	default:
		return "adult"
	}
}

// Discount applies the category's reduction to a combined fare.
func (r RiderCategory) Discount(fare int) int {
	switch r {
	case RiderInfant:
		return 0
	case RiderChild:
		return discounted(fare, 50)
	case RiderYouth:
		return discounted(fare, 20)
	default:
		return fare
	}
}

// discounted deducts the flat deduction then takes percent off the rest,
// rounding down.
func discounted(fare int, percent int) int {
	remaining := fare - discountDeduction
	if remaining <= 0 {
		return 0
	}

	return remaining * (100 - percent) / 100
}
