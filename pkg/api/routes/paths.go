package routes

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/travigo/subway/pkg/fare"
	"github.com/travigo/subway/pkg/network"
	"github.com/travigo/subway/pkg/pathfinder"
	"github.com/travigo/subway/pkg/planner"
)

type pathsRouter struct {
	store network.Store
}

func PathsRouter(router fiber.Router, store network.Store) {
	r := pathsRouter{store: store}

	router.Get("/", r.findPath)
}

// findPath answers GET /paths?source=&target=&type=&age=. Without an age the
// rider pays the adult fare.
func (r pathsRouter) findPath(c *fiber.Ctx) error {
	source := c.Query("source")
	target := c.Query("target")
	if source == "" || target == "" {
		return sendBadRequest(c, "Parameters source and target are required")
	}

	criterion, err := pathfinder.ParseCriterion(c.Query("type", string(pathfinder.CriterionDistance)))
	if err != nil {
		return sendError(c, err)
	}

	rider := fare.RiderAdult
	if ageQuery := c.Query("age"); ageQuery != "" {
		age, err := strconv.Atoi(ageQuery)
		if err != nil || age < 0 {
			return sendBadRequest(c, "Parameter age should be a non-negative integer")
		}
		rider = fare.RiderCategoryForAge(age)
	}

	plan, err := planner.FindPath(c.UserContext(), r.store, planner.Query{
		SourceRef: source,
		TargetRef: target,
		Criterion: criterion,
		Rider:     rider,
	})
	if err != nil {
		return sendError(c, err)
	}

	planReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, plan)
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(planReduced)
}
