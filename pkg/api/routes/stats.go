package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/subway/pkg/network"
	"github.com/travigo/subway/pkg/stats"
)

func StatsRouter(router fiber.Router, store network.Store) {
	router.Get("/", func(c *fiber.Ctx) error {
		networkStats, err := stats.GetNetworkStats(c.UserContext(), store)
		if err != nil {
			return sendError(c, err)
		}

		pathQueryStats, err := stats.GetPathQueryStats(c.UserContext(), c.Query("window", "1d"))
		if err != nil {
			return sendError(c, err)
		}

		return c.JSON(fiber.Map{
			"network":     networkStats,
			"pathQueries": pathQueryStats,
		})
	})
}
