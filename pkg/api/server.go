package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/subway/pkg/api/routes"
	"github.com/travigo/subway/pkg/network"
)

func NewApp(store network.Store) *fiber.App {
	webApp := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	routes.StationsRouter(group.Group("/stations"), store)
	routes.LinesRouter(group.Group("/lines"), store)
	routes.PathsRouter(group.Group("/paths"), store)
	routes.StatsRouter(group.Group("/stats"), store)

	return webApp
}

func SetupServer(listen string, store network.Store) error {
	return NewApp(store).Listen(listen)
}
