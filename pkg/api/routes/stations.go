package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/travigo/subway/pkg/ctdf"
	"github.com/travigo/subway/pkg/network"
)

type stationsRouter struct {
	store network.Store
}

func StationsRouter(router fiber.Router, store network.Store) {
	r := stationsRouter{store: store}

	router.Get("/", r.listStations)
	router.Post("/", r.createStation)
	router.Get("/:identifier", r.getStation)
}

func (r stationsRouter) listStations(c *fiber.Ctx) error {
	stations, err := r.store.ListStations(c.UserContext())
	if err != nil {
		return sendError(c, err)
	}

	stationsReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, stations)
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(stationsReduced)
}

func (r stationsRouter) getStation(c *fiber.Ctx) error {
	station, err := r.store.GetStation(c.UserContext(), c.Params("identifier"))
	if err != nil {
		return sendError(c, err)
	}

	stationReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic", "detailed"},
	}, station)
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(stationReduced)
}

type createStationRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (r stationsRouter) createStation(c *fiber.Ctx) error {
	var request createStationRequest
	if err := c.BodyParser(&request); err != nil {
		return sendBadRequest(c, "Could not parse station body")
	}
	if request.ID == "" || request.Name == "" {
		return sendBadRequest(c, "Station needs both an id and a name")
	}

	station := &ctdf.Station{
		PrimaryIdentifier: request.ID,
		PrimaryName:       request.Name,
	}
	if err := r.store.SaveStation(c.UserContext(), station); err != nil {
		return sendError(c, err)
	}

	c.Status(fiber.StatusCreated)
	return c.JSON(station)
}
