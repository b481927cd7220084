package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/travigo/subway/pkg/ctdf"
	"github.com/travigo/subway/pkg/network"
)

type linesRouter struct {
	store network.Store
}

func LinesRouter(router fiber.Router, store network.Store) {
	r := linesRouter{store: store}

	router.Get("/", r.listLines)
	router.Post("/", r.createLine)
	router.Get("/:identifier", r.getLine)
	router.Delete("/:identifier", r.deleteLine)

	router.Post("/:identifier/sections", r.addSection)
	router.Delete("/:identifier/sections", r.deleteSection)
}

func (r linesRouter) renderLine(c *fiber.Ctx, line *ctdf.Line) error {
	stations, err := network.ResolveStations(c.UserContext(), r.store, line.GetStations())
	if err != nil {
		return sendError(c, err)
	}
	line.Stations = stations

	lineReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic", "detailed"},
	}, line)
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(lineReduced)
}

func (r linesRouter) listLines(c *fiber.Ctx) error {
	lines, err := r.store.ListLines(c.UserContext())
	if err != nil {
		return sendError(c, err)
	}

	linesReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, lines)
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(linesReduced)
}

func (r linesRouter) getLine(c *fiber.Ctx) error {
	line, err := r.store.GetLine(c.UserContext(), c.Params("identifier"))
	if err != nil {
		return sendError(c, err)
	}

	return r.renderLine(c, line)
}

type createLineRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Colour      string `json:"colour"`
	ExtraCharge int    `json:"extraCharge"`

	UpStationID   string `json:"upStationId"`
	DownStationID string `json:"downStationId"`
	Distance      int    `json:"distance"`
	Duration      int    `json:"duration"`
}

func (r linesRouter) createLine(c *fiber.Ctx) error {
	var request createLineRequest
	if err := c.BodyParser(&request); err != nil {
		return sendBadRequest(c, "Could not parse line body")
	}
	if request.ID == "" || request.Name == "" {
		return sendBadRequest(c, "Line needs both an id and a name")
	}
	if request.ExtraCharge < 0 {
		return sendBadRequest(c, "Line extraCharge cannot be negative")
	}

	line, err := network.CreateLine(c.UserContext(), r.store, network.CreateLineRequest{
		Identifier:     request.ID,
		Name:           request.Name,
		Colour:         request.Colour,
		ExtraCharge:    request.ExtraCharge,
		UpStationRef:   request.UpStationID,
		DownStationRef: request.DownStationID,
		Distance:       request.Distance,
		Duration:       request.Duration,
	})
	if err != nil {
		return sendError(c, err)
	}

	c.Status(fiber.StatusCreated)
	return r.renderLine(c, line)
}

func (r linesRouter) deleteLine(c *fiber.Ctx) error {
	if err := r.store.DeleteLine(c.UserContext(), c.Params("identifier")); err != nil {
		return sendError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

type sectionRequest struct {
	UpStationID   string `json:"upStationId"`
	DownStationID string `json:"downStationId"`
	Distance      int    `json:"distance"`
	Duration      int    `json:"duration"`
}

func (r linesRouter) addSection(c *fiber.Ctx) error {
	var request sectionRequest
	if err := c.BodyParser(&request); err != nil {
		return sendBadRequest(c, "Could not parse section body")
	}

	line, err := network.AddSection(c.UserContext(), r.store, c.Params("identifier"), request.UpStationID, request.DownStationID, request.Distance, request.Duration)
	if err != nil {
		return sendError(c, err)
	}

	return r.renderLine(c, line)
}

func (r linesRouter) deleteSection(c *fiber.Ctx) error {
	stationID := c.Query("stationId")
	if stationID == "" {
		return sendBadRequest(c, "Parameter stationId is required")
	}

	line, err := network.DeleteSection(c.UserContext(), r.store, c.Params("identifier"), stationID)
	if err != nil {
		return sendError(c, err)
	}

	return r.renderLine(c, line)
}
