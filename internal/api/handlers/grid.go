package handlers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"grid-thermal/internal/api/models"
	"grid-thermal/internal/config"
	"grid-thermal/internal/grid"
)

// GridHandler serves the live grid state and session topology changes
type GridHandler struct {
	sim      *grid.Simulator
	session  *grid.Session
	defaults config.RequestDefaults
}

func NewGridHandler(sim *grid.Simulator, session *grid.Session, defaults config.RequestDefaults) *GridHandler {
	return &GridHandler{sim: sim, session: session, defaults: defaults}
}

// GridStatus handles GET /api/grid-status
func (h *GridHandler) GridStatus(c *gin.Context) {
	w, err := weatherFromQuery(c, h.defaults)
	if err != nil {
		respondError(c, http.StatusBadRequest, codeInvalidParameter, err.Error())
		return
	}
	n, err := queryInt(c, "n", 5)
	if err != nil {
		respondError(c, http.StatusBadRequest, codeInvalidParameter, err.Error())
		return
	}

	rep, err := h.sim.Simulate(w.Temp, w.Wind, w.LoadMult, h.session.Snapshot())
	if err != nil {
		respondSimError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewGridStatus(rep, h.session.OfflineNames(), n))
}

// ToggleLine handles POST /api/toggle-line
func (h *GridHandler) ToggleLine(c *gin.Context) {
	var req models.ToggleLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeInvalidParameter, err.Error())
		return
	}
	if req.LineName == "" {
		respondError(c, http.StatusBadRequest, codeInvalidParameter, "line_name required")
		return
	}

	nowOffline, err := h.session.Toggle(req.LineName)
	if err != nil {
		respondError(c, http.StatusNotFound, codeUnknownLine, err.Error())
		return
	}
	status := "online"
	if nowOffline {
		status = "offline"
	}
	c.JSON(http.StatusOK, models.ToggleLineResponse{
		LineName:     req.LineName,
		Status:       status,
		OfflineLines: h.session.OfflineNames(),
	})
}

// CascadeRound handles POST /api/cascade-round. The offline set comes from
// the request body; the session state is never read or written, so callers
// can explore hypothetical cascades freely.
func (h *GridHandler) CascadeRound(c *gin.Context) {
	var req models.CascadeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeInvalidParameter, err.Error())
		return
	}
	w := weatherFromBody(req.SimulationBody, h.defaults)
	n := 999 // default: return every failure
	if req.N != nil {
		n = *req.N
	}

	rep, err := h.sim.Simulate(w.Temp, w.Wind, w.LoadMult, toSet(req.CurrentOfflineLines))
	if err != nil {
		respondSimError(c, err)
		return
	}
	offline := append([]string(nil), req.CurrentOfflineLines...)
	sort.Strings(offline)
	c.JSON(http.StatusOK, models.NewGridStatus(rep, offline, n))
}

// MapBuses handles GET /api/map-buses
func (h *GridHandler) MapBuses(c *gin.Context) {
	c.JSON(http.StatusOK, models.NewMapBuses(h.sim.Network().BusCoords))
}
