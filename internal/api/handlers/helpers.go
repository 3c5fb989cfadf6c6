package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"grid-thermal/internal/api/models"
	"grid-thermal/internal/config"
	"grid-thermal/internal/grid"
)

// Error codes returned in the error envelope.
const (
	codeInvalidParameter = "INVALID_PARAMETER"
	codeUnknownLine      = "UNKNOWN_LINE"
	codeUnavailable      = "SIMULATION_UNAVAILABLE"
	codeInternal         = "INTERNAL_ERROR"
)

// Weather bundles the per-request simulation inputs after defaults are
// applied.
type Weather struct {
	Temp     float64
	Wind     float64
	LoadMult float64
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, models.NewError(code, message))
}

// respondSimError maps simulator failures onto the error taxonomy: a
// missing topology is a 503, anything else a 500.
func respondSimError(c *gin.Context, err error) {
	if errors.Is(err, grid.ErrUnavailable) {
		respondError(c, http.StatusServiceUnavailable, codeUnavailable, err.Error())
		return
	}
	respondError(c, http.StatusInternalServerError, codeInternal, err.Error())
}

func queryFloat(c *gin.Context, name string, def float64) (float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parameter %q: bad number %q", name, raw)
	}
	return v, nil
}

func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parameter %q: bad integer %q", name, raw)
	}
	return v, nil
}

// weatherFromQuery reads temp/wind/load_mult query parameters, falling back
// to the configured defaults.
func weatherFromQuery(c *gin.Context, def config.RequestDefaults) (Weather, error) {
	temp, err := queryFloat(c, "temp", def.TempC)
	if err != nil {
		return Weather{}, err
	}
	wind, err := queryFloat(c, "wind", def.WindFtSec)
	if err != nil {
		return Weather{}, err
	}
	load, err := queryFloat(c, "load_mult", def.LoadMult)
	if err != nil {
		return Weather{}, err
	}
	return Weather{Temp: temp, Wind: wind, LoadMult: load}, nil
}

// weatherFromBody applies defaults to an already-decoded JSON body.
func weatherFromBody(b models.SimulationBody, def config.RequestDefaults) Weather {
	w := Weather{Temp: def.TempC, Wind: def.WindFtSec, LoadMult: def.LoadMult}
	if b.Temp != nil {
		w.Temp = *b.Temp
	}
	if b.Wind != nil {
		w.Wind = *b.Wind
	}
	if b.LoadMult != nil {
		w.LoadMult = *b.LoadMult
	}
	return w
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}
