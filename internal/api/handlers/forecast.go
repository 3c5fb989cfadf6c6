package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"grid-thermal/internal/analysis"
	"grid-thermal/internal/api/models"
	"grid-thermal/internal/grid"
)

// ForecastHandler serves per-day failure predictions
type ForecastHandler struct {
	analyzer *analysis.Analyzer
	session  *grid.Session
}

func NewForecastHandler(analyzer *analysis.Analyzer, session *grid.Session) *ForecastHandler {
	return &ForecastHandler{analyzer: analyzer, session: session}
}

// Predict handles POST /api/predict. The body is a JSON array of forecast
// days; each is simulated at the worst-case load multiplier.
func (h *ForecastHandler) Predict(c *gin.Context) {
	var days []models.ForecastDay
	if err := c.ShouldBindJSON(&days); err != nil {
		respondError(c, http.StatusBadRequest, codeInvalidParameter, err.Error())
		return
	}

	conds := make([]analysis.DayConditions, 0, len(days))
	for _, d := range days {
		conds = append(conds, analysis.DayConditions{Day: d.Day, TempC: d.Temp, WindFtSec: d.Wind})
	}
	preds := h.analyzer.Forecast(conds, h.session.Snapshot())
	c.JSON(http.StatusOK, models.NewPredictions(preds))
}
