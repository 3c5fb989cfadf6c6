package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"grid-thermal/internal/analysis"
	"grid-thermal/internal/api/models"
	"grid-thermal/internal/config"
	"grid-thermal/internal/grid"
)

// ContingencyHandler serves N-1 contingency rankings
type ContingencyHandler struct {
	analyzer *analysis.Analyzer
	session  *grid.Session
	defaults config.RequestDefaults
}

func NewContingencyHandler(analyzer *analysis.Analyzer, session *grid.Session, defaults config.RequestDefaults) *ContingencyHandler {
	return &ContingencyHandler{analyzer: analyzer, session: session, defaults: defaults}
}

// N1Analysis handles GET /api/n-1-analysis. The analysis runs against a
// snapshot of the session's offline set; the session itself is untouched.
func (h *ContingencyHandler) N1Analysis(c *gin.Context) {
	w, err := weatherFromQuery(c, h.defaults)
	if err != nil {
		respondError(c, http.StatusBadRequest, codeInvalidParameter, err.Error())
		return
	}

	list, err := h.analyzer.AnalyzeN1(c.Request.Context(), w.Temp, w.Wind, w.LoadMult, h.session.Snapshot())
	if err != nil {
		if errors.Is(err, context.Canceled) {
			// Client went away mid-analysis; nothing to write.
			c.Abort()
			return
		}
		respondSimError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewContingencies(list))
}
