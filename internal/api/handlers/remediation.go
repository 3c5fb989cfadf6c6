package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"grid-thermal/internal/api/models"
	"grid-thermal/internal/config"
	"grid-thermal/internal/remediation"
)

// RemediationHandler serves the evolutionary remediation search
type RemediationHandler struct {
	opt      *remediation.Optimizer
	defaults config.RequestDefaults
}

func NewRemediationHandler(opt *remediation.Optimizer, defaults config.RequestDefaults) *RemediationHandler {
	return &RemediationHandler{opt: opt, defaults: defaults}
}

// FindRemediation handles POST /api/find-remediation. The baseline offline
// set is taken from the request so the frontend can ask about a
// hypothetical state without committing it to the session.
func (h *RemediationHandler) FindRemediation(c *gin.Context) {
	var req models.RemediationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeInvalidParameter, err.Error())
		return
	}
	w := weatherFromBody(req.SimulationBody, h.defaults)

	out, err := h.opt.Optimize(c.Request.Context(), w.Temp, w.Wind, w.LoadMult, toSet(req.BaselineOfflineLines))
	if err != nil {
		respondSimError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewRemediation(out))
}
