// Package api assembles the HTTP surface: handlers, middleware, routes.
package api

import (
	"github.com/gin-gonic/gin"

	"grid-thermal/internal/analysis"
	"grid-thermal/internal/api/handlers"
	"grid-thermal/internal/api/middleware"
	"grid-thermal/internal/config"
	"grid-thermal/internal/grid"
	"grid-thermal/internal/remediation"
)

// Deps are the wired collaborators the router serves.
type Deps struct {
	Simulator *grid.Simulator
	Session   *grid.Session
	Analyzer  *analysis.Analyzer
	Optimizer *remediation.Optimizer
	Defaults  config.RequestDefaults
}

// NewRouter builds the gin engine with all middleware and routes attached.
func NewRouter(d Deps) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler())

	gridHandler := handlers.NewGridHandler(d.Simulator, d.Session, d.Defaults)
	contingencyHandler := handlers.NewContingencyHandler(d.Analyzer, d.Session, d.Defaults)
	remediationHandler := handlers.NewRemediationHandler(d.Optimizer, d.Defaults)
	forecastHandler := handlers.NewForecastHandler(d.Analyzer, d.Session)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api")
	{
		apiGroup.GET("/grid-status", gridHandler.GridStatus)
		apiGroup.POST("/toggle-line", gridHandler.ToggleLine)
		apiGroup.POST("/cascade-round", gridHandler.CascadeRound)
		apiGroup.GET("/map-buses", gridHandler.MapBuses)

		apiGroup.GET("/n-1-analysis", contingencyHandler.N1Analysis)
		apiGroup.POST("/find-remediation", remediationHandler.FindRemediation)
		apiGroup.POST("/predict", forecastHandler.Predict)
	}

	return router
}
