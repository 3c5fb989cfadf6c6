package main

import (
	"flag"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"grid-thermal/internal/analysis"
	"grid-thermal/internal/api"
	"grid-thermal/internal/config"
	"grid-thermal/internal/data"
	"grid-thermal/internal/grid"
	"grid-thermal/internal/remediation"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (empty: built-in defaults)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Topology load is fatal: serving simulations against a half-loaded
	// grid would produce silently wrong ratings.
	net, err := data.Load(cfg.Data.ToPaths())
	if err != nil {
		log.Fatalf("Failed to load topology: %v", err)
	}
	log.Printf("Loaded topology: %d lines, %d buses", len(net.Lines), len(net.BusCoords))

	base := cfg.Ambient.ToModel(cfg.Request.TempC, cfg.Request.WindFtSec)
	sim := grid.NewSimulator(net, base)
	session := grid.NewSession(net)
	analyzer := analysis.NewAnalyzer(sim)
	optimizer := remediation.NewOptimizer(sim, cfg.Search.ToParams(), nil)

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(api.Deps{
		Simulator: sim,
		Session:   session,
		Analyzer:  analyzer,
		Optimizer: optimizer,
		Defaults:  cfg.Request,
	})

	addr := cfg.Server.Addr()
	log.Printf("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
