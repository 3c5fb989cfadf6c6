package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"grid-thermal/internal/analysis"
	"grid-thermal/internal/config"
	"grid-thermal/internal/data"
	"grid-thermal/internal/grid"
	"grid-thermal/internal/model"
	"grid-thermal/internal/remediation"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "simulate":
		cmdSimulate(os.Args[2:])
	case "contingency":
		cmdContingency(os.Args[2:])
	case "remediate":
		cmdRemediate(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli simulate --config config.yaml [--temp 25] [--wind 2] [--load 1.0] [--offline L1,L2]")
	fmt.Println("  cli contingency --config config.yaml [--temp 25] [--wind 2] [--load 1.0]")
	fmt.Println("  cli remediate --config config.yaml [--temp 25] [--wind 2] [--load 1.0] [--offline L1,L2]")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - simulate prints per-line loading against the thermal rating")
	fmt.Println("  - contingency ranks single-line outages by failures caused")
	fmt.Println("  - remediate searches for the cheapest corrective action plan")
}

// simFlags is the flag surface the three subcommands share.
type simFlags struct {
	fs      *flag.FlagSet
	cfgPath *string
	temp    *float64
	wind    *float64
	load    *float64
	offline *string
}

func newSimFlags(name string) *simFlags {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	return &simFlags{
		fs:      fs,
		cfgPath: fs.String("config", "", "Path to YAML config"),
		temp:    fs.Float64("temp", 0, "Ambient temperature, deg C (0 = config default)"),
		wind:    fs.Float64("wind", 0, "Wind speed, ft/s (0 = config default)"),
		load:    fs.Float64("load", 0, "Load multiplier (0 = config default)"),
		offline: fs.String("offline", "", "Comma-separated line names to take offline"),
	}
}

// setup parses flags, loads config and topology, and returns the wired
// simulator plus the resolved weather inputs.
func (f *simFlags) setup(args []string) (*grid.Simulator, float64, float64, float64, map[string]struct{}) {
	_ = f.fs.Parse(args)

	cfg, err := config.Load(*f.cfgPath)
	if err != nil {
		fatal(err)
	}
	net, err := data.Load(cfg.Data.ToPaths())
	if err != nil {
		fatal(err)
	}

	temp := cfg.Request.TempC
	if *f.temp != 0 {
		temp = *f.temp
	}
	wind := cfg.Request.WindFtSec
	if *f.wind != 0 {
		wind = *f.wind
	}
	load := cfg.Request.LoadMult
	if *f.load != 0 {
		load = *f.load
	}

	offline := make(map[string]struct{})
	if *f.offline != "" {
		for _, name := range strings.Split(*f.offline, ",") {
			name = strings.TrimSpace(name)
			if !net.HasLine(name) {
				fatal(fmt.Errorf("unknown line %q", name))
			}
			offline[name] = struct{}{}
		}
	}

	sim := grid.NewSimulator(net, cfg.Ambient.ToModel(temp, wind))
	return sim, temp, wind, load, offline
}

func cmdSimulate(args []string) {
	f := newSimFlags("simulate")
	sim, temp, wind, load, offline := f.setup(args)

	rep, err := sim.Simulate(temp, wind, load, offline)
	if err != nil {
		fatal(err)
	}

	fmt.Printf("Conditions: %.1f C, %.1f ft/s wind, load x%.2f\n\n", temp, wind, load)
	fmt.Printf("%-12s %-10s %10s %12s %12s\n", "LINE", "STATUS", "LOADING", "CURRENT MVA", "RATING MVA")
	lines := append([]model.LineResult(nil), rep.Lines...)
	sort.Slice(lines, func(i, j int) bool { return lines[i].LoadingPercent > lines[j].LoadingPercent })
	for _, l := range lines {
		fmt.Printf("%-12s %-10s %9.2f%% %12.2f %12.2f\n",
			l.Name, l.Status, l.LoadingPercent, l.CurrentMVA, l.RatingMVA)
	}
	fmt.Printf("\nFailures: %d/%d  Overall stress: %.2f\n", rep.FailureCount, rep.TotalLines, rep.OverallStress)
}

func cmdContingency(args []string) {
	f := newSimFlags("contingency")
	sim, temp, wind, load, offline := f.setup(args)

	out, err := analysis.NewAnalyzer(sim).AnalyzeN1(context.Background(), temp, wind, load, offline)
	if err != nil {
		fatal(err)
	}

	fmt.Printf("Worst single-line outages at %.1f C, %.1f ft/s, load x%.2f:\n\n", temp, wind, load)
	fmt.Printf("%-6s %-12s %s\n", "RANK", "LINE", "FAILURES CAUSED")
	for i, c := range out {
		fmt.Printf("%-6d %-12s %d\n", i+1, c.LineName, c.FailuresCaused)
	}
}

func cmdRemediate(args []string) {
	f := newSimFlags("remediate")
	sim, temp, wind, load, offline := f.setup(args)

	opt := remediation.NewOptimizer(sim, remediation.DefaultSearchParams(), nil)
	out, err := opt.Optimize(context.Background(), temp, wind, load, offline)
	if err != nil {
		fatal(err)
	}

	fmt.Printf("Plan %s\n", out.ID)
	fmt.Printf("Baseline failures: %d  After plan: %d  Cost: %d\n\n", out.BaselineFailures, out.RemediatedFailures, out.Cost)
	for i, a := range out.Plan {
		fmt.Printf("  %d. %s\n", i+1, model.FormatAction(a))
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
