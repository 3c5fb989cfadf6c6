package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"grid-thermal/internal/data"
	"grid-thermal/internal/model"
	"grid-thermal/internal/remediation"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Data    DataConfig    `yaml:"data"`
	Ambient AmbientConfig `yaml:"ambient"`
	Search  SearchConfig  `yaml:"search"`
	// Defaults applied when a request omits a weather parameter.
	Request RequestDefaults `yaml:"request_defaults"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DataConfig locates the topology CSVs. Relative paths are resolved
// against the config file's directory.
type DataConfig struct {
	Lines      string `yaml:"lines"`
	Buses      string `yaml:"buses"`
	Flows      string `yaml:"flows"`
	Conductors string `yaml:"conductors"`
}

// AmbientConfig is the site's fixed environment; per-request weather
// (temperature, wind speed) overlays it.
type AmbientConfig struct {
	WindAngleDeg float64 `yaml:"wind_angle_deg"`
	ElevationFt  float64 `yaml:"elevation_ft"`
	LatitudeDeg  float64 `yaml:"latitude_deg"`
	SunTimeHour  float64 `yaml:"sun_time_hour"`
	Date         string  `yaml:"date"`
	Emissivity   float64 `yaml:"emissivity"`
	Absorptivity float64 `yaml:"absorptivity"`
	Direction    string  `yaml:"direction"`
	Atmosphere   string  `yaml:"atmosphere"`
}

type SearchConfig struct {
	PopulationSize int     `yaml:"population_size"`
	Generations    int     `yaml:"generations"`
	CrossoverProb  float64 `yaml:"crossover_prob"`
	MutationProb   float64 `yaml:"mutation_prob"`
	TournamentSize int     `yaml:"tournament_size"`
}

type RequestDefaults struct {
	TempC     float64 `yaml:"temp_c"`
	WindFtSec float64 `yaml:"wind_ft_sec"`
	LoadMult  float64 `yaml:"load_mult"`
}

// Default returns the built-in configuration: a Hawaii-like site at noon
// on a mid-June day, serving on :8080.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Host: "0.0.0.0", Port: 8080},
		Data: DataConfig{
			Lines:      "data/lines.csv",
			Buses:      "data/buses.csv",
			Flows:      "data/flows.csv",
			Conductors: "data/conductors.csv",
		},
		Ambient: AmbientConfig{
			WindAngleDeg: 90,
			ElevationFt:  1000,
			LatitudeDeg:  27,
			SunTimeHour:  12,
			Date:         model.DefaultDate,
			Emissivity:   0.8,
			Absorptivity: 0.8,
			Direction:    string(model.DirectionEastWest),
			Atmosphere:   string(model.AtmosphereClear),
		},
		Search: SearchConfig{
			PopulationSize: 50,
			Generations:    30,
			CrossoverProb:  0.6,
			MutationProb:   0.2,
			TournamentSize: 3,
		},
		Request: RequestDefaults{TempC: 25, WindFtSec: 2, LoadMult: 1.0},
	}
}

// Load reads a YAML config, fills unset fields from Default, and
// validates the result. An empty path returns Default unchanged.
func Load(path string) (*Config, error) {
	c := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(raw, c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		c.Data = c.Data.resolveRelative(filepath.Dir(path))
	}
	c.fillDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (d DataConfig) resolveRelative(base string) DataConfig {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}
	d.Lines = resolve(d.Lines)
	d.Buses = resolve(d.Buses)
	d.Flows = resolve(d.Flows)
	d.Conductors = resolve(d.Conductors)
	return d
}

// fillDefaults backfills zero-valued fields so partial YAML files stay
// usable.
func (c *Config) fillDefaults() {
	def := Default()
	if c.Server.Host == "" {
		c.Server.Host = def.Server.Host
	}
	if c.Server.Port == 0 {
		c.Server.Port = def.Server.Port
	}
	if c.Ambient.Date == "" {
		c.Ambient.Date = def.Ambient.Date
	}
	if c.Ambient.Direction == "" {
		c.Ambient.Direction = def.Ambient.Direction
	}
	if c.Ambient.Atmosphere == "" {
		c.Ambient.Atmosphere = def.Ambient.Atmosphere
	}
	if c.Request.LoadMult == 0 {
		c.Request.LoadMult = def.Request.LoadMult
	}
	if c.Request.WindFtSec == 0 {
		c.Request.WindFtSec = def.Request.WindFtSec
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	for name, p := range map[string]string{
		"data.lines":      c.Data.Lines,
		"data.buses":      c.Data.Buses,
		"data.flows":      c.Data.Flows,
		"data.conductors": c.Data.Conductors,
	} {
		if p == "" {
			return fmt.Errorf("%s is required", name)
		}
	}
	// Validate the environment by constructing the model it feeds.
	if err := c.Ambient.ToModel(c.Request.TempC, c.Request.WindFtSec).Validate(); err != nil {
		return fmt.Errorf("ambient config invalid: %w", err)
	}
	return nil
}

// ToModel overlays request weather onto the configured site environment.
func (a AmbientConfig) ToModel(tempC, windFtSec float64) model.AmbientConditions {
	return model.AmbientConditions{
		TempC:        tempC,
		WindFtSec:    windFtSec,
		WindAngleDeg: a.WindAngleDeg,
		ElevationFt:  a.ElevationFt,
		LatitudeDeg:  a.LatitudeDeg,
		SunTimeHour:  a.SunTimeHour,
		Date:         a.Date,
		Emissivity:   a.Emissivity,
		Absorptivity: a.Absorptivity,
		Direction:    model.Direction(a.Direction),
		Atmosphere:   model.Atmosphere(a.Atmosphere),
	}
}

func (d DataConfig) ToPaths() data.Paths {
	return data.Paths{
		Lines:      d.Lines,
		Buses:      d.Buses,
		Flows:      d.Flows,
		Conductors: d.Conductors,
	}
}

func (s SearchConfig) ToParams() remediation.SearchParams {
	return remediation.SearchParams{
		PopulationSize: s.PopulationSize,
		Generations:    s.Generations,
		CrossoverProb:  s.CrossoverProb,
		MutationProb:   s.MutationProb,
		TournamentSize: s.TournamentSize,
	}
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
