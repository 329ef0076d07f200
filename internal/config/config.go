// Mission config loader with CUE validation and environment overrides
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"rescueops-sim/internal/fault"
	"rescueops-sim/internal/scenario"
)

// Environment variables read by ApplyEnv.
const (
	EnvSeed         = "RESCUE_SEED"
	EnvMissionID    = "MISSION_ID"
	EnvTickInterval = "TICK_INTERVAL"
)

// Classifier kinds.
const (
	ClassifierKNN       = "knn"
	ClassifierThreshold = "threshold"
)

// Duration is a time.Duration written as a Go duration string in YAML.
type Duration struct {
	time.Duration
}

// UnmarshalYAML parses values like "250ms" or "1s".
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	if s == "" {
		d.Duration = 0
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = v
	return nil
}

// Classifier selects and parameterises the victim detector.
type Classifier struct {
	Kind            string  `yaml:"kind"`
	PrototypesPath  string  `yaml:"prototypes_path"`
	K               int     `yaml:"k"`
	CO2ThresholdPPM float64 `yaml:"co2_threshold_ppm"`
}

// Export lists the optional output sinks. Empty paths are skipped.
type Export struct {
	CSVPath     string `yaml:"csv_path"`
	LogPath     string `yaml:"log_path"`
	MetricsPath string `yaml:"metrics_path"`
}

// MissionConfig is the root configuration of a mission run.
type MissionConfig struct {
	MissionID        string     `yaml:"mission_id"`
	Scenario         string     `yaml:"scenario"`
	ProfilePath      string     `yaml:"profile_path"`
	PointCount       int        `yaml:"point_count"`
	GridWidth        int        `yaml:"grid_width"`
	TickInterval     Duration   `yaml:"tick_interval"`
	StartLat         float64    `yaml:"start_lat"`
	StartLon         float64    `yaml:"start_lon"`
	BatteryCutoffPct float64    `yaml:"battery_cutoff_pct"`
	Classifier       Classifier `yaml:"classifier"`
	Export           Export     `yaml:"export"`
	Seed             *int64     `yaml:"seed"`
}

// Default returns the configuration used when no file is given.
func Default() *MissionConfig {
	return &MissionConfig{
		PointCount:       400,
		GridWidth:        20,
		StartLat:         -23.5505,
		StartLon:         -46.6333,
		BatteryCutoffPct: 5,
		Classifier: Classifier{
			Kind:            ClassifierKNN,
			K:               5,
			CO2ThresholdPPM: 800,
		},
	}
}

// Load validates the YAML file against the mission schema and decodes it over
// the defaults.
func Load(path string) (*MissionConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read mission config: %w", err)
	}
	if err := ValidateWithCue(path, data); err != nil {
		return nil, &fault.ConfigurationError{Field: path, Reason: err.Error()}
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &fault.ConfigurationError{Field: path, Reason: err.Error()}
	}
	return cfg, nil
}

// Validate checks value ranges the schema cannot see, such as scenario names.
func (c *MissionConfig) Validate() error {
	if c.PointCount <= 0 {
		return fault.Configf("point_count", "must be > 0, got %d", c.PointCount)
	}
	if c.GridWidth <= 0 {
		return fault.Configf("grid_width", "must be > 0, got %d", c.GridWidth)
	}
	if c.TickInterval.Duration < 0 {
		return fault.Configf("tick_interval", "must not be negative")
	}
	if c.BatteryCutoffPct < 0 || c.BatteryCutoffPct >= 100 {
		return fault.Configf("battery_cutoff_pct", "must be in [0,100), got %v", c.BatteryCutoffPct)
	}
	if c.Scenario != "" && c.ProfilePath == "" {
		if _, err := scenario.Lookup(c.Scenario); err != nil {
			return err
		}
	}
	switch c.Classifier.Kind {
	case ClassifierKNN:
		if c.Classifier.K <= 0 {
			return fault.Configf("classifier.k", "must be > 0, got %d", c.Classifier.K)
		}
	case ClassifierThreshold:
		if c.Classifier.CO2ThresholdPPM <= 0 {
			return fault.Configf("classifier.co2_threshold_ppm", "must be > 0, got %v", c.Classifier.CO2ThresholdPPM)
		}
	default:
		return fault.Configf("classifier.kind", "unknown kind %q", c.Classifier.Kind)
	}
	return nil
}

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment without overriding variables already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// SeedFromEnv returns the seed in RESCUE_SEED, if set.
func SeedFromEnv() (int64, bool, error) {
	raw := strings.TrimSpace(os.Getenv(EnvSeed))
	if raw == "" {
		return 0, false, nil
	}
	seed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, fault.Configf(EnvSeed, "not an integer: %q", raw)
	}
	return seed, true, nil
}

// ApplyEnv overlays environment settings onto the config. A seed from the
// environment wins over one in the file.
func (c *MissionConfig) ApplyEnv() error {
	seed, ok, err := SeedFromEnv()
	if err != nil {
		return err
	}
	if ok {
		c.Seed = &seed
	}
	if id := os.Getenv(EnvMissionID); id != "" {
		c.MissionID = id
	}
	if v := os.Getenv(EnvTickInterval); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fault.Configf(EnvTickInterval, "invalid duration %q", v)
		}
		c.TickInterval.Duration = d
	}
	return nil
}
