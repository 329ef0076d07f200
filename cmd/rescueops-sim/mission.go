package main

import (
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"rescueops-sim/internal/classifier"
	"rescueops-sim/internal/config"
	"rescueops-sim/internal/fault"
	"rescueops-sim/internal/scenario"
	"rescueops-sim/internal/sim"
	"rescueops-sim/internal/telemetry"
)

// missionFlags are the config overrides shared by simulate and batch.
type missionFlags struct {
	configPath  string
	scenario    string
	profilePath string
	missionID   string
	points      int
	width       int
	cutoff      float64
	classifier  string
	prototypes  string
}

func (f *missionFlags) register(cmd *cobra.Command) {
	def := config.Default()
	fs := cmd.Flags()
	fs.StringVar(&f.configPath, "config", "", "Path to mission configuration YAML")
	fs.StringVar(&f.scenario, "scenario", "", "Scenario archetype ("+joinNames()+")")
	fs.StringVar(&f.profilePath, "profile", "", "Path to a custom scenario profile YAML")
	fs.StringVar(&f.missionID, "mission-id", "", "Mission identifier (random uuid when empty)")
	fs.IntVar(&f.points, "points", def.PointCount, "Number of measured points")
	fs.IntVar(&f.width, "width", def.GridWidth, "Grid width in cells")
	fs.Float64Var(&f.cutoff, "battery-cutoff", def.BatteryCutoffPct, "Stop the mission at or below this battery percentage")
	fs.StringVar(&f.classifier, "classifier", def.Classifier.Kind, "Victim classifier (knn or threshold)")
	fs.StringVar(&f.prototypes, "prototypes", "", "JSON or YAML prototype file for the knn classifier")
}

// loadConfig layers defaults, the config file, the environment and finally the
// flags that were set explicitly.
func (f *missionFlags) loadConfig(cmd *cobra.Command) (*config.MissionConfig, error) {
	cfg := config.Default()
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	fs := cmd.Flags()
	if fs.Changed("scenario") {
		cfg.Scenario = f.scenario
	}
	if fs.Changed("profile") {
		cfg.ProfilePath = f.profilePath
	}
	if fs.Changed("mission-id") {
		cfg.MissionID = f.missionID
	}
	if fs.Changed("points") {
		cfg.PointCount = f.points
	}
	if fs.Changed("width") {
		cfg.GridWidth = f.width
	}
	if fs.Changed("battery-cutoff") {
		cfg.BatteryCutoffPct = f.cutoff
	}
	if fs.Changed("classifier") {
		cfg.Classifier.Kind = f.classifier
	}
	if fs.Changed("prototypes") {
		cfg.Classifier.PrototypesPath = f.prototypes
	}
	return cfg, nil
}

// resolveProfile picks the scenario from the profile file, the named archetype
// or, when allowed, an interactive prompt.
func resolveProfile(cfg *config.MissionConfig, prompt bool, in io.Reader, out io.Writer) (scenario.Profile, error) {
	switch {
	case cfg.ProfilePath != "":
		p, err := scenario.LoadProfile(cfg.ProfilePath)
		if err != nil {
			return scenario.Profile{}, err
		}
		return *p, nil
	case cfg.Scenario != "":
		return scenario.Lookup(cfg.Scenario)
	case prompt:
		return scenario.Prompt(in, out)
	}
	return scenario.Profile{}, fault.Configf("scenario", "no scenario given, use --scenario or --profile")
}

// newDetector builds the configured victim classifier.
func newDetector(c config.Classifier) (classifier.Detector, error) {
	switch c.Kind {
	case config.ClassifierThreshold:
		det, err := classifier.NewThresholdDetector(classifier.DefaultFeatureSpec, c.CO2ThresholdPPM)
		if err != nil {
			return nil, err
		}
		return det, nil
	case config.ClassifierKNN:
		protos := classifier.DefaultPrototypes()
		if c.PrototypesPath != "" {
			loaded, err := classifier.LoadPrototypes(c.PrototypesPath)
			if err != nil {
				return nil, err
			}
			protos = loaded
		}
		det, err := classifier.NewKNNDetector(protos, c.K)
		if err != nil {
			return nil, err
		}
		return det, nil
	}
	return nil, fault.Configf("classifier.kind", "unknown kind %q", c.Kind)
}

// newSetup assembles everything a mission needs apart from its seed and writer.
func newSetup(cfg *config.MissionConfig, profile scenario.Profile, det classifier.Detector) sim.Setup {
	id := cfg.MissionID
	if id == "" {
		id = uuid.NewString()
	}
	step := cfg.TickInterval.Duration
	if step <= 0 {
		step = time.Second
	}
	return sim.Setup{
		MissionID:  id,
		Profile:    profile,
		PointCount: cfg.PointCount,
		GridWidth:  cfg.GridWidth,
		Generator: telemetry.GeneratorOptions{
			Start:    time.Now().UTC().Truncate(time.Second),
			Step:     step,
			StartLat: cfg.StartLat,
			StartLon: cfg.StartLon,
		},
		Detector: det,
		Spec:     classifier.DefaultFeatureSpec,
		Options: sim.Options{
			TickInterval:     cfg.TickInterval.Duration,
			BatteryCutoffPct: cfg.BatteryCutoffPct,
		},
	}
}

// seedOf returns the configured seed or a time-based one.
func seedOf(cfg *config.MissionConfig) (int64, bool) {
	if cfg.Seed != nil {
		return *cfg.Seed, true
	}
	return time.Now().UnixNano(), false
}
