package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"rescueops-sim/internal/fault"
)

// Hazard names the dominant hazard of an archetype. It decides which gas channel
// the archetype's risk zones feed when the profile lists no sources for it.
type Hazard string

const (
	HazardHeat     Hazard = "heat"
	HazardConfined Hazard = "confined"
	HazardChemical Hazard = "chemical"
)

// Source strength per risk level when risk zones are routed into a gas channel.
const (
	COPerRiskLevel      = 1000.0
	MethanePerRiskLevel = 40000.0
)

// Zone is a circular area of influence on the site grid. Intensity is a
// temperature offset, a risk level or a gas source strength depending on the list
// the zone belongs to.
type Zone struct {
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Radius    float64 `yaml:"radius"`
	Intensity float64 `yaml:"intensity"`
}

// Range is an inclusive integer interval.
type Range struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Profile is the immutable parameter set of a hazard archetype.
type Profile struct {
	Name                    string  `yaml:"name"`
	Title                   string  `yaml:"title,omitempty"`
	Description             string  `yaml:"description,omitempty"`
	Hazard                  Hazard  `yaml:"hazard"`
	AmbientTempC            float64 `yaml:"ambient_temp_c"`
	CO2Baseline             float64 `yaml:"co2_baseline"`
	COBaseline              float64 `yaml:"co_baseline"`
	MethaneBaseline         float64 `yaml:"methane_baseline"`
	GPSAvailable            bool    `yaml:"gps_available"`
	BatteryDrainCoefficient float64 `yaml:"battery_drain_coefficient"`
	VictimCount             Range   `yaml:"victim_count_range"`
	VictimSignal            Range   `yaml:"victim_signal_range"`
	ThermalZones            []Zone  `yaml:"thermal_zones,omitempty"`
	RiskZones               []Zone  `yaml:"risk_zones,omitempty"`
	COSources               []Zone  `yaml:"co_sources,omitempty"`
	MethaneSources          []Zone  `yaml:"methane_sources,omitempty"`
}

// Validate checks every distribution parameter before it is used by the generator.
func (p Profile) Validate() error {
	if p.Name == "" {
		return fault.Configf("name", "profile name is empty")
	}
	switch p.Hazard {
	case HazardHeat, HazardConfined, HazardChemical:
	default:
		return fault.Configf("hazard", "unknown hazard %q", p.Hazard)
	}
	if p.CO2Baseline < 0 || p.COBaseline < 0 || p.MethaneBaseline < 0 {
		return fault.Configf("baselines", "gas baselines must be >= 0")
	}
	if p.BatteryDrainCoefficient <= 0 {
		return fault.Configf("battery_drain_coefficient", "must be > 0, got %g", p.BatteryDrainCoefficient)
	}
	if p.VictimCount.Min < 0 || p.VictimCount.Max < p.VictimCount.Min || p.VictimCount.Max <= 0 {
		return fault.Configf("victim_count_range", "invalid range [%d,%d]", p.VictimCount.Min, p.VictimCount.Max)
	}
	if p.VictimSignal.Min <= 0 || p.VictimSignal.Max < p.VictimSignal.Min {
		return fault.Configf("victim_signal_range", "invalid range [%d,%d]", p.VictimSignal.Min, p.VictimSignal.Max)
	}
	lists := []struct {
		field string
		zones []Zone
	}{
		{"thermal_zones", p.ThermalZones},
		{"risk_zones", p.RiskZones},
		{"co_sources", p.COSources},
		{"methane_sources", p.MethaneSources},
	}
	for _, l := range lists {
		for i, z := range l.zones {
			if z.Radius <= 0 {
				return fault.Configf(fmt.Sprintf("%s[%d].radius", l.field, i), "must be > 0, got %g", z.Radius)
			}
		}
	}
	return nil
}

// GasSources returns the CO and methane source zones the generator should use.
// A heat archetype without CO sources routes its risk zones into CO; a chemical
// archetype without methane sources routes them into methane. Listed sources are
// returned unchanged.
func (p Profile) GasSources() (co, methane []Zone) {
	co, methane = p.COSources, p.MethaneSources
	switch p.Hazard {
	case HazardHeat:
		if len(co) == 0 {
			co = routeRisk(p.RiskZones, COPerRiskLevel)
		}
	case HazardChemical:
		if len(methane) == 0 {
			methane = routeRisk(p.RiskZones, MethanePerRiskLevel)
		}
	}
	return co, methane
}

// routeRisk turns risk zones into gas sources of the given strength per risk level.
func routeRisk(zones []Zone, strengthPerLevel float64) []Zone {
	if len(zones) == 0 {
		return nil
	}
	out := make([]Zone, len(zones))
	for i, z := range zones {
		out[i] = Zone{X: z.X, Y: z.Y, Radius: z.Radius, Intensity: z.Intensity * strengthPerLevel}
	}
	return out
}

// LoadProfile reads a YAML scenario profile from disk and validates it.
func LoadProfile(path string) (*Profile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	var p Profile
	if err := yaml.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}
