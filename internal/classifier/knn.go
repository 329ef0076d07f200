package classifier

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultK is the neighbour count used when none is configured.
const DefaultK = 5

const weightEpsilon = 1e-9

// Prototype is one labelled reference reading, with features in FeatureSpec order.
type Prototype struct {
	ID       string    `json:"id" yaml:"id"`
	Victim   bool      `json:"victim" yaml:"victim"`
	Features []float64 `json:"features" yaml:"features"`
}

// KNNDetector votes over the k nearest prototypes in standardized feature
// space. Each neighbour weighs 1/(distance+ε); confidence is the victim share of
// the total weight.
type KNNDetector struct {
	prototypes []Prototype
	scaled     [][]float64
	scaler     *FeatureScaler
	k          int
}

type neighbour struct {
	index    int
	distance float64
}

// NewKNNDetector builds a detector from prototypes. k is capped at the
// prototype count.
func NewKNNDetector(prototypes []Prototype, k int) (*KNNDetector, error) {
	if k <= 0 {
		return nil, fmt.Errorf("invalid neighbour count: %d", k)
	}
	if len(prototypes) == 0 {
		return nil, fmt.Errorf("no prototypes provided")
	}
	for _, p := range prototypes {
		if len(p.Features) == 0 {
			return nil, fmt.Errorf("prototype %s has no features", p.ID)
		}
	}
	scaler, err := NewFeatureScaler(prototypes)
	if err != nil {
		return nil, fmt.Errorf("feature scaler: %w", err)
	}
	scaled := make([][]float64, len(prototypes))
	for i, p := range prototypes {
		scaled[i] = scaler.Transform(p.Features)
	}
	if k > len(prototypes) {
		k = len(prototypes)
	}
	return &KNNDetector{prototypes: prototypes, scaled: scaled, scaler: scaler, k: k}, nil
}

// K returns the effective neighbour count.
func (d *KNNDetector) K() int { return d.k }

// Detect implements Detector.
func (d *KNNDetector) Detect(features []float64) (bool, float64, error) {
	if len(features) == 0 {
		return false, 0, fmt.Errorf("feature vector is empty")
	}
	if len(features) != len(d.scaler.Mean) {
		return false, 0, fmt.Errorf("feature vector has %d values, expected %d", len(features), len(d.scaler.Mean))
	}
	for i, v := range features {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false, 0, fmt.Errorf("feature %d is not finite", i)
		}
	}

	query := d.scaler.Transform(features)
	nearest := make([]neighbour, len(d.scaled))
	for i, p := range d.scaled {
		nearest[i] = neighbour{index: i, distance: euclidean(query, p)}
	}
	sort.SliceStable(nearest, func(i, j int) bool { return nearest[i].distance < nearest[j].distance })

	var total, victim float64
	for _, n := range nearest[:d.k] {
		w := 1 / (n.distance + weightEpsilon)
		total += w
		if d.prototypes[n.index].Victim {
			victim += w
		}
	}
	conf := victim / total
	return conf >= 0.5, conf, nil
}

func euclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return math.Sqrt(sum)
}

// LoadPrototypes reads a prototype set from a .json, .yaml or .yml file.
func LoadPrototypes(path string) ([]Prototype, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to load prototypes (%s): %w", path, err)
	}
	var prototypes []Prototype
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &prototypes)
	default:
		err = json.Unmarshal(data, &prototypes)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to parse prototypes: %w", err)
	}
	if len(prototypes) == 0 {
		return nil, fmt.Errorf("no prototypes in %s", path)
	}
	return prototypes, nil
}

// Built-in reference grid. Every context (altitude, temperature, trend, CO,
// methane) carries two clear and two victim readings that differ only in CO2,
// so the vote always turns on CO2 above baseline. The clear/victim boundary
// sits near baseline+250 ppm, the plume of a victim about 2.5 cells away.
const protoBaselineCO2 = 430.0

var (
	protoCO2Offsets = []struct {
		name   string
		offset float64
		victim bool
	}{
		{"clear-base", 0, false},
		{"clear-plume", 120, false},
		{"victim-edge", 380, true},
		{"victim-core", 650, true},
	}
	protoAltitudes = []float64{0.5, 1.8, 3.2, 4.5}
	protoTemps     = []float64{18, 26, 38, 55}
	protoTrends    = []float64{-3, 0, 3}
	protoCO        = []float64{10, 400}
	protoMethane   = []float64{20, 15000}
)

// DefaultPrototypes returns the built-in reference set in DefaultFeatureSpec
// order: co2, temp, trend, altitude, co, methane.
func DefaultPrototypes() []Prototype {
	var out []Prototype
	for ai, alt := range protoAltitudes {
		for ti, temp := range protoTemps {
			for ri, trend := range protoTrends {
				for ci, co := range protoCO {
					for mi, ch4 := range protoMethane {
						for _, v := range protoCO2Offsets {
							out = append(out, Prototype{
								ID:       fmt.Sprintf("%s-a%dt%dr%dc%dm%d", v.name, ai, ti, ri, ci, mi),
								Victim:   v.victim,
								Features: []float64{protoBaselineCO2 + v.offset, temp, trend, alt, co, ch4},
							})
						}
					}
				}
			}
		}
	}
	return out
}
