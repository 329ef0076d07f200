// Package classifier holds the victim detectors consumed by the fusion engine.
// A detector sees only a numeric feature vector built from sensor readings; it
// never sees ground truth.
package classifier

import (
	"fmt"
)

// Detector reports whether a feature vector looks like a victim and how
// confident it is, with confidence in [0,1].
type Detector interface {
	Detect(features []float64) (bool, float64, error)
}

// Feature names understood by the fusion engine.
const (
	FeatureCO2       = "co2_ppm"
	FeatureTemp      = "temp_c"
	FeatureTempTrend = "temp_trend_c"
	FeatureAltitude  = "altitude_z"
	FeatureCO        = "co_ppm"
	FeatureMethane   = "methane_ppm"
)

// FeatureSpec fixes the order in which named features are laid out in a vector.
type FeatureSpec []string

// DefaultFeatureSpec is the layout used by the built-in detectors.
var DefaultFeatureSpec = FeatureSpec{
	FeatureCO2,
	FeatureTemp,
	FeatureTempTrend,
	FeatureAltitude,
	FeatureCO,
	FeatureMethane,
}

// Vector builds the feature vector in spec order. Every name must be present.
func (s FeatureSpec) Vector(values map[string]float64) ([]float64, error) {
	if len(s) == 0 {
		return nil, fmt.Errorf("empty feature spec")
	}
	out := make([]float64, len(s))
	for i, name := range s {
		v, ok := values[name]
		if !ok {
			return nil, fmt.Errorf("missing feature %q", name)
		}
		out[i] = v
	}
	return out, nil
}

// Index returns the position of name in the spec, or -1.
func (s FeatureSpec) Index(name string) int {
	for i, n := range s {
		if n == name {
			return i
		}
	}
	return -1
}
