package classifier

import (
	"fmt"
	"math"
)

// ThresholdDetector flags a victim when the CO2 feature reaches a threshold.
// Confidence ramps linearly over one threshold-width above and below it.
type ThresholdDetector struct {
	Spec            FeatureSpec
	CO2ThresholdPPM float64
}

// NewThresholdDetector returns a detector over spec using threshold ppm.
func NewThresholdDetector(spec FeatureSpec, threshold float64) (*ThresholdDetector, error) {
	if spec.Index(FeatureCO2) < 0 {
		return nil, fmt.Errorf("feature spec has no %s", FeatureCO2)
	}
	if threshold <= 0 {
		return nil, fmt.Errorf("co2 threshold must be > 0, got %v", threshold)
	}
	return &ThresholdDetector{Spec: spec, CO2ThresholdPPM: threshold}, nil
}

// Detect implements Detector.
func (d *ThresholdDetector) Detect(features []float64) (bool, float64, error) {
	if len(features) != len(d.Spec) {
		return false, 0, fmt.Errorf("feature vector has %d values, expected %d", len(features), len(d.Spec))
	}
	co2 := features[d.Spec.Index(FeatureCO2)]
	if math.IsNaN(co2) {
		return false, 0, fmt.Errorf("co2 feature is NaN")
	}
	conf := 0.5 + 0.5*(co2-d.CO2ThresholdPPM)/d.CO2ThresholdPPM
	conf = math.Max(0, math.Min(1, conf))
	return co2 >= d.CO2ThresholdPPM, conf, nil
}
