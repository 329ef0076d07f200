package classifier

import (
	"errors"
	"math"
)

// FeatureScaler standardizes each dimension to mean 0 and stddev 1 so that ppm
// channels do not swamp temperature and altitude in distance calculations.
type FeatureScaler struct {
	Mean   []float64 `json:"mean"`
	Stddev []float64 `json:"stddev"`
}

// NewFeatureScaler computes scaling parameters from a prototype set.
func NewFeatureScaler(prototypes []Prototype) (*FeatureScaler, error) {
	if len(prototypes) == 0 {
		return nil, errors.New("no prototypes provided")
	}
	dims := len(prototypes[0].Features)
	if dims == 0 {
		return nil, errors.New("prototypes have no features")
	}

	mean := make([]float64, dims)
	for _, p := range prototypes {
		if len(p.Features) != dims {
			return nil, errors.New("inconsistent feature dimensions")
		}
		for i, v := range p.Features {
			mean[i] += v
		}
	}
	for i := range mean {
		mean[i] /= float64(len(prototypes))
	}

	stddev := make([]float64, dims)
	for _, p := range prototypes {
		for i, v := range p.Features {
			diff := v - mean[i]
			stddev[i] += diff * diff
		}
	}
	for i := range stddev {
		stddev[i] = math.Sqrt(stddev[i] / float64(len(prototypes)))
		// constant feature
		if stddev[i] < 1e-10 {
			stddev[i] = 1.0
		}
	}

	return &FeatureScaler{Mean: mean, Stddev: stddev}, nil
}

// Transform returns the standardized copy of features.
func (fs *FeatureScaler) Transform(features []float64) []float64 {
	scaled := make([]float64, len(features))
	for i, v := range features {
		scaled[i] = (v - fs.Mean[i]) / fs.Stddev[i]
	}
	return scaled
}
