package classifier

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatureSpecVector(t *testing.T) {
	v, err := DefaultFeatureSpec.Vector(map[string]float64{
		FeatureCO2: 900, FeatureTemp: 25, FeatureTempTrend: 0.4,
		FeatureAltitude: 1.1, FeatureCO: 12, FeatureMethane: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{900, 25, 0.4, 1.1, 12, 30}, v)

	_, err = DefaultFeatureSpec.Vector(map[string]float64{FeatureCO2: 900})
	assert.ErrorContains(t, err, "missing feature")

	_, err = FeatureSpec{}.Vector(nil)
	assert.Error(t, err)

	assert.Equal(t, 4, DefaultFeatureSpec.Index(FeatureCO))
	assert.Equal(t, -1, DefaultFeatureSpec.Index("humidity"))
}

func TestThresholdDetector(t *testing.T) {
	d, err := NewThresholdDetector(DefaultFeatureSpec, 800)
	require.NoError(t, err)

	ok, conf, err := d.Detect([]float64{1200, 25, 0, 1, 10, 10})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.InDelta(t, 0.75, conf, 1e-9)

	ok, conf, err = d.Detect([]float64{420, 25, 0, 1, 10, 10})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.GreaterOrEqual(t, conf, 0.0)
	assert.Less(t, conf, 0.5)

	_, _, err = d.Detect([]float64{1200})
	assert.Error(t, err)

	_, err = NewThresholdDetector(FeatureSpec{FeatureTemp}, 800)
	assert.Error(t, err)
	_, err = NewThresholdDetector(DefaultFeatureSpec, 0)
	assert.Error(t, err)
}

func TestFeatureScaler(t *testing.T) {
	s, err := NewFeatureScaler([]Prototype{
		{Features: []float64{0, 5}},
		{Features: []float64{10, 5}},
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 5}, s.Mean)
	assert.Equal(t, []float64{5, 1}, s.Stddev)
	assert.Equal(t, []float64{1, 0}, s.Transform([]float64{10, 5}))

	_, err = NewFeatureScaler(nil)
	assert.Error(t, err)
	_, err = NewFeatureScaler([]Prototype{{Features: []float64{1}}, {Features: []float64{1, 2}}})
	assert.Error(t, err)
}

func TestKNNDetectorDefaultPrototypes(t *testing.T) {
	d, err := NewKNNDetector(DefaultPrototypes(), DefaultK)
	require.NoError(t, err)
	assert.Equal(t, DefaultK, d.K())

	ok, conf, err := d.Detect([]float64{1550, 23, 0.1, 0.8, 12, 10})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Greater(t, conf, 0.99)

	ok, conf, err = d.Detect([]float64{430, 23, 0.1, 1.0, 15, 10})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Less(t, conf, 0.01)

	for _, p := range DefaultPrototypes() {
		assert.Len(t, p.Features, len(DefaultFeatureSpec), p.ID)
	}
}

func TestKNNDetectorDefaultPrototypesTrackCO2(t *testing.T) {
	d, err := NewKNNDetector(DefaultPrototypes(), DefaultK)
	require.NoError(t, err)

	cases := []struct {
		name   string
		in     []float64
		victim bool
	}{
		{"warehouse baseline", []float64{420, 24, 0, 1.5, 15, 5}, false},
		{"tunnel baseline", []float64{450, 18, 0, 1.5, 8, 20}, false},
		{"chemical baseline", []float64{410, 26, 0, 1.5, 5, 50}, false},
		{"warehouse mid plume", []float64{570, 24, 0, 1.5, 15, 5}, false},
		{"tunnel mid plume", []float64{600, 18, 0, 1.5, 8, 20}, false},
		{"fire zone", []float64{470, 55, 3, 1.2, 600, 5}, false},
		{"methane cloud", []float64{420, 25, 0, 1.1, 5, 20000}, false},
		{"tunnel near site", []float64{1050, 18, 0, 1.5, 8, 20}, true},
		{"chemical near site", []float64{1100, 26, 0, 2.5, 5, 12000}, true},
	}
	for _, tc := range cases {
		ok, conf, err := d.Detect(tc.in)
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.victim, ok, "%s conf=%.2f", tc.name, conf)
	}
}

func TestKNNDetectorRejectsBadInput(t *testing.T) {
	d, err := NewKNNDetector(DefaultPrototypes(), 3)
	require.NoError(t, err)

	_, _, err = d.Detect(nil)
	assert.ErrorContains(t, err, "empty")
	_, _, err = d.Detect([]float64{1, 2, 3})
	assert.ErrorContains(t, err, "expected 6")
	_, _, err = d.Detect([]float64{math.NaN(), 23, 0, 1, 10, 10})
	assert.ErrorContains(t, err, "not finite")

	_, err = NewKNNDetector(DefaultPrototypes(), 0)
	assert.Error(t, err)
	_, err = NewKNNDetector(nil, 3)
	assert.Error(t, err)
}

func TestLoadPrototypes(t *testing.T) {
	protos, err := LoadPrototypes("testdata/prototypes.yaml")
	require.NoError(t, err)
	require.Len(t, protos, 3)
	assert.Equal(t, "hot-victim", protos[0].ID)
	assert.True(t, protos[0].Victim)

	d, err := NewKNNDetector(protos, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, d.K())

	d, err = NewKNNDetector(protos, 1)
	require.NoError(t, err)
	ok, _, err := d.Detect([]float64{1150, 30})
	require.NoError(t, err)
	assert.True(t, ok)

	protos, err = LoadPrototypes("testdata/prototypes.json")
	require.NoError(t, err)
	assert.Len(t, protos, 2)

	_, err = LoadPrototypes("testdata/empty.json")
	assert.Error(t, err)
	_, err = LoadPrototypes("testdata/missing.json")
	assert.Error(t, err)
}
