package sim

import (
	"fmt"
	"math/rand"

	"rescueops-sim/internal/classifier"
	"rescueops-sim/internal/fusion"
	"rescueops-sim/internal/scenario"
	"rescueops-sim/internal/telemetry"
)

// Setup is everything needed to build a mission apart from its randomness.
// Detector must be safe for concurrent use when the setup feeds RunBatch.
type Setup struct {
	MissionID  string
	Profile    scenario.Profile
	PointCount int
	GridWidth  int
	Generator  telemetry.GeneratorOptions
	Detector   classifier.Detector
	Spec       classifier.FeatureSpec
	Options    Options
}

// Build generates the world and wires a mission. One seed drives two derived
// sources, one for the world and one for the priority jitter, so the same seed
// reproduces the whole run.
func (s Setup) Build(seed int64, writer PointWriter) (*Mission, error) {
	master := rand.New(rand.NewSource(seed))
	worldRng := rand.New(rand.NewSource(master.Int63()))
	jitterRng := rand.New(rand.NewSource(master.Int63()))

	world, err := telemetry.NewGenerator(s.Profile, s.Generator, worldRng).Generate(s.PointCount, s.GridWidth)
	if err != nil {
		return nil, fmt.Errorf("generate world: %w", err)
	}
	spec := s.Spec
	if len(spec) == 0 {
		spec = classifier.DefaultFeatureSpec
	}
	engine := fusion.NewEngine(s.Detector, spec, jitterRng)
	return NewMission(s.MissionID, s.Profile, world, engine, writer, s.Options), nil
}
