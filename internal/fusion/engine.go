// Package fusion turns one raw point plus the previously fused point into a
// scored, commanded FusedPoint.
package fusion

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"rescueops-sim/internal/classifier"
	"rescueops-sim/internal/fault"
	"rescueops-sim/internal/telemetry"
)

// Escalation and scoring constants.
const (
	COEscalatePPM      = 500.0
	MethaneEscalatePPM = 10000.0
	TrendEscalateC     = 4.0
	TrendEscalateRisk  = 2

	victimWeight = 0.70
	riskWeight   = 0.20
	rollWeight   = 0.05
	trendWeight  = 0.05
	trendCapC    = 5.0
	maxJitter    = 200
)

// Engine fuses points one at a time. It keeps no state between calls except its
// random source, which only feeds the priority jitter.
type Engine struct {
	detector classifier.Detector
	spec     classifier.FeatureSpec
	rules    []Rule
	rng      *rand.Rand
}

// NewEngine creates an engine using the default rule cascade. A nil rng is
// replaced by a time-seeded source.
func NewEngine(det classifier.Detector, spec classifier.FeatureSpec, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{detector: det, spec: spec, rules: DefaultRules(), rng: rng}
}

// WithRules replaces the command cascade.
func (e *Engine) WithRules(rules []Rule) *Engine {
	e.rules = rules
	return e
}

// Fuse derives every FusedPoint field from point and prev. When the detector
// fails, trend, forecast and route cost are still filled, the point is marked as
// a gap with command UNSCORED, and a *fault.InferenceError is returned.
func (e *Engine) Fuse(point telemetry.RawPoint, prev *telemetry.FusedPoint) (telemetry.FusedPoint, error) {
	fp := telemetry.FusedPoint{RawPoint: point}

	if prev != nil {
		fp.TempTrendC = round1(point.TempC - prev.TempC)
	}
	fp.PredictedRisk = PredictRisk(point, fp.TempTrendC)
	fp.RouteCost = RouteCost(point)

	detected, pct, err := e.infer(fp)
	if err != nil {
		fp.Gap = true
		fp.GapReason = err.Error()
		fp.Command = telemetry.CommandUnscored
		return fp, &fault.InferenceError{Index: point.Index, Err: err}
	}
	fp.VictimDetected = detected
	fp.VictimConfidencePct = pct

	fp.PriorityScore = Score(pct, fp.PredictedRisk, point.RollDeg, fp.TempTrendC, e.rng.Intn(maxJitter)+1)
	fp.Command = Decide(e.rules, Facts{
		MethanePPM:          point.MethanePPM,
		COPPM:               point.COPPM,
		BatteryPct:          point.BatteryPct,
		VictimDetected:      detected,
		VictimConfidencePct: pct,
		PredictedRisk:       fp.PredictedRisk,
	})
	return fp, nil
}

func (e *Engine) infer(fp telemetry.FusedPoint) (bool, float64, error) {
	if e.detector == nil {
		return false, 0, errors.New("no detector configured")
	}
	vec, err := e.spec.Vector(map[string]float64{
		classifier.FeatureCO2:       fp.CO2PPM,
		classifier.FeatureTemp:      fp.TempC,
		classifier.FeatureTempTrend: fp.TempTrendC,
		classifier.FeatureAltitude:  fp.AltitudeZ,
		classifier.FeatureCO:        fp.COPPM,
		classifier.FeatureMethane:   fp.MethanePPM,
	})
	if err != nil {
		return false, 0, err
	}
	detected, conf, err := e.detector.Detect(vec)
	if err != nil {
		return false, 0, err
	}
	if math.IsNaN(conf) || conf < 0 || conf > 1 {
		return false, 0, fmt.Errorf("confidence %v outside [0,1]", conf)
	}
	return detected, round1(conf * 100), nil
}

// PredictRisk escalates the sensed structural risk to the maximum on toxic or
// explosive gas, or on a sharp heat rise over already elevated risk. It never
// lowers the sensed value.
func PredictRisk(p telemetry.RawPoint, trend float64) int {
	switch {
	case p.COPPM >= COEscalatePPM || p.MethanePPM >= MethaneEscalatePPM:
		return telemetry.MaxRisk
	case p.StructuralRisk >= TrendEscalateRisk && trend > TrendEscalateC:
		return telemetry.MaxRisk
	}
	return p.StructuralRisk
}

// RouteCost is the traversal difficulty proxy.
func RouteCost(p telemetry.RawPoint) int {
	return int(p.AltitudeZ*10 + float64(p.StructuralRisk)*50 + p.RollDeg*2)
}

// Score combines victim confidence, forecast risk, roll and trend with an integer
// jitter and truncates. The result is floored at 1.
func Score(confidencePct float64, predictedRisk int, roll, trend float64, jitter int) int {
	raw := victimWeight*confidencePct*2 +
		riskWeight*float64(predictedRisk)*50 +
		rollWeight*roll +
		trendWeight*math.Min(trend, trendCapC)
	score := int(raw + float64(jitter))
	if score < 1 {
		return 1
	}
	return score
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
