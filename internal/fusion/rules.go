package fusion

import "rescueops-sim/internal/telemetry"

// Cascade thresholds.
const (
	MethaneEvacuatePPM = 25000.0
	CORetreatPPM       = 800.0
	BatteryReturnPct   = 30.0
	RescueConfidence   = 70.0
)

// Facts are the inputs the command cascade looks at.
type Facts struct {
	MethanePPM          float64
	COPPM               float64
	BatteryPct          float64
	VictimDetected      bool
	VictimConfidencePct float64
	PredictedRisk       int
}

// Rule maps a predicate to a command. Rules are evaluated in slice order and the
// first match wins.
type Rule struct {
	Name    string
	Command telemetry.Command
	When    func(Facts) bool
}

// DefaultRules returns the safety cascade, most severe first. Gas and battery
// guards always precede rescue and risk retreat.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:    "explosion_risk",
			Command: telemetry.CommandEvacuate,
			When:    func(f Facts) bool { return f.MethanePPM >= MethaneEvacuatePPM },
		},
		{
			Name:    "asphyxiation_risk",
			Command: telemetry.CommandRetreatCO,
			When:    func(f Facts) bool { return f.COPPM >= CORetreatPPM },
		},
		{
			Name:    "battery_low",
			Command: telemetry.CommandReturnToBase,
			When:    func(f Facts) bool { return f.BatteryPct < BatteryReturnPct },
		},
		{
			Name:    "victim_confirmed",
			Command: telemetry.CommandRescue,
			When:    func(f Facts) bool { return f.VictimDetected && f.VictimConfidencePct > RescueConfidence },
		},
		{
			Name:    "structural_collapse",
			Command: telemetry.CommandRetreatRisk,
			When:    func(f Facts) bool { return f.PredictedRisk == telemetry.MaxRisk },
		},
	}
}

// Decide returns the command of the first matching rule, or continue-exploration
// when none match.
func Decide(rules []Rule, f Facts) telemetry.Command {
	for _, r := range rules {
		if r.When(f) {
			return r.Command
		}
	}
	return telemetry.CommandContinue
}
