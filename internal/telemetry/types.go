// Sensor records produced by the world generator and the fusion engine
package telemetry

import "time"

// RawPoint is one measured point along the robot path, with the ground-truth
// victim label embedded by the generator.
type RawPoint struct {
	Index           int       `json:"index"`
	Timestamp       time.Time `json:"ts"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	GPSFix          bool      `json:"gps_fix"` // false: coordinates frozen at the start fix
	PosX            int       `json:"pos_x"`
	PosY            int       `json:"pos_y"`
	AltitudeZ       float64   `json:"altitude_z"`
	RollDeg         float64   `json:"roll_deg"`
	TempC           float64   `json:"temp_c"`
	CO2PPM          float64   `json:"co2_ppm"`
	COPPM           float64   `json:"co_ppm"`
	MethanePPM      float64   `json:"methane_ppm"`
	StructuralRisk  int       `json:"structural_risk"` // 0..4
	BatteryPct      float64   `json:"battery_pct"`
	VictimPresentGT bool      `json:"victim_present_gt"`
}

// Command is the logistics directive issued for a fused point.
type Command string

const (
	CommandEvacuate     Command = "EMERGENCY_EVACUATION"
	CommandRetreatCO    Command = "FORCED_RETREAT_CO"
	CommandReturnToBase Command = "RETURN_TO_BASE"
	CommandRescue       Command = "INITIATE_RESCUE"
	CommandRetreatRisk  Command = "RETREAT_STRUCTURAL_RISK"
	CommandContinue     Command = "CONTINUE_EXPLORATION"
	CommandUnscored     Command = "UNSCORED"
)

// MaxRisk is the top of the structural risk scale.
const MaxRisk = 4

// Commands lists every directive the decision cascade can emit, most severe first.
var Commands = []Command{
	CommandEvacuate,
	CommandRetreatCO,
	CommandReturnToBase,
	CommandRescue,
	CommandRetreatRisk,
	CommandContinue,
}

// FusedPoint is a RawPoint plus the fields derived by the fusion engine. Gap marks
// a point whose classifier call failed; its scoring fields are left unset.
type FusedPoint struct {
	RawPoint
	TempTrendC          float64 `json:"temp_trend_c"`
	PredictedRisk       int     `json:"predicted_risk"`
	RouteCost           int     `json:"route_cost"`
	VictimDetected      bool    `json:"victim_detected"`
	VictimConfidencePct float64 `json:"victim_confidence_pct"`
	PriorityScore       int     `json:"priority_score"`
	Command             Command `json:"logistic_command"`
	Gap                 bool    `json:"gap,omitempty"`
	GapReason           string  `json:"gap_reason,omitempty"`
}
