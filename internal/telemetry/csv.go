package telemetry

import (
	"strconv"
	"time"
)

// CSVHeader returns the export column order. It is the single source of truth
// for the flat fused-history table.
func CSVHeader() []string {
	return []string{
		"index", "timestamp", "latitude", "longitude", "gps_fix",
		"pos_x", "pos_y", "altitude_z", "roll_deg",
		"temp_c", "co2_ppm", "co_ppm", "methane_ppm",
		"structural_risk", "battery_pct", "victim_present_gt",
		"temp_trend_c", "predicted_risk", "route_cost",
		"victim_detected", "victim_confidence_pct", "priority_score",
		"logistic_command", "gap", "gap_reason",
	}
}

// CSVRow renders the point in CSVHeader order.
func (f *FusedPoint) CSVRow() []string {
	return []string{
		strconv.Itoa(f.Index),
		f.Timestamp.UTC().Format(time.RFC3339Nano),
		ftoa(f.Latitude, 7), ftoa(f.Longitude, 7),
		strconv.FormatBool(f.GPSFix),
		strconv.Itoa(f.PosX), strconv.Itoa(f.PosY),
		ftoa(f.AltitudeZ, 3), ftoa(f.RollDeg, 2),
		ftoa(f.TempC, 2), ftoa(f.CO2PPM, 1), ftoa(f.COPPM, 1), ftoa(f.MethanePPM, 1),
		strconv.Itoa(f.StructuralRisk), ftoa(f.BatteryPct, 2),
		strconv.FormatBool(f.VictimPresentGT),
		ftoa(f.TempTrendC, 1), strconv.Itoa(f.PredictedRisk), strconv.Itoa(f.RouteCost),
		strconv.FormatBool(f.VictimDetected), ftoa(f.VictimConfidencePct, 1),
		strconv.Itoa(f.PriorityScore),
		string(f.Command), strconv.FormatBool(f.Gap), f.GapReason,
	}
}

func ftoa(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}
