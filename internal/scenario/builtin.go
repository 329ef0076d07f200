package scenario

import (
	"sort"

	"rescueops-sim/internal/fault"
)

// Archetype keys.
const (
	FireWarehouse = "incendio_galpao"
	MetroTunnel   = "tunel_metro"
	ChemicalLeak  = "vazamento_quimico"
)

// BuiltIn returns the predefined hazard archetypes keyed by name.
func BuiltIn() map[string]Profile {
	return map[string]Profile{
		FireWarehouse: {
			Name:                    FireWarehouse,
			Title:                   "Fire warehouse",
			Description:             "Burning storage hall with collapsing racks; combustion drives CO up around the fire seats.",
			Hazard:                  HazardHeat,
			AmbientTempC:            24,
			CO2Baseline:             420,
			COBaseline:              15,
			MethaneBaseline:         5,
			GPSAvailable:            true,
			BatteryDrainCoefficient: 1.2,
			VictimCount:             Range{Min: 2, Max: 4},
			VictimSignal:            Range{Min: 3000, Max: 6000},
			ThermalZones: []Zone{
				{X: 6, Y: 6, Radius: 5, Intensity: 35},
				{X: 14, Y: 12, Radius: 4, Intensity: 28},
			},
			RiskZones: []Zone{
				{X: 6, Y: 6, Radius: 6, Intensity: 4.5},
				{X: 14, Y: 12, Radius: 5, Intensity: 3.5},
			},
		},
		MetroTunnel: {
			Name:                    MetroTunnel,
			Title:                   "Metro tunnel",
			Description:             "Partially flooded tunnel without satellite fix; a ruptured gas line seeps methane near the cross passage.",
			Hazard:                  HazardConfined,
			AmbientTempC:            19,
			CO2Baseline:             450,
			COBaseline:              8,
			MethaneBaseline:         20,
			GPSAvailable:            false,
			BatteryDrainCoefficient: 1.0,
			VictimCount:             Range{Min: 1, Max: 3},
			VictimSignal:            Range{Min: 2500, Max: 5000},
			ThermalZones: []Zone{
				{X: 10, Y: 4, Radius: 3, Intensity: 6},
			},
			RiskZones: []Zone{
				{X: 4, Y: 10, Radius: 5, Intensity: 3},
				{X: 15, Y: 15, Radius: 4, Intensity: 4},
			},
			COSources:      []Zone{{X: 10, Y: 4, Radius: 4, Intensity: 1500}},
			MethaneSources: []Zone{{X: 15, Y: 15, Radius: 6, Intensity: 40000}},
		},
		ChemicalLeak: {
			Name:                    ChemicalLeak,
			Title:                   "Chemical leak",
			Description:             "Open-air plant yard with a leaking methane manifold; explosion risk dominates the site.",
			Hazard:                  HazardChemical,
			AmbientTempC:            26,
			CO2Baseline:             410,
			COBaseline:              5,
			MethaneBaseline:         50,
			GPSAvailable:            true,
			BatteryDrainCoefficient: 0.9,
			VictimCount:             Range{Min: 1, Max: 3},
			VictimSignal:            Range{Min: 2500, Max: 5500},
			ThermalZones: []Zone{
				{X: 12, Y: 8, Radius: 4, Intensity: 5},
			},
			RiskZones: []Zone{
				{X: 12, Y: 8, Radius: 6, Intensity: 3.5},
				{X: 4, Y: 16, Radius: 4, Intensity: 2},
			},
		},
	}
}

// Names returns the built-in archetype keys in sorted order.
func Names() []string {
	all := BuiltIn()
	names := make([]string, 0, len(all))
	for n := range all {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the built-in archetype with the given key.
func Lookup(name string) (Profile, error) {
	p, ok := BuiltIn()[name]
	if !ok {
		return Profile{}, fault.Configf("scenario", "unknown scenario %q (valid: %v)", name, Names())
	}
	return p, nil
}
