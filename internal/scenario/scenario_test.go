package scenario

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"rescueops-sim/internal/fault"
)

func TestBuiltInProfilesValid(t *testing.T) {
	names := []string{FireWarehouse, MetroTunnel, ChemicalLeak}
	all := BuiltIn()
	if len(all) != len(names) {
		t.Fatalf("expected %d archetypes, got %d", len(names), len(all))
	}
	for _, n := range names {
		p, ok := all[n]
		if !ok {
			t.Fatalf("archetype %s not found", n)
		}
		if p.Name != n {
			t.Fatalf("archetype %s has name %s", n, p.Name)
		}
		if err := p.Validate(); err != nil {
			t.Fatalf("archetype %s invalid: %v", n, err)
		}
	}
	if all[MetroTunnel].GPSAvailable {
		t.Fatalf("metro tunnel should have no GPS fix")
	}
	if co, _ := all[FireWarehouse].GasSources(); len(co) == 0 {
		t.Fatalf("fire warehouse has no CO sources")
	}
	if _, ch4 := all[ChemicalLeak].GasSources(); len(ch4) == 0 {
		t.Fatalf("chemical leak has no methane sources")
	}
}

func TestGasSourcesRouteRiskByHazard(t *testing.T) {
	risk := []Zone{{X: 10, Y: 10, Radius: 5, Intensity: 4}}

	chem := Profile{Hazard: HazardChemical, RiskZones: risk}
	co, ch4 := chem.GasSources()
	if len(co) != 0 {
		t.Fatalf("chemical hazard should not route into CO, got %v", co)
	}
	if len(ch4) != 1 || ch4[0].Intensity != 4*MethanePerRiskLevel || ch4[0].X != 10 || ch4[0].Radius != 5 {
		t.Fatalf("unexpected methane sources %v", ch4)
	}

	heat := Profile{Hazard: HazardHeat, RiskZones: risk}
	co, ch4 = heat.GasSources()
	if len(co) != 1 || co[0].Intensity != 4*COPerRiskLevel || len(ch4) != 0 {
		t.Fatalf("heat routing: co=%v methane=%v", co, ch4)
	}

	confined := Profile{Hazard: HazardConfined, RiskZones: risk}
	if co, ch4 := confined.GasSources(); len(co) != 0 || len(ch4) != 0 {
		t.Fatalf("confined hazard should not route risk, got co=%v methane=%v", co, ch4)
	}

	listed := []Zone{{X: 1, Y: 1, Radius: 2, Intensity: 500}}
	own := Profile{Hazard: HazardChemical, RiskZones: risk, MethaneSources: listed}
	if _, ch4 := own.GasSources(); len(ch4) != 1 || ch4[0].Intensity != 500 {
		t.Fatalf("listed methane sources must win, got %v", ch4)
	}
}

func TestValidateRejectsBadParameters(t *testing.T) {
	base, _ := Lookup(FireWarehouse)
	cases := map[string]func(p *Profile){
		"zero radius":     func(p *Profile) { p.RiskZones = []Zone{{X: 1, Y: 1, Radius: 0, Intensity: 2}} },
		"negative radius": func(p *Profile) { p.ThermalZones = []Zone{{Radius: -1}} },
		"zero drain":      func(p *Profile) { p.BatteryDrainCoefficient = 0 },
		"inverted count":  func(p *Profile) { p.VictimCount = Range{Min: 3, Max: 1} },
		"empty count":     func(p *Profile) { p.VictimCount = Range{Min: 0, Max: 0} },
		"zero signal":     func(p *Profile) { p.VictimSignal = Range{Min: 0, Max: 10} },
		"bad hazard":      func(p *Profile) { p.Hazard = "flood" },
		"negative gas":    func(p *Profile) { p.COBaseline = -1 },
	}
	for name, mutate := range cases {
		p := base
		mutate(&p)
		err := p.Validate()
		if !fault.IsConfiguration(err) {
			t.Errorf("%s: expected configuration error, got %v", name, err)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, err := Lookup("flooded_mine"); !fault.IsConfiguration(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestLoadProfile(t *testing.T) {
	p, err := LoadProfile("testdata/custom.yaml")
	if err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if p.Name != "galeria_pluvial" || p.Hazard != HazardConfined {
		t.Fatalf("unexpected profile %+v", p)
	}
	if len(p.RiskZones) != 1 || p.RiskZones[0].Radius != 4 {
		t.Fatalf("unexpected risk zones %+v", p.RiskZones)
	}
	if _, err := LoadProfile("testdata/bad_radius.yaml"); !fault.IsConfiguration(err) {
		t.Fatalf("expected configuration error for bad radius, got %v", err)
	}
}

func TestPromptRepromptsOnInvalidInput(t *testing.T) {
	in := strings.NewReader("7\nfoo\n\n2\n")
	out := &bytes.Buffer{}
	p, err := Prompt(in, out)
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}
	if p.Name != Names()[1] {
		t.Fatalf("expected %s, got %s", Names()[1], p.Name)
	}
	if got := strings.Count(out.String(), "invalid selection"); got != 3 {
		t.Fatalf("expected 3 rejections, got %d: %q", got, out.String())
	}
}

func TestPromptAcceptsKey(t *testing.T) {
	p, err := Prompt(strings.NewReader("VAZAMENTO_QUIMICO\n"), &bytes.Buffer{})
	if err != nil || p.Name != ChemicalLeak {
		t.Fatalf("expected chemical leak, got %v %v", p.Name, err)
	}
}

func TestPromptEOFDoesNotDefault(t *testing.T) {
	_, err := Prompt(strings.NewReader("nope\n"), &bytes.Buffer{})
	if !errors.Is(err, ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}
}
