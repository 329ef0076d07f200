package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"rescueops-sim/internal/classifier"
	"rescueops-sim/internal/config"
	"rescueops-sim/internal/fault"
	"rescueops-sim/internal/scenario"
)

func newTestCmd(f *missionFlags) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	f.register(cmd)
	return cmd
}

func TestLoadConfigFlagsOverride(t *testing.T) {
	t.Setenv(config.EnvSeed, "42")
	t.Setenv(config.EnvMissionID, "")
	t.Setenv(config.EnvTickInterval, "")
	var f missionFlags
	cmd := newTestCmd(&f)
	if err := cmd.ParseFlags([]string{"--scenario", scenario.MetroTunnel, "--points", "50"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	cfg, err := f.loadConfig(cmd)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Scenario != scenario.MetroTunnel || cfg.PointCount != 50 {
		t.Fatalf("flags not applied: %+v", cfg)
	}
	if cfg.GridWidth != config.Default().GridWidth {
		t.Fatalf("unset flag overrode default width: %d", cfg.GridWidth)
	}
	if cfg.Seed == nil || *cfg.Seed != 42 {
		t.Fatalf("seed from env not applied")
	}
	if seed, fixed := seedOf(cfg); !fixed || seed != 42 {
		t.Fatalf("seedOf = %d, %t", seed, fixed)
	}
}

func TestResolveProfile(t *testing.T) {
	cfg := config.Default()
	if _, err := resolveProfile(cfg, false, nil, nil); !fault.IsConfiguration(err) {
		t.Fatalf("expected configuration error without a scenario, got %v", err)
	}

	var out bytes.Buffer
	p, err := resolveProfile(cfg, true, strings.NewReader("2\n"), &out)
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}
	if p.Name != scenario.Names()[1] {
		t.Fatalf("prompt picked %s", p.Name)
	}

	cfg.Scenario = scenario.ChemicalLeak
	p, err = resolveProfile(cfg, true, nil, nil)
	if err != nil || p.Name != scenario.ChemicalLeak {
		t.Fatalf("lookup: %v %s", err, p.Name)
	}
}

func TestNewDetector(t *testing.T) {
	det, err := newDetector(config.Default().Classifier)
	if err != nil {
		t.Fatalf("knn: %v", err)
	}
	if _, ok := det.(*classifier.KNNDetector); !ok {
		t.Fatalf("expected knn detector, got %T", det)
	}
	det, err = newDetector(config.Classifier{Kind: config.ClassifierThreshold, CO2ThresholdPPM: 900})
	if err != nil {
		t.Fatalf("threshold: %v", err)
	}
	if _, ok := det.(*classifier.ThresholdDetector); !ok {
		t.Fatalf("expected threshold detector, got %T", det)
	}
	if _, err := newDetector(config.Classifier{Kind: "svm"}); !fault.IsConfiguration(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestNewSetupDefaultsMissionID(t *testing.T) {
	cfg := config.Default()
	p, err := scenario.Lookup(scenario.FireWarehouse)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	s := newSetup(cfg, p, nil)
	if len(s.MissionID) != 36 {
		t.Fatalf("expected uuid mission id, got %q", s.MissionID)
	}
	if s.Generator.Step <= 0 || s.PointCount != cfg.PointCount {
		t.Fatalf("unexpected setup %+v", s)
	}
}
