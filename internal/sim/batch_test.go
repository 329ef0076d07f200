package sim

import (
	"bytes"
	"context"
	"reflect"
	"strings"
	"testing"

	"rescueops-sim/internal/classifier"
	"rescueops-sim/internal/telemetry"
)

func batchSetup(t *testing.T) Setup {
	t.Helper()
	det, err := classifier.NewKNNDetector(classifier.DefaultPrototypes(), classifier.DefaultK)
	if err != nil {
		t.Fatalf("detector: %v", err)
	}
	return Setup{
		MissionID:  "batch",
		Profile:    testProfile(t),
		PointCount: 120,
		GridWidth:  12,
		Generator:  telemetry.GeneratorOptions{Start: testStart},
		Detector:   det,
		Options:    Options{Metrics: NewMetrics("batch", "incendio_galpao")},
	}
}

func TestRunBatchMatchesSequential(t *testing.T) {
	setup := batchSetup(t)
	runs, err := RunBatch(context.Background(), setup, BatchOptions{Runs: 4, SeedBase: 10, SeedStep: 7, Parallelism: 2})
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	if len(runs) != 4 {
		t.Fatalf("expected 4 runs, got %d", len(runs))
	}
	for i, r := range runs {
		if r.Run != i+1 || r.Seed != 10+int64(i)*7 {
			t.Fatalf("run %d has number %d seed %d", i, r.Run, r.Seed)
		}
		m, err := setup.Build(r.Seed, nil)
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		want, err := m.Run(context.Background())
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if !reflect.DeepEqual(r.Result.History, want.History) {
			t.Fatalf("run %d differs from a sequential run with the same seed", r.Run)
		}
		if !strings.HasPrefix(r.Result.MissionID, "batch-run00") {
			t.Fatalf("mission id = %s", r.Result.MissionID)
		}
	}
}

func TestRunBatchRejectsZeroRuns(t *testing.T) {
	if _, err := RunBatch(context.Background(), batchSetup(t), BatchOptions{}); err == nil {
		t.Fatalf("expected error for zero runs")
	}
}

func TestWriteBatchSummary(t *testing.T) {
	runs, err := RunBatch(context.Background(), batchSetup(t), BatchOptions{Runs: 3, SeedBase: 1, SeedStep: 1})
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	var buf bytes.Buffer
	if err := WriteBatchSummary(&buf, runs); err != nil {
		t.Fatalf("WriteBatchSummary: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "RUN") || !strings.HasPrefix(lines[1], "1 ") {
		t.Fatalf("unexpected summary:\n%s", buf.String())
	}
}
