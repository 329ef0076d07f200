package sim

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"rescueops-sim/internal/fault"
	"rescueops-sim/internal/telemetry"
)

func TestExportCSV(t *testing.T) {
	m := NewMission("csv", testProfile(t), rampWorld(7), testEngine(t, nil), nil, Options{})
	res, err := m.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	path := filepath.Join(t.TempDir(), "history.csv")
	if err := ExportCSV(path, res.History); err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 8 {
		t.Fatalf("expected header + 7 rows, got %d", len(records))
	}
	if !reflect.DeepEqual(records[0], telemetry.CSVHeader()) {
		t.Fatalf("header mismatch: %v", records[0])
	}
	for i, rec := range records[1:] {
		if !reflect.DeepEqual(rec, res.History[i].CSVRow()) {
			t.Fatalf("row %d mismatch", i)
		}
	}
}

func TestCSVWriterUnwritable(t *testing.T) {
	err := ExportCSV(filepath.Join(t.TempDir(), "no", "such", "dir.csv"), nil)
	if !fault.IsExport(err) {
		t.Fatalf("expected export error, got %v", err)
	}
}
