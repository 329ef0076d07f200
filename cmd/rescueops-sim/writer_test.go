package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"rescueops-sim/internal/fault"
	"rescueops-sim/internal/sim"
	"rescueops-sim/internal/telemetry"
)

func TestNewWritersStdoutOnly(t *testing.T) {
	w, cleanup, err := newWriters(true, "", "")
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	defer cleanup()
	if _, ok := w.(*sim.StdoutWriter); !ok {
		t.Fatalf("expected *sim.StdoutWriter, got %T", w)
	}
}

func TestNewWritersNone(t *testing.T) {
	w, cleanup, err := newWriters(false, "", "")
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	if w != nil {
		t.Fatalf("expected no writer, got %T", w)
	}
	if err := cleanup(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
}

func TestNewWritersFiles(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "mission.jsonl")
	csvPath := filepath.Join(dir, "mission.csv")
	w, cleanup, err := newWriters(false, logPath, csvPath)
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	if _, ok := w.(*sim.MultiWriter); !ok {
		t.Fatalf("expected *sim.MultiWriter, got %T", w)
	}
	p := telemetry.FusedPoint{
		RawPoint: telemetry.RawPoint{Index: 0, Timestamp: time.Now()},
		Command:  telemetry.CommandContinue,
	}
	if err := w.Write(p); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := cleanup(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("expected log file to be non-empty")
	}
	f, err := os.Open(csvPath)
	if err != nil {
		t.Fatalf("open csv: %v", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header + 1 row, got %d", len(records))
	}
}

func TestNewWritersBadPath(t *testing.T) {
	if _, _, err := newWriters(false, "", filepath.Join(t.TempDir(), "missing", "x.csv")); err == nil {
		t.Fatalf("expected error for unwritable csv path")
	}
}

func TestReexportCSVAfterStreamFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.csv")
	res := &sim.Result{
		History: []telemetry.FusedPoint{
			{RawPoint: telemetry.RawPoint{Index: 0, Timestamp: time.Unix(0, 0)}, Command: telemetry.CommandContinue},
			{RawPoint: telemetry.RawPoint{Index: 1, Timestamp: time.Unix(1, 0)}, Command: telemetry.CommandRescue},
		},
	}
	if tried, err := reexportCSV(path, res); tried || err != nil {
		t.Fatalf("no export expected without a write error: %t %v", tried, err)
	}

	res.WriteErr = &fault.ExportError{Path: path, Err: os.ErrClosed}
	tried, err := reexportCSV(path, res)
	if !tried || err != nil {
		t.Fatalf("reexportCSV: %t %v", tried, err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open csv: %v", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(records))
	}
}
