package sim

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"rescueops-sim/internal/telemetry"
)

func encodeLog(t *testing.T, n int) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	for i := 0; i < n; i++ {
		p := telemetry.FusedPoint{
			RawPoint: telemetry.RawPoint{Index: i, Timestamp: testStart.Add(time.Duration(i) * time.Second)},
			Command:  telemetry.CommandContinue,
		}
		if err := enc.Encode(p); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	return buf
}

func TestReplayLogUnpacedUsesBatch(t *testing.T) {
	bc := &batchCollector{}
	if err := ReplayLog(encodeLog(t, 5), bc, 0); err != nil {
		t.Fatalf("ReplayLog: %v", err)
	}
	if bc.batches != 1 || len(bc.points) != 5 {
		t.Fatalf("expected one batch of 5, got %d batches and %d points", bc.batches, len(bc.points))
	}
	for i, p := range bc.points {
		if p.Index != i {
			t.Fatalf("point %d replayed out of order: %d", i, p.Index)
		}
	}
}

func TestReplayLogPacedWritesOneByOne(t *testing.T) {
	bc := &batchCollector{}
	start := time.Now()
	// one second between points, replayed 500x faster
	if err := ReplayLog(encodeLog(t, 3), bc, 500); err != nil {
		t.Fatalf("ReplayLog: %v", err)
	}
	if bc.batches != 0 || len(bc.points) != 3 {
		t.Fatalf("paced replay should not batch: %d batches, %d points", bc.batches, len(bc.points))
	}
	if elapsed := time.Since(start); elapsed < 4*time.Millisecond {
		t.Fatalf("pacing not applied, took %v", elapsed)
	}
}

func TestReplayLogThroughMultiWriter(t *testing.T) {
	out := &bytes.Buffer{}
	mw := NewMultiWriter(NewStdoutWriterTo(out, false), &collectWriter{})
	if err := ReplayLog(encodeLog(t, 4), mw, 0); err != nil {
		t.Fatalf("ReplayLog: %v", err)
	}
	if lines := strings.Count(out.String(), "\n"); lines != 4 {
		t.Fatalf("expected 4 JSON lines, got %d", lines)
	}
}

func TestReplayLogNamesBadRecord(t *testing.T) {
	log := encodeLog(t, 2)
	log.WriteString("{not json}\n")
	err := ReplayLog(log, &collectWriter{}, 0)
	if err == nil || !strings.Contains(err.Error(), "record 3") {
		t.Fatalf("expected error naming record 3, got %v", err)
	}
}
