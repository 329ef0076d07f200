package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"rescueops-sim/internal/telemetry"
)

// ReplayLog reads a JSONL log of fused points from r and hands them to writer in
// log order. With speed > 0 points are paced by their timestamp gaps divided by
// speed. Without pacing, a writer that supports batches receives the whole log
// in a single WriteBatch call.
func ReplayLog(r io.Reader, writer PointWriter, speed float64) error {
	bw, batched := writer.(batchWriter)
	batched = batched && speed <= 0

	dec := json.NewDecoder(r)
	var (
		pending []telemetry.FusedPoint
		prev    time.Time
	)
	for record := 1; ; record++ {
		var p telemetry.FusedPoint
		if err := dec.Decode(&p); err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("fused point log record %d: %w", record, err)
		}
		if batched {
			pending = append(pending, p)
			continue
		}
		if !prev.IsZero() && speed > 0 {
			if gap := time.Duration(float64(p.Timestamp.Sub(prev)) / speed); gap > 0 {
				time.Sleep(gap)
			}
		}
		if err := writer.Write(p); err != nil {
			return fmt.Errorf("replay point %d: %w", p.Index, err)
		}
		prev = p.Timestamp
	}

	if len(pending) == 0 {
		return nil
	}
	if err := bw.WriteBatch(pending); err != nil {
		return fmt.Errorf("replay %d points: %w", len(pending), err)
	}
	return nil
}

// ReplayLogFile replays the fused point log at path.
func ReplayLogFile(path string, writer PointWriter, speed float64) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return ReplayLog(f, writer, speed)
}
