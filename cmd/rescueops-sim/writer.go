package main

import (
	"rescueops-sim/internal/sim"
)

// newWriters sets up the point sinks for a run: STDOUT when enabled, plus the
// JSONL log and CSV export when their paths are set. The returned cleanup flushes
// and closes every file. The writer is nil when no sink is enabled.
func newWriters(stdout bool, logPath, csvPath string) (sim.PointWriter, func() error, error) {
	noop := func() error { return nil }

	var ws []sim.PointWriter
	if stdout {
		ws = append(ws, sim.NewStdoutWriter())
	}
	if logPath != "" {
		fw, err := sim.NewFileWriter(logPath)
		if err != nil {
			return nil, nil, err
		}
		ws = append(ws, fw)
	}
	if csvPath != "" {
		cw, err := sim.NewCSVWriter(csvPath)
		if err != nil {
			sim.NewMultiWriter(ws...).Close()
			return nil, nil, err
		}
		ws = append(ws, cw)
	}

	switch len(ws) {
	case 0:
		return nil, noop, nil
	case 1:
		if stdout {
			return ws[0], noop, nil
		}
	}
	mw := sim.NewMultiWriter(ws...)
	return mw, mw.Close, nil
}

// reexportCSV rewrites the CSV export from the in-memory history after the point
// stream failed, so the table is complete even when live writes stopped early.
// It reports whether an export was attempted.
func reexportCSV(csvPath string, res *sim.Result) (bool, error) {
	if csvPath == "" || res.WriteErr == nil {
		return false, nil
	}
	return true, sim.ExportCSV(csvPath, res.History)
}
