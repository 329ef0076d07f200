package sim

import (
	"context"
	"log/slog"
	"time"

	"rescueops-sim/internal/fault"
	"rescueops-sim/internal/logging"
	"rescueops-sim/internal/telemetry"
)

// Run fuses every point in order, pacing by the tick interval when one is set.
// It stops early when ctx is done or the battery reaches the cutoff. Inference
// failures become gaps in the history; writer failures are reported in
// Result.WriteErr and further writes are skipped.
func (m *Mission) Run(ctx context.Context) (*Result, error) {
	log := logging.FromContext(ctx).With("mission_id", m.id)
	points := m.world.Points
	log.Info("starting mission", "scenario", m.profile.Name, "points", len(points),
		"victims", len(m.world.Sites), "tick_interval", m.tickInterval)

	res := &Result{
		MissionID: m.id,
		Scenario:  m.profile.Name,
		Status:    StatusCompleted,
		History:   make([]telemetry.FusedPoint, 0, len(points)),
		Robot:     NewRobot(m.world.Sites),
	}

	var tick <-chan time.Time
	if m.tickInterval > 0 {
		ticker := time.NewTicker(m.tickInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

loop:
	for i, p := range points {
		if tick != nil && i > 0 {
			select {
			case <-tick:
			case <-ctx.Done():
				res.Status, res.StopReason = StatusInterrupted, StopCancelled
				break loop
			}
		} else if ctx.Err() != nil {
			res.Status, res.StopReason = StatusInterrupted, StopCancelled
			break
		}

		var prev *telemetry.FusedPoint
		if i > 0 {
			prev = &res.History[i-1]
		}
		fp, err := m.engine.Fuse(p, prev)
		if err != nil {
			if !fault.IsInference(err) {
				return res, err
			}
			log.Warn("inference gap", "index", p.Index, "error", err)
			res.Gaps = append(res.Gaps, p.Index)
			if m.metrics != nil {
				m.metrics.InferenceErrors.Inc()
			}
		}
		res.History = append(res.History, fp)

		for _, ev := range res.Robot.Observe(fp) {
			log.Debug("robot event", "index", fp.Index, "event", ev, "status", res.Robot.Status)
		}
		if m.metrics != nil {
			m.metrics.Observe(fp)
		}
		m.write(log, res, fp)

		if fp.BatteryPct <= m.cutoff {
			res.Status, res.StopReason = StatusInterrupted, StopBatteryCutoff
			break
		}
	}

	last, _ := res.LastPoint()
	log.Info("mission finished", "status", res.Status, "reason", res.StopReason,
		"fused", len(res.History), "gaps", len(res.Gaps), "battery_pct", last.BatteryPct)
	return res, nil
}

func (m *Mission) write(log *slog.Logger, res *Result, fp telemetry.FusedPoint) {
	if m.writer == nil || res.WriteErr != nil {
		return
	}
	if err := m.writer.Write(fp); err != nil {
		if !fault.IsExport(err) {
			err = &fault.ExportError{Err: err}
		}
		log.Error("write failed", "index", fp.Index, "err", err)
		res.WriteErr = err
	}
}
