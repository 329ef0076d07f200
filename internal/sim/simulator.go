// Mission driver folding raw points through the fusion engine
package sim

import (
	"time"

	"github.com/google/uuid"

	"rescueops-sim/internal/fusion"
	"rescueops-sim/internal/scenario"
	"rescueops-sim/internal/telemetry"
)

// PointWriter is an interface to support different output writers.
type PointWriter interface {
	Write(telemetry.FusedPoint) error
}

// batchWriter is implemented by writers that take a whole replayed log at once.
type batchWriter interface {
	WriteBatch([]telemetry.FusedPoint) error
}

// Status is the terminal state of a mission run.
type Status string

const (
	StatusCompleted   Status = "completed"
	StatusInterrupted Status = "interrupted"
)

// Stop reasons for interrupted missions.
const (
	StopCancelled     = "cancelled"
	StopBatteryCutoff = "battery_cutoff"
)

// Options tune a mission run. The zero value runs as fast as possible with a 5%
// battery cutoff.
type Options struct {
	TickInterval     time.Duration
	BatteryCutoffPct float64
	Metrics          *Metrics
}

// DefaultBatteryCutoffPct stops a mission before the battery is fully drained.
const DefaultBatteryCutoffPct = 5.0

// Mission drives one pre-generated world through a fusion engine, strictly in
// index order, and keeps the fused history.
type Mission struct {
	id           string
	profile      scenario.Profile
	world        telemetry.World
	engine       *fusion.Engine
	writer       PointWriter
	metrics      *Metrics
	tickInterval time.Duration
	cutoff       float64
}

// NewMission prepares a mission. An empty id is replaced by a random uuid. writer
// may be nil.
func NewMission(id string, profile scenario.Profile, world telemetry.World, engine *fusion.Engine, writer PointWriter, opts Options) *Mission {
	if id == "" {
		id = uuid.NewString()
	}
	cutoff := opts.BatteryCutoffPct
	if cutoff <= 0 {
		cutoff = DefaultBatteryCutoffPct
	}
	return &Mission{
		id:           id,
		profile:      profile,
		world:        world,
		engine:       engine,
		writer:       writer,
		metrics:      opts.Metrics,
		tickInterval: opts.TickInterval,
		cutoff:       cutoff,
	}
}

// ID returns the mission identifier.
func (m *Mission) ID() string { return m.id }

// Result is the outcome of a mission run. History is complete up to the point
// the mission stopped even when an output writer failed.
type Result struct {
	MissionID  string
	Scenario   string
	Status     Status
	StopReason string
	History    []telemetry.FusedPoint
	Gaps       []int
	Robot      *Robot
	WriteErr   error
}

// LastPoint returns the last fused point, if any.
func (r *Result) LastPoint() (telemetry.FusedPoint, bool) {
	if len(r.History) == 0 {
		return telemetry.FusedPoint{}, false
	}
	return r.History[len(r.History)-1], true
}
