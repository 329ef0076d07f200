package sim

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"rescueops-sim/internal/telemetry"
	"rescueops-sim/internal/victim"
)

// Field kit and sensing ranges, in grid cells.
const (
	KitCount     = 3
	detectRadius = 2.5
	kitRadius    = 2.5
	photoRadius  = 2.0

	batteryCriticalPct = 10.0
	batteryLowPct      = 30.0
)

// RobotStatus summarises what the robot is doing after a point.
type RobotStatus string

const (
	RobotExploring       RobotStatus = "exploring"
	RobotRescuing        RobotStatus = "rescuing"
	RobotBatteryLow      RobotStatus = "battery_low"
	RobotBatteryCritical RobotStatus = "battery_critical"
)

// Photo is a field photo of a victim site.
type Photo struct {
	SiteID        uuid.UUID            `json:"site_id"`
	Index         int                  `json:"index"`
	Timestamp     time.Time            `json:"ts"`
	Severity      victim.Severity      `json:"severity"`
	Consciousness victim.Consciousness `json:"consciousness"`
}

// Robot tracks the field state the mission accumulates beyond fused points:
// first-aid kits, photos, which sites were found, and distance travelled. It
// works on its own copy of the sites so kits never alter the generated world.
type Robot struct {
	Sites         []victim.Site
	Kits          int
	KitsNeeded    int
	Photos        []Photo
	Status        RobotStatus
	DistanceCells float64

	detected   map[uuid.UUID]bool
	order      []uuid.UUID
	photoTaken map[uuid.UUID]bool
	seenVictim bool
	moved      bool
	lastX      int
	lastY      int
}

// NewRobot returns a robot carrying KitCount kits.
func NewRobot(sites []victim.Site) *Robot {
	own := make([]victim.Site, len(sites))
	copy(own, sites)
	needed := 0
	for _, s := range own {
		if s.NeedsKit() {
			needed++
		}
	}
	return &Robot{
		Sites:      own,
		Kits:       KitCount,
		KitsNeeded: needed,
		Status:     RobotExploring,
		detected:   make(map[uuid.UUID]bool),
		photoTaken: make(map[uuid.UUID]bool),
	}
}

// Observe updates the robot from one fused point and returns the events it
// caused ("detected", "photo", "kit_applied").
func (r *Robot) Observe(fp telemetry.FusedPoint) []string {
	var events []string
	if r.moved {
		r.DistanceCells += math.Hypot(float64(fp.PosX-r.lastX), float64(fp.PosY-r.lastY))
	}
	r.moved, r.lastX, r.lastY = true, fp.PosX, fp.PosY

	x, y := float64(fp.PosX), float64(fp.PosY)
	if fp.VictimDetected && !fp.Gap {
		r.seenVictim = true
		for _, s := range r.Sites {
			d := s.Distance(x, y)
			if d <= detectRadius && !r.detected[s.ID] {
				r.detected[s.ID] = true
				r.order = append(r.order, s.ID)
				events = append(events, "detected")
			}
			if d <= photoRadius && !r.photoTaken[s.ID] {
				r.photoTaken[s.ID] = true
				r.Photos = append(r.Photos, Photo{
					SiteID:        s.ID,
					Index:         fp.Index,
					Timestamp:     fp.Timestamp,
					Severity:      s.Severity,
					Consciousness: s.Consciousness,
				})
				events = append(events, "photo")
			}
		}
	}

	if fp.Command == telemetry.CommandRescue && r.Kits > 0 {
		if i := r.kitCandidate(x, y); i >= 0 && r.Sites[i].ApplyKit() {
			r.Kits--
			events = append(events, "kit_applied")
		}
	}

	switch {
	case fp.BatteryPct < batteryCriticalPct:
		r.Status = RobotBatteryCritical
	case fp.BatteryPct < batteryLowPct:
		r.Status = RobotBatteryLow
	case r.seenVictim:
		r.Status = RobotRescuing
	default:
		r.Status = RobotExploring
	}
	return events
}

// kitCandidate picks the most severe site within reach that still needs a kit.
func (r *Robot) kitCandidate(x, y float64) int {
	best := -1
	for i, s := range r.Sites {
		if !s.NeedsKit() || s.Distance(x, y) > kitRadius {
			continue
		}
		if best < 0 || s.Severity.Rank() < r.Sites[best].Severity.Rank() {
			best = i
		}
	}
	return best
}

// KitsUsed returns how many kits have been applied.
func (r *Robot) KitsUsed() int { return KitCount - r.Kits }

// DetectedSites returns the found sites ordered by severity, most severe first,
// then by detection order.
func (r *Robot) DetectedSites() []victim.Site {
	pos := make(map[uuid.UUID]int, len(r.order))
	for i, id := range r.order {
		pos[id] = i
	}
	var out []victim.Site
	for _, s := range r.Sites {
		if r.detected[s.ID] {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := out[i].Severity.Rank(), out[j].Severity.Rank()
		if ri != rj {
			return ri < rj
		}
		return pos[out[i].ID] < pos[out[j].ID]
	})
	return out
}

// PhotoOf returns the photo taken of a site, if any.
func (r *Robot) PhotoOf(id uuid.UUID) (Photo, bool) {
	for _, p := range r.Photos {
		if p.SiteID == id {
			return p, true
		}
	}
	return Photo{}, false
}
