package victim

import (
	"math"
	"math/rand"

	"github.com/google/uuid"
)

// BorderMargin is the minimum distance in cells between a site and the grid edge.
const BorderMargin = 5

// Bounds describes the grid a site must be placed on.
type Bounds struct {
	Width  int
	Height int
}

var (
	severities = []Severity{SeverityMinor, SeverityModerate, SeveritySevere, SeverityCritical}
	states     = []Consciousness{Conscious, SemiConscious, Unconscious}
)

// Spawn places count victim sites inside bounds with peak signals drawn uniformly
// from [minSignal, maxSignal]. All randomness comes from rng.
func Spawn(rng *rand.Rand, count int, bounds Bounds, minSignal, maxSignal float64) []Site {
	sites := make([]Site, 0, count)
	for i := 0; i < count; i++ {
		s := Site{
			ID:            newID(rng),
			X:             float64(coord(rng, bounds.Width)),
			Y:             float64(coord(rng, bounds.Height)),
			PeakSignal:    minSignal + rng.Float64()*(maxSignal-minSignal),
			Severity:      severities[rng.Intn(len(severities))],
			Consciousness: states[rng.Intn(len(states))],
		}
		sites = append(sites, s)
	}
	return sites
}

// coord picks a cell at least BorderMargin away from both edges of a dimension.
// Dimensions too small for the margin collapse onto the centre cell.
func coord(rng *rand.Rand, dim int) int {
	lo, hi := BorderMargin, dim-1-BorderMargin
	if hi < lo {
		return (dim - 1) / 2
	}
	return lo + rng.Intn(hi-lo+1)
}

// newID derives a uuid from rng so seeded runs reproduce site identifiers.
func newID(rng *rand.Rand) uuid.UUID {
	var b [16]byte
	rng.Read(b[:])
	id, _ := uuid.FromBytes(b[:])
	id[6] = (id[6] & 0x0f) | 0x40
	id[8] = (id[8] & 0x3f) | 0x80
	return id
}

// Distance is the Euclidean grid distance between a cell and the site.
func (s Site) Distance(x, y float64) float64 {
	return math.Hypot(x-s.X, y-s.Y)
}
