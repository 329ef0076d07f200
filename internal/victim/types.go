package victim

import "github.com/google/uuid"

// Severity is the medical triage level of a victim.
type Severity string

const (
	SeverityMinor    Severity = "minor"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
	SeverityCritical Severity = "critical"
)

// Rank orders severities for rescue priority; lower ranks are attended first.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeveritySevere:
		return 1
	case SeverityModerate:
		return 2
	case SeverityMinor:
		return 3
	default:
		return 4
	}
}

// Consciousness is the responsiveness state of a victim.
type Consciousness string

const (
	Conscious     Consciousness = "conscious"
	SemiConscious Consciousness = "semi-conscious"
	Unconscious   Consciousness = "unconscious"
)

// Site is the ground-truth location of a victim. It only shapes the synthetic CO2
// plume and the ground-truth label; fusion never reads it.
type Site struct {
	ID            uuid.UUID     `json:"id"`
	X             float64       `json:"x"`
	Y             float64       `json:"y"`
	PeakSignal    float64       `json:"peak_signal"`
	Severity      Severity      `json:"severity"`
	Consciousness Consciousness `json:"consciousness"`
	KitApplied    bool          `json:"kit_applied"`
}

// Kind is a compact tag combining severity and consciousness.
func (s Site) Kind() string {
	return string(s.Severity) + "/" + string(s.Consciousness)
}

// NeedsKit reports whether a first-aid kit would improve the victim's condition.
func (s Site) NeedsKit() bool {
	if s.KitApplied {
		return false
	}
	switch s.Severity {
	case SeverityModerate, SeveritySevere, SeverityCritical:
		return true
	}
	return false
}

var downgrade = map[Severity]Severity{
	SeverityCritical: SeveritySevere,
	SeveritySevere:   SeverityModerate,
	SeverityModerate: SeverityMinor,
	SeverityMinor:    SeverityMinor,
}

// ApplyKit stabilises the victim one severity step. It returns false when a kit
// was already applied.
func (s *Site) ApplyKit() bool {
	if s.KitApplied {
		return false
	}
	s.Severity = downgrade[s.Severity]
	s.KitApplied = true
	return true
}
