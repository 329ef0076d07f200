package sim

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"rescueops-sim/internal/scenario"
	"rescueops-sim/internal/telemetry"
	"rescueops-sim/internal/victim"
)

// Report is the end-of-mission summary.
type Report struct {
	MissionID       string
	Scenario        string
	Title           string
	Description     string
	Status          Status
	StopReason      string
	Points          int
	Gaps            int
	FinalBattery    float64
	DistanceCells   float64
	KitsUsed        int
	KitsNeeded      int
	RobotStatus     RobotStatus
	Commands        map[telemetry.Command]int
	PeakPriority    int
	PeakIndex       int
	Victims         []VictimEntry
	UndetectedSites int
}

// VictimEntry is one detected site in the report.
type VictimEntry struct {
	Site       victim.Site
	PhotoIndex int
	HasPhoto   bool
}

// BuildReport summarises a mission result. Victims are ordered most severe first.
func BuildReport(res *Result, profile scenario.Profile) Report {
	r := Report{
		MissionID:   res.MissionID,
		Scenario:    res.Scenario,
		Title:       profile.Title,
		Description: profile.Description,
		Status:      res.Status,
		StopReason:  res.StopReason,
		Points:      len(res.History),
		Gaps:        len(res.Gaps),
		Commands:    make(map[telemetry.Command]int),
		PeakIndex:   -1,
	}
	if last, ok := res.LastPoint(); ok {
		r.FinalBattery = last.BatteryPct
	}
	for _, p := range res.History {
		r.Commands[p.Command]++
		if !p.Gap && p.PriorityScore > r.PeakPriority {
			r.PeakPriority, r.PeakIndex = p.PriorityScore, p.Index
		}
	}
	if rb := res.Robot; rb != nil {
		r.DistanceCells = rb.DistanceCells
		r.KitsUsed = rb.KitsUsed()
		r.KitsNeeded = rb.KitsNeeded
		r.RobotStatus = rb.Status
		detected := rb.DetectedSites()
		for _, s := range detected {
			e := VictimEntry{Site: s}
			if ph, ok := rb.PhotoOf(s.ID); ok {
				e.PhotoIndex, e.HasPhoto = ph.Index, true
			}
			r.Victims = append(r.Victims, e)
		}
		r.UndetectedSites = len(rb.Sites) - len(detected)
	}
	return r
}

// Render writes the report as plain text wrapped at width columns. width <= 0
// disables wrapping.
func (r Report) Render(w io.Writer, width int) error {
	var b strings.Builder
	fmt.Fprintf(&b, "=== MISSION REPORT %s ===\n", r.MissionID)
	fmt.Fprintf(&b, "Scenario: %s (%s)\n", r.Title, r.Scenario)
	if r.Description != "" {
		fmt.Fprintf(&b, "%s\n", r.Description)
	}
	status := string(r.Status)
	if r.StopReason != "" {
		status += " (" + r.StopReason + ")"
	}
	fmt.Fprintf(&b, "\nStatus: %s\n", status)
	fmt.Fprintf(&b, "Robot state: %s\n", r.RobotStatus)
	fmt.Fprintf(&b, "Points fused: %d (inference gaps: %d)\n", r.Points, r.Gaps)
	fmt.Fprintf(&b, "Distance travelled: %.1f cells\n", r.DistanceCells)
	fmt.Fprintf(&b, "Final battery: %.1f%%\n", r.FinalBattery)
	fmt.Fprintf(&b, "First-aid kits used: %d of %d (needed on site: %d)\n", r.KitsUsed, KitCount, r.KitsNeeded)
	if r.PeakIndex >= 0 {
		fmt.Fprintf(&b, "Peak priority: %d at point %d\n", r.PeakPriority, r.PeakIndex)
	}

	b.WriteString("\nCommands:\n")
	for _, c := range append(append([]telemetry.Command{}, telemetry.Commands...), telemetry.CommandUnscored) {
		if n := r.Commands[c]; n > 0 {
			fmt.Fprintf(&b, "  %-24s %d\n", c, n)
		}
	}

	fmt.Fprintf(&b, "\nVictims detected (%d), by priority:\n", len(r.Victims))
	if len(r.Victims) == 0 {
		b.WriteString("  none\n")
	}
	for _, v := range r.Victims {
		s := v.Site
		fmt.Fprintf(&b, "  - %s at (%.0f, %.0f): %s, %s", s.ID, s.X, s.Y, s.Severity, s.Consciousness)
		if s.KitApplied {
			b.WriteString(", kit applied")
		}
		if v.HasPhoto {
			fmt.Fprintf(&b, ", photo at point %d", v.PhotoIndex)
		}
		b.WriteString("\n")
	}
	if r.UndetectedSites > 0 {
		fmt.Fprintf(&b, "  %d site(s) not located\n", r.UndetectedSites)
	}

	out := b.String()
	if width > 0 {
		out = wordwrap.String(out, width)
	}
	_, err := io.WriteString(w, out)
	return err
}
