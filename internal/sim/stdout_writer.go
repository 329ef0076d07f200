// Writer implementation printing fused points to STDOUT
package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"rescueops-sim/internal/telemetry"
)

var (
	styleTime  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	styleGap   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleHit   = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)

	commandStyles = map[telemetry.Command]lipgloss.Style{
		telemetry.CommandEvacuate:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		telemetry.CommandRetreatCO:    lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
		telemetry.CommandReturnToBase: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		telemetry.CommandRescue:       lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
		telemetry.CommandRetreatRisk:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		telemetry.CommandContinue:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		telemetry.CommandUnscored:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
)

// StdoutWriter prints fused points to STDOUT, colorized on a terminal and as
// JSON lines otherwise.
type StdoutWriter struct {
	out      io.Writer
	colorize bool
	mu       sync.Mutex
}

// NewStdoutWriter creates a StdoutWriter writing to os.Stdout, colorizing only
// when stdout is a terminal.
func NewStdoutWriter() *StdoutWriter {
	return &StdoutWriter{out: os.Stdout, colorize: term.IsTerminal(int(os.Stdout.Fd()))}
}

// NewStdoutWriterTo creates a StdoutWriter on out.
func NewStdoutWriterTo(out io.Writer, colorize bool) *StdoutWriter {
	return &StdoutWriter{out: out, colorize: colorize}
}

// Write outputs a single fused point.
func (w *StdoutWriter) Write(p telemetry.FusedPoint) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.colorize {
		data, err := json.Marshal(p)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w.out, string(data))
		return err
	}
	_, err := fmt.Fprintln(w.out, formatPoint(p))
	return err
}

// WriteBatch outputs multiple fused points.
func (w *StdoutWriter) WriteBatch(points []telemetry.FusedPoint) error {
	for _, p := range points {
		if err := w.Write(p); err != nil {
			return err
		}
	}
	return nil
}

func formatPoint(p telemetry.FusedPoint) string {
	var b strings.Builder
	b.WriteString(styleTime.Render(fmt.Sprintf("[%s]", p.Timestamp.Format(time.RFC3339))))
	fmt.Fprintf(&b, " %s %04d (%d,%d)", styleLabel.Render("pt"), p.Index, p.PosX, p.PosY)
	fmt.Fprintf(&b, " batt=%.1f temp=%.1f(%+.1f) co2=%.0f co=%.0f ch4=%.0f",
		p.BatteryPct, p.TempC, p.TempTrendC, p.CO2PPM, p.COPPM, p.MethanePPM)
	fmt.Fprintf(&b, " risk=%d→%d cost=%d", p.StructuralRisk, p.PredictedRisk, p.RouteCost)
	if p.Gap {
		fmt.Fprintf(&b, " %s %s", styleGap.Render("GAP"), p.GapReason)
	} else {
		conf := fmt.Sprintf("victim=%.1f%%", p.VictimConfidencePct)
		if p.VictimDetected {
			conf = styleHit.Render(conf)
		}
		fmt.Fprintf(&b, " %s prio=%d", conf, p.PriorityScore)
	}
	style, ok := commandStyles[p.Command]
	if !ok {
		style = lipgloss.NewStyle()
	}
	b.WriteString(" " + style.Render(string(p.Command)))
	return b.String()
}
