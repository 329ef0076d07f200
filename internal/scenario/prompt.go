package scenario

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	promptTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	promptError = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// ErrNoSelection is returned when input ends before a valid archetype is chosen.
var ErrNoSelection = errors.New("no scenario selected")

// Prompt shows the archetype menu on out and reads choices from in until a valid
// number or key is entered. Invalid entries are rejected and asked again.
func Prompt(in io.Reader, out io.Writer) (Profile, error) {
	names := Names()
	all := BuiltIn()
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprintln(out, promptTitle.Render("Select mission scenario:"))
		for i, n := range names {
			fmt.Fprintf(out, "  %d) %-18s %s\n", i+1, n, all[n].Title)
		}
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return Profile{}, fmt.Errorf("read selection: %w", err)
			}
			return Profile{}, ErrNoSelection
		}
		choice := strings.TrimSpace(sc.Text())
		if p, ok := resolve(choice, names, all); ok {
			return p, nil
		}
		fmt.Fprintln(out, promptError.Render(fmt.Sprintf("invalid selection %q", choice)))
	}
}

func resolve(choice string, names []string, all map[string]Profile) (Profile, bool) {
	if n, err := strconv.Atoi(choice); err == nil {
		if n >= 1 && n <= len(names) {
			return all[names[n-1]], true
		}
		return Profile{}, false
	}
	p, ok := all[strings.ToLower(choice)]
	return p, ok
}
