package cli

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/vijay-prabhu/moodmatch/internal/recommender"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorPurple = "\033[35m"
	ColorCyan   = "\033[36m"
	ColorGray   = "\033[90m"
)

// Spinner frames for animated progress
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Terminal writes progress to stderr so stdout stays parseable
type Terminal struct {
	IsTerminal   bool
	UseColor     bool
	out          io.Writer
	spinnerIndex int
}

// NewTerminal creates a new Terminal instance
func NewTerminal() *Terminal {
	isTerminal := term.IsTerminal(int(os.Stderr.Fd()))
	return &Terminal{
		IsTerminal: isTerminal,
		UseColor:   isTerminal && os.Getenv("NO_COLOR") == "",
		out:        os.Stderr,
	}
}

// ClearLine clears the current line (terminal only)
func (t *Terminal) ClearLine() {
	if t.IsTerminal {
		fmt.Fprint(t.out, "\r\033[K")
	}
}

// Spinner returns the next spinner frame
func (t *Terminal) Spinner() string {
	if !t.IsTerminal {
		return ""
	}
	frame := spinnerFrames[t.spinnerIndex]
	t.spinnerIndex = (t.spinnerIndex + 1) % len(spinnerFrames)
	return frame
}

// Color wraps text in ANSI color codes (terminal only)
func (t *Terminal) Color(color, text string) string {
	if !t.UseColor {
		return text
	}
	return color + text + ColorReset
}

// Progress returns a callback that redraws a single status line.
// Nothing is drawn when stderr is not a terminal.
func (t *Terminal) Progress() recommender.ProgressCallback {
	return func(p recommender.Progress) {
		if !t.IsTerminal {
			return
		}
		t.ClearLine()
		fmt.Fprintf(t.out, "%s %s", t.Spinner(), t.Color(PhaseColor(p.Phase), p.Description))
	}
}

// PhaseColor returns the appropriate color for a pipeline phase
func PhaseColor(phase recommender.ProgressPhase) string {
	switch phase {
	case recommender.PhaseParsing:
		return ColorCyan
	case recommender.PhaseDiscovering:
		return ColorBlue
	case recommender.PhaseRanking:
		return ColorPurple
	case recommender.PhaseSaving:
		return ColorGreen
	default:
		return ColorGray
	}
}
