package tui

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/aretw0/reel/internal/presentation/graph"
	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// NewRenderer returns a function that renders markdown using glamour.
// When stdout is not a terminal the markdown is returned unchanged.
func NewRenderer() func(string) (string, error) {
	if !IsTerminal(os.Stdout) {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)
	if err != nil {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}
	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// TimelineMarkdown renders a knob table: one row per frame, one column per knob.
func TimelineMarkdown(title string, animate bool, curves graph.KnobCurves) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)
	mode := "static"
	if animate {
		mode = "animation"
	}
	fmt.Fprintf(&sb, "%d frame(s), %s\n\n", len(curves), mode)

	names := curves.Names()
	if len(names) == 0 {
		sb.WriteString("_no knobs_\n")
		return sb.String()
	}

	sb.WriteString("| frame |")
	for _, n := range names {
		fmt.Fprintf(&sb, " %s |", n)
	}
	sb.WriteString("\n|---:|")
	sb.WriteString(strings.Repeat("---:|", len(names)))
	sb.WriteString("\n")

	for i, row := range curves {
		fmt.Fprintf(&sb, "| %d |", i)
		for _, n := range names {
			v, ok := row[n]
			cell := "-"
			if ok {
				cell = strconv.FormatFloat(v, 'g', 6, 64)
			}
			fmt.Fprintf(&sb, " %s |", cell)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
