package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the reel banner followed by the version.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text, color string
	}{
		{"  _ __ ___  ___| |", "#818cf8"},
		{" | '__/ _ \\/ _ \\ |", "#a78bfa"},
		{" | | |  __/  __/ |", "#c084fc"},
		{" |_|  \\___|\\___|_|", "#e879f9"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	if version != "" {
		fmt.Fprintln(w, termenv.String("  v"+version).Faint())
	}
	fmt.Fprintln(w)
}

// Success formats a status line in green.
func Success(msg string) string {
	return termenv.String("✔ " + msg).Foreground(termenv.ColorProfile().Color("#22c55e")).String()
}

// Failure formats a status line in red.
func Failure(msg string) string {
	return termenv.String("✘ " + msg).Foreground(termenv.ColorProfile().Color("#ef4444")).String()
}
