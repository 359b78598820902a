package graph

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// KnobCurves is the resolved knob value of every frame, indexed by frame.
type KnobCurves []map[string]float64

// Names returns the knob names present in any frame, sorted.
func (k KnobCurves) Names() []string {
	seen := make(map[string]struct{})
	for _, row := range k {
		for name := range row {
			seen[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GenerateMermaid produces a Mermaid xychart with one line per knob, frames
// on the x axis. Knobs missing from a frame are plotted as 0.
func GenerateMermaid(title string, curves KnobCurves) string {
	var sb strings.Builder
	sb.WriteString("xychart-beta\n")
	if title != "" {
		fmt.Fprintf(&sb, "    title %q\n", title)
	}

	frames := make([]string, len(curves))
	for i := range curves {
		frames[i] = strconv.Itoa(i)
	}
	fmt.Fprintf(&sb, "    x-axis \"frame\" [%s]\n", strings.Join(frames, ", "))

	for _, name := range curves.Names() {
		values := make([]string, len(curves))
		for i, row := range curves {
			values[i] = strconv.FormatFloat(row[name], 'g', 6, 64)
		}
		// xychart has no legend; the knob name goes in a comment
		fmt.Fprintf(&sb, "    %%%% %s\n", sanitizeMermaidID(name))
		fmt.Fprintf(&sb, "    line [%s]\n", strings.Join(values, ", "))
	}
	return sb.String()
}

func sanitizeMermaidID(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		}
		return '_'
	}, id)
}
