package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateMermaid(t *testing.T) {
	curves := KnobCurves{
		{"spin": 0, "grow": 1},
		{"spin": 0.5, "grow": 1},
		{"spin": 1, "grow": 2},
	}
	out := GenerateMermaid("walk", curves)

	assert.Contains(t, out, "xychart-beta\n")
	assert.Contains(t, out, `title "walk"`)
	assert.Contains(t, out, `x-axis "frame" [0, 1, 2]`)
	assert.Contains(t, out, "%% grow\n    line [1, 1, 2]")
	assert.Contains(t, out, "%% spin\n    line [0, 0.5, 1]")
}

func TestGenerateMermaid_NoKnobs(t *testing.T) {
	out := GenerateMermaid("", KnobCurves{{}})
	assert.NotContains(t, out, "title")
	assert.NotContains(t, out, "line")
}

func TestSanitizeMermaidID(t *testing.T) {
	assert.Equal(t, "my_knob_1", sanitizeMermaidID("my-knob.1"))
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, KnobCurves{{"b": 1}, {"a": 2}}.Names())
}
