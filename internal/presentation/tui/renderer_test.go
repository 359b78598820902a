package tui

import (
	"bytes"
	"testing"

	"github.com/aretw0/reel/internal/presentation/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimelineMarkdown(t *testing.T) {
	md := TimelineMarkdown("walk", true, graph.KnobCurves{
		{"theta": 0},
		{"theta": 45, "arm": 1},
	})

	assert.Contains(t, md, "# walk")
	assert.Contains(t, md, "2 frame(s), animation")
	assert.Contains(t, md, "| frame | arm | theta |")
	assert.Contains(t, md, "|---:|---:|---:|")
	assert.Contains(t, md, "| 0 | - | 0 |")
	assert.Contains(t, md, "| 1 | 1 | 45 |")
}

func TestTimelineMarkdown_NoKnobs(t *testing.T) {
	md := TimelineMarkdown("still", false, graph.KnobCurves{{}})
	assert.Contains(t, md, "1 frame(s), static")
	assert.Contains(t, md, "_no knobs_")
}

func TestNewRenderer_PlainWhenNotATerminal(t *testing.T) {
	// go test redirects stdout, so the plain renderer is selected
	render := NewRenderer()
	out, err := render("# title")
	require.NoError(t, err)
	assert.Contains(t, out, "title")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "1.2.3")
	assert.Contains(t, buf.String(), "v1.2.3")
}

func TestStatus(t *testing.T) {
	assert.Contains(t, Success("done"), "done")
	assert.Contains(t, Failure("oops"), "oops")
}
