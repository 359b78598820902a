package dsl

import (
	"testing"

	"github.com/aretw0/reel/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_SimpleScene(t *testing.T) {
	script, err := New().
		Frames(10).
		Basename("walk").
		Vary("theta", 0, 9, 0, 90).
		Push().
		Rotate("x", 1).With("theta").
		Box(0, 0, 0, 10, 10, 10).
		Pop().
		Build()
	require.NoError(t, err)

	ops := make([]domain.Op, len(script.Commands))
	for i, c := range script.Commands {
		ops[i] = c.Op
	}
	assert.Equal(t, []domain.Op{
		domain.OpFrames, domain.OpBasename, domain.OpVary,
		domain.OpPush, domain.OpRotate, domain.OpBox, domain.OpPop,
	}, ops)

	rotate := script.Commands[4]
	assert.Equal(t, "theta", rotate.Knob)
	assert.Equal(t, []string{"x"}, rotate.Symbols())
	assert.Equal(t, []float64{1}, rotate.Numbers())

	v, ok := script.Symbols.Knob("theta")
	assert.True(t, ok)
	assert.Equal(t, 0.0, v)
}

func TestBuilder_KnobDefault(t *testing.T) {
	script := New().
		Knob("spin", 2).
		Move(1, 0, 0).With("spin").
		MustBuild()

	v, ok := script.Symbols.Knob("spin")
	require.True(t, ok)
	assert.Equal(t, 2.0, v, "With must not reset an explicit default")
}

func TestBuilder_RejectsKnobOnPrimitive(t *testing.T) {
	_, err := New().
		Raw(domain.Command{Op: domain.OpBox, Args: []domain.Arg{domain.Num(1)}, Knob: "k"}).
		Build()
	assert.Error(t, err)
}

func TestBuilder_RejectsUndeclaredKnob(t *testing.T) {
	_, err := New().
		Raw(domain.Command{Op: domain.OpMove, Args: []domain.Arg{domain.Num(1), domain.Num(2), domain.Num(3)}, Knob: "ghost"}).
		Build()
	assert.Error(t, err)
}

func TestBuilder_BuildIsolatesScript(t *testing.T) {
	b := New().Knob("k", 1)
	first := b.MustBuild()
	b.Knob("k", 5).Push()
	second := b.MustBuild()

	v, _ := first.Symbols.Knob("k")
	assert.Equal(t, 1.0, v)
	assert.Len(t, first.Commands, 0)
	assert.Len(t, second.Commands, 1)
}
