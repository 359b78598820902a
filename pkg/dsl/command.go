package dsl

import "github.com/aretw0/reel/pkg/domain"

// CommandBuilder configures the command just appended by a transform method.
type CommandBuilder struct {
	builder *Builder
	index   int
}

// With binds the command to a knob, declaring it with a zero default if needed.
func (c *CommandBuilder) With(knob string) *Builder {
	c.builder.symbols.Declare(knob, domain.SymbolKnob, 0)
	c.builder.cmds[c.index].Knob = knob
	return c.builder
}

// Then returns the script builder without binding a knob.
func (c *CommandBuilder) Then() *Builder {
	return c.builder
}
