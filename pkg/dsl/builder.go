package dsl

import (
	"fmt"

	"github.com/aretw0/reel/pkg/domain"
)

// Builder manages the script construction.
type Builder struct {
	cmds    []domain.Command
	symbols domain.SymbolTable
}

// New creates a new script builder.
func New() *Builder {
	return &Builder{
		symbols: make(domain.SymbolTable),
	}
}

func (b *Builder) add(op domain.Op, args ...domain.Arg) *CommandBuilder {
	b.cmds = append(b.cmds, domain.Command{Op: op, Args: args})
	return &CommandBuilder{builder: b, index: len(b.cmds) - 1}
}

func nums(vs ...float64) []domain.Arg {
	out := make([]domain.Arg, len(vs))
	for i, v := range vs {
		out[i] = domain.Num(v)
	}
	return out
}

// Frames appends a frames directive.
func (b *Builder) Frames(n int) *Builder {
	b.add(domain.OpFrames, domain.Num(float64(n)))
	return b
}

// Basename appends a basename directive.
func (b *Builder) Basename(name string) *Builder {
	b.add(domain.OpBasename, domain.Sym(name))
	return b
}

// Vary appends a vary directive and declares the knob with a zero default.
func (b *Builder) Vary(knob string, startFrame, endFrame int, startValue, endValue float64) *Builder {
	b.symbols.Declare(knob, domain.SymbolKnob, 0)
	cb := b.add(domain.OpVary, nums(float64(startFrame), float64(endFrame), startValue, endValue)...)
	b.cmds[cb.index].Knob = knob
	return b
}

// Knob declares a knob with an explicit default value.
func (b *Builder) Knob(name string, value float64) *Builder {
	b.symbols.SetKnob(name, value)
	return b
}

// Box appends a box primitive.
func (b *Builder) Box(x, y, z, w, h, d float64) *Builder {
	b.add(domain.OpBox, nums(x, y, z, w, h, d)...)
	return b
}

// Sphere appends a sphere primitive.
func (b *Builder) Sphere(x, y, z, r float64) *Builder {
	b.add(domain.OpSphere, nums(x, y, z, r)...)
	return b
}

// Torus appends a torus primitive.
func (b *Builder) Torus(x, y, z, r1, r2 float64) *Builder {
	b.add(domain.OpTorus, nums(x, y, z, r1, r2)...)
	return b
}

// Line appends a line segment.
func (b *Builder) Line(x0, y0, z0, x1, y1, z1 float64) *Builder {
	b.add(domain.OpLine, nums(x0, y0, z0, x1, y1, z1)...)
	return b
}

// Move appends a translation. Use the returned CommandBuilder to bind a knob.
func (b *Builder) Move(dx, dy, dz float64) *CommandBuilder {
	return b.add(domain.OpMove, nums(dx, dy, dz)...)
}

// Scale appends a scaling. Use the returned CommandBuilder to bind a knob.
func (b *Builder) Scale(sx, sy, sz float64) *CommandBuilder {
	return b.add(domain.OpScale, nums(sx, sy, sz)...)
}

// Rotate appends a rotation around axis by degrees.
func (b *Builder) Rotate(axis string, degrees float64) *CommandBuilder {
	return b.add(domain.OpRotate, domain.Sym(axis), domain.Num(degrees))
}

// Push appends a push.
func (b *Builder) Push() *Builder {
	b.add(domain.OpPush)
	return b
}

// Pop appends a pop.
func (b *Builder) Pop() *Builder {
	b.add(domain.OpPop)
	return b
}

// Display appends a display command.
func (b *Builder) Display() *Builder {
	b.add(domain.OpDisplay)
	return b
}

// Save appends a save command.
func (b *Builder) Save(name string) *Builder {
	b.add(domain.OpSave, domain.Sym(name))
	return b
}

// Raw appends an arbitrary command, bypassing argument shaping.
// It is mostly useful to exercise error paths.
func (b *Builder) Raw(cmd domain.Command) *Builder {
	b.cmds = append(b.cmds, cmd)
	return b
}

// Build returns the script. Knob bindings must reference declared knobs.
func (b *Builder) Build() (*domain.Script, error) {
	for i, cmd := range b.cmds {
		if cmd.Knob == "" || cmd.Op == domain.OpVary {
			continue
		}
		if !cmd.Op.Knobbable() {
			return nil, fmt.Errorf("command %d (%s) cannot carry knob %q", i, cmd.Op, cmd.Knob)
		}
		if _, ok := b.symbols.Knob(cmd.Knob); !ok {
			return nil, fmt.Errorf("command %d (%s) references undeclared knob %q", i, cmd.Op, cmd.Knob)
		}
	}

	cmds := make([]domain.Command, len(b.cmds))
	copy(cmds, b.cmds)
	return &domain.Script{Commands: cmds, Symbols: b.symbols.Clone()}, nil
}

// MustBuild is like Build but panics on error. Intended for tests and examples.
func (b *Builder) MustBuild() *domain.Script {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
