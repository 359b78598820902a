package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Op identifies a script operator. The set is closed: the executor switches
// over every value.
type Op uint8

const (
	OpFrames Op = iota + 1
	OpBasename
	OpVary
	OpBox
	OpSphere
	OpTorus
	OpLine
	OpMove
	OpScale
	OpRotate
	OpPush
	OpPop
	OpDisplay
	OpSave
)

var opNames = [...]string{
	OpFrames:   "frames",
	OpBasename: "basename",
	OpVary:     "vary",
	OpBox:      "box",
	OpSphere:   "sphere",
	OpTorus:    "torus",
	OpLine:     "line",
	OpMove:     "move",
	OpScale:    "scale",
	OpRotate:   "rotate",
	OpPush:     "push",
	OpPop:      "pop",
	OpDisplay:  "display",
	OpSave:     "save",
}

func (o Op) String() string {
	if o == 0 || int(o) >= len(opNames) {
		return "<unknown Op>"
	}
	return opNames[o]
}

// ParseOp maps a script keyword to its operator.
func ParseOp(keyword string) (Op, error) {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	for i, name := range opNames {
		if name != "" && name == keyword {
			return Op(i), nil
		}
	}
	return 0, fmt.Errorf("unknown operator %q", keyword)
}

// Knobbable reports whether a command with this operator may carry a knob binding.
func (o Op) Knobbable() bool {
	return o == OpMove || o == OpScale || o == OpRotate
}

// Animation reports whether the operator is an animation directive
// (consumed by the timeline, ignored during replay).
func (o Op) Animation() bool {
	return o == OpFrames || o == OpBasename || o == OpVary
}

// ArgKind tags the variant held by an Arg.
type ArgKind uint8

const (
	ArgNumeric ArgKind = iota
	ArgSymbolic
)

// Arg is a single command argument: either a number or a symbolic token
// (axis selector, file name, knob or constants name).
type Arg struct {
	Kind ArgKind `json:"kind" yaml:"kind"`
	Num  float64 `json:"num,omitempty" yaml:"num,omitempty"`
	Sym  string  `json:"sym,omitempty" yaml:"sym,omitempty"`
}

// Num builds a numeric argument.
func Num(v float64) Arg { return Arg{Kind: ArgNumeric, Num: v} }

// Sym builds a symbolic argument.
func Sym(s string) Arg { return Arg{Kind: ArgSymbolic, Sym: s} }

// IsNumeric reports whether the argument holds a number.
func (a Arg) IsNumeric() bool { return a.Kind == ArgNumeric }

func (a Arg) String() string {
	if a.IsNumeric() {
		return strconv.FormatFloat(a.Num, 'g', -1, 64)
	}
	return a.Sym
}

// Command is one entry of the command stream.
type Command struct {
	Op   Op     `json:"op" yaml:"op"`
	Args []Arg  `json:"args,omitempty" yaml:"args,omitempty"`
	Knob string `json:"knob,omitempty" yaml:"knob,omitempty"`

	// Line is the 1-based source line, zero when the command was built in code.
	Line int `json:"line,omitempty" yaml:"line,omitempty"`
}

// Numbers returns the numeric arguments in order, skipping symbolic ones.
func (c Command) Numbers() []float64 {
	out := make([]float64, 0, len(c.Args))
	for _, a := range c.Args {
		if a.IsNumeric() {
			out = append(out, a.Num)
		}
	}
	return out
}

// Symbols returns the symbolic arguments in order.
func (c Command) Symbols() []string {
	var out []string
	for _, a := range c.Args {
		if !a.IsNumeric() {
			out = append(out, a.Sym)
		}
	}
	return out
}

// Scaled returns a copy of c whose numeric arguments are multiplied by k.
// Symbolic arguments are left untouched and the receiver is not modified.
func (c Command) Scaled(k float64) Command {
	args := make([]Arg, len(c.Args))
	for i, a := range c.Args {
		if a.IsNumeric() {
			a.Num *= k
		}
		args[i] = a
	}
	c.Args = args
	return c
}

func (c Command) String() string {
	var b strings.Builder
	b.WriteString(c.Op.String())
	for _, a := range c.Args {
		b.WriteByte(' ')
		b.WriteString(a.String())
	}
	if c.Knob != "" {
		b.WriteByte(' ')
		b.WriteString(c.Knob)
	}
	return b.String()
}

// Script is the parsed input: an ordered command stream plus its symbol table.
type Script struct {
	Commands []Command
	Symbols  SymbolTable

	// Name is a descriptive label, usually the source file name.
	Name string
}
