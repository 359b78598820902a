package compiler

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aretw0/reel/pkg/domain"
)

// Declaration keywords that fill the symbol table without emitting a command.
const (
	kwSet       = "set"
	kwConstants = "constants"
)

// parseMDL reads one command per line. Everything after // or # is ignored.
func parseMDL(r io.Reader) (*domain.Script, error) {
	script := &domain.Script{Symbols: make(domain.SymbolTable)}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(stripComment(sc.Text()))
		if len(fields) == 0 {
			continue
		}
		cmd, ok, err := parseLine(fields, line, script.Symbols)
		if err != nil {
			return nil, err
		}
		if ok {
			script.Commands = append(script.Commands, cmd)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, &domain.ParseError{Line: line, Reason: err.Error()}
	}
	return script, nil
}

func stripComment(s string) string {
	if i := strings.Index(s, "//"); i >= 0 {
		s = s[:i]
	}
	if i := strings.IndexByte(s, '#'); i >= 0 {
		s = s[:i]
	}
	return s
}

// parseLine returns ok=false for declarations that only touch the symbol table.
func parseLine(fields []string, line int, symbols domain.SymbolTable) (domain.Command, bool, error) {
	keyword := strings.ToLower(fields[0])
	rest := fields[1:]

	switch keyword {
	case kwSet:
		if len(rest) != 2 {
			return domain.Command{}, false, &domain.ParseError{Line: line, Reason: "set expects a knob name and a value"}
		}
		v, err := strconv.ParseFloat(rest[1], 64)
		if err != nil {
			return domain.Command{}, false, &domain.ParseError{Line: line, Reason: fmt.Sprintf("set: %q is not a number", rest[1])}
		}
		symbols.SetKnob(rest[0], v)
		return domain.Command{}, false, nil
	case kwConstants:
		if len(rest) == 0 {
			return domain.Command{}, false, &domain.ParseError{Line: line, Reason: "constants expects a name"}
		}
		symbols.Declare(rest[0], domain.SymbolConstants, 0)
		return domain.Command{}, false, nil
	}

	op, err := domain.ParseOp(keyword)
	if err != nil {
		return domain.Command{}, false, &domain.ParseError{Line: line, Reason: err.Error()}
	}
	cmd := domain.Command{Op: op, Line: line}

	switch {
	case op == domain.OpBasename || op == domain.OpSave:
		// names are never numbers, even when they look like one
		for _, f := range rest {
			cmd.Args = append(cmd.Args, domain.Sym(f))
		}
	case op == domain.OpVary:
		if len(rest) == 0 || isNumber(rest[0]) {
			return cmd, false, &domain.ParseError{Line: line, Reason: "vary expects a knob name first"}
		}
		cmd.Knob = rest[0]
		cmd.Args = tokens(rest[1:])
		symbols.Declare(cmd.Knob, domain.SymbolKnob, 0)
	default:
		cmd.Args = tokens(rest)
	}

	if op.Knobbable() {
		bindKnob(&cmd, symbols)
	}
	if isGeometry(op) {
		declareGeometrySymbols(cmd, symbols)
	}
	return cmd, true, nil
}

// bindKnob moves a trailing symbol that follows a number into the knob slot.
func bindKnob(cmd *domain.Command, symbols domain.SymbolTable) {
	n := len(cmd.Args)
	if n < 2 {
		return
	}
	last, prev := cmd.Args[n-1], cmd.Args[n-2]
	if last.IsNumeric() || !prev.IsNumeric() {
		return
	}
	cmd.Knob = last.Sym
	cmd.Args = cmd.Args[:n-1]
	symbols.Declare(cmd.Knob, domain.SymbolKnob, 0)
}

// declareGeometrySymbols records a leading constants name and any other
// symbolic tokens as coordinate systems.
func declareGeometrySymbols(cmd domain.Command, symbols domain.SymbolTable) {
	for i, a := range cmd.Args {
		if a.IsNumeric() {
			continue
		}
		kind := domain.SymbolCoords
		if i == 0 {
			kind = domain.SymbolConstants
		}
		symbols.Declare(a.Sym, kind, 0)
	}
}

func isGeometry(op domain.Op) bool {
	switch op {
	case domain.OpBox, domain.OpSphere, domain.OpTorus, domain.OpLine:
		return true
	}
	return false
}

func tokens(fields []string) []domain.Arg {
	args := make([]domain.Arg, 0, len(fields))
	for _, f := range fields {
		if v, err := strconv.ParseFloat(f, 64); err == nil {
			args = append(args, domain.Num(v))
		} else {
			args = append(args, domain.Sym(f))
		}
	}
	return args
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
