// Package validator statically checks a parsed script for problems that would
// otherwise only surface while rendering.
package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/reel/pkg/domain"
	"github.com/aretw0/reel/pkg/imageio"
)

// Severity grades an issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is a single finding.
type Issue struct {
	Severity Severity
	Line     int
	Message  string
}

func (i Issue) String() string {
	if i.Line == 0 {
		return i.Message
	}
	return fmt.Sprintf("line %d: %s", i.Line, i.Message)
}

// Lint walks the command stream once, the way every frame replays it, and
// reports stack underflows, bad save targets, unbound knobs and knobs that
// are varied but never used.
func Lint(script *domain.Script) []Issue {
	var issues []Issue
	report := func(sev Severity, cmd domain.Command, format string, args ...any) {
		issues = append(issues, Issue{Severity: sev, Line: cmd.Line, Message: fmt.Sprintf(format, args...)})
	}

	varied := make(map[string]domain.Command)
	bound := make(map[string]bool)
	depth := 0

	for _, cmd := range script.Commands {
		switch cmd.Op {
		case domain.OpVary:
			if _, ok := varied[cmd.Knob]; !ok {
				varied[cmd.Knob] = cmd
			}
		case domain.OpPush:
			depth++
		case domain.OpPop:
			if depth == 0 {
				report(SeverityError, cmd, "pop without matching push")
				continue
			}
			depth--
		case domain.OpSave:
			syms := cmd.Symbols()
			if len(syms) == 0 {
				report(SeverityError, cmd, "save needs a file name")
				continue
			}
			if _, err := imageio.FormatOf(syms[0]); err != nil {
				report(SeverityError, cmd, "save %s: %v", syms[0], err)
			}
		}

		if cmd.Knob == "" || cmd.Op == domain.OpVary {
			continue
		}
		bound[cmd.Knob] = true
		if _, ok := script.Symbols.Knob(cmd.Knob); !ok {
			if _, ok := varied[cmd.Knob]; !ok {
				report(SeverityError, cmd, "%s uses undeclared knob %q", cmd.Op, cmd.Knob)
			}
		}
	}

	names := make([]string, 0, len(varied))
	for name := range varied {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if !bound[name] {
			report(SeverityWarning, varied[name], "knob %q is varied but never used", name)
		}
	}
	return issues
}

// ValidateScript returns an error listing every error-level issue.
func ValidateScript(script *domain.Script) error {
	var errs []string
	for _, issue := range Lint(script) {
		if issue.Severity == SeverityError {
			errs = append(errs, issue.String())
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("found %d errors:\n- %s", len(errs), strings.Join(errs, "\n- "))
	}
	return nil
}
