package compiler

import (
	"fmt"

	"github.com/aretw0/reel/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// documentDTO is the structured form of a script. JSON documents are read
// through the YAML decoder.
type documentDTO struct {
	Knobs     map[string]float64 `mapstructure:"knobs"`
	Constants []string           `mapstructure:"constants"`
	Commands  []commandDTO       `mapstructure:"commands"`
}

type commandDTO struct {
	Op   string `mapstructure:"op"`
	Args []any  `mapstructure:"args"`
	Knob string `mapstructure:"knob"`
}

func parseDocument(data []byte) (*domain.Script, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &domain.ParseError{Reason: err.Error()}
	}
	if len(root.Content) == 0 {
		return &domain.Script{Symbols: make(domain.SymbolTable)}, nil
	}

	var raw map[string]any
	if err := root.Content[0].Decode(&raw); err != nil {
		return nil, &domain.ParseError{Line: root.Content[0].Line, Reason: err.Error()}
	}
	var doc documentDTO
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &doc,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, &domain.ParseError{Reason: err.Error()}
	}

	lines := commandLines(root.Content[0])
	script := &domain.Script{Symbols: make(domain.SymbolTable)}
	for name, v := range doc.Knobs {
		script.Symbols.SetKnob(name, v)
	}
	for _, name := range doc.Constants {
		script.Symbols.Declare(name, domain.SymbolConstants, 0)
	}

	for i, c := range doc.Commands {
		line := 0
		if i < len(lines) {
			line = lines[i]
		}
		cmd, err := c.toCommand(line)
		if err != nil {
			return nil, err
		}
		if cmd.Knob != "" {
			if cmd.Op != domain.OpVary && !cmd.Op.Knobbable() {
				return nil, &domain.ParseError{Line: line, Reason: fmt.Sprintf("%s cannot carry knob %q", cmd.Op, cmd.Knob)}
			}
			script.Symbols.Declare(cmd.Knob, domain.SymbolKnob, 0)
		}
		if isGeometry(cmd.Op) {
			declareGeometrySymbols(cmd, script.Symbols)
		}
		script.Commands = append(script.Commands, cmd)
	}
	return script, nil
}

func (c commandDTO) toCommand(line int) (domain.Command, error) {
	op, err := domain.ParseOp(c.Op)
	if err != nil {
		return domain.Command{}, &domain.ParseError{Line: line, Reason: err.Error()}
	}
	if op == domain.OpVary && c.Knob == "" {
		return domain.Command{}, &domain.ParseError{Line: line, Reason: "vary expects a knob"}
	}
	cmd := domain.Command{Op: op, Knob: c.Knob, Line: line}
	for _, a := range c.Args {
		arg, err := toArg(a, op)
		if err != nil {
			return domain.Command{}, &domain.ParseError{Line: line, Reason: err.Error()}
		}
		cmd.Args = append(cmd.Args, arg)
	}
	return cmd, nil
}

func toArg(v any, op domain.Op) (domain.Arg, error) {
	if op == domain.OpBasename || op == domain.OpSave {
		return domain.Sym(fmt.Sprint(v)), nil
	}
	switch t := v.(type) {
	case int:
		return domain.Num(float64(t)), nil
	case int64:
		return domain.Num(float64(t)), nil
	case uint64:
		return domain.Num(float64(t)), nil
	case float64:
		return domain.Num(t), nil
	case string:
		return domain.Sym(t), nil
	}
	return domain.Arg{}, fmt.Errorf("unsupported argument %v (%T)", v, v)
}

// commandLines returns the source line of each item of the top-level
// "commands" sequence.
func commandLines(doc *yaml.Node) []int {
	if doc.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(doc.Content); i += 2 {
		if doc.Content[i].Value != "commands" {
			continue
		}
		seq := doc.Content[i+1]
		lines := make([]int, len(seq.Content))
		for j, item := range seq.Content {
			lines[j] = item.Line
		}
		return lines
	}
	return nil
}
