package domain

// SymbolKind classifies a symbol table entry.
type SymbolKind string

const (
	SymbolKnob      SymbolKind = "knob"
	SymbolConstants SymbolKind = "constants"
	SymbolCoords    SymbolKind = "coord_system"
)

// Symbol is a named entry of the symbol table. For knobs, Value is the
// current scalar multiplier; it persists across frames until overwritten.
type Symbol struct {
	Kind  SymbolKind `json:"kind" yaml:"kind"`
	Value float64    `json:"value" yaml:"value"`
}

// SymbolTable maps names to symbols.
type SymbolTable map[string]Symbol

// Clone returns an independent copy of the table.
func (s SymbolTable) Clone() SymbolTable {
	out := make(SymbolTable, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Knob returns the current value of a knob symbol.
func (s SymbolTable) Knob(name string) (float64, bool) {
	sym, ok := s[name]
	if !ok || sym.Kind != SymbolKnob {
		return 0, false
	}
	return sym.Value, true
}

// SetKnob writes a knob value, declaring the knob if needed.
func (s SymbolTable) SetKnob(name string, v float64) {
	s[name] = Symbol{Kind: SymbolKnob, Value: v}
}

// Declare adds a symbol unless one already exists under that name.
func (s SymbolTable) Declare(name string, kind SymbolKind, v float64) {
	if _, ok := s[name]; ok {
		return
	}
	s[name] = Symbol{Kind: kind, Value: v}
}

// Knobs returns the knob symbols as name -> value.
func (s SymbolTable) Knobs() map[string]float64 {
	out := make(map[string]float64)
	for k, v := range s {
		if v.Kind == SymbolKnob {
			out[k] = v.Value
		}
	}
	return out
}
