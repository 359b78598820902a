package transform

import (
	"github.com/aretw0/reel/pkg/domain"
	"github.com/go-gl/mathgl/mgl64"
)

// Matrix is an affine 3D transform in homogeneous coordinates.
// Points are column vectors: p' = M·p.
type Matrix = mgl64.Mat4

// Stack holds cumulative transforms. It always has at least one entry;
// the top applies to subsequently defined geometry.
type Stack struct {
	entries []Matrix
}

// NewStack returns a stack holding a single identity entry.
func NewStack() *Stack {
	s := &Stack{}
	s.Reset()
	return s
}

// Reset replaces the whole stack with one identity entry.
func (s *Stack) Reset() {
	s.entries = append(s.entries[:0], mgl64.Ident4())
}

// Top returns a copy of the current cumulative transform.
func (s *Stack) Top() Matrix {
	return s.entries[len(s.entries)-1]
}

// Depth returns the number of entries.
func (s *Stack) Depth() int {
	return len(s.entries)
}

// Push appends a copy of the current top.
func (s *Stack) Push() {
	s.entries = append(s.entries, s.Top())
}

// Pop removes the current top. Removing the base entry is an underflow.
func (s *Stack) Pop() error {
	if len(s.entries) <= 1 {
		return domain.ErrStackUnderflow
	}
	s.entries = s.entries[:len(s.entries)-1]
	return nil
}

// Compose replaces the top with top·m, so m applies first to local coordinates.
func (s *Stack) Compose(m Matrix) Matrix {
	top := s.Top().Mul4(m)
	s.entries[len(s.entries)-1] = top
	return top
}
