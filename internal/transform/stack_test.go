package transform

import (
	"testing"

	"github.com/aretw0/reel/pkg/domain"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStack_StartsAtIdentity(t *testing.T) {
	s := NewStack()
	assert.Equal(t, 1, s.Depth())
	assert.Equal(t, mgl64.Ident4(), s.Top())
}

func TestStack_BalancedPushPop(t *testing.T) {
	s := NewStack()
	s.Compose(Translate(1, 2, 3))
	before := s.Top()

	for n := 1; n <= 5; n++ {
		depth := s.Depth()
		for i := 0; i < n; i++ {
			s.Push()
			s.Compose(Scale(2, 2, 2))
		}
		assert.Equal(t, depth+n, s.Depth())
		for i := 0; i < n; i++ {
			require.NoError(t, s.Pop())
		}
		assert.Equal(t, depth, s.Depth())
		assert.Equal(t, before, s.Top(), "pop restores the pushed transform")
	}
}

func TestStack_PopUnderflow(t *testing.T) {
	s := NewStack()
	err := s.Pop()
	assert.ErrorIs(t, err, domain.ErrStackUnderflow)
	assert.Equal(t, 1, s.Depth(), "depth never drops below 1")

	s.Push()
	require.NoError(t, s.Pop())
	assert.ErrorIs(t, s.Pop(), domain.ErrStackUnderflow)
}

func TestStack_PushIsDeepCopy(t *testing.T) {
	s := NewStack()
	s.Push()
	s.Compose(Translate(5, 0, 0))
	require.NoError(t, s.Pop())
	assert.Equal(t, mgl64.Ident4(), s.Top())
}

func TestStack_Reset(t *testing.T) {
	s := NewStack()
	s.Push()
	s.Push()
	s.Compose(Rotate(AxisZ, 45))
	s.Reset()
	assert.Equal(t, 1, s.Depth())
	assert.Equal(t, mgl64.Ident4(), s.Top())
}

func TestStack_ComposeOrder(t *testing.T) {
	// move then scale: the scale applies to local coordinates first.
	s := NewStack()
	s.Compose(Translate(10, 0, 0))
	s.Compose(Scale(2, 2, 2))

	p := Apply(s.Top(), mgl64.Vec3{1, 1, 1})
	assert.InDelta(t, 12.0, p.X(), 1e-9)
	assert.InDelta(t, 2.0, p.Y(), 1e-9)
	assert.InDelta(t, 2.0, p.Z(), 1e-9)
}

func TestRotate_RoundTrip(t *testing.T) {
	for _, axis := range []Axis{AxisX, AxisY, AxisZ} {
		t.Run(axis.String(), func(t *testing.T) {
			s := NewStack()
			s.Compose(Translate(3, -4, 7))
			prior := s.Top()

			s.Compose(Rotate(axis, 90))
			s.Compose(Rotate(axis, -90))

			assert.True(t, prior.ApproxEqualThreshold(s.Top(), 1e-9))
		})
	}
}

func TestRotate_Direction(t *testing.T) {
	p := Apply(Rotate(AxisX, 90), mgl64.Vec3{0, 1, 0})
	assert.InDelta(t, 0.0, p.Y(), 1e-9)
	assert.InDelta(t, 1.0, p.Z(), 1e-9)

	p = Apply(Rotate(AxisZ, 90), mgl64.Vec3{1, 0, 0})
	assert.InDelta(t, 0.0, p.X(), 1e-9)
	assert.InDelta(t, 1.0, p.Y(), 1e-9)
}

func TestParseAxis_DefaultsToZ(t *testing.T) {
	assert.Equal(t, AxisX, ParseAxis("X"))
	assert.Equal(t, AxisY, ParseAxis("y"))
	assert.Equal(t, AxisZ, ParseAxis("z"))
	assert.Equal(t, AxisZ, ParseAxis("w"))
	assert.Equal(t, AxisZ, ParseAxis(""))
}
