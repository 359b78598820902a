package raster

import (
	"image/color"
	"math"
	"testing"

	"github.com/aretw0/reel/internal/geometry"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var black = color.RGBA{A: 255}

func flatSquare(z float64) geometry.Mesh {
	// counter-clockwise seen from +z, so it faces the viewer
	a, b, c, d := mgl64.Vec3{10, 10, z}, mgl64.Vec3{40, 10, z}, mgl64.Vec3{40, 40, z}, mgl64.Vec3{10, 40, z}
	return geometry.Mesh{{a, b, c}, {a, c, d}}
}

func TestNewFrameBuffer(t *testing.T) {
	fb := NewFrameBuffer(0, 0, color.RGBA{R: 1, G: 2, B: 3})
	assert.Equal(t, DefaultWidth, fb.Width())
	assert.Equal(t, DefaultHeight, fb.Height())
	assert.Equal(t, color.RGBA{R: 1, G: 2, B: 3, A: 255}, fb.At(0, 0))
	assert.True(t, math.IsInf(fb.Depth(0, 0), -1))
}

func TestDrawPolygons_FillsAndShades(t *testing.T) {
	fb := NewFrameBuffer(64, 64, black)
	fb.DrawPolygons(flatSquare(5), DefaultLighting)

	got := fb.At(25, 25)
	assert.NotEqual(t, black, got)
	assert.Equal(t, DefaultLighting.Shade(mgl64.Vec3{0, 0, 1}), got)
	assert.Equal(t, 5.0, fb.Depth(25, 25))
	assert.Equal(t, black, fb.At(5, 5), "outside the square")
}

func TestDrawPolygons_YAxisPointsUp(t *testing.T) {
	fb := NewFrameBuffer(64, 64, black)
	fb.DrawPolygons(flatSquare(0), DefaultLighting)

	// world (25, 25) is image row 64-1-25
	assert.NotEqual(t, black, fb.Image().RGBAAt(25, 38))
	assert.Equal(t, black, fb.Image().RGBAAt(25, 60))
}

func TestDrawPolygons_BackfaceCulled(t *testing.T) {
	fb := NewFrameBuffer(64, 64, black)
	m := flatSquare(0)
	for i := range m {
		m[i][1], m[i][2] = m[i][2], m[i][1]
	}
	fb.DrawPolygons(m, DefaultLighting)
	assert.Equal(t, black, fb.At(25, 25))
}

func TestDrawPolygons_DepthTest(t *testing.T) {
	near := DefaultLighting
	far := DefaultLighting
	far.Ambient = RGB{255, 0, 0}
	far.Areflect = Reflect{1, 1, 1}

	fb := NewFrameBuffer(64, 64, black)
	fb.DrawPolygons(flatSquare(10), near)
	fb.DrawPolygons(flatSquare(-10), far)

	assert.Equal(t, near.Shade(mgl64.Vec3{0, 0, 1}), fb.At(25, 25), "farther polygon must not overwrite")
	assert.Equal(t, 10.0, fb.Depth(25, 25))
}

func TestDrawLines(t *testing.T) {
	fb := NewFrameBuffer(64, 64, black)
	white := color.RGBA{255, 255, 255, 255}
	fb.DrawLines(geometry.Line(5, 20, 0, 50, 20, 0), white)

	lit := 0
	for x := 10; x < 45; x++ {
		if fb.At(x, 20) != black {
			lit++
		}
	}
	assert.Greater(t, lit, 30)
	assert.Equal(t, black, fb.At(30, 50))
}

func TestShade_Clamped(t *testing.T) {
	l := DefaultLighting
	l.Ambient = RGB{1000, 1000, 1000}
	l.Areflect = Reflect{1, 1, 1}
	c := l.Shade(mgl64.Vec3{0, 0, 1})
	require.Equal(t, uint8(255), c.R)
	assert.Equal(t, uint8(255), c.A)
}

func TestDrawPolygons_HugeCoordinates(t *testing.T) {
	// far beyond the int range; covers the whole frame
	tri := geometry.Triangle{{-1e300, -1e300, 0}, {1e300, -1e300, 0}, {0, 1e300, 0}}
	fb := NewFrameBuffer(64, 64, black)
	fb.DrawPolygons(geometry.Mesh{tri}, DefaultLighting)

	want := DefaultLighting.Shade(mgl64.Vec3{0, 0, 1})
	assert.Equal(t, want, fb.At(32, 32))
	assert.Equal(t, want, fb.At(0, 0))
	assert.Equal(t, 0.0, fb.Depth(32, 32))
}

func TestDrawPolygons_NonFiniteSkipped(t *testing.T) {
	fb := NewFrameBuffer(64, 64, black)
	fb.DrawPolygons(geometry.Mesh{
		{{0, 0, 0}, {math.Inf(1), 0, 0}, {0, 40, 0}},
		{{0, 0, 0}, {math.NaN(), 0, 0}, {0, 40, 0}},
	}, DefaultLighting)
	assert.Equal(t, black, fb.At(5, 5))
}
