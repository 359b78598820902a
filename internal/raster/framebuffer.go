// Package raster draws transformed meshes and edges into a frame buffer.
// Polygons are flat shaded and depth tested; lines are stroked with rasterx.
package raster

import (
	"image"
	"image/color"
	"math"
)

// Default frame dimensions.
const (
	DefaultWidth  = 500
	DefaultHeight = 500
)

// FrameBuffer is a color image plus a depth buffer. World y grows upwards;
// row 0 of the image is the top of the frame.
type FrameBuffer struct {
	img   *image.RGBA
	depth []float64
}

// NewFrameBuffer allocates a cleared buffer filled with background.
func NewFrameBuffer(width, height int, background color.RGBA) *FrameBuffer {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	fb := &FrameBuffer{
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		depth: make([]float64, width*height),
	}
	for i := range fb.depth {
		fb.depth[i] = math.Inf(-1)
	}
	pix := fb.img.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = background.R, background.G, background.B, 255
	}
	return fb
}

// Width returns the frame width in pixels.
func (fb *FrameBuffer) Width() int { return fb.img.Rect.Dx() }

// Height returns the frame height in pixels.
func (fb *FrameBuffer) Height() int { return fb.img.Rect.Dy() }

// Image returns the color buffer. The buffer is shared, not copied.
func (fb *FrameBuffer) Image() *image.RGBA { return fb.img }

// Depth returns the depth stored at world coordinates (x, y).
func (fb *FrameBuffer) Depth(x, y int) float64 {
	if !fb.inside(x, y) {
		return math.Inf(-1)
	}
	return fb.depth[fb.index(x, y)]
}

// At returns the color at world coordinates (x, y).
func (fb *FrameBuffer) At(x, y int) color.RGBA {
	return fb.img.RGBAAt(x, fb.row(y))
}

func (fb *FrameBuffer) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < fb.Width() && y < fb.Height()
}

func (fb *FrameBuffer) row(y int) int { return fb.Height() - 1 - y }

func (fb *FrameBuffer) index(x, y int) int { return fb.row(y)*fb.Width() + x }

// plot writes c at (x, y) when z is closer to the viewer than the stored depth.
func (fb *FrameBuffer) plot(x, y int, z float64, c color.RGBA) {
	if !fb.inside(x, y) {
		return
	}
	i := fb.index(x, y)
	if z <= fb.depth[i] {
		return
	}
	fb.depth[i] = z
	fb.img.SetRGBA(x, fb.row(y), c)
}
