package raster

import (
	"image/color"
	"math"

	"github.com/aretw0/reel/internal/geometry"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// DrawPolygons fills every front-facing triangle of m, shaded by l.
// Triangles facing away from the view direction are culled.
func (fb *FrameBuffer) DrawPolygons(m geometry.Mesh, l Lighting) {
	for _, tri := range m {
		u, _ := unitScale(tri)
		n := u.Normal()
		if n.Dot(l.View) <= 0 {
			continue
		}
		fb.fillTriangle(tri, l.Shade(n))
	}
}

// fillTriangle scan-converts tri over the pixel centers of its bounding box,
// interpolating depth with barycentric weights.
func (fb *FrameBuffer) fillTriangle(tri geometry.Triangle, c color.RGBA) {
	a, b, d := tri[0], tri[1], tri[2]
	// weights come from the rescaled copy so huge coordinates do not overflow
	u, scale := unitScale(tri)
	area := edge(u[0], u[1], u[2])
	if area == 0 || math.IsNaN(area) || math.IsInf(area, 0) {
		return
	}

	// clamp before converting: float to int is undefined outside the int range
	w, h := float64(fb.Width()-1), float64(fb.Height()-1)
	minX := int(clampRange(math.Floor(math.Min(a.X(), math.Min(b.X(), d.X()))), 0, w))
	maxX := int(clampRange(math.Ceil(math.Max(a.X(), math.Max(b.X(), d.X()))), 0, w))
	minY := int(clampRange(math.Floor(math.Min(a.Y(), math.Min(b.Y(), d.Y()))), 0, h))
	maxY := int(clampRange(math.Ceil(math.Max(a.Y(), math.Max(b.Y(), d.Y()))), 0, h))

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := mgl64.Vec3{float64(x) * scale, float64(y) * scale, 0}
			w0 := edge(u[1], u[2], p) / area
			w1 := edge(u[2], u[0], p) / area
			w2 := edge(u[0], u[1], p) / area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			z := w0*a.Z() + w1*b.Z() + w2*d.Z()
			fb.plot(x, y, z, c)
		}
	}
}

// unitScale shrinks tri uniformly so that no coordinate exceeds 1 in
// magnitude and returns the factor applied. Triangles already within that
// range are returned as is with factor 1.
func unitScale(tri geometry.Triangle) (geometry.Triangle, float64) {
	m := maxAbs(tri)
	if m <= 1 {
		return tri, 1
	}
	k := 1 / m
	for i := range tri {
		tri[i] = tri[i].Mul(k)
	}
	return tri, k
}

func maxAbs(tri geometry.Triangle) float64 {
	m := 0.0
	for _, v := range tri {
		for _, c := range v {
			m = math.Max(m, math.Abs(c))
		}
	}
	return m
}

func clampRange(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// edge is the signed doubled area of (a, b, p) in the xy plane.
func edge(a, b, p mgl64.Vec3) float64 {
	return (b.X()-a.X())*(p.Y()-a.Y()) - (b.Y()-a.Y())*(p.X()-a.X())
}

// DrawLines strokes every segment of e with a one pixel wide line of color c.
// Lines are not depth tested.
func (fb *FrameBuffer) DrawLines(e geometry.Edges, c color.RGBA) {
	if len(e) == 0 {
		return
	}
	w, h := fb.Width(), fb.Height()
	scanner := rasterx.NewScannerGV(w, h, fb.img, fb.img.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)
	dasher.SetStroke(fixed.Int26_6(64), fixed.Int26_6(4*64),
		rasterx.ButtCap, rasterx.ButtCap, rasterx.FlatGap, rasterx.Bevel, nil, 0)
	dasher.SetColor(c)

	for _, s := range e {
		dasher.Clear()
		dasher.Start(fb.toFixed(s[0]))
		dasher.Line(fb.toFixed(s[1]))
		dasher.Stop(false)
		dasher.Draw()
	}
}

// toFixed converts a world point to image space at the pixel center.
func (fb *FrameBuffer) toFixed(p mgl64.Vec3) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.Int26_6((p.X() + 0.5) * 64),
		Y: fixed.Int26_6((float64(fb.row(0)) - p.Y() + 0.5) * 64),
	}
}
