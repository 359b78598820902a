// Package geometry builds polygon meshes and edge lists for the script's
// primitive shapes, in the local coordinates of the command.
package geometry

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultStep is the number of subdivisions used for curved surfaces.
const DefaultStep = 20

// ErrInvalidDimension is returned for non-finite sizes, and for radii that
// are not positive.
var ErrInvalidDimension = errors.New("invalid dimension")

// Triangle is a polygon with counter-clockwise winding when seen from
// outside the surface.
type Triangle [3]mgl64.Vec3

// Normal returns the (unnormalized) surface normal.
func (t Triangle) Normal() mgl64.Vec3 {
	return t[1].Sub(t[0]).Cross(t[2].Sub(t[0]))
}

func (t Triangle) centroid() mgl64.Vec3 {
	return t[0].Add(t[1]).Add(t[2]).Mul(1.0 / 3)
}

// Mesh is a list of triangles.
type Mesh []Triangle

// Transform returns a new mesh with every vertex multiplied by m.
func (m Mesh) Transform(t mgl64.Mat4) Mesh {
	out := make(Mesh, len(m))
	for i, tri := range m {
		for j, v := range tri {
			out[i][j] = t.Mul4x1(v.Vec4(1)).Vec3()
		}
	}
	return out
}

// Segment is a line segment.
type Segment [2]mgl64.Vec3

// Edges is a list of segments.
type Edges []Segment

// Transform returns new edges with every endpoint multiplied by m.
func (e Edges) Transform(t mgl64.Mat4) Edges {
	out := make(Edges, len(e))
	for i, s := range e {
		for j, v := range s {
			out[i][j] = t.Mul4x1(v.Vec4(1)).Vec3()
		}
	}
	return out
}

// Line returns a single-segment edge list.
func Line(x0, y0, z0, x1, y1, z1 float64) Edges {
	return Edges{{{x0, y0, z0}, {x1, y1, z1}}}
}

// Box returns a box whose front-top-left corner is (x, y, z), extending
// w along +x, h along -y and d along -z. Negative extents mirror the box
// across its corner; faces still point outward.
func Box(x, y, z, w, h, d float64) (Mesh, error) {
	for _, v := range [...]float64{x, y, z, w, h, d} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, ErrInvalidDimension
		}
	}
	x1, y1, z1 := x+w, y-h, z-d
	c := [8]mgl64.Vec3{
		{x, y, z}, {x1, y, z}, {x1, y1, z}, {x, y1, z},
		{x, y, z1}, {x1, y, z1}, {x1, y1, z1}, {x, y1, z1},
	}
	faces := [6][4]int{
		{0, 3, 2, 1}, // front
		{5, 6, 7, 4}, // back
		{4, 0, 1, 5}, // top
		{3, 7, 6, 2}, // bottom
		{4, 7, 3, 0}, // left
		{1, 2, 6, 5}, // right
	}
	center := mgl64.Vec3{x + w/2, y - h/2, z - d/2}

	mesh := make(Mesh, 0, 12)
	for _, f := range faces {
		mesh = mesh.quad(c[f[0]], c[f[1]], c[f[2]], c[f[3]], func(mgl64.Vec3) mgl64.Vec3 { return center })
	}
	return mesh, nil
}

// Sphere returns a sphere of radius r centered at (cx, cy, cz).
func Sphere(cx, cy, cz, r float64, step int) (Mesh, error) {
	if r <= 0 || step < 3 {
		return nil, ErrInvalidDimension
	}
	center := mgl64.Vec3{cx, cy, cz}
	point := func(i, j int) mgl64.Vec3 {
		phi := 2 * math.Pi * float64(i%step) / float64(step)
		theta := math.Pi * float64(j) / float64(step)
		return mgl64.Vec3{
			cx + r*math.Cos(theta),
			cy + r*math.Sin(theta)*math.Cos(phi),
			cz + r*math.Sin(theta)*math.Sin(phi),
		}
	}

	mesh := make(Mesh, 0, 2*step*step)
	for i := 0; i < step; i++ {
		for j := 0; j < step; j++ {
			mesh = mesh.quad(point(i, j), point(i, j+1), point(i+1, j+1), point(i+1, j),
				func(mgl64.Vec3) mgl64.Vec3 { return center })
		}
	}
	return mesh, nil
}

// Torus returns a torus around the y axis through (cx, cy, cz), with tube
// radius r1 and ring radius r2.
func Torus(cx, cy, cz, r1, r2 float64, step int) (Mesh, error) {
	if r1 <= 0 || r2 <= 0 || step < 3 {
		return nil, ErrInvalidDimension
	}
	center := mgl64.Vec3{cx, cy, cz}
	point := func(i, j int) mgl64.Vec3 {
		phi := 2 * math.Pi * float64(i%step) / float64(step)
		theta := 2 * math.Pi * float64(j%step) / float64(step)
		ring := r1*math.Cos(theta) + r2
		return mgl64.Vec3{
			cx + math.Cos(phi)*ring,
			cy + r1*math.Sin(theta),
			cz - math.Sin(phi)*ring,
		}
	}
	// the outward reference of a polygon is the closest point on the core circle
	core := func(c mgl64.Vec3) mgl64.Vec3 {
		d := mgl64.Vec3{c.X() - cx, 0, c.Z() - cz}
		if d.Len() == 0 {
			return center
		}
		return center.Add(d.Normalize().Mul(r2))
	}

	mesh := make(Mesh, 0, 2*step*step)
	for i := 0; i < step; i++ {
		for j := 0; j < step; j++ {
			mesh = mesh.quad(point(i, j), point(i, j+1), point(i+1, j+1), point(i+1, j), core)
		}
	}
	return mesh, nil
}

// quad appends the two triangles of a, b, c, d, skipping degenerate ones and
// winding each so its normal points away from ref(centroid).
func (m Mesh) quad(a, b, c, d mgl64.Vec3, ref func(mgl64.Vec3) mgl64.Vec3) Mesh {
	for _, t := range [2]Triangle{{a, b, c}, {a, c, d}} {
		n := t.Normal()
		if n.Len() < 1e-12 {
			continue
		}
		ct := t.centroid()
		if n.Dot(ct.Sub(ref(ct))) < 0 {
			t[1], t[2] = t[2], t[1]
		}
		m = append(m, t)
	}
	return m
}
