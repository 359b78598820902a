package transform

import (
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Axis selects a rotation axis.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// ParseAxis maps an axis selector to an Axis. Unrecognized selectors
// rotate around z.
func ParseAxis(sel string) Axis {
	switch strings.ToLower(strings.TrimSpace(sel)) {
	case "x":
		return AxisX
	case "y":
		return AxisY
	default:
		return AxisZ
	}
}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	default:
		return "z"
	}
}

// Translate returns a translation matrix.
func Translate(dx, dy, dz float64) Matrix {
	return mgl64.Translate3D(dx, dy, dz)
}

// Scale returns a scaling matrix.
func Scale(sx, sy, sz float64) Matrix {
	return mgl64.Scale3D(sx, sy, sz)
}

// Rotate returns a rotation of degrees around axis.
func Rotate(axis Axis, degrees float64) Matrix {
	theta := mgl64.DegToRad(degrees)
	switch axis {
	case AxisX:
		return mgl64.HomogRotate3DX(theta)
	case AxisY:
		return mgl64.HomogRotate3DY(theta)
	default:
		return mgl64.HomogRotate3DZ(theta)
	}
}

// Apply transforms a point by m.
func Apply(m Matrix, p mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}
