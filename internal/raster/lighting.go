package raster

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// RGB is a color with float channels in [0, 255].
type RGB [3]float64

// Reflect holds per-channel reflection coefficients.
type Reflect [3]float64

// Lighting is the fixed shading configuration of a run.
type Lighting struct {
	View       mgl64.Vec3 `yaml:"view" json:"view"`
	Ambient    RGB        `yaml:"ambient" json:"ambient"`
	LightPos   mgl64.Vec3 `yaml:"light_position" json:"light_position"`
	LightColor RGB        `yaml:"light_color" json:"light_color"`
	Areflect   Reflect    `yaml:"areflect" json:"areflect"`
	Dreflect   Reflect    `yaml:"dreflect" json:"dreflect"`
	Sreflect   Reflect    `yaml:"sreflect" json:"sreflect"`
	// SpecularExp is the shininess exponent of the specular term.
	SpecularExp float64 `yaml:"specular_exp" json:"specular_exp"`
}

// DefaultLighting is a cyan point light over a dim grey ambient.
var DefaultLighting = Lighting{
	View:        mgl64.Vec3{0, 0, 1},
	Ambient:     RGB{50, 50, 50},
	LightPos:    mgl64.Vec3{0.5, 0.75, 1},
	LightColor:  RGB{0, 255, 255},
	Areflect:    Reflect{0.1, 0.1, 0.1},
	Dreflect:    Reflect{0.5, 0.5, 0.5},
	Sreflect:    Reflect{0.5, 0.5, 0.5},
	SpecularExp: 8,
}

// Shade computes the color of a surface with the given normal.
func (l Lighting) Shade(normal mgl64.Vec3) color.RGBA {
	n := normalize(normal)
	light := normalize(l.LightPos)
	view := normalize(l.View)

	nl := n.Dot(light)
	diffuse := math.Max(nl, 0)

	// reflection of the light direction about the normal
	r := n.Mul(2 * nl).Sub(light)
	spec := 0.0
	if rv := r.Dot(view); rv > 0 && nl > 0 {
		spec = math.Pow(rv, l.SpecularExp)
	}

	var out [3]uint8
	for ch := 0; ch < 3; ch++ {
		v := l.Ambient[ch]*l.Areflect[ch] +
			l.LightColor[ch]*l.Dreflect[ch]*diffuse +
			l.LightColor[ch]*l.Sreflect[ch]*spec
		out[ch] = clamp(v)
	}
	return color.RGBA{R: out[0], G: out[1], B: out[2], A: 255}
}

func normalize(v mgl64.Vec3) mgl64.Vec3 {
	if v.Len() == 0 {
		return v
	}
	return v.Normalize()
}

func clamp(v float64) uint8 {
	switch {
	case v <= 0 || math.IsNaN(v):
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}
