// File: transform.go
// Role: affine transform of positions and direction attributes.

package mesh

import (
	"fmt"
	"math"

	"github.com/halveth/surfmesh/attr"
	"github.com/halveth/surfmesh/buffer"
)

// Matrix4 is a row-major 4×4 homogeneous transform. The last row is
// ignored by Transform (it is treated as an affine map).
type Matrix4 [4][4]float64

// Identity4 returns the identity transform.
func Identity4() Matrix4 {
	return Matrix4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Translation returns a transform moving every point by (x, y, z).
func Translation(x, y, z float64) Matrix4 {
	t := Identity4()
	t[0][3], t[1][3], t[2][3] = x, y, z

	return t
}

// Scaling returns a transform scaling every axis by (x, y, z).
func Scaling(x, y, z float64) Matrix4 {
	t := Identity4()
	t[0][0], t[1][1], t[2][2] = x, y, z

	return t
}

// Transform applies t to the mesh in place. Positions get the full
// affine map. Every 3-channel attribute with a direction usage (Normal,
// Tangent, Bitangent) gets the inverse transpose of the linear part and
// is renormalized, indexed pools included, so directions stay correct
// under non-uniform scaling.
//
// Only 3-dimensional meshes can be transformed; anything else fails with
// ErrInvalidArgument, as does a singular linear part.
func (m *Mesh) Transform(t Matrix4) error {
	if m.dimension != 3 {
		return fmt.Errorf("%w: transform needs dimension 3, have %d",
			ErrInvalidArgument, m.dimension)
	}
	normalMat, err := inverseTranspose3(t)
	if err != nil {
		return err
	}

	pos, err := buffer.ViewMut[float64](m.positions().Values())
	if err != nil {
		return err
	}
	for i := 0; i+2 < len(pos); i += 3 {
		x, y, z := pos[i], pos[i+1], pos[i+2]
		pos[i] = t[0][0]*x + t[0][1]*y + t[0][2]*z + t[0][3]
		pos[i+1] = t[1][0]*x + t[1][1]*y + t[1][2]*z + t[1][3]
		pos[i+2] = t[2][0]*x + t[2][1]*y + t[2][2]*z + t[2][3]
	}

	return m.forEachAttr(func(a *attr.Attribute) error {
		if !a.Usage().IsDirection() || a.Channels() != 3 {
			return nil
		}

		return transformDirections(a.Values(), normalMat)
	})
}

// transformDirections applies the normal matrix to every 3-vector in b
// and renormalizes. Works on any float dtype through the float accessors.
func transformDirections(b *buffer.Buffer, n [3][3]float64) error {
	if !b.Type().IsFloat() {
		return nil
	}
	for e := 0; e < b.Len(); e++ {
		var v [3]float64
		for c := 0; c < 3; c++ {
			f, err := b.GetFloat(e, c)
			if err != nil {
				return err
			}
			v[c] = f
		}
		var w [3]float64
		for r := 0; r < 3; r++ {
			w[r] = n[r][0]*v[0] + n[r][1]*v[1] + n[r][2]*v[2]
		}
		if l := math.Sqrt(w[0]*w[0] + w[1]*w[1] + w[2]*w[2]); l > 0 {
			w[0], w[1], w[2] = w[0]/l, w[1]/l, w[2]/l
		}
		for c := 0; c < 3; c++ {
			if err := b.SetFloat(e, c, w[c]); err != nil {
				return err
			}
		}
	}

	return nil
}

// inverseTranspose3 inverts and transposes the upper-left 3×3 block.
func inverseTranspose3(t Matrix4) ([3][3]float64, error) {
	a, b, c := t[0][0], t[0][1], t[0][2]
	d, e, f := t[1][0], t[1][1], t[1][2]
	g, h, i := t[2][0], t[2][1], t[2][2]

	det := a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
	if det == 0 {
		return [3][3]float64{}, fmt.Errorf("%w: transform has singular linear part",
			ErrInvalidArgument)
	}

	// Inverse via the adjugate; transpose folds into the indexing.
	inv := [3][3]float64{
		{e*i - f*h, f*g - d*i, d*h - e*g},
		{c*h - b*i, a*i - c*g, b*g - a*h},
		{b*f - c*e, c*d - a*f, a*e - b*d},
	}
	for r := 0; r < 3; r++ {
		for col := 0; col < 3; col++ {
			inv[r][col] /= det
		}
	}

	return inv, nil
}
