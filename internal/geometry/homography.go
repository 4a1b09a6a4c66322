package geometry

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrDegenerateHomography is returned when no invertible projective
// transform exists for the given correspondences.
var ErrDegenerateHomography = errors.New("degenerate homography: correspondences do not define an invertible transform")

// Homography is a row-major 3×3 projective transform.
type Homography [9]float64

// EstimateHomography computes the unique projective transform mapping
// src[i] onto dst[i] for four point correspondences, using the standard
// direct linear solve with h33 fixed to 1.
func EstimateHomography(src, dst [4]Point) (Homography, error) {
	a := mat.NewDense(8, 8, nil)
	b := mat.NewVecDense(8, nil)
	for i := 0; i < 4; i++ {
		x, y := src[i].X, src[i].Y
		u, v := dst[i].X, dst[i].Y
		a.SetRow(2*i, []float64{x, y, 1, 0, 0, 0, -u * x, -u * y})
		a.SetRow(2*i+1, []float64{0, 0, 0, x, y, 1, -v * x, -v * y})
		b.SetVec(2*i, u)
		b.SetVec(2*i+1, v)
	}

	var h mat.VecDense
	if err := h.SolveVec(a, b); err != nil {
		return Homography{}, ErrDegenerateHomography
	}

	var out Homography
	for i := 0; i < 8; i++ {
		out[i] = h.AtVec(i)
	}
	out[8] = 1

	det := mat.Det(mat.NewDense(3, 3, out[:]))
	if math.Abs(det) < 1e-12 || math.IsNaN(det) {
		return Homography{}, ErrDegenerateHomography
	}
	return out, nil
}

// Apply maps p through the transform.
func (h Homography) Apply(p Point) Point {
	w := h[6]*p.X + h[7]*p.Y + h[8]
	return Point{
		X: (h[0]*p.X + h[1]*p.Y + h[2]) / w,
		Y: (h[3]*p.X + h[4]*p.Y + h[5]) / w,
	}
}

// Det returns the determinant of the transform matrix.
func (h Homography) Det() float64 {
	return mat.Det(mat.NewDense(3, 3, h[:]))
}
