package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateHomography_Identity(t *testing.T) {
	square := [4]Point{{0, 0}, {100, 0}, {100, 100}, {0, 100}}
	h, err := EstimateHomography(square, square)
	require.NoError(t, err)

	want := Homography{1, 0, 0, 0, 1, 0, 0, 0, 1}
	for i := range h {
		assert.InDelta(t, want[i], h[i], 1e-9, "element %d", i)
	}
}

func TestEstimateHomography_MapsCorners(t *testing.T) {
	src := [4]Point{{37, 22}, {612, 48}, {590, 833}, {21, 810}}
	dst := [4]Point{{0, 0}, {580, 0}, {580, 800}, {0, 800}}

	h, err := EstimateHomography(src, dst)
	require.NoError(t, err)
	assert.NotZero(t, h.Det())

	for i := range src {
		got := h.Apply(src[i])
		assert.InDelta(t, dst[i].X, got.X, 1e-6, "corner %d x", i)
		assert.InDelta(t, dst[i].Y, got.Y, 1e-6, "corner %d y", i)
	}
}

func TestEstimateHomography_InteriorPoint(t *testing.T) {
	// A pure scale maps interior points predictably.
	src := [4]Point{{0, 0}, {200, 0}, {200, 100}, {0, 100}}
	dst := [4]Point{{0, 0}, {400, 0}, {400, 200}, {0, 200}}

	h, err := EstimateHomography(src, dst)
	require.NoError(t, err)

	got := h.Apply(Point{50, 25})
	assert.InDelta(t, 100.0, got.X, 1e-9)
	assert.InDelta(t, 50.0, got.Y, 1e-9)
}

func TestEstimateHomography_Degenerate(t *testing.T) {
	collinear := [4]Point{{0, 0}, {10, 10}, {20, 20}, {30, 30}}
	rect := [4]Point{{0, 0}, {100, 0}, {100, 100}, {0, 100}}

	_, err := EstimateHomography(collinear, rect)
	assert.ErrorIs(t, err, ErrDegenerateHomography)
}
