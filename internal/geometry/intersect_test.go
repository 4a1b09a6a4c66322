package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineIntersection(t *testing.T) {
	p, ok := LineIntersection(Point{0, 0}, Point{10, 0}, Point{5, -3}, Point{5, 7})
	require.True(t, ok)
	assert.InDelta(t, 5.0, p.X, 1e-9)
	assert.InDelta(t, 0.0, p.Y, 1e-9)
}

func TestLineIntersection_BeyondSegments(t *testing.T) {
	// Lines are treated as infinite: segments that do not touch still
	// intersect when extended, which is what corner reconstruction needs.
	p, ok := LineIntersection(Point{0, 0}, Point{1, 1}, Point{10, 0}, Point{9, 1})
	require.True(t, ok)
	assert.InDelta(t, 5.0, p.X, 1e-9)
	assert.InDelta(t, 5.0, p.Y, 1e-9)
}

func TestLineIntersection_Parallel(t *testing.T) {
	_, ok := LineIntersection(Point{0, 0}, Point{10, 0}, Point{0, 5}, Point{10, 5})
	assert.False(t, ok)
}

func TestLineIntersection_NearParallel(t *testing.T) {
	// Under a degree apart: numerically useless for reconstruction.
	_, ok := LineIntersection(Point{0, 0}, Point{1000, 0}, Point{0, 5}, Point{1000, 10})
	assert.False(t, ok)
}

func TestLineIntersection_ZeroLength(t *testing.T) {
	_, ok := LineIntersection(Point{3, 3}, Point{3, 3}, Point{0, 0}, Point{1, 1})
	assert.False(t, ok)
}
