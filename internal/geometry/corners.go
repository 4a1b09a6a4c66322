package geometry

import "errors"

// ErrDegenerateCorners is returned when two corner roles resolve to the
// same point (duplicate or collinear input).
var ErrDegenerateCorners = errors.New("degenerate corners: two roles resolve to the same point")

// CornerSet labels the four vertices of a page quadrilateral by position.
type CornerSet struct {
	TopLeft     Point
	TopRight    Point
	BottomRight Point
	BottomLeft  Point
}

// Slice returns the corners in TL, TR, BR, BL order.
func (c CornerSet) Slice() [4]Point {
	return [4]Point{c.TopLeft, c.TopRight, c.BottomRight, c.BottomLeft}
}

// OrderCorners assigns canonical roles to four points given in any order.
// TopLeft has the minimum x+y, BottomRight the maximum x+y, TopRight the
// minimum y−x and BottomLeft the maximum y−x (image coordinates, y grows
// downward). The rule holds for page rotations under 30 degrees and is
// insensitive to input permutation or mirroring.
func OrderCorners(pts [4]Point) (CornerSet, error) {
	var cs CornerSet
	cs.TopLeft = pts[0]
	cs.BottomRight = pts[0]
	cs.TopRight = pts[0]
	cs.BottomLeft = pts[0]
	for _, p := range pts[1:] {
		if p.X+p.Y < cs.TopLeft.X+cs.TopLeft.Y {
			cs.TopLeft = p
		}
		if p.X+p.Y > cs.BottomRight.X+cs.BottomRight.Y {
			cs.BottomRight = p
		}
		if p.Y-p.X < cs.TopRight.Y-cs.TopRight.X {
			cs.TopRight = p
		}
		if p.Y-p.X > cs.BottomLeft.Y-cs.BottomLeft.X {
			cs.BottomLeft = p
		}
	}
	roles := cs.Slice()
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			if roles[i] == roles[j] {
				return CornerSet{}, ErrDegenerateCorners
			}
		}
	}
	return cs, nil
}
