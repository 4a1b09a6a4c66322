package geometry

import "math"

// minIntersectSine rejects intersections of lines whose directions are
// within about 2.8 degrees of parallel; beyond that the intersection point
// is numerically useless for corner reconstruction.
const minIntersectSine = 0.05

// LineIntersection returns the intersection of the infinite lines a1-a2 and
// b1-b2. ok is false when the lines are parallel or close enough to
// parallel that the result would not be reliable.
func LineIntersection(a1, a2, b1, b2 Point) (Point, bool) {
	da := a2.Sub(a1)
	db := b2.Sub(b1)
	denom := da.Cross(db)
	la := math.Hypot(da.X, da.Y)
	lb := math.Hypot(db.X, db.Y)
	if la == 0 || lb == 0 {
		return Point{}, false
	}
	// denom / (|da||db|) is the sine of the angle between the lines.
	if math.Abs(denom)/(la*lb) < minIntersectSine {
		return Point{}, false
	}
	t := b1.Sub(a1).Cross(db) / denom
	return Point{a1.X + t*da.X, a1.Y + t*da.Y}, true
}
