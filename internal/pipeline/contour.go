package pipeline

import (
	"math"

	"gocv.io/x/gocv"

	"github.com/dodogabrie/microperspective-corrector/internal/geometry"
)

// quad is the outcome of boundary detection: four corner candidates plus
// how they were obtained.
type quad struct {
	pts           [4]geometry.Point
	areaFraction  float64
	reconstructed bool
	rectFallback  bool
}

// detectContour finds the best page boundary in the mask and normalizes it
// to exactly four corners. Pages with one corner outside the scan frame are
// recovered by extending the edges around the gap; geometrically hopeless
// cases degrade to the contour's minimum-area rectangle.
func (c *Corrector) detectContour(mask gocv.Mat) (quad, error) {
	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	frameArea := float64(mask.Rows() * mask.Cols())
	minArea := c.cfg.MinAreaFraction * frameArea

	bestIdx := -1
	bestArea := 0.0
	for i := 0; i < contours.Size(); i++ {
		area := gocv.ContourArea(contours.At(i))
		if area < minArea {
			continue
		}
		if area > bestArea {
			bestArea = area
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return quad{}, stageErr(KindNoContourFound, "contour",
			"no contour covers at least %.1f%% of the frame", c.cfg.MinAreaFraction*100)
	}
	best := contours.At(bestIdx)

	pts := c.simplify(best)
	q, err := c.normalizeQuad(pts, best)
	if err != nil {
		return quad{}, err
	}
	q.areaFraction = bestArea / frameArea
	return q, nil
}

// simplify approximates the contour with escalating tolerance until the
// polygon is small enough to reason about corners.
func (c *Corrector) simplify(contour gocv.PointVector) []geometry.Point {
	arc := gocv.ArcLength(contour, true)
	eps := 0.02 * arc
	for {
		approx := gocv.ApproxPolyDP(contour, eps, true)
		n := approx.Size()
		if n <= c.cfg.MaxPolygonPoints || eps > 0.16*arc {
			pts := make([]geometry.Point, 0, n)
			for _, p := range approx.ToPoints() {
				pts = append(pts, geometry.Point{X: float64(p.X), Y: float64(p.Y)})
			}
			approx.Close()
			return pts
		}
		approx.Close()
		eps *= 1.5
	}
}

// normalizeQuad reduces a simplified polygon to four corners.
func (c *Corrector) normalizeQuad(pts []geometry.Point, contour gocv.PointVector) (quad, error) {
	if len(pts) < 3 {
		return quad{}, stageErr(KindInsufficientCorners, "contour",
			"simplified boundary has only %d corners", len(pts))
	}

	var q quad
	switch {
	case len(pts) == 3:
		full, ok := completeParallelogram(pts)
		if !ok {
			return c.rectFallback(contour)
		}
		q.reconstructed = true
		pts = full
	case len(pts) > 4:
		collapsed, ok := collapseShortEdges(pts)
		if !ok {
			return c.rectFallback(contour)
		}
		q.reconstructed = true
		pts = collapsed
	}

	if !geometry.IsConvex(pts) {
		return c.rectFallback(contour)
	}
	copy(q.pts[:], pts)
	return q, nil
}

// completeParallelogram reconstructs the fourth corner of a quadrilateral
// from three. The longest triangle edge is the diagonal shortcut across the
// missing corner, so the corner completes a parallelogram over it.
func completeParallelogram(pts []geometry.Point) ([]geometry.Point, bool) {
	if geometry.PolygonArea(pts) < 1 {
		return nil, false
	}
	gap := 0
	longest := 0.0
	for i := 0; i < 3; i++ {
		d := geometry.Dist(pts[i], pts[(i+1)%3])
		if d > longest {
			longest = d
			gap = i
		}
	}
	opposite := pts[(gap+2)%3]
	missing := pts[gap].Add(pts[(gap+1)%3]).Sub(opposite)
	// Insert the new corner between the gap endpoints to keep winding order.
	out := []geometry.Point{pts[gap], missing, pts[(gap+1)%3], opposite}
	return out, true
}

// collapseShortEdges merges clipped corners back into single vertices: the
// shortest edge of the polygon is assumed to be where a corner was cut off,
// and its true location is the intersection of the two neighboring edges.
func collapseShortEdges(pts []geometry.Point) ([]geometry.Point, bool) {
	for len(pts) > 4 {
		n := len(pts)
		short := 0
		shortest := math.Inf(1)
		for i := 0; i < n; i++ {
			d := geometry.Dist(pts[i], pts[(i+1)%n])
			if d < shortest {
				shortest = d
				short = i
			}
		}
		prev := pts[(short-1+n)%n]
		a := pts[short]
		b := pts[(short+1)%n]
		next := pts[(short+2)%n]
		corner, ok := geometry.LineIntersection(prev, a, next, b)
		if !ok {
			return nil, false
		}
		merged := make([]geometry.Point, 0, n-1)
		for i := 0; i < n; i++ {
			switch i {
			case short:
				merged = append(merged, corner)
			case (short + 1) % n:
			default:
				merged = append(merged, pts[i])
			}
		}
		pts = merged
	}
	return pts, true
}

// rectFallback uses the minimum-area bounding rectangle of the contour when
// corner inference is degenerate.
func (c *Corrector) rectFallback(contour gocv.PointVector) (quad, error) {
	rect := gocv.MinAreaRect(contour)
	if rect.Width <= 0 || rect.Height <= 0 {
		return quad{}, stageErr(KindInsufficientCorners, "contour",
			"bounding rectangle fallback is empty")
	}
	var q quad
	q.rectFallback = true
	q.pts = rotatedRectCorners(rect)
	return q, nil
}

// rotatedRectCorners derives the four vertices from center, size and angle.
func rotatedRectCorners(rect gocv.RotatedRect) [4]geometry.Point {
	rad := rect.Angle * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	halfW := float64(rect.Width) / 2
	halfH := float64(rect.Height) / 2
	cx := float64(rect.Center.X)
	cy := float64(rect.Center.Y)
	return [4]geometry.Point{
		{X: cx - halfW*cos + halfH*sin, Y: cy - halfW*sin - halfH*cos},
		{X: cx + halfW*cos + halfH*sin, Y: cy + halfW*sin - halfH*cos},
		{X: cx + halfW*cos - halfH*sin, Y: cy + halfW*sin + halfH*cos},
		{X: cx - halfW*cos - halfH*sin, Y: cy - halfW*sin + halfH*cos},
	}
}
