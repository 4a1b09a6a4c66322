package pipeline

import (
	"image"
	"math"

	"gocv.io/x/gocv"

	"github.com/dodogabrie/microperspective-corrector/internal/geometry"
)

// warp projects the detected page onto an axis-aligned rectangle. The
// target is sized by the longer of each opposing edge pair so slightly
// non-rectangular pages are never clipped; source samples outside the frame
// come out black, which is exactly what trimBorder removes afterwards.
func (c *Corrector) warp(img gocv.Mat, cs geometry.CornerSet) (gocv.Mat, geometry.Homography, error) {
	width := math.Max(geometry.Dist(cs.TopLeft, cs.TopRight), geometry.Dist(cs.BottomLeft, cs.BottomRight))
	height := math.Max(geometry.Dist(cs.TopLeft, cs.BottomLeft), geometry.Dist(cs.TopRight, cs.BottomRight))
	w := int(math.Round(width))
	h := int(math.Round(height))
	if w <= 0 || h <= 0 {
		return gocv.NewMat(), geometry.Homography{}, stageErr(KindDegenerateHomography, "warp",
			"target rectangle is %dx%d", w, h)
	}

	src := cs.Slice()
	dst := [4]geometry.Point{
		{X: 0, Y: 0},
		{X: float64(w), Y: 0},
		{X: float64(w), Y: float64(h)},
		{X: 0, Y: float64(h)},
	}
	hom, err := geometry.EstimateHomography(src, dst)
	if err != nil {
		return gocv.NewMat(), geometry.Homography{}, stageErr(KindDegenerateHomography, "warp",
			"corners do not define an invertible transform")
	}

	m := gocv.NewMatWithSize(3, 3, gocv.MatTypeCV64F)
	defer m.Close()
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			m.SetDoubleAt(row, col, hom[row*3+col])
		}
	}

	warped := gocv.NewMat()
	gocv.WarpPerspective(img, &warped, m, image.Pt(w, h))
	return warped, hom, nil
}
