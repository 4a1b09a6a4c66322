package pipeline

import (
	"image"

	"gocv.io/x/gocv"
)

// BorderProfile records the margins removed from each side of a warped
// image, in pixels.
type BorderProfile struct {
	Top    int
	Bottom int
	Left   int
	Right  int
}

// Zero reports whether no margin was trimmed.
func (p BorderProfile) Zero() bool {
	return p == BorderProfile{}
}

// trimBorder removes the black margin the warp leaves behind. The margin is
// not uniform per side (it comes from projecting a quadrilateral into a
// rectangle), so a fixed crop would leave remnants on thin sides or eat
// content on thick ones. Two passes instead:
//
//  1. Strip boundary rows and columns that are background across their full
//     extent. This takes out the uniform part of the border.
//  2. From each remaining image corner, scan along both adjacent edges
//     counting background pixels; each edge gets the smaller of its two
//     corner runs. The smaller run is the content-preserving choice: the
//     border is contiguous along an edge, so the larger run may already
//     overlap content where the border happens to be thin.
//
// Margins are capped at a fraction of each dimension so a dark photograph
// touching a corner cannot eat into the page.
func (c *Corrector) trimBorder(img gocv.Mat) (gocv.Mat, BorderProfile, error) {
	var gray gocv.Mat
	if img.Channels() > 1 {
		gray = gocv.NewMat()
		gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)
	} else {
		gray = img.Clone()
	}
	defer gray.Close()

	rows, cols := gray.Rows(), gray.Cols()
	bg := uint8(c.cfg.BackgroundThreshold)

	rowIsBackground := func(r int) bool {
		for cc := 0; cc < cols; cc++ {
			if gray.GetUCharAt(r, cc) > bg {
				return false
			}
		}
		return true
	}
	colIsBackground := func(cc int) bool {
		for r := 0; r < rows; r++ {
			if gray.GetUCharAt(r, cc) > bg {
				return false
			}
		}
		return true
	}

	var profile BorderProfile
	for profile.Top < rows && rowIsBackground(profile.Top) {
		profile.Top++
	}
	if profile.Top == rows {
		return gocv.NewMat(), profile, stageErr(KindBorderTrimFailure, "trim",
			"entire image is background")
	}
	for rowIsBackground(rows - 1 - profile.Bottom) {
		profile.Bottom++
	}
	for colIsBackground(profile.Left) {
		profile.Left++
	}
	for colIsBackground(cols - 1 - profile.Right) {
		profile.Right++
	}

	// Residual wedges: the warp leaves black triangles along edges whose
	// boundary rows still contain content, so full-line stripping misses
	// them. Measure them from the corners of the stripped rectangle.
	top, bottom := profile.Top, rows-1-profile.Bottom
	left, right := profile.Left, cols-1-profile.Right

	scanCol := func(col, row, step int) int {
		n := 0
		for r := row; r >= top && r <= bottom; r += step {
			if gray.GetUCharAt(r, col) > bg {
				break
			}
			n++
		}
		return n
	}
	scanRow := func(row, col, step int) int {
		n := 0
		for cc := col; cc >= left && cc <= right; cc += step {
			if gray.GetUCharAt(row, cc) > bg {
				break
			}
			n++
		}
		return n
	}

	profile.Top += min(scanCol(left, top, 1), scanCol(right, top, 1))
	profile.Bottom += min(scanCol(left, bottom, -1), scanCol(right, bottom, -1))
	profile.Left += min(scanRow(top, left, 1), scanRow(bottom, left, 1))
	profile.Right += min(scanRow(top, right, -1), scanRow(bottom, right, -1))

	capY := int(c.cfg.MaxCropFraction * float64(rows))
	capX := int(c.cfg.MaxCropFraction * float64(cols))
	profile.Top = min(profile.Top, capY)
	profile.Bottom = min(profile.Bottom, capY)
	profile.Left = min(profile.Left, capX)
	profile.Right = min(profile.Right, capX)

	if rows-profile.Top-profile.Bottom <= 0 || cols-profile.Left-profile.Right <= 0 {
		return gocv.NewMat(), profile, stageErr(KindBorderTrimFailure, "trim",
			"margins consume the whole image (top=%d bottom=%d left=%d right=%d)",
			profile.Top, profile.Bottom, profile.Left, profile.Right)
	}

	region := img.Region(image.Rect(profile.Left, profile.Top, cols-profile.Right, rows-profile.Bottom))
	defer region.Close()
	return region.Clone(), profile, nil
}
