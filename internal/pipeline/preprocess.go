package pipeline

import (
	"image"

	"gocv.io/x/gocv"

	"github.com/dodogabrie/microperspective-corrector/internal/config"
)

// adaptiveKernel derives an odd Gaussian kernel size from the image: one
// fiftieth of the smaller dimension, floor 3.
func adaptiveKernel(rows, cols int) int {
	k := min(rows, cols) / 50
	if k%2 == 0 {
		k++
	}
	if k < 3 {
		k = 3
	}
	return k
}

// preprocess reduces img to a binary mask of the candidate page area:
// grayscale, Gaussian smoothing, thresholding, then two dilation passes so
// the page outline survives as one continuous contour.
func (c *Corrector) preprocess(img gocv.Mat) (gocv.Mat, error) {
	if img.Empty() || img.Rows() == 0 || img.Cols() == 0 {
		return gocv.NewMat(), stageErr(KindInvalidImage, "preprocess", "input image has zero area")
	}

	var gray gocv.Mat
	if img.Channels() > 1 {
		gray = gocv.NewMat()
		gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)
	} else {
		gray = img.Clone()
	}
	defer gray.Close()

	k := c.cfg.KernelSize
	if k == 0 {
		k = adaptiveKernel(img.Rows(), img.Cols())
	}
	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Pt(k, k), 0, 0, gocv.BorderDefault)

	mask := gocv.NewMat()
	if c.cfg.ThresholdMode == config.ThresholdAdaptive {
		gocv.AdaptiveThreshold(blurred, &mask, 255, gocv.AdaptiveThresholdMean, gocv.ThresholdBinary, k, -2)
	} else {
		gocv.Threshold(blurred, &mask, float32(c.cfg.ThresholdValue), 255, gocv.ThresholdBinary)
	}

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(5, 5))
	defer kernel.Close()
	gocv.Dilate(mask, &mask, kernel)
	gocv.Dilate(mask, &mask, kernel)

	return mask, nil
}
