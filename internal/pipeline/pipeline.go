// Package pipeline implements the geometric correction of scanned book
// pages: page boundary detection, canonical corner ordering, perspective
// correction, and trimming of the black border the warp introduces.
//
// The pipeline is strictly sequential per image and holds no state between
// calls, so a single Corrector may serve any number of goroutines.
package pipeline

import (
	"github.com/rs/zerolog"
	"gocv.io/x/gocv"

	"github.com/dodogabrie/microperspective-corrector/internal/config"
	"github.com/dodogabrie/microperspective-corrector/internal/geometry"
)

// Diagnostics describes what a successful correction did to the image.
type Diagnostics struct {
	// Corners is the detected page boundary, canonically ordered, in
	// source image coordinates.
	Corners geometry.CornerSet
	// Homography maps the source corners onto the output rectangle.
	Homography geometry.Homography
	// Border holds the margins trimmed after the warp.
	Border BorderProfile
	// ContourAreaFraction is the chosen contour's area relative to the
	// source frame.
	ContourAreaFraction float64
	// ReconstructedCorner is set when a missing or clipped corner was
	// rebuilt by edge extension.
	ReconstructedCorner bool
	// RectFallback is set when corner inference degraded to the contour's
	// minimum-area bounding rectangle.
	RectFallback bool
	// Width and Height are the dimensions of the corrected image.
	Width, Height int
}

// Corrector runs the correction pipeline with a fixed configuration.
type Corrector struct {
	cfg config.Core
	log zerolog.Logger
}

// New returns a Corrector using the given tuning knobs.
func New(cfg config.Core, log zerolog.Logger) *Corrector {
	return &Corrector{cfg: cfg, log: log}
}

// CorrectPage locates the page inside img, removes microrotation and
// perspective skew, and trims the border artifact. It returns a new image;
// img is never modified. On error the returned Mat is empty and must not be
// used. The caller owns Close on the returned Mat.
func (c *Corrector) CorrectPage(img gocv.Mat) (gocv.Mat, Diagnostics, error) {
	var diag Diagnostics

	mask, err := c.preprocess(img)
	if err != nil {
		return gocv.NewMat(), diag, err
	}
	defer mask.Close()

	q, err := c.detectContour(mask)
	if err != nil {
		return gocv.NewMat(), diag, err
	}
	diag.ContourAreaFraction = q.areaFraction
	diag.ReconstructedCorner = q.reconstructed
	diag.RectFallback = q.rectFallback

	cs, err := geometry.OrderCorners(q.pts)
	if err != nil {
		return gocv.NewMat(), diag, stageErr(KindDegenerateCorners, "order", "%v", err)
	}
	diag.Corners = cs

	warped, hom, err := c.warp(img, cs)
	if err != nil {
		return gocv.NewMat(), diag, err
	}
	defer warped.Close()
	diag.Homography = hom

	trimmed, profile, err := c.trimBorder(warped)
	if err != nil {
		return gocv.NewMat(), diag, err
	}
	diag.Border = profile
	diag.Width = trimmed.Cols()
	diag.Height = trimmed.Rows()

	c.log.Debug().
		Int("width", diag.Width).
		Int("height", diag.Height).
		Float64("contour_area_fraction", diag.ContourAreaFraction).
		Bool("reconstructed", diag.ReconstructedCorner).
		Bool("rect_fallback", diag.RectFallback).
		Msg("page corrected")

	return trimmed, diag, nil
}
