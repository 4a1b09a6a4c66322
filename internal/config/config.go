// Package config defines the tuning surface of the corrector and its
// orchestration layer, with defaults, validation and a TOML file layer.
package config

import "fmt"

// ThresholdMode selects how the preprocessor binarizes the blurred image.
type ThresholdMode string

const (
	// ThresholdFixed applies a single global threshold value.
	ThresholdFixed ThresholdMode = "fixed"
	// ThresholdAdaptive thresholds against a local mean per block.
	ThresholdAdaptive ThresholdMode = "adaptive"
)

// Core holds the knobs recognized by the correction pipeline itself.
type Core struct {
	// KernelSize is the Gaussian smoothing kernel. Must be odd; 0 derives
	// it from the image (min dimension / 50, forced odd, floor 3).
	KernelSize int
	// ThresholdMode picks fixed or adaptive binarization.
	ThresholdMode ThresholdMode
	// ThresholdValue is the fixed global threshold (0-255).
	ThresholdValue int
	// MinAreaFraction is the smallest contour area, as a fraction of the
	// frame, still considered a page candidate.
	MinAreaFraction float64
	// MaxPolygonPoints bounds contour simplification: tolerance escalates
	// until the polygon has at most this many vertices.
	MaxPolygonPoints int
	// BackgroundThreshold is the brightness (0-255) at or below which a
	// pixel counts as warp-artifact background during border scanning.
	BackgroundThreshold int
	// MaxCropFraction caps each trimmed margin at this fraction of the
	// corresponding image dimension.
	MaxCropFraction float64
}

// Config is the full tool configuration: the core knobs plus the
// orchestration surface (batch layout, workers, outputs).
type Config struct {
	Core

	InputDir  string
	OutputDir string
	// ThumbDir receives side-by-side before/after thumbnails; empty
	// disables thumbnail generation.
	ThumbDir string
	// ReportPath receives the HTML batch report; empty disables it.
	ReportPath string
	// Workers bounds the per-image worker pool.
	Workers int
	// BorderPixels of white padding re-added around the trimmed page.
	BorderPixels int
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Core: Core{
			KernelSize:          0,
			ThresholdMode:       ThresholdFixed,
			ThresholdValue:      200,
			MinAreaFraction:     0.20,
			MaxPolygonPoints:    8,
			BackgroundThreshold: 40,
			MaxCropFraction:     0.25,
		},
		Workers: 4,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.KernelSize < 0 || (c.KernelSize != 0 && c.KernelSize%2 == 0) {
		return fmt.Errorf("kernel size must be odd or 0 for adaptive, got %d", c.KernelSize)
	}
	switch c.ThresholdMode {
	case ThresholdFixed, ThresholdAdaptive:
	default:
		return fmt.Errorf("threshold mode must be %q or %q, got %q", ThresholdFixed, ThresholdAdaptive, c.ThresholdMode)
	}
	// Adaptive thresholding uses the kernel as its block size, which OpenCV
	// requires to be at least 3.
	if c.ThresholdMode == ThresholdAdaptive && c.KernelSize != 0 && c.KernelSize < 3 {
		return fmt.Errorf("kernel size must be 0 or at least 3 in adaptive mode, got %d", c.KernelSize)
	}
	if c.ThresholdValue < 0 || c.ThresholdValue > 255 {
		return fmt.Errorf("threshold value must be in [0,255], got %d", c.ThresholdValue)
	}
	if c.MinAreaFraction <= 0 || c.MinAreaFraction >= 1 {
		return fmt.Errorf("min area fraction must be in (0,1), got %g", c.MinAreaFraction)
	}
	if c.MaxPolygonPoints < 4 {
		return fmt.Errorf("max polygon points must be at least 4, got %d", c.MaxPolygonPoints)
	}
	if c.BackgroundThreshold < 0 || c.BackgroundThreshold > 255 {
		return fmt.Errorf("background threshold must be in [0,255], got %d", c.BackgroundThreshold)
	}
	if c.MaxCropFraction <= 0 || c.MaxCropFraction >= 0.5 {
		return fmt.Errorf("max crop fraction must be in (0,0.5), got %g", c.MaxCropFraction)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.BorderPixels < 0 {
		return fmt.Errorf("border pixels must be non-negative, got %d", c.BorderPixels)
	}
	return nil
}
