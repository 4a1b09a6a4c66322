package config

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config for the TOML file layer. Pointer fields
// distinguish "absent" from zero values so the file only overrides what it
// names.
type FileConfig struct {
	KernelSize          *int     `toml:"kernel_size"`
	ThresholdMode       *string  `toml:"threshold_mode"`
	ThresholdValue      *int     `toml:"threshold_value"`
	MinAreaFraction     *float64 `toml:"min_area_fraction"`
	MaxPolygonPoints    *int     `toml:"max_polygon_points"`
	BackgroundThreshold *int     `toml:"background_threshold"`
	MaxCropFraction     *float64 `toml:"max_crop_fraction"`

	ThumbDir     *string `toml:"thumb_dir"`
	ReportPath   *string `toml:"report_path"`
	Workers      *int    `toml:"workers"`
	BorderPixels *int    `toml:"border_pixels"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.microperspective/config.toml when the home
// directory is known, else "".
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".microperspective", "config.toml")
	}
	return ""
}

// Apply overlays the values present in fc onto cfg. Flag overrides are
// applied by the caller afterwards, so precedence is defaults < file < flags.
func Apply(cfg *Config, fc FileConfig) {
	setInt(fc.KernelSize, &cfg.KernelSize)
	if fc.ThresholdMode != nil {
		cfg.ThresholdMode = ThresholdMode(*fc.ThresholdMode)
	}
	setInt(fc.ThresholdValue, &cfg.ThresholdValue)
	setFloat(fc.MinAreaFraction, &cfg.MinAreaFraction)
	setInt(fc.MaxPolygonPoints, &cfg.MaxPolygonPoints)
	setInt(fc.BackgroundThreshold, &cfg.BackgroundThreshold)
	setFloat(fc.MaxCropFraction, &cfg.MaxCropFraction)
	setString(fc.ThumbDir, &cfg.ThumbDir)
	setString(fc.ReportPath, &cfg.ReportPath)
	setInt(fc.Workers, &cfg.Workers)
	setInt(fc.BorderPixels, &cfg.BorderPixels)
}

func setInt(src *int, dst *int) {
	if src != nil {
		*dst = *src
	}
}

func setFloat(src *float64, dst *float64) {
	if src != nil {
		*dst = *src
	}
}

func setString(src *string, dst *string) {
	if src != nil {
		*dst = *src
	}
}
