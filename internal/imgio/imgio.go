// Package imgio is the file boundary around the correction core: loading
// and saving rasters, thumbnail composition and the over-crop sanity check.
package imgio

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gocv.io/x/gocv"
)

// Load reads an image from disk in color. The caller owns Close.
func Load(path string) (gocv.Mat, error) {
	img := gocv.IMRead(path, gocv.IMReadColor)
	if img.Empty() {
		return img, fmt.Errorf("could not decode image %q", path)
	}
	return img, nil
}

// Save writes img to path, creating parent directories as needed.
func Save(path string, img gocv.Mat) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if ok := gocv.IMWrite(path, img); !ok {
		return fmt.Errorf("could not write image %q", path)
	}
	return nil
}

// IsImageFile reports whether path has a raster extension this tool
// processes.
func IsImageFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png", ".tif", ".tiff":
		return true
	}
	return false
}

// AddBorder returns img padded with white margin on all sides. The caller
// owns Close on the result.
func AddBorder(img gocv.Mat, pixels int) gocv.Mat {
	out := gocv.NewMat()
	gocv.CopyMakeBorder(img, &out, pixels, pixels, pixels, pixels,
		gocv.BorderConstant, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	return out
}

// Thumbnail composes original and corrected side by side, scaled to a fixed
// output width. The caller owns Close on the result.
func Thumbnail(original, corrected gocv.Mat, width int) gocv.Mat {
	h := min(original.Rows(), corrected.Rows())

	left := scaledToHeight(original, h)
	defer left.Close()
	right := scaledToHeight(corrected, h)
	defer right.Close()

	combined := gocv.NewMat()
	defer combined.Close()
	gocv.Hconcat(left, right, &combined)

	outH := width * combined.Rows() / combined.Cols()
	thumb := gocv.NewMat()
	gocv.Resize(combined, &thumb, image.Pt(width, outH), 0, 0, gocv.InterpolationArea)
	return thumb
}

func scaledToHeight(img gocv.Mat, h int) gocv.Mat {
	if img.Rows() == h {
		return img.Clone()
	}
	w := img.Cols() * h / img.Rows()
	out := gocv.NewMat()
	gocv.Resize(img, &out, image.Pt(w, h), 0, 0, gocv.InterpolationArea)
	return out
}

// OverCropped reports whether the corrected image kept half the source area
// or less, the sign of a geometry failure that slipped through: the batch
// layer keeps the original in that case.
func OverCropped(original, corrected gocv.Mat) bool {
	origArea := original.Rows() * original.Cols()
	outArea := corrected.Rows() * corrected.Cols()
	return outArea*2 <= origArea
}
