package batch

import (
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/dodogabrie/microperspective-corrector/internal/imgio"
)

// FindImages walks root recursively and returns every processable raster,
// sorted for stable batch ordering.
func FindImages(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && imgio.IsImageFile(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// OutputPath mirrors a source path under inputDir into outputDir,
// preserving the subfolder structure.
func OutputPath(inputDir, outputDir, path string) (string, error) {
	rel, err := filepath.Rel(inputDir, path)
	if err != nil {
		return "", err
	}
	return filepath.Join(outputDir, rel), nil
}
