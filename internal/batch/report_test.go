package batch

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reports", "batch.html")
	results := []Result{
		{Path: "in/a.tif", OutputPath: "out/a.tif", ThumbPath: filepath.Join(dir, "reports", "thumbs", "a.jpg")},
		{Path: "in/b.tif", Err: errors.New("no contour covers enough of the frame")},
		{Path: "in/c.tif", OutputPath: "out/c.tif", KeptOriginal: true},
	}

	require.NoError(t, WriteReport(path, results))

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(body)

	assert.Contains(t, html, `src="thumbs/a.jpg"`)
	assert.Contains(t, html, "no contour covers enough of the frame")
	assert.Contains(t, html, "kept original")
	assert.Contains(t, html, "in/c.tif")
}

func TestWriteReport_ThumbLinksRelativeToReport(t *testing.T) {
	// The browser resolves img src against the report file, so a thumbnail
	// in a sibling directory must come out as a ../ link, not a working-
	// directory path.
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "report.html")
	results := []Result{
		{Path: "in/a.tif", ThumbPath: filepath.Join(dir, "thumbs", "a.jpg")},
	}

	require.NoError(t, WriteReport(path, results))

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(body), `src="../thumbs/a.jpg"`)
}
