package imgio

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func TestIsImageFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"page.tif", true},
		{"page.TIFF", true},
		{"scan.jpg", true},
		{"scan.jpeg", true},
		{"scan.png", true},
		{"notes.txt", false},
		{"archive.tar.gz", false},
		{"noext", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsImageFile(tt.path), tt.path)
	}
}

func TestLoad_Missing(t *testing.T) {
	img, err := Load(filepath.Join(t.TempDir(), "absent.tif"))
	defer img.Close()
	assert.Error(t, err)
}

func TestSaveAndLoad(t *testing.T) {
	img := gocv.NewMatWithSize(40, 60, gocv.MatTypeCV8UC3)
	defer img.Close()

	path := filepath.Join(t.TempDir(), "sub", "out.png")
	require.NoError(t, Save(path, img))

	back, err := Load(path)
	require.NoError(t, err)
	defer back.Close()
	assert.Equal(t, 40, back.Rows())
	assert.Equal(t, 60, back.Cols())
}

func TestOverCropped(t *testing.T) {
	original := gocv.NewMatWithSize(100, 100, gocv.MatTypeCV8UC3)
	defer original.Close()

	half := gocv.NewMatWithSize(50, 100, gocv.MatTypeCV8UC3)
	defer half.Close()
	assert.True(t, OverCropped(original, half))

	most := gocv.NewMatWithSize(90, 90, gocv.MatTypeCV8UC3)
	defer most.Close()
	assert.False(t, OverCropped(original, most))
}

func TestThumbnail(t *testing.T) {
	original := gocv.NewMatWithSize(400, 300, gocv.MatTypeCV8UC3)
	defer original.Close()
	corrected := gocv.NewMatWithSize(380, 280, gocv.MatTypeCV8UC3)
	defer corrected.Close()

	thumb := Thumbnail(original, corrected, 500)
	defer thumb.Close()

	assert.Equal(t, 500, thumb.Cols())
	assert.Greater(t, thumb.Rows(), 0)
	assert.Less(t, thumb.Rows(), 500)
}

func TestAddBorder(t *testing.T) {
	img := gocv.NewMatWithSize(100, 80, gocv.MatTypeCV8UC3)
	defer img.Close()

	out := AddBorder(img, 25)
	defer out.Close()

	assert.Equal(t, 150, out.Rows())
	assert.Equal(t, 130, out.Cols())
	assert.Equal(t, uint8(255), out.GetUCharAt(0, 0))
}
