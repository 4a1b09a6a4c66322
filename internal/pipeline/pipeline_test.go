package pipeline

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

// rotatedCorners returns the corners of a w×h rectangle centered at
// (cx,cy), rotated by deg degrees, as integer points.
func rotatedCorners(cx, cy, w, h, deg float64) []image.Point {
	rad := deg * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	base := [][2]float64{
		{-w / 2, -h / 2},
		{w / 2, -h / 2},
		{w / 2, h / 2},
		{-w / 2, h / 2},
	}
	pts := make([]image.Point, 0, 4)
	for _, p := range base {
		pts = append(pts, image.Point{
			X: int(math.Round(cx + p[0]*cos - p[1]*sin)),
			Y: int(math.Round(cy + p[0]*sin + p[1]*cos)),
		})
	}
	return pts
}

func TestCorrectPage_RoundTrip(t *testing.T) {
	// A 500×400 white page rotated 10° on a black canvas must come back
	// axis-aligned at close to its true size, with next to no residual
	// border.
	img := gocv.NewMatWithSize(700, 900, gocv.MatTypeCV8UC3)
	defer img.Close()
	fillQuad(&img, rotatedCorners(450, 350, 500, 400, 10))

	out, diag, err := testCorrector().CorrectPage(img)
	require.NoError(t, err)
	defer out.Close()

	assert.InDelta(t, 500, out.Cols(), 12)
	assert.InDelta(t, 400, out.Rows(), 12)
	assert.LessOrEqual(t, diag.Border.Top, 8)
	assert.LessOrEqual(t, diag.Border.Bottom, 8)
	assert.LessOrEqual(t, diag.Border.Left, 8)
	assert.LessOrEqual(t, diag.Border.Right, 8)
	assert.False(t, diag.RectFallback)
	assert.NotZero(t, diag.Homography.Det())
}

func TestCorrectPage_AxisAlignedIsIdempotent(t *testing.T) {
	// A page already filling the frame with no margin: the warp must be a
	// no-op up to resampling and the trimmer must report zero margins.
	img := gocv.NewMatWithSize(400, 300, gocv.MatTypeCV8UC3)
	defer img.Close()
	gocv.Rectangle(&img, image.Rect(0, 0, 300, 400), white, -1)

	out, diag, err := testCorrector().CorrectPage(img)
	require.NoError(t, err)
	defer out.Close()

	assert.InDelta(t, 300, out.Cols(), 2)
	assert.InDelta(t, 400, out.Rows(), 2)
	assert.True(t, diag.Border.Zero(), "expected zero margins, got %+v", diag.Border)
}

func TestCorrectPage_InvalidImage(t *testing.T) {
	img := gocv.NewMat()
	defer img.Close()

	_, _, err := testCorrector().CorrectPage(img)
	assert.Equal(t, KindInvalidImage, KindOf(err))
}

func TestCorrectPage_NoPage(t *testing.T) {
	img := gocv.NewMatWithSize(400, 400, gocv.MatTypeCV8UC3)
	defer img.Close()

	_, _, err := testCorrector().CorrectPage(img)
	assert.Equal(t, KindNoContourFound, KindOf(err))
}

func TestErrorTagging(t *testing.T) {
	err := stageErr(KindDegenerateHomography, "warp", "target rectangle is %dx%d", 0, 12)

	assert.Equal(t, KindDegenerateHomography, KindOf(err))
	assert.Contains(t, err.Error(), "warp")
	assert.Contains(t, err.Error(), "0x12")

	assert.Equal(t, ErrorKind(""), KindOf(assert.AnError))
	assert.Equal(t, ErrorKind(""), KindOf(nil))
}
