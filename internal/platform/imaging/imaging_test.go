package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngOf(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestNormalize_PNGBecomesJPEG(t *testing.T) {
	p, err := Normalize(bytes.NewReader(pngOf(t, 40, 20, color.RGBA{0, 128, 255, 255})), Options{})
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", p.ContentType())
	assert.Equal(t, 40, p.Width)
	assert.Equal(t, 20, p.Height)

	_, format, err := image.DecodeConfig(bytes.NewReader(p.Data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
}

func TestNormalize_DownscalesKeepingAspect(t *testing.T) {
	p, err := Normalize(bytes.NewReader(pngOf(t, 600, 300, color.Black)), Options{MaxSide: 200})
	require.NoError(t, err)
	assert.Equal(t, 200, p.Width)
	assert.Equal(t, 100, p.Height)
}

func TestNormalize_TransparentGoesWhite(t *testing.T) {
	p, err := Normalize(bytes.NewReader(pngOf(t, 8, 8, color.NRGBA{0, 0, 0, 0})), Options{})
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(p.Data))
	require.NoError(t, err)
	r, g, b, _ := img.At(4, 4).RGBA()
	// JPEG es con pérdida: "casi blanco"
	assert.Greater(t, r>>8, uint32(240))
	assert.Greater(t, g>>8, uint32(240))
	assert.Greater(t, b>>8, uint32(240))
}

func TestNormalize_RejectsTooManyPixels(t *testing.T) {
	_, err := Normalize(bytes.NewReader(pngOf(t, 100, 100, color.Black)), Options{MaxPixels: 5000})
	assert.ErrorIs(t, err, ErrTooManyPixels)
}

func TestNormalize_RejectsNonImage(t *testing.T) {
	_, err := Normalize(bytes.NewReader([]byte("definitely not an image")), Options{})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFit(t *testing.T) {
	cases := []struct {
		w, h, max    int
		wantW, wantH int
	}{
		{100, 50, 200, 100, 50},
		{2048, 1024, 1024, 1024, 512},
		{1024, 2048, 1024, 512, 1024},
		{5000, 1, 100, 100, 1},
	}
	for _, c := range cases {
		w, h := fit(c.w, c.h, c.max)
		assert.Equal(t, c.wantW, w, "%dx%d", c.w, c.h)
		assert.Equal(t, c.wantH, h, "%dx%d", c.w, c.h)
	}
}
