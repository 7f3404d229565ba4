package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	return img
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, solid(w, h), nil))
	return buf.Bytes()
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solid(w, h)))
	return buf.Bytes()
}

func assertCanonical(t *testing.T, out []byte) {
	t.Helper()
	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, OutputSize, cfg.Width)
	assert.Equal(t, OutputSize, cfg.Height)
}

func TestProcessPNGBecomesSquareJPEG(t *testing.T) {
	out, err := Process(encodePNG(t, 600, 500))
	require.NoError(t, err)
	assertCanonical(t, out)
}

func TestProcessAcceptsBoundaryDimensions(t *testing.T) {
	for _, dims := range [][2]int{{500, 500}, {1000, 1000}, {500, 1000}, {1000, 500}} {
		out, err := Process(encodeJPEG(t, dims[0], dims[1]))
		require.NoError(t, err, dims)
		assertCanonical(t, out)
	}
}

func TestProcessRejectsOutOfBounds(t *testing.T) {
	for _, dims := range [][2]int{{1200, 800}, {499, 600}, {600, 499}, {1001, 1000}} {
		_, err := Process(encodeJPEG(t, dims[0], dims[1]))
		assert.ErrorIs(t, err, ErrInvalidImage, dims)
	}
}

func TestProcessRejectsOtherFormats(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, gif.Encode(&buf, solid(600, 600), nil))

	_, err := Process(buf.Bytes())
	require.ErrorIs(t, err, ErrInvalidImage)
	assert.Contains(t, err.Error(), "gif")
}

func TestProcessRejectsGarbage(t *testing.T) {
	_, err := Process([]byte("definitely not an image"))
	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestProcessIsIdempotentOnOutput(t *testing.T) {
	first, err := Process(encodeJPEG(t, 800, 600))
	require.NoError(t, err)

	second, err := Process(first)
	require.NoError(t, err)
	assertCanonical(t, second)
}

func TestProcessBase64(t *testing.T) {
	raw := encodePNG(t, 700, 700)
	encoded := base64.StdEncoding.EncodeToString(raw)

	out, err := ProcessBase64(encoded)
	require.NoError(t, err)
	assertCanonical(t, out)

	out, err = ProcessBase64("data:image/png;base64," + encoded)
	require.NoError(t, err)
	assertCanonical(t, out)

	_, err = ProcessBase64("%%%not base64%%%")
	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestCenterSquare(t *testing.T) {
	assert.Equal(t, image.Rect(50, 0, 550, 500), centerSquare(image.Rect(0, 0, 600, 500)))
	assert.Equal(t, image.Rect(0, 150, 500, 650), centerSquare(image.Rect(0, 0, 500, 800)))
	assert.Equal(t, image.Rect(0, 0, 700, 700), centerSquare(image.Rect(0, 0, 700, 700)))
}

func TestProcessFlattensTransparencyOntoWhite(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 600, 600))
	for y := 0; y < 600; y++ {
		for x := 0; x < 600; x++ {
			if x < 300 {
				img.Set(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 0})
			} else {
				img.Set(x, y, color.NRGBA{B: 255, A: 255})
			}
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	out, err := Process(buf.Bytes())
	require.NoError(t, err)
	assertCanonical(t, out)

	decoded, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	r, g, b, _ := decoded.At(100, 250).RGBA()
	assert.Greater(t, r>>8, uint32(240))
	assert.Greater(t, g>>8, uint32(240))
	assert.Greater(t, b>>8, uint32(240))

	r, _, b, _ = decoded.At(400, 250).RGBA()
	assert.Less(t, r>>8, uint32(30))
	assert.Greater(t, b>>8, uint32(220))
}
