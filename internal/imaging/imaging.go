// Package imaging normalizes uploaded profile images into a canonical square JPEG.
package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"strings"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	MinDimension = 500
	MaxDimension = 1000
	OutputSize   = 500
	JPEGQuality  = 85
)

// ErrInvalidImage is wrapped by every rejection from Process.
var ErrInvalidImage = errors.New("invalid image")

var allowedFormats = map[string]bool{
	"jpeg": true,
	"png":  true,
}

// ProcessBase64 decodes a base64 payload and runs Process on it. A leading
// "data:<mime>;base64," prefix is tolerated.
func ProcessBase64(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if idx := strings.Index(encoded, ";base64,"); idx >= 0 && strings.HasPrefix(encoded, "data:") {
		encoded = encoded[idx+len(";base64,"):]
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: not valid base64", ErrInvalidImage)
	}
	return Process(data)
}

// Process validates a raw JPEG or PNG, center-crops it to a square, scales it to
// OutputSize×OutputSize and re-encodes it as JPEG. Transparent pixels are
// flattened onto white.
func Process(data []byte) ([]byte, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: unrecognized image data", ErrInvalidImage)
	}
	if !allowedFormats[format] {
		return nil, fmt.Errorf("%w: only .jpg and .png formats are allowed (got %s)", ErrInvalidImage, format)
	}
	if !withinBounds(cfg.Width) || !withinBounds(cfg.Height) {
		return nil, fmt.Errorf("%w: image size must be between %dx%d and %dx%d pixels (got %dx%d)",
			ErrInvalidImage, MinDimension, MinDimension, MaxDimension, MaxDimension, cfg.Width, cfg.Height)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, OutputSize, OutputSize))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, centerSquare(src.Bounds()), draw.Over, nil)

	var out bytes.Buffer
	if err := jpeg.Encode(&out, dst, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return out.Bytes(), nil
}

func withinBounds(n int) bool {
	return n >= MinDimension && n <= MaxDimension
}

// centerSquare returns the largest square centered in b.
func centerSquare(b image.Rectangle) image.Rectangle {
	w, h := b.Dx(), b.Dy()
	side := min(w, h)
	left := b.Min.X + (w-side)/2
	top := b.Min.Y + (h-side)/2
	return image.Rect(left, top, left+side, top+side)
}
