package images

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/bbrks/go-blurhash"
	_ "golang.org/x/image/webp"
)

// blurhash encoding parameters. 4x3 components is a good balance of
// detail and hash length for book covers.
const (
	blurHashComponentsX = 4
	blurHashComponentsY = 3

	// Images are downscaled before encoding; blurhash only needs a
	// thumbnail's worth of detail.
	blurHashMaxDimension = 64
)

// ComputeBlurHash generates a BlurHash string from image data.
// Supports JPEG, PNG, GIF and WebP input.
func ComputeBlurHash(imgData []byte) (string, error) {
	if len(imgData) == 0 {
		return "", fmt.Errorf("image data cannot be empty")
	}

	img, _, err := image.Decode(bytes.NewReader(imgData))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	hash, err := blurhash.Encode(blurHashComponentsX, blurHashComponentsY, downscale(img, blurHashMaxDimension))
	if err != nil {
		return "", fmt.Errorf("failed to encode blurhash: %w", err)
	}

	return hash, nil
}

// downscale resizes img so its largest side is at most max pixels,
// using nearest-neighbor sampling.
func downscale(img image.Image, max int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= max && h <= max {
		return img
	}

	scale := float64(max) / float64(w)
	if h > w {
		scale = float64(max) / float64(h)
	}
	nw, nh := int(float64(w)*scale), int(float64(h)*scale)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	for y := 0; y < nh; y++ {
		sy := bounds.Min.Y + y*h/nh
		for x := 0; x < nw; x++ {
			sx := bounds.Min.X + x*w/nw
			dst.Set(x, y, img.At(sx, sy))
		}
	}
	return dst
}
