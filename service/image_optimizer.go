package service

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"

	"fnp-marketplace/logger"
)

const (
	// Quality settings
	qualityFull  = 80
	qualityThumb = 60
	// Size settings (max dimension)
	maxSizeFull  = 1200
	maxSizeThumb = 300
)

// ImageSize selects the output profile of OptimizeImage
type ImageSize string

const (
	ImageSizeFull  ImageSize = "full"
	ImageSizeThumb ImageSize = "thumb"
)

// ErrUnsupportedImage is returned for uploads that are not a decodable PNG or JPEG
var ErrUnsupportedImage = errors.New("unsupported image format")

// OptimizeImage decodes a PNG or JPEG, shrinks it to fit the profile's max dimension
// keeping its aspect ratio, and re-encodes it as JPEG.
// Images already within bounds are only re-encoded.
func OptimizeImage(imageData []byte, size ImageSize) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	logger.Log.Debugf("📸 Image decoded: format=%s, bounds=%v", format, img.Bounds())

	maxDim, quality := maxSizeFull, qualityFull
	if size == ImageSizeThumb {
		maxDim, quality = maxSizeThumb, qualityThumb
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxDim || bounds.Dy() > maxDim {
		img = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
		logger.Log.Debugf("🔄 Resized image: %dx%d -> %dx%d", bounds.Dx(), bounds.Dy(), img.Bounds().Dx(), img.Bounds().Dy())
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}

	logger.Log.Debugf("✓ Image optimized: size=%s, quality=%d, output_size=%d bytes", size, quality, buf.Len())
	return buf.Bytes(), nil
}
