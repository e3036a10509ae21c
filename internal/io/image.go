package ioutils

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageService loads images for comparison.
//
// Example usage:
//
//	svc := NewImageService()
//	img, err := svc.LoadThumbnail(ctx, "/photos/IMG_0001.jpg", 256)
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// LoadThumbnail decodes the image at path and scales it down so that its
// longer side is at most maxSide pixels. Smaller images are returned as is.
//
// The aspect ratio is preserved. Approximate bilinear scaling is used since
// the result only feeds perceptual hashing.
func (s *ImageService) LoadThumbnail(ctx context.Context, path string, maxSide int) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if maxSide <= 0 || (width <= maxSide && height <= maxSide) {
		return img, nil
	}

	if width >= height {
		height = max(1, height*maxSide/width)
		width = maxSide
	} else {
		width = max(1, width*maxSide/height)
		height = maxSide
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst, nil
}
