package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoder registration
	"os"

	"golang.org/x/image/draw"
)

// ImageService post-processes downloaded photos.
//
// ImageService is used to:
//   - Resize photos to fit a maximum dimension (for archival size caps)
//   - Convert photos to JPEG format (for consistent output)
//
// Example usage:
//
//	svc := NewImageService()
//
//	// Cap a saved photo at 1920px and re-encode as JPEG
//	err := svc.ProcessFile(ctx, "/photos/IMG_0001.png", 1920, true)
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// ResizeImage resizes an image to fit within the specified maximum dimensions.
//
// The aspect ratio is preserved. If the image is already smaller than the
// maximum dimensions, it will still be re-encoded as JPEG.
//
// The Catmull-Rom algorithm is used for high-quality resizing.
//
// Example:
//
//	// Resize to fit within 1920x1920, maintaining aspect ratio
//	resized, err := svc.ResizeImage(ctx, imageData, 1920, 1920)
//	// A 4000x3000 photo becomes 1920x1440
func (s *ImageService) ResizeImage(ctx context.Context, data []byte, maxWidth, maxHeight int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	// Calculate new dimensions maintaining aspect ratio
	if width > maxWidth || height > maxHeight {
		ratio := float64(width) / float64(height)
		if float64(maxWidth)/float64(maxHeight) > ratio {
			// Height is the limiting factor
			width = int(float64(maxHeight) * ratio)
			height = maxHeight
		} else {
			// Width is the limiting factor
			height = int(float64(maxWidth) / ratio)
			width = maxWidth
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))

	// Use Catmull-Rom for high-quality scaling
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ConvertToJPEG converts an image to JPEG format.
//
// Returns the image as JPEG-encoded bytes with 90% quality. If the
// input is already JPEG it is re-encoded.
func (s *ImageService) ConvertToJPEG(ctx context.Context, data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ProcessFile applies the configured post-processing to a saved photo
// in place: resize to maxDimension when positive, convert to JPEG when
// convert is true. A file that needs neither is left untouched.
func (s *ImageService) ProcessFile(ctx context.Context, path string, maxDimension int, convert bool) error {
	if maxDimension <= 0 && !convert {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if maxDimension > 0 {
		data, err = s.ResizeImage(ctx, data, maxDimension, maxDimension)
		if err != nil {
			return err
		}
	} else if convert {
		data, err = s.ConvertToJPEG(ctx, data)
		if err != nil {
			return err
		}
	}

	return os.WriteFile(path, data, 0644)
}
