package service

import (
	"bytes"
	"fmt"
	"image/jpeg"

	"github.com/disintegration/imaging"

	"github.com/mealsnap/backend/config"
)

// MaxSourceImageBytes is the absolute ceiling on a source image before any
// processing happens.
const MaxSourceImageBytes = 10 * 1024 * 1024

// ProcessedImage is a re-encoded JPEG with its final dimensions.
type ProcessedImage struct {
	Data   []byte
	Width  int
	Height int
}

// ImageProcessorService resizes and recompresses captured meal photos.
type ImageProcessorService struct {
	maxDimension  int
	quality       int
	thumbnailSize int
}

// NewImageProcessorService creates a new ImageProcessorService instance
func NewImageProcessorService(cfg *config.Config) *ImageProcessorService {
	return &ImageProcessorService{
		maxDimension:  cfg.MaxImageDimension,
		quality:       int(cfg.ImageQuality * 100),
		thumbnailSize: cfg.ThumbnailSize,
	}
}

// ProcessImage re-encodes a source image as JPEG bounded by the configured
// max dimension, preserving aspect ratio. Sources larger than
// MaxSourceImageBytes are rejected before decoding.
func (s *ImageProcessorService) ProcessImage(src []byte) (*ProcessedImage, error) {
	if len(src) == 0 {
		return nil, fmt.Errorf("%w: empty source image", ErrImageProcessing)
	}
	if len(src) > MaxSourceImageBytes {
		return nil, fmt.Errorf("%w: source image exceeds %d bytes", ErrImageProcessing, MaxSourceImageBytes)
	}

	return s.resize(src, s.maxDimension, s.quality)
}

// CreateThumbnail produces the small preview variant at the configured
// thumbnail dimension. Thumbnails are always compressed at quality 50.
func (s *ImageProcessorService) CreateThumbnail(src []byte) (*ProcessedImage, error) {
	if len(src) == 0 {
		return nil, fmt.Errorf("%w: empty source image", ErrImageProcessing)
	}

	return s.resize(src, s.thumbnailSize, 50)
}

func (s *ImageProcessorService) resize(src []byte, maxWidth, quality int) (*ProcessedImage, error) {
	img, err := imaging.Decode(bytes.NewReader(src), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrImageProcessing, err)
	}

	// Only shrink; small images pass through at their original size.
	if img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("%w: encode: %v", ErrImageProcessing, err)
	}

	return &ProcessedImage{
		Data:   buf.Bytes(),
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
	}, nil
}
