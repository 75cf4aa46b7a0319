package service

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealsnap/backend/config"
)

func newTestProcessor() *ImageProcessorService {
	return NewImageProcessorService(&config.Config{
		MaxImageDimension: 1024,
		ImageQuality:      0.7,
		ThumbnailSize:     200,
	})
}

// testJPEG encodes a flat-colored image of the given size.
func testJPEG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

func decodeDimensions(t *testing.T, data []byte) (int, int) {
	t.Helper()

	img, _, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestProcessImageShrinksWideImage(t *testing.T) {
	src := testJPEG(t, 1600, 1200)

	processed, err := newTestProcessor().ProcessImage(src)
	require.NoError(t, err)

	assert.Equal(t, 1024, processed.Width)
	// Aspect ratio preserved: 1600x1200 -> 1024x768.
	assert.Equal(t, 768, processed.Height)

	w, h := decodeDimensions(t, processed.Data)
	assert.Equal(t, 1024, w)
	assert.Equal(t, 768, h)
}

func TestProcessImageKeepsSmallImage(t *testing.T) {
	src := testJPEG(t, 640, 480)

	processed, err := newTestProcessor().ProcessImage(src)
	require.NoError(t, err)

	assert.Equal(t, 640, processed.Width)
	assert.Equal(t, 480, processed.Height)
}

func TestCreateThumbnail(t *testing.T) {
	src := testJPEG(t, 1600, 1200)

	thumb, err := newTestProcessor().CreateThumbnail(src)
	require.NoError(t, err)

	assert.Equal(t, 200, thumb.Width)
	assert.Equal(t, 150, thumb.Height)
}

func TestProcessImageRejectsEmptyInput(t *testing.T) {
	_, err := newTestProcessor().ProcessImage(nil)
	assert.ErrorIs(t, err, ErrImageProcessing)
}

func TestProcessImageRejectsOversizedInput(t *testing.T) {
	src := make([]byte, MaxSourceImageBytes+1)

	_, err := newTestProcessor().ProcessImage(src)
	assert.ErrorIs(t, err, ErrImageProcessing)
}

func TestProcessImageRejectsGarbage(t *testing.T) {
	_, err := newTestProcessor().ProcessImage([]byte("this is not an image"))
	assert.ErrorIs(t, err, ErrImageProcessing)
}
