// Package screenshot saves rendered frames as PNG files.
package screenshot

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// ErrPixelCount is returned when the pixel data does not hold width*height RGBA texels.
var ErrPixelCount = errors.New("screenshot: pixel data size mismatch")

const timestampLayout = "2006-01-02_15-04-05"

// Capture writes screenshots into a directory with a common file prefix.
type Capture struct {
	dir    string
	prefix string
	now    func() time.Time
}

// New creates a capture writing <dir>/<prefix>_<timestamp>.png files.
// An empty dir writes to the working directory.
func New(dir, prefix string) *Capture {
	return &Capture{
		dir:    dir,
		prefix: prefix,
		now:    time.Now,
	}
}

// FromPixels builds an image from RGBA rows stored bottom row first, as
// OpenGL returns them.
func FromPixels(pixels []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 || len(pixels) != width*height*4 {
		return nil, fmt.Errorf("%w: %dx%d needs %d bytes, got %d",
			ErrPixelCount, width, height, width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}
	return img, nil
}

// SavePixels flips and saves a frame read from the framebuffer.
func (c *Capture) SavePixels(pixels []byte, width, height int) (string, error) {
	img, err := FromPixels(pixels, width, height)
	if err != nil {
		return "", err
	}
	return c.Save(img)
}

// Save encodes img as PNG and returns the written path.
func (c *Capture) Save(img image.Image) (string, error) {
	if c.dir != "" {
		if err := os.MkdirAll(c.dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	path := c.Filename()
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return path, nil
}

// Filename returns the path the next Save would write.
func (c *Capture) Filename() string {
	name := fmt.Sprintf("%s_%s.png", c.prefix, c.now().Format(timestampLayout))
	if c.dir == "" {
		return name
	}
	return filepath.Join(c.dir, name)
}
