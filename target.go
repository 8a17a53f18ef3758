package soft3d

import (
	"image"
	"image/color"

	"github.com/gogpu/gputypes"
)

// ImageTarget adapts a standard library *image.RGBA as a color target.
// It lets a pipeline whose pixel type is color.RGBA render straight into
// an image that can then be encoded or displayed by the caller.
//
// The pixel format is RGBA8, reported via Format for interoperability
// with GoGPU texture tooling.
type ImageTarget struct {
	img *image.RGBA
}

// NewImageTarget creates an image-backed target of the given dimensions.
func NewImageTarget(width, height int) *ImageTarget {
	return &ImageTarget{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// WrapImage adapts an existing image as a target. Rendering writes into
// the image in place. The image's Min point may be non-zero; target
// coordinates are relative to it.
func WrapImage(img *image.RGBA) *ImageTarget {
	return &ImageTarget{img: img}
}

// Image returns the underlying image.
func (t *ImageTarget) Image() *image.RGBA { return t.img }

// Format returns the pixel format of the target.
func (t *ImageTarget) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Width returns the target width in pixels.
func (t *ImageTarget) Width() int { return t.img.Bounds().Dx() }

// Height returns the target height in pixels.
func (t *ImageTarget) Height() int { return t.img.Bounds().Dy() }

// Get returns the pixel at (x, y).
func (t *ImageTarget) Get(x, y int) color.RGBA {
	b := t.img.Bounds()
	return t.img.RGBAAt(b.Min.X+x, b.Min.Y+y)
}

// Set stores the pixel at (x, y).
func (t *ImageTarget) Set(x, y int, v color.RGBA) {
	b := t.img.Bounds()
	t.img.SetRGBA(b.Min.X+x, b.Min.Y+y, v)
}
