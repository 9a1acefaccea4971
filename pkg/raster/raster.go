// Package raster provides the image operations behind QR-to-geometry
// conversion: decoding, luminance conversion, polarity inversion,
// foreground bounding boxes, cropping, and box resampling.
//
// All operations treat images as immutable: every transform returns a
// new Image and never mutates its receiver. Pixel data is a single
// 8-bit intensity channel in row-major order, which is all the grid
// detector ever needs.
package raster

import (
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // imaging covers the rest; webp is decode-only

	apperrors "github.com/vivekpd15/qr2scad/pkg/errors"
)

// Box is a half-open pixel rectangle: Left/Top inclusive, Right/Bottom
// exclusive, matching the minimal-bounding-box convention used by the
// grid detector.
type Box struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// Width returns the box width in pixels.
func (b Box) Width() int { return b.Right - b.Left }

// Height returns the box height in pixels.
func (b Box) Height() int { return b.Bottom - b.Top }

// Rect converts the box to an image.Rectangle.
func (b Box) Rect() image.Rectangle {
	return image.Rect(b.Left, b.Top, b.Right, b.Bottom)
}

// Image is a single-channel 8-bit raster with zero-origin bounds.
type Image struct {
	gray *image.Gray
}

// Load decodes the image file at path. Any format supported by the
// imaging library works (PNG is the reference format). Decode failures
// surface as INPUT_DECODE errors.
func Load(path string) (*Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInputDecode, err, "open %s", path)
	}
	return FromImage(img), nil
}

// Decode reads an image from an arbitrary byte stream using the
// registered codecs (PNG, JPEG, GIF, TIFF, BMP, WebP).
func Decode(r io.Reader) (*Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInputDecode, err, "decode image stream")
	}
	return FromImage(img), nil
}

// FromImage converts any decoded image to a single luminance channel.
// Inputs that are already grayscale pass through without reweighting.
func FromImage(src image.Image) *Image {
	if g, ok := src.(*image.Gray); ok {
		return &Image{gray: toGray(g)}
	}
	return &Image{gray: toGray(imaging.Grayscale(src))}
}

// Normalize applies the full normalizer contract: convert to luminance
// and invert polarity so code ink becomes the non-zero foreground.
func Normalize(src image.Image) *Image {
	return FromImage(src).Invert()
}

// Invert returns a copy with every intensity flipped (255 - v).
func (m *Image) Invert() *Image {
	return &Image{gray: toGray(imaging.Invert(m.gray))}
}

// Width returns the image width in pixels.
func (m *Image) Width() int { return m.gray.Rect.Dx() }

// Height returns the image height in pixels.
func (m *Image) Height() int { return m.gray.Rect.Dy() }

// At returns the intensity at (x, y). Coordinates are zero-origin.
func (m *Image) At(x, y int) uint8 {
	return m.gray.GrayAt(x, y).Y
}

// Pixels returns the intensities in raster order (row-major,
// left-to-right, top-to-bottom). The slice is a copy.
func (m *Image) Pixels() []uint8 {
	w, h := m.Width(), m.Height()
	out := make([]uint8, 0, w*h)
	for y := 0; y < h; y++ {
		out = append(out, m.gray.Pix[y*m.gray.Stride:y*m.gray.Stride+w]...)
	}
	return out
}

// BoundingBox returns the minimal rectangle containing every pixel
// with non-zero intensity. Returns an EMPTY_IMAGE error when the image
// has no foreground at all.
func (m *Image) BoundingBox() (Box, error) {
	w, h := m.Width(), m.Height()
	left, top := w, h
	right, bottom := -1, -1
	for y := 0; y < h; y++ {
		row := m.gray.Pix[y*m.gray.Stride : y*m.gray.Stride+w]
		for x, v := range row {
			if v == 0 {
				continue
			}
			if x < left {
				left = x
			}
			if x > right {
				right = x
			}
			if y < top {
				top = y
			}
			bottom = y
		}
	}
	if right < 0 {
		return Box{}, apperrors.New(apperrors.ErrCodeEmptyImage, "image has no foreground pixels")
	}
	return Box{Left: left, Top: top, Right: right + 1, Bottom: bottom + 1}, nil
}

// Crop returns the sub-image delimited by b.
func (m *Image) Crop(b Box) *Image {
	return &Image{gray: toGray(imaging.Crop(m.gray, b.Rect()))}
}

// Resize resamples the image to width x height using a box filter,
// which averages source pixels per destination pixel and tolerates
// minor pixel-boundary misalignment better than nearest-neighbor.
func (m *Image) Resize(width, height int) *Image {
	return &Image{gray: toGray(imaging.Resize(m.gray, width, height, imaging.Box))}
}

// ToImage exposes the raster as a stdlib image for encoding. The
// returned image is a copy; mutating it does not affect the receiver.
func (m *Image) ToImage() image.Image {
	return toGray(m.gray)
}

// toGray copies src into a fresh zero-origin *image.Gray.
func toGray(src image.Image) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Rect, src, b.Min, draw.Src)
	return dst
}
