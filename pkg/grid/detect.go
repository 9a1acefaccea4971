package grid

import (
	"math"

	apperrors "github.com/vivekpd15/qr2scad/pkg/errors"
	"github.com/vivekpd15/qr2scad/pkg/raster"
)

// DefaultPDPSide is the side length of a QR position-detection pattern
// in modules. The outer ring of the top-left pattern gives the
// pixels-per-module scale.
const DefaultPDPSide = 7

// Sizer measures the module size in source pixels of a cropped,
// normalized QR image. It is an interface so the edge-scan heuristic
// below can later be replaced by a more robust fiducial detector
// without touching the rest of the pipeline.
type Sizer interface {
	ModuleSize(img *raster.Image) (int, error)
}

// PDPEdgeSizer measures module size by raster-scanning the cropped
// image to the first zero-intensity pixel. The crop starts inside the
// top-left position-detection pattern, so the initial run of
// foreground pixels spans exactly PDPSide modules; its length divided
// by PDPSide is the module size.
//
// This is a heuristic, not a full fiducial detector: it assumes the
// top-left pattern is undamaged and that no noise or anti-aliasing
// breaks the initial run early.
type PDPEdgeSizer struct {
	// PDPSide is the position pattern width in modules. Zero means
	// DefaultPDPSide.
	PDPSide int
}

// ModuleSize implements Sizer.
func (s PDPEdgeSizer) ModuleSize(img *raster.Image) (int, error) {
	pdp := s.PDPSide
	if pdp <= 0 {
		pdp = DefaultPDPSide
	}

	first := -1
	for i, v := range img.Pixels() {
		if v == 0 {
			first = i
			break
		}
	}
	if first < 0 {
		return 0, apperrors.New(apperrors.ErrCodeModuleSize,
			"no light pixel found; cannot measure the position pattern edge")
	}

	// Round half-up so crops that are off by less than half a module
	// still measure correctly.
	size := int(math.Round(float64(first) / float64(pdp)))
	if size == 0 {
		return 0, apperrors.New(apperrors.ErrCodeModuleSize,
			"detected module size is zero (first light pixel at offset %d)", first)
	}
	return size, nil
}

// Detector turns a normalized image into a module grid.
type Detector struct {
	// Sizer measures pixels per module. Nil means PDPEdgeSizer with
	// the standard 7-module pattern width.
	Sizer Sizer
}

// NewDetector creates a detector with the given sizer strategy.
func NewDetector(s Sizer) *Detector {
	if s == nil {
		s = PDPEdgeSizer{}
	}
	return &Detector{Sizer: s}
}

// Detect extracts the module grid from a normalized image.
//
// It fails with EMPTY_IMAGE when the image has no foreground,
// NON_SQUARE_INPUT when the foreground bounding box is not square, and
// MODULE_SIZE when the pixels-per-module scale cannot be measured.
func (d *Detector) Detect(img *raster.Image) (*Grid, error) {
	box, err := img.BoundingBox()
	if err != nil {
		return nil, err
	}

	crop := img.Crop(box)
	if crop.Width() != crop.Height() {
		return nil, apperrors.New(apperrors.ErrCodeNonSquareInput,
			"the QR code should be a square, but we found it to be %dx%d",
			crop.Width(), crop.Height())
	}

	sizer := d.Sizer
	if sizer == nil {
		sizer = PDPEdgeSizer{}
	}
	size, err := sizer.ModuleSize(crop)
	if err != nil {
		return nil, err
	}

	count := int(math.Round(float64(crop.Width()) / float64(size)))
	if count < 1 {
		return nil, apperrors.New(apperrors.ErrCodeModuleSize,
			"module size %dpx exceeds the %dpx symbol", size, crop.Width())
	}

	// One pixel per module. Box resampling averages each module's
	// source pixels, so a module reads as dark iff it contains ink.
	scaled := crop.Resize(count, count)

	g := New(count)
	for row := 0; row < count; row++ {
		for col := 0; col < count; col++ {
			if scaled.At(col, row) != 0 {
				g.SetDark(row, col)
			}
		}
	}
	return g, nil
}
