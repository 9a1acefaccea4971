// Package pipeline provides the core conversion pipeline for qr2scad.
//
// The pipeline turns a QR-code bitmap into an OpenSCAD script in three
// stages:
//
//  1. Normalize: decode the bitmap, reduce it to a single luminance
//     channel and invert polarity so code ink is the foreground.
//  2. Detect: find the foreground bounding box, measure the
//     pixels-per-module scale from the top-left position pattern and
//     resample to one pixel per module.
//  3. Emit: generate the OpenSCAD script, one cube per dark module.
//
// The stages run strictly forward with no shared mutable state; a
// failure in any stage aborts the whole conversion. Generate mode
// optionally synthesizes the input bitmap first via the QR encoder.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Infile:  "code.png",
//	    Outfile: "code.scad",
//	    Render:  true,
//	}
//	result, err := runner.Convert(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Script)
package pipeline

import (
	"time"

	apperrors "github.com/vivekpd15/qr2scad/pkg/errors"
	"github.com/vivekpd15/qr2scad/pkg/grid"
	"github.com/vivekpd15/qr2scad/pkg/qrgen"
	"github.com/vivekpd15/qr2scad/pkg/scad"
)

// Default parameter values, shared by the CLI and library callers.
const (
	// DefaultBlockSize is the OpenSCAD module pitch.
	DefaultBlockSize = scad.DefaultBlockSize

	// DefaultBlockPadding keeps adjacent cubes from touching exactly.
	DefaultBlockPadding = scad.DefaultBlockPadding

	// DefaultPDPSide is the position-detection pattern width in
	// modules.
	DefaultPDPSide = grid.DefaultPDPSide
)

// Options configures a single conversion.
type Options struct {
	// Infile is the source bitmap path. In generate mode the
	// synthesized bitmap is saved here first.
	Infile string

	// Outfile is the destination path for the OpenSCAD script.
	Outfile string

	// Generate, when non-empty, synthesizes a QR bitmap encoding this
	// payload instead of requiring an existing input file.
	Generate string

	// Render appends a qr_code() invocation so the script renders
	// directly.
	Render bool

	// BlockSize is the module pitch in OpenSCAD units. Zero means
	// DefaultBlockSize.
	BlockSize float64

	// BlockPadding is subtracted from BlockSize to size each cube.
	// Negative values are rejected; zero with a zero BlockSize means
	// DefaultBlockPadding.
	BlockPadding float64

	// PDPSide overrides the position pattern width used for module
	// size detection. Zero means DefaultPDPSide.
	PDPSide int

	// QR configures the encoder for generate mode.
	QR qrgen.Options
}

// ValidateAndSetDefaults checks required fields and fills zero values
// with defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Infile == "" {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "input path is required")
	}
	if o.Outfile == "" {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "output path is required")
	}

	if o.BlockSize == 0 {
		o.BlockSize = DefaultBlockSize
		if o.BlockPadding == 0 {
			o.BlockPadding = DefaultBlockPadding
		}
	}
	if o.BlockSize < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "block size must be positive")
	}
	if o.BlockPadding < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "block padding cannot be negative")
	}
	if o.BlockPadding >= o.BlockSize {
		return apperrors.New(apperrors.ErrCodeInvalidInput,
			"block padding %g must be smaller than block size %g", o.BlockPadding, o.BlockSize)
	}

	if o.PDPSide == 0 {
		o.PDPSide = DefaultPDPSide
	}
	if o.PDPSide < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "position pattern side must be positive")
	}

	if o.Generate != "" {
		if o.QR.Level == "" {
			o.QR.Level = qrgen.DefaultOptions().Level
		}
		if o.QR.BoxSize == 0 {
			o.QR.BoxSize = qrgen.DefaultOptions().BoxSize
		}
	}
	return nil
}

// Result is the outcome of a successful conversion. Script is always
// populated, independent of the file write.
type Result struct {
	// Script is the full emitted OpenSCAD text.
	Script string

	// ModuleCount is the detected symbol side length in modules (the
	// emitted qr_code_size constant).
	ModuleCount int

	// DarkModules is the number of cube placements emitted.
	DarkModules int

	// Duration is the wall time of the conversion.
	Duration time.Duration
}
