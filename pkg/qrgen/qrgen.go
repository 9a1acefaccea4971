// Package qrgen synthesizes QR bitmaps for generate mode.
//
// It wraps the go-qrcode encoder behind the small collaborator surface
// the pipeline needs: build a scannable symbol with intact
// position-detection patterns, and save it as an image file.
package qrgen

import (
	"image"

	"github.com/disintegration/imaging"
	qrcode "github.com/skip2/go-qrcode"

	apperrors "github.com/vivekpd15/qr2scad/pkg/errors"
)

// Options controls QR synthesis.
type Options struct {
	// Level is the error-correction level: "low", "medium", "high" or
	// "highest".
	Level string

	// BoxSize is the rendered size of one module in pixels.
	BoxSize int

	// Border toggles the quiet zone around the symbol. Zero disables
	// it; any positive value keeps the encoder's standard 4-module
	// quiet zone.
	Border int
}

// DefaultOptions matches the reference encoder settings: low error
// correction, 10 pixels per module, standard quiet zone.
func DefaultOptions() Options {
	return Options{Level: "low", BoxSize: 10, Border: 4}
}

var levels = map[string]qrcode.RecoveryLevel{
	"low":     qrcode.Low,
	"medium":  qrcode.Medium,
	"high":    qrcode.High,
	"highest": qrcode.Highest,
}

// Build encodes payload as a QR symbol image.
func Build(payload string, opts Options) (image.Image, error) {
	if opts.BoxSize <= 0 {
		opts.BoxSize = DefaultOptions().BoxSize
	}
	level, ok := levels[opts.Level]
	if !ok {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput,
			"unknown error-correction level %q (want low, medium, high or highest)", opts.Level)
	}

	q, err := qrcode.New(payload, level)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeEncode, err, "encode %q", payload)
	}
	q.DisableBorder = opts.Border == 0

	// A negative size renders each module at BoxSize pixels instead
	// of fitting a fixed canvas.
	return q.Image(-opts.BoxSize), nil
}

// Save writes the image to path; the format follows the file
// extension (PNG for .png).
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeFileWrite, err, "save %s", path)
	}
	return nil
}
