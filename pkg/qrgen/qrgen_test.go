package qrgen

import (
	"path/filepath"
	"testing"

	apperrors "github.com/vivekpd15/qr2scad/pkg/errors"
	"github.com/vivekpd15/qr2scad/pkg/raster"
)

func TestBuildDimensions(t *testing.T) {
	// "Hi Mom" fits a version-1 symbol (21 modules) at low EC.
	opts := DefaultOptions()
	img, err := Build("Hi Mom", opts)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	b := img.Bounds()
	if b.Dx() != b.Dy() {
		t.Fatalf("image is %dx%d, want square", b.Dx(), b.Dy())
	}
	// 21 modules + 4 quiet-zone modules per side, 10px each.
	if want := (21 + 8) * opts.BoxSize; b.Dx() != want {
		t.Errorf("side = %dpx, want %d", b.Dx(), want)
	}
}

func TestBuildNoBorder(t *testing.T) {
	opts := DefaultOptions()
	opts.Border = 0
	img, err := Build("Hi Mom", opts)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if want := 21 * opts.BoxSize; img.Bounds().Dx() != want {
		t.Errorf("side = %dpx, want %d", img.Bounds().Dx(), want)
	}

	// Without a quiet zone the top-left pixel sits inside the
	// position-detection pattern.
	m := raster.FromImage(img)
	if m.At(0, 0) != 0 {
		t.Errorf("top-left pixel = %d, want dark (0)", m.At(0, 0))
	}
}

func TestBuildUnknownLevel(t *testing.T) {
	_, err := Build("Hi Mom", Options{Level: "extreme", BoxSize: 10})
	if !apperrors.Is(err, apperrors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	img, err := Build("Hi Mom", DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	path := filepath.Join(t.TempDir(), "code.png")
	if err := Save(img, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := raster.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Width() != img.Bounds().Dx() || loaded.Height() != img.Bounds().Dy() {
		t.Errorf("reloaded dims = %dx%d, want %dx%d",
			loaded.Width(), loaded.Height(), img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestSaveBadPath(t *testing.T) {
	img, err := Build("Hi Mom", DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	err = Save(img, filepath.Join(t.TempDir(), "missing", "dir", "code.png"))
	if !apperrors.Is(err, apperrors.ErrCodeFileWrite) {
		t.Errorf("error = %v, want FILE_WRITE", err)
	}
}
