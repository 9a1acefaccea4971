package pipeline

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	apperrors "github.com/vivekpd15/qr2scad/pkg/errors"
	"github.com/vivekpd15/qr2scad/pkg/grid"
	"github.com/vivekpd15/qr2scad/pkg/qrgen"
	"github.com/vivekpd15/qr2scad/pkg/raster"
	"github.com/vivekpd15/qr2scad/pkg/scad"
)

// Runner executes conversions. It is stateless apart from its logger;
// a single Runner can serve any number of sequential conversions.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger falls back to log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Convert runs the full pipeline: optional generate step, then
// normalize, detect, emit and write. The emitted script is returned in
// the Result even though it is also written to opts.Outfile.
//
// Conversion is all-or-nothing: any stage failure aborts with a typed
// error and no Result.
func (r *Runner) Convert(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	if opts.Generate != "" {
		if err := r.generate(opts); err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.Logger.Debug("loading image", "path", opts.Infile)
	src, err := raster.Load(opts.Infile)
	if err != nil {
		return nil, err
	}
	norm := src.Invert()

	detector := grid.NewDetector(grid.PDPEdgeSizer{PDPSide: opts.PDPSide})
	g, err := detector.Detect(norm)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("detected module grid", "modules", g.Side(), "dark", g.DarkCount())
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	script := scad.Emit(g, scad.Options{
		BlockSize:    opts.BlockSize,
		BlockPadding: opts.BlockPadding,
		Render:       opts.Render,
	})

	if err := writeScript(opts.Outfile, script); err != nil {
		return nil, err
	}

	result := &Result{
		Script:      script,
		ModuleCount: g.Side(),
		DarkModules: g.DarkCount(),
		Duration:    time.Since(start),
	}
	r.Logger.Info("wrote OpenSCAD script",
		"path", opts.Outfile,
		"modules", result.ModuleCount,
		"dark", result.DarkModules,
		"elapsed", result.Duration.Round(time.Millisecond))
	return result, nil
}

// generate synthesizes the input bitmap from the payload.
func (r *Runner) generate(opts Options) error {
	r.Logger.Info("generating QR code", "payload", opts.Generate, "path", opts.Infile)
	img, err := qrgen.Build(opts.Generate, opts.QR)
	if err != nil {
		return err
	}
	return qrgen.Save(img, opts.Infile)
}

// writeScript writes the script to path with a scoped handle, so the
// destination is closed even when the write fails partway.
func writeScript(path, script string) error {
	f, err := os.Create(path)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeFileWrite, err, "create %s", path)
	}
	defer f.Close()

	if _, err := io.WriteString(f, script); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeFileWrite, err, "write %s", path)
	}
	if err := f.Close(); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeFileWrite, err, "close %s", path)
	}
	return nil
}
