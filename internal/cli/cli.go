// Package cli implements the qr2scad command-line interface.
//
// qr2scad is a single-verb tool, so the root command does the work:
// it converts a QR-code bitmap to an OpenSCAD script, optionally
// synthesizing the bitmap first via --generate. Logging goes to
// stderr through charmbracelet/log; -v echoes the emitted script to
// stdout, -vv adds debug-level logs.
//
// # Example
//
//	import "github.com/vivekpd15/qr2scad/internal/cli"
//
//	func main() {
//	    if err := cli.Execute(context.Background()); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vivekpd15/qr2scad/pkg/buildinfo"
	"github.com/vivekpd15/qr2scad/pkg/pipeline"
	"github.com/vivekpd15/qr2scad/pkg/qrgen"
)

// appName is used for the config directory and command name.
const appName = "qr2scad"

// convertOpts holds the command-line flags for the conversion.
type convertOpts struct {
	render       bool    // append qr_code() invocation
	generate     string  // payload to synthesize instead of reading infile
	verbosity    int     // -v echoes the script, -vv adds debug logs
	configPath   string  // explicit config file path
	blockSize    float64 // OpenSCAD module pitch
	blockPadding float64 // cube shrink to stay manifold
	pdpSide      int     // position pattern width in modules
	level        string  // generate-mode error-correction level
	boxSize      int     // generate-mode pixels per module
	border       int     // generate-mode quiet zone toggle
}

// Execute runs the qr2scad CLI. Any returned error has already been
// printed by cobra; the caller only maps it to an exit status.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand builds the root command with all flags registered.
func NewRootCommand() *cobra.Command {
	opts := convertOpts{
		blockSize:    pipeline.DefaultBlockSize,
		blockPadding: pipeline.DefaultBlockPadding,
		pdpSide:      pipeline.DefaultPDPSide,
		level:        qrgen.DefaultOptions().Level,
		boxSize:      qrgen.DefaultOptions().BoxSize,
		border:       qrgen.DefaultOptions().Border,
	}

	cmd := &cobra.Command{
		Use:   appName + " [flags] <infile> <outfile>",
		Short: "Convert QR code images to OpenSCAD",
		Long: `qr2scad converts a QR code bitmap into an OpenSCAD script that places
one cube per dark module. Subtract the qr_code() module from a flat
surface with difference(), print, and ink the holes.`,
		Version:      buildinfo.Version,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, &opts)
		},
	}
	cmd.SetVersionTemplate(buildinfo.Template())

	cmd.Flags().BoolVarP(&opts.render, "render", "r", false, "append a qr_code() invocation so the script renders directly")
	cmd.Flags().StringVarP(&opts.generate, "generate", "g", "", "generate a QR bitmap encoding this text and save it to <infile>")
	cmd.Flags().CountVarP(&opts.verbosity, "verbose", "v", "echo the script to stdout; repeat for debug logging")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/qr2scad/qr2scad.toml)")
	cmd.Flags().Float64Var(&opts.blockSize, "block-size", opts.blockSize, "module pitch in OpenSCAD units")
	cmd.Flags().Float64Var(&opts.blockPadding, "block-padding", opts.blockPadding, "gap between adjacent cubes")
	cmd.Flags().IntVar(&opts.pdpSide, "pdp-side", opts.pdpSide, "position pattern width in modules")
	cmd.Flags().StringVar(&opts.level, "level", opts.level, "generate-mode error correction: low, medium, high, highest")
	cmd.Flags().IntVar(&opts.boxSize, "box-size", opts.boxSize, "generate-mode pixels per module")
	cmd.Flags().IntVar(&opts.border, "border", opts.border, "generate-mode quiet zone (0 disables)")

	return cmd
}

func runConvert(cmd *cobra.Command, args []string, opts *convertOpts) error {
	level := charmlog.InfoLevel
	if opts.verbosity >= 2 {
		level = charmlog.DebugLevel
	}
	logger := newLogger(cmd.ErrOrStderr(), level)

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(logger)
	result, err := runner.Convert(cmd.Context(), buildOptions(cmd, cfg, args, opts))
	if err != nil {
		return err
	}

	printSummary(cmd.ErrOrStderr(), result, args[1])
	if opts.verbosity >= 1 {
		return echoScript(cmd.OutOrStdout(), result.Script)
	}
	return nil
}

// buildOptions merges flag values over config-file values over
// defaults. A config value only applies when its flag was left
// untouched on the command line.
func buildOptions(cmd *cobra.Command, cfg Config, args []string, opts *convertOpts) pipeline.Options {
	popts := pipeline.Options{
		Infile:       args[0],
		Outfile:      args[1],
		Generate:     opts.generate,
		Render:       opts.render,
		BlockSize:    opts.blockSize,
		BlockPadding: opts.blockPadding,
		PDPSide:      opts.pdpSide,
		QR: qrgen.Options{
			Level:   opts.level,
			BoxSize: opts.boxSize,
			Border:  opts.border,
		},
	}

	f := cmd.Flags()
	if !f.Changed("block-size") && cfg.Block.Size != nil {
		popts.BlockSize = *cfg.Block.Size
	}
	if !f.Changed("block-padding") && cfg.Block.Padding != nil {
		popts.BlockPadding = *cfg.Block.Padding
	}
	if !f.Changed("pdp-side") && cfg.Detect.PDPSide != nil {
		popts.PDPSide = *cfg.Detect.PDPSide
	}
	if !f.Changed("level") && cfg.Generate.Level != nil {
		popts.QR.Level = *cfg.Generate.Level
	}
	if !f.Changed("box-size") && cfg.Generate.BoxSize != nil {
		popts.QR.BoxSize = *cfg.Generate.BoxSize
	}
	if !f.Changed("border") && cfg.Generate.Border != nil {
		popts.QR.Border = *cfg.Generate.Border
	}
	return popts
}
