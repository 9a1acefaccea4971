// Package scad emits OpenSCAD geometry for a QR module grid.
//
// The emitted script contains exactly one unit-cube macro, one
// aggregate macro placing a cube per dark module, a size constant, and
// optionally an invocation of the aggregate so the script renders
// directly. Emission is pure text generation; writing the script to
// disk is the caller's concern.
package scad

import (
	"strconv"
	"strings"

	"github.com/vivekpd15/qr2scad/pkg/grid"
)

const (
	// DefaultBlockSize is the module pitch in OpenSCAD units. QR
	// printing guidance suggests at least four printer dots per
	// module, so physical scaling is left to the consumer via the
	// emitted size constant.
	DefaultBlockSize = 1.0

	// DefaultBlockPadding shrinks each cube below the module pitch.
	// Cubes that touch exactly at their boundary produce "not a valid
	// 2-manifold" failures on STL export.
	DefaultBlockPadding = 0.01

	// DotModule is the name of the emitted unit-cube macro.
	DotModule = "_qr_code_dot"

	// CodeModule is the name of the emitted aggregate macro.
	CodeModule = "qr_code"

	// SizeConstant is the name of the emitted module-count constant.
	SizeConstant = "qr_code_size"
)

// Options controls geometry emission.
type Options struct {
	// BlockSize is the module pitch in OpenSCAD units.
	BlockSize float64

	// BlockPadding is subtracted from BlockSize to get the cube side,
	// keeping adjacent cubes from touching.
	BlockPadding float64

	// Render appends an invocation of the aggregate macro so the
	// script is directly renderable.
	Render bool
}

// DefaultOptions returns the standard emission options.
func DefaultOptions() Options {
	return Options{BlockSize: DefaultBlockSize, BlockPadding: DefaultBlockPadding}
}

// BlockSide is the actual cube side length: BlockSize - BlockPadding.
func (o Options) BlockSide() float64 {
	return o.BlockSize - o.BlockPadding
}

// Emit renders the grid as an OpenSCAD script.
//
// Placement maps grid row 0 to the top edge: image rows grow downward
// while OpenSCAD y grows upward, so the row term is negated, and the
// whole pattern is centered on the origin.
func Emit(g *grid.Grid, opts Options) string {
	side := fnum(opts.BlockSide())
	n := g.Side()
	half := float64(n) / 2

	var b strings.Builder
	b.WriteString("module " + DotModule + "() {\n")
	b.WriteString("    cube([" + side + ", " + side + ", 1]);\n")
	b.WriteString("}\n")

	b.WriteString("module " + CodeModule + "() {\n")
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			if !g.Dark(row, col) {
				continue
			}
			x := opts.BlockSize*float64(col) - half
			y := -opts.BlockSize*float64(row) + half
			b.WriteString("    translate([" + fnum(x) + ", " + fnum(y) + ", 0]) " + DotModule + "();\n")
		}
	}
	b.WriteString("}\n")

	b.WriteString(SizeConstant + " = " + strconv.Itoa(n) + ";")
	if opts.Render {
		b.WriteString("\n" + CodeModule + "();")
	}
	return b.String()
}

// fnum formats a coordinate without trailing zeros ("10", "-10.5").
func fnum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
