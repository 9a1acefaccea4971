// Package grid extracts the module grid of a QR symbol from a
// normalized raster image.
//
// Detection works on images prepared by [raster.Normalize]: single
// channel, polarity inverted so code ink is the non-zero foreground.
// The detector crops to the foreground bounding box, measures the
// pixels-per-module scale from the top-left position-detection
// pattern, resamples to one pixel per module, and thresholds the
// result into a boolean grid.
package grid

// Grid is a square boolean module grid. true means a dark (ink)
// module.
type Grid struct {
	side int
	dark []bool
}

// New creates an all-light grid with the given side length in modules.
func New(side int) *Grid {
	return &Grid{side: side, dark: make([]bool, side*side)}
}

// Side returns the side length in modules.
func (g *Grid) Side() int { return g.side }

// Dark reports whether the module at (row, col) is dark.
func (g *Grid) Dark(row, col int) bool {
	return g.dark[row*g.side+col]
}

// SetDark marks the module at (row, col) as dark.
func (g *Grid) SetDark(row, col int) {
	g.dark[row*g.side+col] = true
}

// DarkCount returns the number of dark modules.
func (g *Grid) DarkCount() int {
	n := 0
	for _, d := range g.dark {
		if d {
			n++
		}
	}
	return n
}

// DarkModules returns the (row, col) pairs of all dark modules in
// raster order.
func (g *Grid) DarkModules() [][2]int {
	out := make([][2]int, 0, g.DarkCount())
	for row := 0; row < g.side; row++ {
		for col := 0; col < g.side; col++ {
			if g.Dark(row, col) {
				out = append(out, [2]int{row, col})
			}
		}
	}
	return out
}
