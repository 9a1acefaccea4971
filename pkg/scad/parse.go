package scad

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// Placement identifies one dark module recovered from an emitted
// script.
type Placement struct {
	Row int
	Col int
}

var (
	sizeRe      = regexp.MustCompile(SizeConstant + ` = (\d+);`)
	translateRe = regexp.MustCompile(`translate\(\[([^,]+), ([^,]+), 0\]\) ` + DotModule + `\(\);`)
)

// ParseSize extracts the module-count constant from an emitted script.
func ParseSize(script string) (int, error) {
	m := sizeRe.FindStringSubmatch(script)
	if m == nil {
		return 0, fmt.Errorf("no %s constant in script", SizeConstant)
	}
	return strconv.Atoi(m[1])
}

// ParsePlacements inverts the placement arithmetic of [Emit],
// recovering the (row, col) of every emitted cube. blockSize must
// match the BlockSize the script was emitted with.
//
// Together with [Emit] this forms a round-trip: emitting a grid and
// parsing the result yields exactly the grid's dark modules.
func ParsePlacements(script string, blockSize float64) ([]Placement, error) {
	n, err := ParseSize(script)
	if err != nil {
		return nil, err
	}
	half := float64(n) / 2

	matches := translateRe.FindAllStringSubmatch(script, -1)
	out := make([]Placement, 0, len(matches))
	for _, m := range matches {
		x, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return nil, fmt.Errorf("bad x coordinate %q: %w", m[1], err)
		}
		y, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return nil, fmt.Errorf("bad y coordinate %q: %w", m[2], err)
		}

		col := (x + half) / blockSize
		row := (half - y) / blockSize
		p := Placement{Row: int(math.Round(row)), Col: int(math.Round(col))}
		if math.Abs(row-float64(p.Row)) > 1e-9 || math.Abs(col-float64(p.Col)) > 1e-9 {
			return nil, fmt.Errorf("placement (%v, %v) is not on the module grid", x, y)
		}
		if p.Row < 0 || p.Row >= n || p.Col < 0 || p.Col >= n {
			return nil, fmt.Errorf("placement (%d, %d) outside %dx%d grid", p.Row, p.Col, n, n)
		}
		out = append(out, p)
	}
	return out, nil
}
