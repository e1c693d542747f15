// Package template builds the fixed structural skeleton of a QR symbol —
// finder patterns, separators, timing patterns, alignment patterns, the
// dark module, and the reserved format/version-info areas — and provides
// the zig-zag Cursor that walks every remaining ("open") module in the
// order QR symbols place codeword bits.
package template

import "github.com/andrewyur/qart/qrversion"

// State is a module's current classification.
type State byte

const (
	// Open modules have not yet been assigned a colour; the cursor walks
	// these to place codeword bits.
	Open State = iota
	Black
	White
	// Reserved modules belong to the format-info or version-info areas
	// and are filled in later, after biasing, by the driver.
	Reserved
)

// Grid is the module matrix for one QR version, pre-populated with every
// function pattern the standard mandates.
type Grid struct {
	size  int
	cells []State
}

// NewGrid builds the function-pattern skeleton for version v: finder
// patterns with separators, alignment patterns, timing patterns, the dark
// module, and the reserved format-info (and, for v >= 7, version-info)
// areas. Every other module starts Open.
func NewGrid(v qrversion.Version) *Grid {
	size := v.SideLength()
	g := &Grid{size: size, cells: make([]State, size*size)}

	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			black := !(((x == 1 || x == 5) && y >= 1 && y <= 5) ||
				((y == 1 || y == 5) && x >= 1 && x <= 5) ||
				x == 7 || y == 7)
			g.fill(x, y, black)
			g.fill(x, (size-1)-y, black)
			g.fill((size-1)-x, y, black)
		}
	}

	if centres := v.AlignmentPatternCentres(); len(centres) > 0 {
		for _, col := range centres {
			for _, row := range centres {
				if !g.IsOpen(col, row) {
					continue
				}
				for x := 0; x < 5; x++ {
					for y := 0; y < 5; y++ {
						black := !(((x == 1 || x == 3) && y >= 1 && y <= 3) ||
							((y == 1 || y == 3) && x >= 1 && x <= 3))
						g.fill((col-2)+x, (row-2)+y, black)
					}
				}
			}
		}
	}

	for i := 8; i < size-8; i++ {
		black := i%2 == 0
		if g.IsOpen(i, 6) {
			g.fill(i, 6, black)
			g.fill(6, i, black)
		}
	}

	for i := 0; i < 9; i++ {
		if g.IsOpen(i, 8) {
			g.reserve(i, 8)
			g.reserve(8, i)
		}
		if i != 8 {
			if i == 7 {
				g.fill(8, (size-1)-i, true)
			} else {
				g.reserve(8, (size-1)-i)
			}
			g.reserve((size-1)-i, 8)
		}
	}

	if v > 6 {
		for i := 0; i < 3; i++ {
			for j := 0; j < 6; j++ {
				g.reserve(j, ((size-1)-8)-i)
				g.reserve(((size-1)-8)-i, j)
			}
		}
	}

	return g
}

// Size returns the symbol's side length in modules.
func (g *Grid) Size() int { return g.size }

func (g *Grid) index(x, y int) int { return y*g.size + x }

// At returns the current state of module (x, y).
func (g *Grid) At(x, y int) State { return g.cells[g.index(x, y)] }

// IsOpen reports whether module (x, y) lies inside the symbol and is still
// unassigned.
func (g *Grid) IsOpen(x, y int) bool {
	if x < 0 || y < 0 || x >= g.size || y >= g.size {
		return false
	}
	return g.At(x, y) == Open
}

// IsReserved reports whether module (x, y) belongs to the format/version
// info area.
func (g *Grid) IsReserved(x, y int) bool { return g.At(x, y) == Reserved }

// fill sets (x, y) to Black or White, marking it no longer Open.
func (g *Grid) fill(x, y int, black bool) {
	if black {
		g.cells[g.index(x, y)] = Black
	} else {
		g.cells[g.index(x, y)] = White
	}
}

// Fill is the exported form of fill, used by the cursor and the biasing
// driver to paint a codeword or format/version-info module.
func (g *Grid) Fill(x, y int, black bool) { g.fill(x, y, black) }

func (g *Grid) reserve(x, y int) { g.cells[g.index(x, y)] = Reserved }
