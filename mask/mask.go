// Package mask applies the single fixed mask pattern this symbol uses.
//
// A full ISO/IEC 18004 encoder chooses the best of 8 mask patterns by
// penalty score; that search is out of scope here, so the format-info
// string this package's Number is embedded in is always fixed accordingly.
package mask

// Number is the mask pattern number recorded in the symbol's format info.
// Pattern 1 inverts the even rows; the biasing driver applies that rule
// itself, using Invert's row-odd bit in complemented form. Number only
// feeds the format-info bit computation.
const Number uint8 = 1

// Invert reports whether row y is odd: the per-module mask bit the biasing
// driver records. The modules pattern 1 inverts are those where it is false.
func Invert(x, y int) bool {
	return y%2 == 1
}
