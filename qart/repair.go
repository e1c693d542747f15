package qart

import (
	"github.com/andrewyur/qart/block"
	"github.com/andrewyur/qart/internal/mathx"
)

// repairNumericOverflow repeatedly scans every block's numeric-filler run,
// concatenated in block order, in groups of 10/7/4 bits (full triplets,
// then one optional 2- or 1-digit tail group), and resets one offending
// bit per out-of-range group until no group exceeds its legal bound
// (999/99/9). Each pass only reads and resets; it never re-derives the
// group boundaries, since the numeric run's length never changes.
func repairNumericOverflow(blocks []*block.Block) {
	groups := numericGroups(blocks)
	if len(groups) == 0 {
		return
	}

	rotation := 0
	for {
		var violations []bitCoord

		for _, g := range groups {
			value := 0
			for _, c := range g {
				value = value<<1 | int(blocks[c.block].Get(c.bit))
			}
			if value <= limitFor(len(g)) {
				continue
			}
			k := mathx.MinInt(len(g), 5)
			violations = append(violations, g[rotation%k])
			rotation++
		}

		if len(violations) == 0 {
			break
		}
		for _, v := range violations {
			blocks[v.block].Reset(v.bit)
		}
	}
}

func limitFor(groupLen int) int {
	switch groupLen {
	case 10:
		return 999
	case 7:
		return 99
	case 4:
		return 9
	default:
		return (1 << uint(groupLen)) - 1
	}
}

// numericGroups concatenates every block's numeric-filler run, in block
// order, and splits the result into groups of 10 bits with one trailing
// group of the remainder (0, 4, or 7 bits), mirroring how the payload
// encoder sized its numeric-mode filler.
func numericGroups(blocks []*block.Block) [][]bitCoord {
	var all []bitCoord
	for bi, b := range blocks {
		for _, n := range b.IterNums() {
			all = append(all, bitCoord{block: bi, bit: n.Index})
		}
	}
	if len(all) == 0 {
		return nil
	}

	tail := len(all) % 10
	full := len(all) / 10

	groups := make([][]bitCoord, 0, full+1)
	pos := 0
	for i := 0; i < full; i++ {
		groups = append(groups, all[pos:pos+10])
		pos += 10
	}
	if tail > 0 {
		groups = append(groups, all[pos:pos+tail])
	}
	return groups
}
