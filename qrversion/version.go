// Package qrversion holds the per-version constant tables a QR symbol needs:
// side length, Reed-Solomon block layout, alignment-pattern centres, and the
// format-info/version-info bit strings. All of it is specific to error
// correction level Low, the only level supported here.
package qrversion

import (
	"fmt"

	"github.com/andrewyur/qart/qrcodeecc"
)

// Version is a QR version number, valid in [Min, Max].
type Version uint8

const (
	Min Version = 1
	Max Version = 40
)

// New validates and returns a Version.
func New(v int) (Version, error) {
	if v < int(Min) || v > int(Max) {
		return 0, fmt.Errorf("qrversion: version %d out of range [%d, %d]", v, Min, Max)
	}
	return Version(v), nil
}

// SideLength returns the symbol's side length in modules: 4V+17.
func (v Version) SideLength() int {
	return int(v)*4 + 17
}

// eccCodewordsPerBlock and numECBlocks are the qrcodeecc.Low column of the
// standard's per-version error correction tables (index 0 is unused
// padding so the version number can index directly). Only Low is
// implemented, so Layout checks the caller's level against
// qrcodeecc.Low.Ordinal() before indexing either table.
var eccCodewordsPerBlock = [41]int{
	0, 7, 10, 15, 20, 26, 18, 20, 24, 30, 18,
	20, 24, 26, 30, 22, 24, 28, 30, 28, 28,
	28, 28, 30, 30, 26, 28, 30, 30, 30, 30,
	30, 30, 30, 30, 30, 30, 30, 30, 30, 30,
}

var numECBlocks = [41]int{
	0, 1, 1, 1, 1, 1, 2, 2, 2, 2, 4,
	4, 4, 4, 4, 6, 6, 6, 6, 7, 8,
	8, 9, 9, 10, 12, 12, 12, 13, 14, 15,
	16, 17, 18, 19, 19, 20, 21, 22, 24, 25,
}

// numRawDataModules returns the number of bits available for data + ECC in
// a symbol of this version, before splitting into codewords. Ported from
// the standard closed-form formula (every function module subtracted out
// analytically rather than counted).
func (v Version) numRawDataModules() int {
	ver := int(v)
	result := (16*ver+128)*ver + 64
	if ver >= 2 {
		numalign := ver/7 + 2
		result -= (25*numalign-10)*numalign - 55
		if ver >= 7 {
			result -= 36
		}
	}
	return result
}

// BlockLayout describes how a version's data codewords split across one or
// two groups of Reed-Solomon blocks. Group2 blocks carry exactly one more
// data byte than Group1 blocks; either group may be empty except Group1.
type BlockLayout struct {
	ECCBytesPerBlock int
	Group1Blocks     int
	Group1DataBytes  int
	Group2Blocks     int
	Group2DataBytes  int
}

// TotalDataBytes is the number of data codewords (excluding ECC) carried by
// the whole symbol.
func (l BlockLayout) TotalDataBytes() int {
	return l.Group1Blocks*l.Group1DataBytes + l.Group2Blocks*l.Group2DataBytes
}

// TotalBlocks is Group1Blocks + Group2Blocks.
func (l BlockLayout) TotalBlocks() int {
	return l.Group1Blocks + l.Group2Blocks
}

// Layout computes this version's Reed-Solomon block layout at the given
// error correction level. Only qrcodeecc.Low is implemented; any other
// level's ordinal is rejected rather than silently indexing the Low table.
func (v Version) Layout(level qrcodeecc.Level) (BlockLayout, error) {
	if level.Ordinal() != qrcodeecc.Low.Ordinal() {
		return BlockLayout{}, fmt.Errorf("qrversion: error correction level ordinal %d not implemented, only qrcodeecc.Low", level.Ordinal())
	}

	eccLen := eccCodewordsPerBlock[v]
	numBlocks := numECBlocks[v]
	rawCodewords := v.numRawDataModules() / 8

	numShortBlocks := numBlocks - (rawCodewords % numBlocks)
	shortBlockLen := rawCodewords / numBlocks

	layout := BlockLayout{
		ECCBytesPerBlock: eccLen,
		Group1Blocks:     numShortBlocks,
		Group1DataBytes:  shortBlockLen - eccLen,
		Group2Blocks:     numBlocks - numShortBlocks,
		Group2DataBytes:  shortBlockLen - eccLen + 1,
	}
	if layout.Group2Blocks == 0 {
		layout.Group2DataBytes = 0
	}
	return layout, nil
}

// RequiredDataBits is the total data-region bit capacity of this version at
// level Low.
func (v Version) RequiredDataBits() int {
	layout, _ := v.Layout(qrcodeecc.Low)
	return layout.TotalDataBytes() * 8
}

// AlignmentPatternCentres returns the ascending list of row/column centres
// used for alignment patterns at this version (empty for version 1).
func (v Version) AlignmentPatternCentres() []int {
	ver := int(v)
	if ver == 1 {
		return nil
	}

	numAlign := ver/7 + 2
	var step int
	if ver == 32 {
		step = 26
	} else {
		step = (ver*4+numAlign*2+1)/(numAlign*2-2)*2
	}

	size := v.SideLength()
	result := make([]int, numAlign)
	for i := 0; i < numAlign-1; i++ {
		result[i] = size - 7 - i*step
	}
	result[numAlign-1] = 6

	// The formula above fills in from the high end; reverse to ascending.
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	return result
}
