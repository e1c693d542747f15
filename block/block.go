// Package block implements the per-RS-block linear-algebra structure that
// lets a caller pin any editable bit of a Reed-Solomon codeword to a chosen
// value while the check bytes self-correct. Each block keeps a GF(2) basis
// of "flip vectors": one row per data bit, each equal to that bit's RS
// delta. Pinning a bit consumes one basis row (Gaussian elimination);
// resetting it restores the row's effect.
package block

import (
	"fmt"

	"github.com/andrewyur/qart/gf256"
	"github.com/andrewyur/qart/internal/bitx"
	"github.com/andrewyur/qart/payload"
)

// Block holds one Reed-Solomon block's data+ECC bytes, the live basis of
// editable flip vectors, and the set of rows already spent pinning bits.
type Block struct {
	numDataBytes int
	bytes        []byte
	basis        [][]byte
	used         [][]byte
	numStart     int
	numEnd       int
}

// New builds a block from its role-tagged bits. Any caller-supplied ECC
// bits are discarded and recomputed, guaranteeing bytes is always a valid
// RS codeword. bits must have a length that is a multiple of 8; the first
// numDataBytes bytes are the data region, the rest are the ECC region.
func New(numDataBytes int, field *gf256.Field, bits payload.Stream) (*Block, error) {
	if len(bits)%8 != 0 {
		return nil, fmt.Errorf("block: bit length %d is not a whole number of bytes", len(bits))
	}
	inBytes := bits.Bytes()
	numECBytes := len(inBytes) - numDataBytes
	if numECBytes < 1 {
		return nil, fmt.Errorf("block: %d total bytes leaves no room for ECC after %d data bytes", len(inBytes), numDataBytes)
	}

	gen := field.GenPoly(numECBytes)
	dataPart := append([]byte(nil), inBytes[:numDataBytes]...)
	ecc := field.ECCodewords(dataPart, gen)

	bytes := make([]byte, numDataBytes+numECBytes)
	copy(bytes, dataPart)
	copy(bytes[numDataBytes:], ecc)

	basis := make([][]byte, numDataBytes*8)
	for index := range basis {
		row := make([]byte, numDataBytes+numECBytes)
		setBit(row, index)
		rowEcc := field.ECCodewords(row[:numDataBytes], gen)
		copy(row[numDataBytes:], rowEcc)
		basis[index] = row
	}

	numStart, numEnd := -1, -1
	for index := 0; index < numDataBytes*8 && index < len(bits); index++ {
		if bits[index].Role == payload.Data {
			basis[index] = nil
		}
		if bits[index].Role == payload.Numeric {
			if numStart == -1 {
				numStart = index
			}
			numEnd = index + 1
		}
	}

	return &Block{
		numDataBytes: numDataBytes,
		bytes:        bytes,
		basis:        basis,
		used:         make([][]byte, numDataBytes*8),
		numStart:     numStart,
		numEnd:       numEnd,
	}, nil
}

// Set pins bit index to val, reporting whether the basis still had a live
// row covering that column. On success it leaves bytes, basis, and used
// consistent with each other; on failure it leaves all three untouched.
func (b *Block) Set(index int, val byte) bool {
	var pivot []byte
	pivotIdx := -1

	for j, row := range b.basis {
		if row == nil || bitx.ByteBitAt(row, index) == 0 {
			continue
		}
		if pivot == nil {
			pivot = row
			pivotIdx = j
			b.basis[j] = nil
		} else {
			xorInto(row, pivot)
		}
	}

	if pivot == nil {
		return false
	}

	for _, row := range b.used {
		if row != nil && bitx.ByteBitAt(row, index) != 0 {
			xorInto(row, pivot)
		}
	}

	if bitx.ByteBitAt(b.bytes, index) != val {
		xorInto(b.bytes, pivot)
	}

	b.used[pivotIdx] = pivot
	return true
}

// Reset clears bit index back to 0, undoing whichever used row last
// touched it. If no used row covers the column (it was never pinned to 1),
// this falls back to Set(index, 0).
func (b *Block) Reset(index int) {
	if bitx.ByteBitAt(b.bytes, index) == 0 {
		return
	}
	for _, row := range b.used {
		if row != nil && bitx.ByteBitAt(row, index) != 0 {
			xorInto(b.bytes, row)
			return
		}
	}
	if !b.Set(index, 0) {
		panic("block: reset found a 1 bit with no covering basis or used row")
	}
}

// NumericBit is one bit of a block's numeric-filler run.
type NumericBit struct {
	Index int
	Value byte
}

// IterNums yields every bit in the block's single numeric-filler run, in
// ascending index order.
func (b *Block) IterNums() []NumericBit {
	if b.numStart == -1 {
		return nil
	}
	out := make([]NumericBit, 0, b.numEnd-b.numStart)
	for i := b.numStart; i < b.numEnd; i++ {
		out = append(out, NumericBit{Index: i, Value: bitx.ByteBitAt(b.bytes, i)})
	}
	return out
}

// IterDataEC returns the data-region bits followed by the ECC-region bits,
// each as (index, value) pairs.
func (b *Block) IterDataEC() (data, ec []NumericBit) {
	dataBits := b.numDataBytes * 8
	totalBits := len(b.bytes) * 8
	data = make([]NumericBit, 0, dataBits)
	for i := 0; i < dataBits; i++ {
		data = append(data, NumericBit{Index: i, Value: bitx.ByteBitAt(b.bytes, i)})
	}
	ec = make([]NumericBit, 0, totalBits-dataBits)
	for i := dataBits; i < totalBits; i++ {
		ec = append(ec, NumericBit{Index: i, Value: bitx.ByteBitAt(b.bytes, i)})
	}
	return data, ec
}

// Get returns the current value of bit index.
func (b *Block) Get(index int) byte {
	return bitx.ByteBitAt(b.bytes, index)
}

// Bytes returns the block's final data+ECC codeword.
func (b *Block) Bytes() []byte {
	return b.bytes
}

func setBit(row []byte, index int) {
	row[index/8] |= 1 << uint(7-(index&7))
}

func xorInto(dst, src []byte) {
	for i := range dst {
		dst[i] ^= src[i]
	}
}
