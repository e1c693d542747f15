package block

import (
	"testing"

	"github.com/andrewyur/qart/gf256"
	"github.com/andrewyur/qart/payload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStream(numDataBytes, numECBytes int, numericStart, numericEnd int) payload.Stream {
	s := make(payload.Stream, (numDataBytes+numECBytes)*8)
	for i := range s {
		role := payload.Data
		if i >= numericStart && i < numericEnd {
			role = payload.Numeric
		}
		if i >= numDataBytes*8 {
			role = payload.ECC
		}
		s[i] = payload.Bit{Value: 0, Role: role}
	}
	return s
}

func TestNewBuildsValidCodeword(t *testing.T) {
	s := newTestStream(4, 7, 16, 32)
	b, err := New(4, gf256.Default, s)
	require.NoError(t, err)

	gen := gf256.Default.GenPoly(7)
	want := gf256.Default.ECCodewords(b.Bytes()[:4], gen)
	assert.Equal(t, want, b.Bytes()[4:])
}

func TestSetPinsBitAndPreservesCodeword(t *testing.T) {
	s := newTestStream(4, 7, 16, 32)
	b, err := New(4, gf256.Default, s)
	require.NoError(t, err)

	ok := b.Set(20, 1)
	require.True(t, ok)
	assert.Equal(t, byte(1), b.Get(20))

	gen := gf256.Default.GenPoly(7)
	want := gf256.Default.ECCodewords(b.Bytes()[:4], gen)
	assert.Equal(t, want, b.Bytes()[4:], "ECC must stay consistent with data after a set")
}

func TestSetOnDataBitFails(t *testing.T) {
	s := newTestStream(4, 7, 16, 32)
	b, err := New(4, gf256.Default, s)
	require.NoError(t, err)

	ok := b.Set(0, 1)
	assert.False(t, ok)
	assert.Equal(t, byte(0), b.Get(0))
}

func TestSetTwiceOnSameColumnSecondCallFails(t *testing.T) {
	s := newTestStream(4, 7, 16, 32)
	b, err := New(4, gf256.Default, s)
	require.NoError(t, err)

	require.True(t, b.Set(20, 1))
	assert.False(t, b.Set(20, 0), "column 20 has already been consumed by the basis")
}

func TestResetRestoresZero(t *testing.T) {
	s := newTestStream(4, 7, 16, 32)
	b, err := New(4, gf256.Default, s)
	require.NoError(t, err)

	require.True(t, b.Set(20, 1))
	b.Reset(20)
	assert.Equal(t, byte(0), b.Get(20))
}

func TestIterNumsCoversOnlyNumericRange(t *testing.T) {
	s := newTestStream(4, 7, 16, 32)
	b, err := New(4, gf256.Default, s)
	require.NoError(t, err)

	nums := b.IterNums()
	assert.Len(t, nums, 16)
	assert.Equal(t, 16, nums[0].Index)
	assert.Equal(t, 31, nums[len(nums)-1].Index)
}

func TestIterDataECSplitsAtDataBoundary(t *testing.T) {
	s := newTestStream(4, 7, 16, 32)
	b, err := New(4, gf256.Default, s)
	require.NoError(t, err)

	data, ec := b.IterDataEC()
	assert.Len(t, data, 32)
	assert.Len(t, ec, 56)
	assert.Equal(t, 32, ec[0].Index)
}
