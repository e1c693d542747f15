package qart

import (
	"testing"

	"github.com/andrewyur/qart/block"
	"github.com/andrewyur/qart/gf256"
	"github.com/andrewyur/qart/payload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numericTestBlock(t *testing.T, numericStart, numericEnd int) *block.Block {
	t.Helper()
	const numDataBytes, numECBytes = 4, 7
	s := make(payload.Stream, (numDataBytes+numECBytes)*8)
	for i := range s {
		role := payload.Data
		if i >= numericStart && i < numericEnd {
			role = payload.Numeric
		}
		if i >= numDataBytes*8 {
			role = payload.ECC
		}
		s[i] = payload.Bit{Role: role}
	}
	b, err := block.New(numDataBytes, gf256.Default, s)
	require.NoError(t, err)
	return b
}

func groupValue(b *block.Block, start, n int) int {
	v := 0
	for i := 0; i < n; i++ {
		v = v<<1 | int(b.Get(start+i))
	}
	return v
}

func TestRepairNumericOverflowBringsGroupInRange(t *testing.T) {
	b := numericTestBlock(t, 16, 26)
	for i := 16; i < 26; i++ {
		require.True(t, b.Set(i, 1))
	}
	require.Equal(t, 1023, groupValue(b, 16, 10))

	repairNumericOverflow([]*block.Block{b})

	assert.LessOrEqual(t, groupValue(b, 16, 10), 999)
}

func TestRepairNumericOverflowNoOpWhenInRange(t *testing.T) {
	b := numericTestBlock(t, 16, 26)
	require.True(t, b.Set(16, 1))
	require.True(t, b.Set(25, 1))
	before := groupValue(b, 16, 10)
	require.LessOrEqual(t, before, 999)

	repairNumericOverflow([]*block.Block{b})

	assert.Equal(t, before, groupValue(b, 16, 10))
}
