package gf256

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestFieldRoundTrip(t *testing.T) {
	f := NewField()

	for x := 1; x <= 255; x++ {
		got := f.Exp(int(f.Log(byte(x))))
		assert.Equalf(t, byte(x), got, "Exp(Log(%d)) mismatch", x)
	}
	for i := 0; i < 255; i++ {
		assert.Equal(t, byte(i), f.Log(f.Exp(i)))
	}
	for i := 0; i < 255; i++ {
		assert.Equal(t, f.Exp(i), f.Exp(i+255), "Exp(%d) should equal Exp(%d)", i, i+255)
	}
}

func TestFieldRoundTripProperty(t *testing.T) {
	f := NewField()
	rapid.Check(t, func(t *rapid.T) {
		x := byte(rapid.IntRange(1, 255).Draw(t, "x"))
		require.Equal(t, x, f.Exp(int(f.Log(x))))
	})
}

// S5: gen_poly(10) equals the canonical QR-standard length-11 coefficient vector.
func TestGenPolyDegree10(t *testing.T) {
	want := []byte{0, 251, 67, 46, 61, 118, 70, 64, 94, 32, 45}
	got := Default.GenPoly(10)
	assert.Equal(t, want, got)
}

// S6: ec_codewords on the canonical QR sample message.
func TestECCodewordsSample(t *testing.T) {
	msg := []byte{32, 91, 11, 120, 209, 114, 220, 77, 67, 64, 236, 17, 236, 17, 236, 17}
	want := []byte{196, 35, 39, 119, 235, 215, 231, 226, 93, 23}
	got := Default.ECCodewords(msg, Default.GenPoly(10))
	assert.Equal(t, want, got)
}

func TestECCodewordsLengthMatchesGenerator(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 30).Draw(t, "n")
		msgLen := rapid.IntRange(1, 50).Draw(t, "msgLen")
		msg := rapid.SliceOfN(rapid.Byte(), msgLen, msgLen).Draw(t, "msg")

		gen := Default.GenPoly(n)
		ec := Default.ECCodewords(msg, gen)
		require.Len(t, ec, n)
	})
}
