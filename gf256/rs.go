package gf256

// GenPoly returns the Reed-Solomon generator polynomial for n error
// correction codewords, as the coefficient vector of
//
//	∏_{e=0}^{n-1} (x - α^e)
//
// with α = 2. The returned slice has length n+1 and stores each coefficient
// as its own exponent of α (so 0 means α^0 = 1); there is no zero-coefficient
// sentinel because this product never produces one.
func (f *Field) GenPoly(n int) []byte {
	gen := make([]byte, 1, n+1)
	gen[0] = 0 // α^0 = 1, the leading coefficient

	curr := make([]byte, 1, n+1)
	curr[0] = 0

	for len(gen) < n+1 {
		copy(curr, gen)
		alphaE := byte(len(gen) - 1)

		// Shift every exponent by alphaE. The exponent ring has order 255,
		// not 256, so this is addition mod 255, not wrapping u8 addition.
		for i := range curr {
			curr[i] = byte((int(curr[i]) + int(alphaE)) % 255)
		}

		for i := 0; i < len(gen)-1; i++ {
			gen[i+1] = f.Log(f.Exp(int(curr[i])) ^ f.Exp(int(gen[i+1])))
		}
		gen = append(gen, curr[len(curr)-1])
		curr = append(curr, 0)
	}

	return gen
}

// ECCodewords computes the Reed-Solomon remainder ("error correction
// codewords") of msg against the generator polynomial gen (as returned by
// GenPoly, i.e. coefficients stored as exponents of α). len(gen)-1 bytes are
// returned. Preconditions: len(msg) >= 1, len(gen) >= 2.
func (f *Field) ECCodewords(msg []byte, gen []byte) []byte {
	n := len(gen) - 1
	p := make([]byte, len(msg)+n)
	copy(p, msg)

	for i := 0; i < len(msg); i++ {
		if p[i] == 0 {
			continue
		}
		k := int(f.Log(p[i]))
		for j := 0; j <= n; j++ {
			if gen[j] == 255 {
				continue
			}
			p[i+j] ^= f.Exp(k + int(gen[j]))
		}
	}

	return p[len(msg):]
}
