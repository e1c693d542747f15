package payload

import (
	"fmt"

	"github.com/andrewyur/qart/qrversion"
)

// UnencodableCharacter reports a URL byte outside ISO-8859-1 (codepoint >
// 0xFF), which byte mode cannot carry without a non-default ECI.
type UnencodableCharacter struct {
	Rune rune
}

func (e *UnencodableCharacter) Error() string {
	return fmt.Sprintf("payload: character %q is not encodable in ISO-8859-1", e.Rune)
}

const (
	byteModeIndicator    = 0b0100
	numericModeIndicator = 0b0001
	terminator           = 0b0000
)

// byteCharCountLen returns L_b(V): the bit width of the byte-mode character
// count indicator.
func byteCharCountLen(v qrversion.Version) int {
	if v < 10 {
		return 8
	}
	return 16
}

// numericCharCountLen returns L_n(V): the bit width of the numeric-mode
// character count indicator.
func numericCharCountLen(v qrversion.Version) int {
	switch {
	case v < 10:
		return 10
	case v < 27:
		return 12
	default:
		return 14
	}
}

// Encode builds the complete role-tagged bit stream for version v carrying
// URL u: byte-mode header and URL, the "#" pivot, numeric-mode filler sized
// to exactly fill the version's data capacity, and a terminator truncated to
// the capacity the filler leaves. URL characters are written as one
// ISO-8859-1 byte each.
func Encode(v qrversion.Version, u string) (Stream, error) {
	urlBytes := make([]byte, 0, len(u)+1)
	for _, r := range u {
		if r > 0xFF {
			return nil, &UnencodableCharacter{Rune: r}
		}
		urlBytes = append(urlBytes, byte(r))
	}
	urlBytes = append(urlBytes, '#')

	var s Stream
	s.Append(byteModeIndicator, 4, Data)
	s.Append(uint32(len(urlBytes)), byteCharCountLen(v), Data)
	s.AppendBytes(urlBytes, Data)

	required := v.RequiredDataBits()
	lenN := numericCharCountLen(v)
	r := required - len(s) - 4 - lenN
	if r < 0 {
		return nil, fmt.Errorf("payload: URL too long for version %d: need %d more bits", v, -r)
	}

	fullGroups := r / 10
	var tail int
	if rem := r % 10; rem >= 1 {
		tail = (rem - 1) / 3
	}
	charCount := fullGroups*3 + tail

	s.Append(numericModeIndicator, 4, Data)
	s.Append(uint32(charCount), lenN, Data)

	for i := 0; i < fullGroups; i++ {
		s.Append(999, 10, Numeric)
	}
	switch tail {
	case 1:
		s.Append(9, 4, Numeric)
	case 2:
		s.Append(99, 7, Numeric)
	}

	// The filler leaves fewer than 4 bits of capacity, so the terminator is
	// truncated to whatever remains.
	termLen := required - len(s)
	if termLen > 4 {
		termLen = 4
	}
	s.Append(terminator, termLen, Data)
	for len(s)%8 != 0 {
		s.Append(0, 1, Data)
	}

	if len(s) != required {
		return nil, fmt.Errorf("payload: internal error: built %d bits, want %d", len(s), required)
	}
	return s, nil
}
