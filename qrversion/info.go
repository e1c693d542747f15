package qrversion

import "github.com/andrewyur/qart/qrcodeecc"

// FormatInfoBits returns the 15-bit format-info string for the given error
// correction level and mask pattern number, BCH-encoded and XORed with the
// fixed mask 0x5412 per ISO/IEC 18004 §7.9.
func FormatInfoBits(level qrcodeecc.Level, maskNumber uint8) uint32 {
	data := uint32(level.FormatBits())<<3 | uint32(maskNumber)
	rem := data
	for i := 0; i < 10; i++ {
		rem = (rem << 1) ^ ((rem >> 9) * 0x537)
	}
	return (data<<10 | rem) ^ 0x5412
}

// VersionInfoBits returns the 18-bit version-info string for versions 7 and
// above, BCH-encoded per ISO/IEC 18004 §7.10. Versions below 7 carry no
// version-info region.
func VersionInfoBits(v Version) uint32 {
	rem := uint32(v)
	for i := 0; i < 12; i++ {
		rem = (rem << 1) ^ ((rem >> 11) * 0x1F25)
	}
	return uint32(v)<<12 | rem
}
