package qrcodeecc

import "testing"

func TestLowOrdinalAndFormatBits(t *testing.T) {
	if Low.Ordinal() != 0 {
		t.Errorf("Low.Ordinal() = %d, want 0", Low.Ordinal())
	}
	if Low.FormatBits() != 1 {
		t.Errorf("Low.FormatBits() = %d, want 1", Low.FormatBits())
	}
}
