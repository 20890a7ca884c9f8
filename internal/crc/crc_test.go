package crc

import "testing"

func TestCCITTRoundTrip(t *testing.T) {
	body := []byte{0x5A, 0xA5, 0x01, 0x5D, 0x00, 0x02, 0x00, 0x00, 0x00, 0x00}
	hi, lo := CCITT(body)

	frame := append(append([]byte(nil), body...), hi, lo)
	if !Verify(frame) {
		t.Fatalf("expected freshly computed CRC to verify, got hi=%#x lo=%#x", hi, lo)
	}
}

func TestCCITTDetectsCorruption(t *testing.T) {
	body := []byte{0x5A, 0xA5, 0x01, 0x5D, 0x00, 0x02, 0x00, 0x00, 0x00, 0x00}
	hi, lo := CCITT(body)
	frame := append(append([]byte(nil), body...), hi, lo)

	frame[3] ^= 0xFF
	if Verify(frame) {
		t.Fatal("expected corrupted frame to fail CRC verification")
	}
}

func TestVerifyRejectsShortInput(t *testing.T) {
	if Verify([]byte{0x01}) {
		t.Fatal("expected Verify to reject input shorter than a CRC")
	}
}
