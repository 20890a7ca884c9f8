package ocdproto

import "github.com/PulseRain/M10-high-speed-config-software/internal/crc"

// Sync is the 3-byte preamble that opens every debug frame.
var Sync = [3]byte{0x5A, 0xA5, 0x01}

// FrameLen is the size, in bytes, of every fixed request and reply frame:
// 3 sync + 1 type + 2 address + 4 payload + 2 CRC.
const FrameLen = 12

// TailLen is the size of the second block that follows a 128-byte code
// write's header frame: 124 data bytes + a 2-byte CRC over just those bytes.
const TailLen = 124 + 2

// ScrubFrameLen is the size of the zero-fill frame sent to resynchronize
// the target's frame parser after a CRC mismatch.
const ScrubFrameLen = 128

// build assembles a 12-byte frame: sync, (op,toggle) type byte, a 16-bit
// big-endian address field, 4 payload bytes, and a trailing CRC-16/CCITT
// over the first 10 bytes.
func build(op Op, toggle byte, addr uint16, payload [4]byte) []byte {
	frame := make([]byte, 0, FrameLen)
	frame = append(frame, Sync[:]...)
	frame = append(frame, typeByte(op, toggle))
	frame = append(frame, byte(addr>>8), byte(addr))
	frame = append(frame, payload[:]...)
	hi, lo := crc.CCITT(frame)
	frame = append(frame, hi, lo)
	return frame
}

// buildTail assembles the 126-byte continuation block a 128-byte code
// write sends immediately after its header frame: 124 data bytes followed
// by a CRC-16/CCITT computed over just those 124 bytes.
func buildTail(data []byte) []byte {
	tail := make([]byte, 0, TailLen)
	tail = append(tail, data...)
	hi, lo := crc.CCITT(data)
	tail = append(tail, hi, lo)
	return tail
}

// scrubFrame is 64 repetitions of (0xFF, 0x00): a pattern that cannot be
// mistaken for a valid sync sequence, sent to flush a confused target
// parser back to a known state after a CRC failure.
func scrubFrame() []byte {
	frame := make([]byte, 0, ScrubFrameLen)
	for i := 0; i < ScrubFrameLen/2; i++ {
		frame = append(frame, 0xFF, 0x00)
	}
	return frame
}

// verifyReply checks that reply is FrameLen bytes long and its trailing
// CRC-16/CCITT matches its leading FrameLen-2 bytes.
func verifyReply(reply []byte) bool {
	return len(reply) == FrameLen && crc.Verify(reply)
}
