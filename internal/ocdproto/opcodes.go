// Package ocdproto implements the CRC-framed, sequence-toggled serial
// protocol the 8051 on-chip debugger speaks, and the retrying Link that
// drives it over any transport.Transport.
package ocdproto

// Op is an OCD debug-frame opcode, issued before the per-frame toggle bit
// is folded in (typeByte = op*2 + toggle).
type Op byte

const (
	OpCodeWrite4NoAck Op = 0x5C
	OpCodeWrite4Ack   Op = 0x5D
	OpCodeWrite128Ack Op = 0x5B
	OpCodeRead4       Op = 0x6D
	OpCPUReset        Op = 0x4B
	OpPauseOn         Op = 0x2D
	OpPauseOff        Op = 0x3D
	OpReadStatus      Op = 0x2F
	OpCounterConfig   Op = 0x6B
	OpBreakOn         Op = 0x7D
	OpBreakOff        Op = 0x1D
	OpRunPulse        Op = 0x49
	OpDataRead        Op = 0x6F
	OpDataWrite       Op = 0x2B
	OpUARTSelect      Op = 0x2A
)

// typeByte folds the alternating ack/retry toggle bit into op, exactly the
// "op*2 + toggle" construction of the reference 8051 OCD driver.
func typeByte(op Op, toggle byte) byte {
	return byte(op)*2 + toggle
}
