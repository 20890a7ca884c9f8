package ocdproto

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/PulseRain/M10-high-speed-config-software/internal/transport"
)

// DefaultReplyTimeout is how long Link waits for a reply frame before
// treating the attempt as failed and retrying, matching the device's
// own reply window.
const DefaultReplyTimeout = 6 * time.Second

// Link drives the OCD debug-frame protocol over a transport.Transport. It
// owns the single shared toggle bit and retries a frame, unboundedly,
// until a CRC-valid reply arrives or the caller's context is canceled —
// the only thing in this protocol that can break the retry loop.
type Link struct {
	t       transport.Transport
	toggle  byte
	Timeout time.Duration
	Logger  *log.Logger
}

// NewLink wraps t in a Link ready to exchange frames. A nil logger falls
// back to log.Default(), matching the package-level logger cex/exer uses.
func NewLink(t transport.Transport, logger *log.Logger) *Link {
	if logger == nil {
		logger = log.Default()
	}
	return &Link{t: t, Timeout: DefaultReplyTimeout, Logger: logger}
}

// exchange sends one frame and retries with a zero-fill scrub frame on any
// CRC failure or read timeout, until a valid reply arrives or ctx is done.
func (l *Link) exchange(ctx context.Context, op Op, addr uint16, payload [4]byte) ([]byte, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		frame := build(op, l.toggle, addr, payload)
		l.toggle = 1 - l.toggle

		if err := l.t.Write(frame); err != nil {
			return nil, fmt.Errorf("ocdproto: write frame: %w", err)
		}

		reply, err := l.t.ReadExact(FrameLen, l.Timeout)
		if err == nil && verifyReply(reply) {
			return reply, nil
		}

		l.Logger.Printf("ocdproto: op %#02x reply invalid (err=%v), scrubbing and retrying", op, err)
		if scrubErr := l.t.Write(scrubFrame()); scrubErr != nil {
			return nil, fmt.Errorf("ocdproto: scrub frame: %w", scrubErr)
		}
	}
}

// exchangeNoAck sends one frame and does not wait for, or validate, a
// reply: used by the fire-and-forget variants of the protocol.
func (l *Link) exchangeNoAck(op Op, addr uint16, payload [4]byte) error {
	frame := build(op, l.toggle, addr, payload)
	l.toggle = 1 - l.toggle
	if err := l.t.Write(frame); err != nil {
		return fmt.Errorf("ocdproto: write frame: %w", err)
	}
	return nil
}

var fixedPayload = [4]byte{0xAB, 0xCD, 0xAB, 0xCD}
var fixedAddr uint16 = 0x1234

// CodeWrite4 writes a 32-bit, big-endian word to code memory at addr using
// the with-ack opcode, retrying until a CRC-valid reply arrives.
func (l *Link) CodeWrite4(ctx context.Context, addr uint16, word uint32) error {
	payload := [4]byte{byte(word >> 24), byte(word >> 16), byte(word >> 8), byte(word)}
	if _, err := l.exchange(ctx, OpCodeWrite4Ack, addr, payload); err != nil {
		return err
	}
	return nil
}

// CodeWrite4NoAck is the fire-and-forget counterpart of CodeWrite4.
func (l *Link) CodeWrite4NoAck(addr uint16, word uint32) error {
	payload := [4]byte{byte(word >> 24), byte(word >> 16), byte(word >> 8), byte(word)}
	return l.exchangeNoAck(OpCodeWrite4NoAck, addr, payload)
}

// CodeWrite128 writes a 128-byte block to code memory at addr. The first
// 4 bytes ride in the header frame's payload; the remaining 124 bytes and
// their own CRC-16/CCITT follow immediately as a second block.
func (l *Link) CodeWrite128(ctx context.Context, addr uint16, data [128]byte) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		header := build(OpCodeWrite128Ack, l.toggle, addr, [4]byte(data[0:4]))
		l.toggle = 1 - l.toggle
		tail := buildTail(data[4:128])

		if err := l.t.Write(append(header, tail...)); err != nil {
			return fmt.Errorf("ocdproto: write 128-byte frame: %w", err)
		}

		reply, err := l.t.ReadExact(FrameLen, l.Timeout)
		if err == nil && verifyReply(reply) {
			return nil
		}

		l.Logger.Printf("ocdproto: code_write_128 at %#04x reply invalid (err=%v), scrubbing and retrying", addr, err)
		if scrubErr := l.t.Write(scrubFrame()); scrubErr != nil {
			return fmt.Errorf("ocdproto: scrub frame: %w", scrubErr)
		}
	}
}

// CodeRead4 reads the 32-bit word at addr from code memory and returns it
// as 4 big-endian bytes, the unit the target actually exchanges.
func (l *Link) CodeRead4(ctx context.Context, addr uint16) ([4]byte, error) {
	payload := [4]byte{0x00, 0xFF, 0x00, 0xFF}
	reply, err := l.exchange(ctx, OpCodeRead4, addr, payload)
	if err != nil {
		return [4]byte{}, err
	}
	var out [4]byte
	copy(out[:], reply[FrameLen-6:FrameLen-2])
	return out, nil
}

// Reset pulses a CPU reset.
func (l *Link) Reset(ctx context.Context) error {
	_, err := l.exchange(ctx, OpCPUReset, fixedAddr, fixedPayload)
	return err
}

// Pause toggles the CPU's debug-stall state: on=true pauses, on=false resumes.
func (l *Link) Pause(ctx context.Context, on bool) error {
	op := OpPauseOff
	if on {
		op = OpPauseOn
	}
	_, err := l.exchange(ctx, op, fixedAddr, fixedPayload)
	return err
}

// Status is the CPU state returned by ReadStatus.
type Status struct {
	Stalled       bool
	ProgramCounter uint16
	DebugCounter  uint16
	TimerCounter  uint16
}

// ReadStatus reads the CPU's program counter, stall flag, and the debug
// and timer counters.
func (l *Link) ReadStatus(ctx context.Context) (Status, error) {
	reply, err := l.exchange(ctx, OpReadStatus, fixedAddr, fixedPayload)
	if err != nil {
		return Status{}, err
	}
	dbgHi, dbgLo := reply[4], reply[5]
	tmrHi, tmrLo := reply[6], reply[7]
	pcHi, pcLo := reply[8], reply[9]
	return Status{
		Stalled:        dbgLo&1 != 0,
		ProgramCounter: uint16(pcHi)<<8 | uint16(pcLo),
		DebugCounter:   (uint16(dbgHi)<<8 | uint16(dbgLo)) >> 1,
		TimerCounter:   uint16(tmrHi)<<8 | uint16(tmrLo),
	}, nil
}

// CounterConfig resets and/or enables the debug and timer counters.
func (l *Link) CounterConfig(ctx context.Context, debugReset, debugEnable, timerReset, timerEnable bool) error {
	var tmp byte
	if debugReset {
		tmp |= 1 << 1
	}
	if debugEnable {
		tmp |= 1 << 2
	}
	if timerReset {
		tmp |= 1 << 3
	}
	if timerEnable {
		tmp |= 1 << 4
	}
	payload := [4]byte{0xAB, 0xCD, 0xAB, tmp}
	_, err := l.exchange(ctx, OpCounterConfig, fixedAddr, payload)
	return err
}

// BreakOn arms hardware breakpoints at the two given code addresses.
func (l *Link) BreakOn(ctx context.Context, a, b uint16) error {
	payload := [4]byte{0xAB, 0xCD, byte(b >> 8), byte(b)}
	_, err := l.exchange(ctx, OpBreakOn, a, payload)
	return err
}

// BreakOff disarms hardware breakpoints.
func (l *Link) BreakOff(ctx context.Context) error {
	payload := [4]byte{0xAB, 0xCD, 0x33, 0x99}
	_, err := l.exchange(ctx, OpBreakOff, fixedAddr, payload)
	return err
}

// RunPulse single-steps the stalled CPU by one run pulse.
func (l *Link) RunPulse(ctx context.Context) error {
	payload := [4]byte{0xAB, 0xCD, 0x33, 0x99}
	_, err := l.exchange(ctx, OpRunPulse, fixedAddr, payload)
	return err
}

// DataReadByte reads one byte of data memory, direct or indirect
// addressed depending on indirect.
func (l *Link) DataReadByte(ctx context.Context, addr byte, indirect bool) (byte, error) {
	payload := [4]byte{0xFF, 0x00, 0xFF, boolByte(indirect)}
	reply, err := l.exchange(ctx, OpDataRead, uint16(addr), payload)
	if err != nil {
		return 0, err
	}
	return reply[FrameLen-3], nil
}

// DataWriteByte writes one byte of data memory, direct or indirect
// addressed depending on indirect.
func (l *Link) DataWriteByte(ctx context.Context, addr byte, value byte, indirect bool) error {
	payload := [4]byte{value, 0x12, 0x34, boolByte(indirect)}
	_, err := l.exchange(ctx, OpDataWrite, uint16(addr), payload)
	return err
}

// UARTSelect routes the target's physical UART; ocd0CPU1 true selects
// the mux position the reference firmware labels 1, false selects 0 (the
// naming is the device's own and deliberately preserved rather than
// reinterpreted as "OCD side"/"CPU side"). It is fire-and-forget: the
// target does not reply while its UART is detached from the OCD frame
// parser.
func (l *Link) UARTSelect(ocd0CPU1 bool) error {
	payload := [4]byte{0xAB, 0xCD, 0xAB, boolByte(ocd0CPU1) * 2}
	return l.exchangeNoAck(OpUARTSelect, fixedAddr, payload)
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
