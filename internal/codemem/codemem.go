// Package codemem decomposes arbitrary, unaligned code-memory reads and
// writes into the fixed-size byte/word/128-byte-block operations the OCD
// link actually exposes.
package codemem

import (
	"context"
	"encoding/binary"

	"github.com/PulseRain/M10-high-speed-config-software/internal/ocdproto"
)

// IO decomposes code-memory block transfers over a Link.
type IO struct {
	Link *ocdproto.Link
}

// ReadByte reads a single code-memory byte via a word-aligned CodeRead4.
func (io *IO) ReadByte(ctx context.Context, addr uint16) (byte, error) {
	aligned := addr &^ 3
	word, err := io.Link.CodeRead4(ctx, aligned)
	if err != nil {
		return 0, err
	}
	return word[addr%4], nil
}

// WriteByte writes a single code-memory byte by reading the aligned word
// that contains it, patching the one byte, and writing the word back.
func (io *IO) WriteByte(ctx context.Context, addr uint16, value byte) error {
	aligned := addr &^ 3
	word, err := io.Link.CodeRead4(ctx, aligned)
	if err != nil {
		return err
	}
	word[addr%4] = value
	return io.Link.CodeWrite4(ctx, aligned, binary.BigEndian.Uint32(word[:]))
}

// Write decomposes a write of data at addr into, in order: unaligned head
// bytes (read-modify-write), whole 128-byte blocks, whole 4-byte words,
// and unaligned tail bytes.
func (io *IO) Write(ctx context.Context, addr uint16, data []byte) error {
	offset := 0
	length := len(data)

	if addr%4 != 0 {
		n := min(int(4-addr%4), length)
		for i := 0; i < n; i++ {
			if err := io.WriteByte(ctx, addr+uint16(offset), data[i]); err != nil {
				return err
			}
			offset++
		}
	}

	totalWords := (length - offset) / 4
	total128 := totalWords / 32
	for i := 0; i < total128; i++ {
		var block [128]byte
		copy(block[:], data[offset:offset+128])
		if err := io.Link.CodeWrite128(ctx, addr+uint16(offset), block); err != nil {
			return err
		}
		offset += 128
	}

	for i := 0; i < totalWords-total128*32; i++ {
		word := binary.BigEndian.Uint32(data[offset : offset+4])
		if err := io.Link.CodeWrite4(ctx, addr+uint16(offset), word); err != nil {
			return err
		}
		offset += 4
	}

	for offset < length {
		if err := io.WriteByte(ctx, addr+uint16(offset), data[offset]); err != nil {
			return err
		}
		offset++
	}
	return nil
}

// Read decomposes a read of length bytes starting at addr into unaligned
// head bytes, whole 4-byte words, and unaligned tail bytes. There is no
// bulk 128-byte phase: the protocol has no read counterpart to
// code_write_128, only code_read_4.
func (io *IO) Read(ctx context.Context, addr uint16, length int) ([]byte, error) {
	out := make([]byte, 0, length)
	offset := 0

	if addr%4 != 0 {
		n := min(int(4-addr%4), length)
		for i := 0; i < n; i++ {
			b, err := io.ReadByte(ctx, addr+uint16(offset))
			if err != nil {
				return nil, err
			}
			out = append(out, b)
			offset++
		}
	}

	totalWords := (length - offset) / 4
	for i := 0; i < totalWords; i++ {
		word, err := io.Link.CodeRead4(ctx, addr+uint16(offset))
		if err != nil {
			return nil, err
		}
		out = append(out, word[:]...)
		offset += 4
	}

	for offset < length {
		b, err := io.ReadByte(ctx, addr+uint16(offset))
		if err != nil {
			return nil, err
		}
		out = append(out, b)
		offset++
	}
	return out, nil
}
