package disasm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisassembleMovImmediateAndLjmp(t *testing.T) {
	code := []byte{0x74, 0x55, 0x02, 0x01, 0x23, 0x00}
	lines := Disassemble(0x0000, code)

	require.Len(t, lines, 3)
	require.Equal(t, "MOV   A, #0x55", lines[0].Text)
	require.EqualValues(t, 0x0000, lines[0].Addr)

	require.Equal(t, "LJMP  0x0123", lines[1].Text)
	require.EqualValues(t, 0x0002, lines[1].Addr)

	require.Equal(t, "NOP   ", lines[2].Text)
	require.EqualValues(t, 0x0005, lines[2].Addr)
}

func TestDisassembleDirectAddressUsesSFRName(t *testing.T) {
	// INC data (0x05) at SFR P1 (0x90)
	code := []byte{0x05, 0x90}
	lines := Disassemble(0x1000, code)
	require.Len(t, lines, 1)
	require.Equal(t, "INC   P1", lines[0].Text)
}

func TestDisassembleBitComplementPrefix(t *testing.T) {
	// ANL C, /bit (0xB0) with bit EA (0xAF)
	code := []byte{0xB0, 0xAF}
	lines := Disassemble(0, code)
	require.Len(t, lines, 1)
	require.Equal(t, "ANL   C, /EA", lines[0].Text)
}

func TestDisassembleInvalidOpcode(t *testing.T) {
	code := []byte{0xA5, 0x00}
	lines := Disassemble(0, code)
	require.Len(t, lines, 2)
	require.Equal(t, "INVALID", lines[0].Text)
}

func TestDisassembleDropsTruncatedTrailingInstruction(t *testing.T) {
	// LJMP (size 3) with only 2 bytes following: incomplete, dropped.
	code := []byte{0x02, 0x01}
	lines := Disassemble(0, code)
	require.Empty(t, lines)
}

func TestTableHas256Entries(t *testing.T) {
	require.Len(t, Table, 256)
}
