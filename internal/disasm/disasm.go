package disasm

import (
	"fmt"
	"strings"
)

// Line is one disassembled instruction, ready for display.
type Line struct {
	Addr uint16
	Raw  []byte
	Text string // e.g. "MOV   A, #0x55"
}

// Disassemble decodes code, starting at startAddr, into one Line per
// instruction. It stops short of a trailing instruction whose declared
// size would run past the end of code, so a truncated instruction at the
// tail is silently dropped rather than decoded from missing bytes.
func Disassemble(startAddr uint16, code []byte) []Line {
	var lines []Line
	offset := 0
	for offset < len(code) {
		op := code[offset]
		inst, ok := Table[op]
		if !ok {
			// The 256-entry table covers every possible byte value, so
			// this only guards against a future incomplete table.
			break
		}
		if offset+inst.Size > len(code) {
			break
		}

		lines = append(lines, Line{
			Addr: startAddr + uint16(offset),
			Raw:  append([]byte(nil), code[offset:offset+inst.Size]...),
			Text: formatOperands(inst, code, offset),
		})
		offset += inst.Size
	}
	return lines
}

// Format renders a Line the way the console prints it: a 4-hex-digit
// address, the instruction's raw bytes padded to 3 hex-byte columns, and
// the mnemonic/operand text.
func Format(l Line) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%04X\t", l.Addr)
	for _, by := range l.Raw {
		fmt.Fprintf(&b, "%02X ", by)
	}
	for i := 0; i < 3-len(l.Raw); i++ {
		b.WriteString("   ")
	}
	b.WriteString("\t:   ")
	b.WriteString(l.Text)
	return b.String()
}

// formatOperands renders one instruction's mnemonic and operands,
// following the reference console's exact column and token rules.
func formatOperands(inst Instruction, code []byte, offset int) string {
	var b strings.Builder
	b.WriteString(inst.Mnemonic)
	for i := 0; i < 6-len(inst.Mnemonic); i++ {
		b.WriteByte(' ')
	}

	if inst.Size == 1 {
		b.WriteString(inst.Template)
		return b.String()
	}

	tokens := strings.Fields(inst.Template)
	j := 0
	for i, tok := range tokens {
		if len(tok) > 0 && tok[0] >= 'a' && tok[0] <= 'z' {
			j++
			if tok[0] == 'i' {
				b.WriteByte('#')
			}
			if strings.HasSuffix(tok, "/") {
				b.WriteByte('/')
			}
			switch {
			case strings.HasSuffix(tok, "16"):
				fmt.Fprintf(&b, "0x%02X%02X", code[offset+j], code[offset+j+1])
				j++
			case tok[0] == 'd':
				writeSymbolOrHex(&b, addrNameByValue, code[offset+j])
			case tok[0] == 'b':
				writeSymbolOrHex(&b, bitNameByValue, code[offset+j])
			default:
				fmt.Fprintf(&b, "0x%02X", code[offset+j])
			}
		} else {
			b.WriteString(tok)
		}
		if i < len(tokens)-1 {
			b.WriteString(", ")
		}
	}
	return b.String()
}

func writeSymbolOrHex(b *strings.Builder, names map[byte]string, value byte) {
	if name, ok := names[value]; ok {
		b.WriteString(name)
		return
	}
	fmt.Fprintf(b, "0x%02X", value)
}
