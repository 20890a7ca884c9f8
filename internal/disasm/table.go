// Package disasm implements a table-driven disassembler for the 8051
// instruction set, as used by the OCD console's "disassemble" command.
package disasm

// Instruction describes one decoded opcode: its mnemonic, total encoded
// size in bytes (including the opcode byte itself), and an operand
// template string.
//
// Template is a space-separated list of tokens. A token that starts with
// an uppercase letter, digit, or '@' is printed literally (a register
// name such as "A" or "R3", or an addressing mode like "@R0"). A token
// that starts with a lowercase letter instead consumes one instruction
// byte (two if the token ends in "16") and is rendered as an operand:
//   - a token starting with 'i' is an immediate, printed as "#0xhh"
//   - a token ending in "16" is a 16-bit code address, printed "0xhhll"
//   - a token starting with 'd' is a direct/SFR address, printed by name
//     if it matches an entry in AddrMap, else as "0xhh"
//   - a token starting with 'b' is a bit address, printed by name if it
//     matches an entry in BitMap, else as "0xhh"
//   - any other lowercase token (e.g. a relative jump target) is printed
//     as plain "0xhh"
//
// A token ending in "/" additionally emits a leading "/" before its
// value, the bit-complement notation used by ORL C,/bit and ANL C,/bit.
type Instruction struct {
	Mnemonic string
	Size     int
	Template string
}

// Table maps every one of the 256 possible opcode bytes to its decoding.
// Opcodes 0x7C and 0x7D are listed once here; the reference 8051 OCD
// driver's source dict assigns each of them twice with identical values,
// a harmless duplication that disappears once expressed as a Go map.
var Table = map[byte]Instruction{
	0x00: {"NOP", 1, ""},
	0x01: {"AJMP", 2, "code"},
	0x02: {"LJMP", 3, "code16"},
	0x03: {"RR", 1, "A"},
	0x04: {"INC", 1, "A"},
	0x05: {"INC", 2, "data"},
	0x06: {"INC", 1, "@R0"},
	0x07: {"INC", 1, "@R1"},
	0x08: {"INC", 1, "R0"},
	0x09: {"INC", 1, "R1"},
	0x0A: {"INC", 1, "R2"},
	0x0B: {"INC", 1, "R3"},
	0x0C: {"INC", 1, "R4"},
	0x0D: {"INC", 1, "R5"},
	0x0E: {"INC", 1, "R6"},
	0x0F: {"INC", 1, "R7"},
	0x10: {"JBC", 3, "bit code"},
	0x11: {"ACALL", 2, "code"},
	0x12: {"LCALL", 3, "code16"},
	0x13: {"RRC", 1, "A"},
	0x14: {"DEC", 1, "A"},
	0x15: {"DEC", 2, "data"},
	0x16: {"DEC", 1, "@R0"},
	0x17: {"DEC", 1, "@R1"},
	0x18: {"DEC", 1, "R0"},
	0x19: {"DEC", 1, "R1"},
	0x1A: {"DEC", 1, "R2"},
	0x1B: {"DEC", 1, "R3"},
	0x1C: {"DEC", 1, "R4"},
	0x1D: {"DEC", 1, "R5"},
	0x1E: {"DEC", 1, "R6"},
	0x1F: {"DEC", 1, "R7"},
	0x20: {"JB", 3, "bit code"},
	0x21: {"AJMP", 2, "code"},
	0x22: {"RET", 1, ""},
	0x23: {"RL", 1, "A"},
	0x24: {"ADD", 2, "A immediate"},
	0x25: {"ADD", 2, "A data"},
	0x26: {"ADD", 1, "A, @R0"},
	0x27: {"ADD", 1, "A, @R1"},
	0x28: {"ADD", 1, "A, R0"},
	0x29: {"ADD", 1, "A, R1"},
	0x2A: {"ADD", 1, "A, R2"},
	0x2B: {"ADD", 1, "A, R3"},
	0x2C: {"ADD", 1, "A, R4"},
	0x2D: {"ADD", 1, "A, R5"},
	0x2E: {"ADD", 1, "A, R6"},
	0x2F: {"ADD", 1, "A, R7"},
	0x30: {"JNB", 3, "bit code"},
	0x31: {"ACALL", 2, "code"},
	0x32: {"RETI", 1, ""},
	0x33: {"RLC", 1, "A"},
	0x34: {"ADDC", 2, "A immediate"},
	0x35: {"ADDC", 2, "A data"},
	0x36: {"ADDC", 1, "A, @R0"},
	0x37: {"ADDC", 1, "A, @R1"},
	0x38: {"ADDC", 1, "A, R0"},
	0x39: {"ADDC", 1, "A, R1"},
	0x3A: {"ADDC", 1, "A, R2"},
	0x3B: {"ADDC", 1, "A, R3"},
	0x3C: {"ADDC", 1, "A, R4"},
	0x3D: {"ADDC", 1, "A, R5"},
	0x3E: {"ADDC", 1, "A, R6"},
	0x3F: {"ADDC", 1, "A, R7"},
	0x40: {"JC", 2, "code"},
	0x41: {"AJMP", 2, "code"},
	0x42: {"ORL", 2, "data A"},
	0x43: {"ORL", 3, "data immediate"},
	0x44: {"ORL", 2, "A immediate"},
	0x45: {"ORL", 2, "A data"},
	0x46: {"ORL", 1, "A, @R0"},
	0x47: {"ORL", 1, "A, @R1"},
	0x48: {"ORL", 1, "A, R0"},
	0x49: {"ORL", 1, "A, R1"},
	0x4A: {"ORL", 1, "A, R2"},
	0x4B: {"ORL", 1, "A, R3"},
	0x4C: {"ORL", 1, "A, R4"},
	0x4D: {"ORL", 1, "A, R5"},
	0x4E: {"ORL", 1, "A, R6"},
	0x4F: {"ORL", 1, "A, R7"},
	0x50: {"JNC", 2, "code"},
	0x51: {"ACALL", 2, "code"},
	0x52: {"ANL", 2, "data A"},
	0x53: {"ANL", 3, "data immediate"},
	0x54: {"ANL", 2, "A immediate"},
	0x55: {"ANL", 2, "A data"},
	0x56: {"ANL", 1, "A, @R0"},
	0x57: {"ANL", 1, "A, @R1"},
	0x58: {"ANL", 1, "A, R0"},
	0x59: {"ANL", 1, "A, R1"},
	0x5A: {"ANL", 1, "A, R2"},
	0x5B: {"ANL", 1, "A, R3"},
	0x5C: {"ANL", 1, "A, R4"},
	0x5D: {"ANL", 1, "A, R5"},
	0x5E: {"ANL", 1, "A, R6"},
	0x5F: {"ANL", 1, "A, R7"},
	0x60: {"JZ", 2, "code"},
	0x61: {"AJMP", 2, "code"},
	0x62: {"XRL", 2, "data A"},
	0x63: {"XRL", 3, "data immediate"},
	0x64: {"XRL", 2, "A immediate"},
	0x65: {"XRL", 2, "A data"},
	0x66: {"XRL", 1, "A, @R0"},
	0x67: {"XRL", 1, "A, @R1"},
	0x68: {"XRL", 1, "A, R0"},
	0x69: {"XRL", 1, "A, R1"},
	0x6A: {"XRL", 1, "A, R2"},
	0x6B: {"XRL", 1, "A, R3"},
	0x6C: {"XRL", 1, "A, R4"},
	0x6D: {"XRL", 1, "A, R5"},
	0x6E: {"XRL", 1, "A, R6"},
	0x6F: {"XRL", 1, "A, R7"},
	0x70: {"JNZ", 2, "code"},
	0x71: {"ACALL", 2, "code"},
	0x72: {"ORL", 2, "C bit"},
	0x73: {"JMP", 1, "@A+DPTR"},
	0x74: {"MOV", 2, "A immediate"},
	0x75: {"MOV", 3, "data immediate"},
	0x76: {"MOV", 2, "@R0 immediate"},
	0x77: {"MOV", 2, "@R1 immediate"},
	0x78: {"MOV", 2, "R0 immediate"},
	0x79: {"MOV", 2, "R1 immediate"},
	0x7A: {"MOV", 2, "R2 immediate"},
	0x7B: {"MOV", 2, "R3 immediate"},
	0x7C: {"MOV", 2, "R4 immediate"},
	0x7D: {"MOV", 2, "R5 immediate"},
	0x7E: {"MOV", 2, "R6 immediate"},
	0x7F: {"MOV", 2, "R7 immediate"},
	0x80: {"SJMP", 2, "code"},
	0x81: {"AJMP", 2, "code"},
	0x82: {"ANL", 2, "C bit"},
	0x83: {"MOVC", 1, "A, @A+PC"},
	0x84: {"DIV", 1, "AB"},
	0x85: {"MOV", 3, "data data"},
	0x86: {"MOV", 2, "data @R0"},
	0x87: {"MOV", 2, "data @R1"},
	0x88: {"MOV", 2, "data R0"},
	0x89: {"MOV", 2, "data R1"},
	0x8A: {"MOV", 2, "data R2"},
	0x8B: {"MOV", 2, "data R3"},
	0x8C: {"MOV", 2, "data R4"},
	0x8D: {"MOV", 2, "data R5"},
	0x8E: {"MOV", 2, "data R6"},
	0x8F: {"MOV", 2, "data R7"},
	0x90: {"MOV", 3, "DPTR immediate16"},
	0x91: {"ACALL", 2, "code"},
	0x92: {"MOV", 2, "bit C"},
	0x93: {"MOVC", 1, "A, @A+DPTR"},
	0x94: {"SUBB", 2, "A immediate"},
	0x95: {"SUBB", 2, "A data"},
	0x96: {"SUBB", 1, "A, @R0"},
	0x97: {"SUBB", 1, "A, @R1"},
	0x98: {"SUBB", 1, "A, R0"},
	0x99: {"SUBB", 1, "A, R1"},
	0x9A: {"SUBB", 1, "A, R2"},
	0x9B: {"SUBB", 1, "A, R3"},
	0x9C: {"SUBB", 1, "A, R4"},
	0x9D: {"SUBB", 1, "A, R5"},
	0x9E: {"SUBB", 1, "A, R6"},
	0x9F: {"SUBB", 1, "A, R7"},
	0xA0: {"ORL", 2, "C bit/"},
	0xA1: {"AJMP", 2, "code"},
	0xA2: {"MOV", 2, "C bit"},
	0xA3: {"INC", 1, "DPTR"},
	0xA4: {"MUL", 1, "AB"},
	0xA5: {"INVALID", 1, ""},
	0xA6: {"MOV", 2, "@R0 data"},
	0xA7: {"MOV", 2, "@R1 data"},
	0xA8: {"MOV", 2, "R0 data"},
	0xA9: {"MOV", 2, "R1 data"},
	0xAA: {"MOV", 2, "R2 data"},
	0xAB: {"MOV", 2, "R3 data"},
	0xAC: {"MOV", 2, "R4 data"},
	0xAD: {"MOV", 2, "R5 data"},
	0xAE: {"MOV", 2, "R6 data"},
	0xAF: {"MOV", 2, "R7 data"},
	0xB0: {"ANL", 2, "C bit/"},
	0xB1: {"ACALL", 2, "code"},
	0xB2: {"CPL", 2, "bit"},
	0xB3: {"CPL", 1, "C"},
	0xB4: {"CJNE", 3, "A immediate code"},
	0xB5: {"CJNE", 3, "A data code"},
	0xB6: {"CJNE", 3, "@R0 immediate code"},
	0xB7: {"CJNE", 3, "@R1 immediate code"},
	0xB8: {"CJNE", 3, "R0 immediate code"},
	0xB9: {"CJNE", 3, "R1 immediate code"},
	0xBA: {"CJNE", 3, "R2 immediate code"},
	0xBB: {"CJNE", 3, "R3 immediate code"},
	0xBC: {"CJNE", 3, "R4 immediate code"},
	0xBD: {"CJNE", 3, "R5 immediate code"},
	0xBE: {"CJNE", 3, "R6 immediate code"},
	0xBF: {"CJNE", 3, "R7 immediate code"},
	0xC0: {"PUSH", 2, "data"},
	0xC1: {"AJMP", 2, "code"},
	0xC2: {"CLR", 2, "bit"},
	0xC3: {"CLR", 1, "C"},
	0xC4: {"SWAP", 1, "A"},
	0xC5: {"XCH", 2, "A data"},
	0xC6: {"XCH", 1, "A, @R0"},
	0xC7: {"XCH", 1, "A, @R1"},
	0xC8: {"XCH", 1, "A, R0"},
	0xC9: {"XCH", 1, "A, R1"},
	0xCA: {"XCH", 1, "A, R2"},
	0xCB: {"XCH", 1, "A, R3"},
	0xCC: {"XCH", 1, "A, R4"},
	0xCD: {"XCH", 1, "A, R5"},
	0xCE: {"XCH", 1, "A, R6"},
	0xCF: {"XCH", 1, "A, R7"},
	0xD0: {"POP", 2, "data"},
	0xD1: {"ACALL", 2, "code"},
	0xD2: {"SETB", 2, "bit"},
	0xD3: {"SETB", 1, "C"},
	0xD4: {"DA", 1, "A"},
	0xD5: {"DJNZ", 3, "data code"},
	0xD6: {"XCHD", 1, "A, @R0"},
	0xD7: {"XCHD", 1, "A, @R1"},
	0xD8: {"DJNZ", 2, "R0 code"},
	0xD9: {"DJNZ", 2, "R1 code"},
	0xDA: {"DJNZ", 2, "R2 code"},
	0xDB: {"DJNZ", 2, "R3 code"},
	0xDC: {"DJNZ", 2, "R4 code"},
	0xDD: {"DJNZ", 2, "R5 code"},
	0xDE: {"DJNZ", 2, "R6 code"},
	0xDF: {"DJNZ", 2, "R7 code"},
	0xE0: {"MOVX", 1, "A, @DPTR"},
	0xE1: {"AJMP", 2, "code"},
	0xE2: {"MOVX", 1, "A, @R0"},
	0xE3: {"MOVX", 1, "A, @R1"},
	0xE4: {"CLR", 1, "A"},
	0xE5: {"MOV", 2, "A data"},
	0xE6: {"MOV", 1, "A, @R0"},
	0xE7: {"MOV", 1, "A, @R1"},
	0xE8: {"MOV", 1, "A, R0"},
	0xE9: {"MOV", 1, "A, R1"},
	0xEA: {"MOV", 1, "A, R2"},
	0xEB: {"MOV", 1, "A, R3"},
	0xEC: {"MOV", 1, "A, R4"},
	0xED: {"MOV", 1, "A, R5"},
	0xEE: {"MOV", 1, "A, R6"},
	0xEF: {"MOV", 1, "A, R7"},
	0xF0: {"MOVX", 1, "@DPTR, A"},
	0xF1: {"ACALL", 2, "code"},
	0xF2: {"MOVX", 1, "@R0, A"},
	0xF3: {"MOVX", 1, "@R1, A"},
	0xF4: {"CPL", 1, "A"},
	0xF5: {"MOV", 2, "data A"},
	0xF6: {"MOV", 1, "@R0, A"},
	0xF7: {"MOV", 1, "@R1, A"},
	0xF8: {"MOV", 1, "R0, A"},
	0xF9: {"MOV", 1, "R1, A"},
	0xFA: {"MOV", 1, "R2, A"},
	0xFB: {"MOV", 1, "R3, A"},
	0xFC: {"MOV", 1, "R4, A"},
	0xFD: {"MOV", 1, "R5, A"},
	0xFE: {"MOV", 1, "R6, A"},
	0xFF: {"MOV", 1, "R7, A"},
}
