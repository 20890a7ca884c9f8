package disasm

// AddrMap maps special function register names to their direct addresses.
// Where two names share an address (ACC and A both name 0xE0), lookup by
// address picks whichever survives the reverse-index build; see
// addrNameByValue.
var AddrMap = map[string]byte{
	"ACC":  0xE0,
	"A":    0xE0,
	"B":    0xF0,
	"PSW":  0xD0,
	"IP":   0xB8,
	"P3":   0xB0,
	"IE":   0xA8,
	"P2":   0xA0,
	"SBUF": 0x99,
	"SCON": 0x98,
	"P1":   0x90,
	"TH1":  0x8D,
	"TH0":  0x8C,
	"TL1":  0x8B,
	"TL0":  0x8A,
	"TMOD": 0x89,
	"TCON": 0x88,
	"PCON": 0x87,
	"DPH":  0x83,
	"DPL":  0x82,
	"SP":   0x81,
	"P0":   0x80,
}

// BitMap maps bit-addressable names to their bit addresses.
var BitMap = map[string]byte{
	"P0_0": 0x80, "P0_1": 0x81, "P0_2": 0x82, "P0_3": 0x83,
	"P0_4": 0x84, "P0_5": 0x85, "P0_6": 0x86, "P0_7": 0x87,

	"IT0": 0x88, "IE0": 0x89, "IT1": 0x8A, "IE1": 0x8B,
	"TR0": 0x8C, "TF0": 0x8D, "TR1": 0x8E, "TF1": 0x8F,

	"P1_0": 0x90, "P1_1": 0x91, "P1_2": 0x92, "P1_3": 0x93,
	"P1_4": 0x94, "P1_5": 0x95, "P1_6": 0x96, "P1_7": 0x97,

	"RI": 0x98, "TI": 0x99, "RB8": 0x9A, "TB8": 0x9B,
	"REN": 0x9C, "SM2": 0x9D, "SM1": 0x9E, "SM0": 0x9F,

	"P2_0": 0xA0, "P2_1": 0xA1, "P2_2": 0xA2, "P2_3": 0xA3,
	"P2_4": 0xA4, "P2_5": 0xA5, "P2_6": 0xA6, "P2_7": 0xA7,

	"EX0": 0xA8, "ET0": 0xA9, "EX1": 0xAA, "ET1": 0xAB,
	"ES": 0xAC, "EA": 0xAF,

	"RXD": 0xB0, "TXD": 0xB1, "INT0_N": 0xB2, "INT1_N": 0xB3,
	"T0": 0xB4, "T1": 0xB5, "WR_N": 0xB6, "RD_N": 0xB7,

	"PX0": 0xB8, "PT0": 0xB9, "PX1": 0xBA, "PT1": 0xBB, "PS": 0xBC,

	"P": 0xD0, "F1": 0xD1, "OV": 0xD2, "RS0": 0xD3,
	"RS1": 0xD4, "F0": 0xD5, "AC": 0xD6, "CY": 0xD7,
}

// addrOrder fixes the declaration order AddrMap was written in, so the
// reverse lookup below gives the same answer the
// reference console gets from Python's list(dict.values()).index(...):
// whichever name was declared first for a shared address wins (ACC
// before A, both 0xE0).
var addrOrder = []string{
	"ACC", "A", "B", "PSW", "IP", "P3", "IE", "P2", "SBUF", "SCON", "P1",
	"TH1", "TH0", "TL1", "TL0", "TMOD", "TCON", "PCON", "DPH", "DPL", "SP", "P0",
}

var addrNameByValue = reverseIndex(AddrMap, addrOrder)
var bitNameByValue = reverseIndex(BitMap, nil)

// reverseIndex builds a value-to-name lookup from a name-to-value map.
// If order is non-nil, it is scanned in that sequence so the first name
// declared for a shared value wins; otherwise (no known collisions,
// as in BitMap) Go's map iteration order is fine.
func reverseIndex(m map[string]byte, order []string) map[byte]string {
	out := make(map[byte]string, len(m))
	if order == nil {
		for name, value := range m {
			out[value] = name
		}
		return out
	}
	for i := len(order) - 1; i >= 0; i-- {
		out[m[order[i]]] = order[i]
	}
	return out
}
