package cpu

// opcodeEntry is one row of the 256-entry dispatch table: which
// operation runs, how its operand is addressed, the base cycle cost,
// and whether a crossed page adds a cycle (it never does for write
// instructions or accumulator/implied operations).
type opcodeEntry struct {
	Op          operation
	Mode        AddressingMode
	Cycles      uint8
	PagePenalty bool
}

// op is a convenience constructor so the table below reads as a flat
// literal matrix instead of 256 nested struct literals.
func op(o operation, m AddressingMode, cycles uint8, pagePenalty bool) opcodeEntry {
	return opcodeEntry{Op: o, Mode: m, Cycles: cycles, PagePenalty: pagePenalty}
}

// illegal is any of the 105 byte values outside the 56 official
// opcodes: executed as a two-cycle implied NOP, per spec.
var illegal = op(opNOP, ModeIMP, 2, false)

// opcodeTable maps every possible opcode byte to its decode. Unlisted
// slots default to illegal via the array initializer below.
var opcodeTable = buildOpcodeTable()

func buildOpcodeTable() [256]opcodeEntry {
	var t [256]opcodeEntry
	for i := range t {
		t[i] = illegal
	}

	t[0x00] = op(opBRK, ModeIMP, 7, false)
	t[0x01] = op(opORA, ModeIDX, 6, false)
	t[0x05] = op(opORA, ModeZP0, 3, false)
	t[0x06] = op(opASL, ModeZP0, 5, false)
	t[0x08] = op(opPHP, ModeIMP, 3, false)
	t[0x09] = op(opORA, ModeIMM, 2, false)
	t[0x0A] = op(opASL, ModeACC, 2, false)
	t[0x0D] = op(opORA, ModeABS, 4, false)
	t[0x0E] = op(opASL, ModeABS, 6, false)

	t[0x10] = op(opBPL, ModeREL, 2, false)
	t[0x11] = op(opORA, ModeIDY, 5, true)
	t[0x15] = op(opORA, ModeZPX, 4, false)
	t[0x16] = op(opASL, ModeZPX, 6, false)
	t[0x18] = op(opCLC, ModeIMP, 2, false)
	t[0x19] = op(opORA, ModeABY, 4, true)
	t[0x1D] = op(opORA, ModeABX, 4, true)
	t[0x1E] = op(opASL, ModeABX, 7, false)

	t[0x20] = op(opJSR, ModeABS, 6, false)
	t[0x21] = op(opAND, ModeIDX, 6, false)
	t[0x24] = op(opBIT, ModeZP0, 3, false)
	t[0x25] = op(opAND, ModeZP0, 3, false)
	t[0x26] = op(opROL, ModeZP0, 5, false)
	t[0x28] = op(opPLP, ModeIMP, 4, false)
	t[0x29] = op(opAND, ModeIMM, 2, false)
	t[0x2A] = op(opROL, ModeACC, 2, false)
	t[0x2C] = op(opBIT, ModeABS, 4, false)
	t[0x2D] = op(opAND, ModeABS, 4, false)
	t[0x2E] = op(opROL, ModeABS, 6, false)

	t[0x30] = op(opBMI, ModeREL, 2, false)
	t[0x31] = op(opAND, ModeIDY, 5, true)
	t[0x35] = op(opAND, ModeZPX, 4, false)
	t[0x36] = op(opROL, ModeZPX, 6, false)
	t[0x38] = op(opSEC, ModeIMP, 2, false)
	t[0x39] = op(opAND, ModeABY, 4, true)
	t[0x3D] = op(opAND, ModeABX, 4, true)
	t[0x3E] = op(opROL, ModeABX, 7, false)

	t[0x40] = op(opRTI, ModeIMP, 6, false)
	t[0x41] = op(opEOR, ModeIDX, 6, false)
	t[0x45] = op(opEOR, ModeZP0, 3, false)
	t[0x46] = op(opLSR, ModeZP0, 5, false)
	t[0x48] = op(opPHA, ModeIMP, 3, false)
	t[0x49] = op(opEOR, ModeIMM, 2, false)
	t[0x4A] = op(opLSR, ModeACC, 2, false)
	t[0x4C] = op(opJMP, ModeABS, 3, false)
	t[0x4D] = op(opEOR, ModeABS, 4, false)
	t[0x4E] = op(opLSR, ModeABS, 6, false)

	t[0x50] = op(opBVC, ModeREL, 2, false)
	t[0x51] = op(opEOR, ModeIDY, 5, true)
	t[0x55] = op(opEOR, ModeZPX, 4, false)
	t[0x56] = op(opLSR, ModeZPX, 6, false)
	t[0x58] = op(opCLI, ModeIMP, 2, false)
	t[0x59] = op(opEOR, ModeABY, 4, true)
	t[0x5D] = op(opEOR, ModeABX, 4, true)
	t[0x5E] = op(opLSR, ModeABX, 7, false)

	t[0x60] = op(opRTS, ModeIMP, 6, false)
	t[0x61] = op(opADC, ModeIDX, 6, false)
	t[0x65] = op(opADC, ModeZP0, 3, false)
	t[0x66] = op(opROR, ModeZP0, 5, false)
	t[0x68] = op(opPLA, ModeIMP, 4, false)
	t[0x69] = op(opADC, ModeIMM, 2, false)
	t[0x6A] = op(opROR, ModeACC, 2, false)
	t[0x6C] = op(opJMP, ModeIND, 5, false)
	t[0x6D] = op(opADC, ModeABS, 4, false)
	t[0x6E] = op(opROR, ModeABS, 6, false)

	t[0x70] = op(opBVS, ModeREL, 2, false)
	t[0x71] = op(opADC, ModeIDY, 5, true)
	t[0x75] = op(opADC, ModeZPX, 4, false)
	t[0x76] = op(opROR, ModeZPX, 6, false)
	t[0x78] = op(opSEI, ModeIMP, 2, false)
	t[0x79] = op(opADC, ModeABY, 4, true)
	t[0x7D] = op(opADC, ModeABX, 4, true)
	t[0x7E] = op(opROR, ModeABX, 7, false)

	t[0x81] = op(opSTA, ModeIDX, 6, false)
	t[0x84] = op(opSTY, ModeZP0, 3, false)
	t[0x85] = op(opSTA, ModeZP0, 3, false)
	t[0x86] = op(opSTX, ModeZP0, 3, false)
	t[0x88] = op(opDEY, ModeIMP, 2, false)
	t[0x8A] = op(opTXA, ModeIMP, 2, false)
	t[0x8C] = op(opSTY, ModeABS, 4, false)
	t[0x8D] = op(opSTA, ModeABS, 4, false)
	t[0x8E] = op(opSTX, ModeABS, 4, false)

	t[0x90] = op(opBCC, ModeREL, 2, false)
	t[0x91] = op(opSTA, ModeIDY, 6, false)
	t[0x94] = op(opSTY, ModeZPX, 4, false)
	t[0x95] = op(opSTA, ModeZPX, 4, false)
	t[0x96] = op(opSTX, ModeZPY, 4, false)
	t[0x98] = op(opTYA, ModeIMP, 2, false)
	t[0x99] = op(opSTA, ModeABY, 5, false)
	t[0x9A] = op(opTXS, ModeIMP, 2, false)
	t[0x9D] = op(opSTA, ModeABX, 5, false)

	t[0xA0] = op(opLDY, ModeIMM, 2, false)
	t[0xA1] = op(opLDA, ModeIDX, 6, false)
	t[0xA2] = op(opLDX, ModeIMM, 2, false)
	t[0xA4] = op(opLDY, ModeZP0, 3, false)
	t[0xA5] = op(opLDA, ModeZP0, 3, false)
	t[0xA6] = op(opLDX, ModeZP0, 3, false)
	t[0xA8] = op(opTAY, ModeIMP, 2, false)
	t[0xA9] = op(opLDA, ModeIMM, 2, false)
	t[0xAA] = op(opTAX, ModeIMP, 2, false)
	t[0xAC] = op(opLDY, ModeABS, 4, false)
	t[0xAD] = op(opLDA, ModeABS, 4, false)
	t[0xAE] = op(opLDX, ModeABS, 4, false)

	t[0xB0] = op(opBCS, ModeREL, 2, false)
	t[0xB1] = op(opLDA, ModeIDY, 5, true)
	t[0xB4] = op(opLDY, ModeZPX, 4, false)
	t[0xB5] = op(opLDA, ModeZPX, 4, false)
	t[0xB6] = op(opLDX, ModeZPY, 4, false)
	t[0xB8] = op(opCLV, ModeIMP, 2, false)
	t[0xB9] = op(opLDA, ModeABY, 4, true)
	t[0xBA] = op(opTSX, ModeIMP, 2, false)
	t[0xBC] = op(opLDY, ModeABX, 4, true)
	t[0xBD] = op(opLDA, ModeABX, 4, true)
	t[0xBE] = op(opLDX, ModeABY, 4, true)

	t[0xC0] = op(opCPY, ModeIMM, 2, false)
	t[0xC1] = op(opCMP, ModeIDX, 6, false)
	t[0xC4] = op(opCPY, ModeZP0, 3, false)
	t[0xC5] = op(opCMP, ModeZP0, 3, false)
	t[0xC6] = op(opDEC, ModeZP0, 5, false)
	t[0xC8] = op(opINY, ModeIMP, 2, false)
	t[0xC9] = op(opCMP, ModeIMM, 2, false)
	t[0xCA] = op(opDEX, ModeIMP, 2, false)
	t[0xCC] = op(opCPY, ModeABS, 4, false)
	t[0xCD] = op(opCMP, ModeABS, 4, false)
	t[0xCE] = op(opDEC, ModeABS, 6, false)

	t[0xD0] = op(opBNE, ModeREL, 2, false)
	t[0xD1] = op(opCMP, ModeIDY, 5, true)
	t[0xD5] = op(opCMP, ModeZPX, 4, false)
	t[0xD6] = op(opDEC, ModeZPX, 6, false)
	t[0xD8] = op(opCLD, ModeIMP, 2, false)
	t[0xD9] = op(opCMP, ModeABY, 4, true)
	t[0xDD] = op(opCMP, ModeABX, 4, true)
	t[0xDE] = op(opDEC, ModeABX, 7, false)

	t[0xE0] = op(opCPX, ModeIMM, 2, false)
	t[0xE1] = op(opSBC, ModeIDX, 6, false)
	t[0xE4] = op(opCPX, ModeZP0, 3, false)
	t[0xE5] = op(opSBC, ModeZP0, 3, false)
	t[0xE6] = op(opINC, ModeZP0, 5, false)
	t[0xE8] = op(opINX, ModeIMP, 2, false)
	t[0xE9] = op(opSBC, ModeIMM, 2, false)
	t[0xEA] = op(opNOP, ModeIMP, 2, false)
	t[0xEC] = op(opCPX, ModeABS, 4, false)
	t[0xED] = op(opSBC, ModeABS, 4, false)
	t[0xEE] = op(opINC, ModeABS, 6, false)

	t[0xF0] = op(opBEQ, ModeREL, 2, false)
	t[0xF1] = op(opSBC, ModeIDY, 5, true)
	t[0xF5] = op(opSBC, ModeZPX, 4, false)
	t[0xF6] = op(opINC, ModeZPX, 6, false)
	t[0xF8] = op(opSED, ModeIMP, 2, false)
	t[0xF9] = op(opSBC, ModeABY, 4, true)
	t[0xFD] = op(opSBC, ModeABX, 4, true)
	t[0xFE] = op(opINC, ModeABX, 7, false)

	return t
}
