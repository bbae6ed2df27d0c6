package cartridge

// uxrom implements mapper 2 (UxROM): a single 3-bit bank-select latch
// switches the 16 KiB window at 0x8000-0xBFFF; 0xC000-0xFFFF is fixed
// to the last PRG bank. CHR is writable RAM only when the header
// declares no CHR ROM banks; otherwise it is read-only ROM.
// 0x6000-0x7FFF is backed by PRG-RAM.
type uxrom struct {
	prg      []uint8
	chr      []uint8
	prgRAM   []uint8
	chrIsRAM bool
	bankSel  uint8
	banks16K int
}

func newUxROM(prg, chr, prgRAM []uint8, chrIsRAM bool) *uxrom {
	return &uxrom{
		prg:      prg,
		chr:      chr,
		prgRAM:   prgRAM,
		chrIsRAM: chrIsRAM,
		banks16K: len(prg) / prgBankSize,
	}
}

func (m *uxrom) CPURead(addr uint16) (uint8, bool) {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		return m.prgRAM[int(addr-0x6000)%len(m.prgRAM)], true
	case addr >= 0x8000 && addr < 0xC000:
		bank := int(m.bankSel&0x07) % m.banks16K
		return m.prg[bank*prgBankSize+int(addr-0x8000)], true
	case addr >= 0xC000:
		bank := m.banks16K - 1
		return m.prg[bank*prgBankSize+int(addr-0xC000)], true
	default:
		return 0, false
	}
}

func (m *uxrom) CPUWrite(addr uint16, value uint8) bool {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		m.prgRAM[int(addr-0x6000)%len(m.prgRAM)] = value
		return true
	case addr >= 0x8000:
		m.bankSel = value
		return true
	default:
		return false
	}
}

func (m *uxrom) PPURead(addr uint16) (uint8, bool) {
	if addr >= 0x2000 {
		return 0, false
	}
	return m.chr[int(addr)%len(m.chr)], true
}

func (m *uxrom) PPUWrite(addr uint16, value uint8) bool {
	if addr >= 0x2000 || !m.chrIsRAM {
		return false
	}
	m.chr[int(addr)%len(m.chr)] = value
	return true
}

func (m *uxrom) Mirroring() (Mirroring, bool) { return 0, false }

func (m *uxrom) Reset() { m.bankSel = 0 }
