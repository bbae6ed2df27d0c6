package cartridge

// mmc1 implements mapper 1: a 5-bit shift register serially loaded by
// consecutive CPU writes to 0x8000-0xFFFF, committing to one of four
// internal registers (Control, CHR-bank-0, CHR-bank-1, PRG-bank) on
// the 5th write. A write with bit 7 set resets the shifter and forces
// PRG mode 3 regardless of shift progress.
type mmc1 struct {
	prg      []uint8
	chr      []uint8
	prgRAM   []uint8
	chrIsRAM bool
	banks16K int
	chrBanks4K int

	shiftReg   uint8
	shiftCount uint8

	control uint8 // bit4: chr mode, bits 3-2: prg mode, bits 1-0: mirroring
	chrBank0 uint8
	chrBank1 uint8
	prgBank  uint8
}

func newMMC1(h Header, prg, chr, prgRAM []uint8, chrIsRAM bool) *mmc1 {
	m := &mmc1{
		prg:        prg,
		chr:        chr,
		prgRAM:     prgRAM,
		chrIsRAM:   chrIsRAM,
		banks16K:   len(prg) / prgBankSize,
		chrBanks4K: len(chr) / (4 * 1024),
	}
	m.Reset()
	return m
}

// Reset restores MMC1's power-on state: empty shifter, PRG mode 3
// (fix last bank at 0xC000, switch 0x8000), CHR mode 0 (8 KiB switch).
func (m *mmc1) Reset() {
	m.shiftReg = 0
	m.shiftCount = 0
	m.control = 0x0C
	m.chrBank0 = 0
	m.chrBank1 = 0
	m.prgBank = 0
}

func (m *mmc1) prgMode() uint8 { return (m.control >> 2) & 0x03 }
func (m *mmc1) chrMode() uint8 { return (m.control >> 4) & 0x01 }

func (m *mmc1) CPURead(addr uint16) (uint8, bool) {
	if addr >= 0x6000 && addr < 0x8000 {
		return m.prgRAM[int(addr-0x6000)%len(m.prgRAM)], true
	}
	if addr < 0x8000 {
		return 0, false
	}

	lastBank := m.banks16K - 1
	switch m.prgMode() {
	case 0, 1: // 32 KiB switch: prgBank's high bits select a 32 KiB pair
		bank := (int(m.prgBank) >> 1) % ((m.banks16K + 1) / 2)
		base := bank * 2 * prgBankSize
		offset := base + int(addr-0x8000)
		if offset >= len(m.prg) {
			return 0, false
		}
		return m.prg[offset], true
	case 2: // fix first bank at 0x8000, switch 0xC000
		if addr < 0xC000 {
			return m.prg[int(addr-0x8000)], true
		}
		bank := int(m.prgBank) % m.banks16K
		return m.prg[bank*prgBankSize+int(addr-0xC000)], true
	default: // case 3: fix last bank at 0xC000, switch 0x8000
		if addr >= 0xC000 {
			return m.prg[lastBank*prgBankSize+int(addr-0xC000)], true
		}
		bank := int(m.prgBank) % m.banks16K
		return m.prg[bank*prgBankSize+int(addr-0x8000)], true
	}
}

func (m *mmc1) CPUWrite(addr uint16, value uint8) bool {
	if addr >= 0x6000 && addr < 0x8000 {
		m.prgRAM[int(addr-0x6000)%len(m.prgRAM)] = value
		return true
	}
	if addr < 0x8000 {
		return false
	}

	if value&0x80 != 0 {
		m.shiftReg = 0
		m.shiftCount = 0
		m.control |= 0x0C // force PRG mode 3
		return true
	}

	m.shiftReg = (m.shiftReg >> 1) | ((value & 0x01) << 4)
	m.shiftCount++
	if m.shiftCount < 5 {
		return true
	}

	committed := m.shiftReg
	m.shiftReg = 0
	m.shiftCount = 0

	switch {
	case addr < 0xA000:
		m.control = committed
	case addr < 0xC000:
		m.chrBank0 = committed
	case addr < 0xE000:
		m.chrBank1 = committed
	default:
		m.prgBank = committed
	}
	return true
}

func (m *mmc1) PPURead(addr uint16) (uint8, bool) {
	if addr >= 0x2000 {
		return 0, false
	}
	offset, ok := m.chrOffset(addr)
	if !ok {
		return 0, false
	}
	return m.chr[offset], true
}

func (m *mmc1) PPUWrite(addr uint16, value uint8) bool {
	if addr >= 0x2000 || !m.chrIsRAM {
		return false
	}
	offset, ok := m.chrOffset(addr)
	if !ok {
		return false
	}
	m.chr[offset] = value
	return true
}

// chrOffset resolves a PPU pattern-table address through the current
// CHR mode. 8 KiB mode masks bit 0 off the committed bank (selecting
// an 8 KiB-aligned pair); 4 KiB mode uses the full 5 bits per half.
func (m *mmc1) chrOffset(addr uint16) (int, bool) {
	if m.chrMode() == 0 {
		bank := int(m.chrBank0&0x1E) % m.chrBanks4K
		offset := bank*4*1024 + int(addr)
		if offset >= len(m.chr) {
			return 0, false
		}
		return offset, true
	}
	if addr < 0x1000 {
		bank := int(m.chrBank0) % m.chrBanks4K
		return bank*4*1024 + int(addr), true
	}
	bank := int(m.chrBank1) % m.chrBanks4K
	return bank*4*1024 + int(addr-0x1000), true
}

func (m *mmc1) Mirroring() (Mirroring, bool) {
	switch m.control & 0x03 {
	case 0:
		return MirrorOneScreenLo, true
	case 1:
		return MirrorOneScreenHi, true
	case 2:
		return MirrorVertical, true
	default:
		return MirrorHorizontal, true
	}
}
