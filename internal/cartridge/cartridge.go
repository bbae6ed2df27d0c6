package cartridge

import (
	"fmt"
	"io"
)

// Mapper is the capability set every address-translator variant
// exposes to the CPU and PPU buses. A read returns (value, true) when
// the mapper served the address and (_, false) for open bus. A write
// returns whether it was acknowledged.
type Mapper interface {
	CPURead(addr uint16) (uint8, bool)
	CPUWrite(addr uint16, value uint8) bool
	PPURead(addr uint16) (uint8, bool)
	PPUWrite(addr uint16, value uint8) bool

	// Mirroring overrides the header's mirroring when the mapper
	// controls it dynamically (MMC1). ok is false when the header
	// value should be used as-is.
	Mirroring() (m Mirroring, ok bool)

	// Reset restores power-on latch/bank-select state.
	Reset()
}

// Cartridge owns the PRG/CHR/RAM banks and the selected Mapper.
// Constructed once at ROM load and immutable thereafter except through
// the Mapper's own state.
type Cartridge struct {
	Header    Header
	mapper    Mapper
	mirroring Mirroring
}

// Load parses an iNES image from r and constructs the Cartridge with
// its mapper. Returns an error for malformed headers or unsupported
// mapper IDs; both are non-recoverable for this ROM.
func Load(r io.Reader) (*Cartridge, error) {
	header, err := ParseHeader(r)
	if err != nil {
		return nil, err
	}

	if header.HasTrainer {
		trainer := make([]uint8, trainerSize)
		if _, err := io.ReadFull(r, trainer); err != nil {
			return nil, fmt.Errorf("cartridge: reading trainer: %w", err)
		}
	}

	prg := make([]uint8, header.PRGROMBanks*prgBankSize)
	if _, err := io.ReadFull(r, prg); err != nil {
		return nil, fmt.Errorf("cartridge: reading PRG ROM: %w", err)
	}

	chrIsRAM := header.CHRROMBanks == 0
	var chr []uint8
	if chrIsRAM {
		chr = make([]uint8, chrBankSize)
	} else {
		chr = make([]uint8, header.CHRROMBanks*chrBankSize)
		if _, err := io.ReadFull(r, chr); err != nil {
			return nil, fmt.Errorf("cartridge: reading CHR ROM: %w", err)
		}
	}

	prgRAMBanks := header.PRGRAMBanks
	if prgRAMBanks == 0 {
		prgRAMBanks = 1 // iNES convention: zero means "assume one 8 KiB bank"
	}
	prgRAM := make([]uint8, prgRAMBanks*8*1024)

	mapper, err := newMapper(header, prg, chr, prgRAM, chrIsRAM)
	if err != nil {
		return nil, err
	}

	return &Cartridge{
		Header:    header,
		mapper:    mapper,
		mirroring: header.Mirroring,
	}, nil
}

func newMapper(h Header, prg, chr, prgRAM []uint8, chrIsRAM bool) (Mapper, error) {
	switch h.MapperID {
	case 0:
		return newNROM(prg, chr, prgRAM, chrIsRAM), nil
	case 1:
		return newMMC1(h, prg, chr, prgRAM, chrIsRAM), nil
	case 2:
		return newUxROM(prg, chr, prgRAM, chrIsRAM), nil
	default:
		return nil, fmt.Errorf("cartridge: unsupported mapper id %d", h.MapperID)
	}
}

// CPURead reads through the mapper at a CPU address.
func (c *Cartridge) CPURead(addr uint16) (uint8, bool) {
	return c.mapper.CPURead(addr)
}

// CPUWrite writes through the mapper at a CPU address.
func (c *Cartridge) CPUWrite(addr uint16, value uint8) bool {
	return c.mapper.CPUWrite(addr, value)
}

// PPURead reads through the mapper at a PPU (CHR) address.
func (c *Cartridge) PPURead(addr uint16) (uint8, bool) {
	return c.mapper.PPURead(addr)
}

// PPUWrite writes through the mapper at a PPU (CHR) address.
func (c *Cartridge) PPUWrite(addr uint16, value uint8) bool {
	return c.mapper.PPUWrite(addr, value)
}

// Mirroring returns the current nametable mirroring, preferring the
// mapper's dynamic value over the header's static one.
func (c *Cartridge) Mirroring() Mirroring {
	if m, ok := c.mapper.Mirroring(); ok {
		return m
	}
	return c.mirroring
}

// Reset restores the mapper's power-on state.
func (c *Cartridge) Reset() {
	c.mapper.Reset()
}
