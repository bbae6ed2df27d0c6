package ppu

import "nescore/internal/cartridge"

// nametableIndex resolves a $2000-$2FFF nametable address to a
// (table, offset) pair according to the cartridge's mirroring mode.
// Four-screen mirroring is not representable with only two physical
// 1 KiB tables; it falls back to horizontal, matching the scope of
// the mappers implemented in internal/cartridge.
func (p *PPU) nametableIndex(addr uint16) (table int, offset uint16) {
	addr &= 0x0FFF
	table = int(addr / 0x400)
	offset = addr % 0x400

	switch p.cart.Mirroring() {
	case cartridge.MirrorVertical:
		return table % 2, offset
	case cartridge.MirrorHorizontal:
		return table / 2, offset
	case cartridge.MirrorOneScreenLo:
		return 0, offset
	case cartridge.MirrorOneScreenHi:
		return 1, offset
	default:
		return table / 2, offset
	}
}

func (p *PPU) paletteIndex(addr uint16) uint16 {
	addr &= 0x1F
	// $3F10/$3F14/$3F18/$3F1C mirror their $3F00/$3F04/$3F08/$3F0C
	// background-color counterparts.
	if addr&0x13 == 0x10 {
		addr &= ^uint16(0x10)
	}
	return addr
}

func (p *PPU) readMemory(addr uint16) uint8 {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		if v, ok := p.cart.PPURead(addr); ok {
			return v
		}
		return 0
	case addr < 0x3F00:
		table, offset := p.nametableIndex(addr)
		return p.nametables[table].Read(offset)
	default:
		return p.palette.Read(p.paletteIndex(addr))
	}
}

func (p *PPU) writeMemory(addr uint16, value uint8) {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		p.cart.PPUWrite(addr, value)
	case addr < 0x3F00:
		table, offset := p.nametableIndex(addr)
		p.nametables[table].Write(offset, value)
	default:
		p.palette.Write(p.paletteIndex(addr), value&0x3F)
	}
}
