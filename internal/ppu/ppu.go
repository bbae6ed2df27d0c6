// Package ppu implements the NES Picture Processing Unit: the
// 341x262 dot-driven background/sprite pipeline, palette lookup,
// framebuffer emission and vblank NMI edge generation.
package ppu

import (
	"nescore/internal/cartridge"
	"nescore/internal/mem"
)

const (
	FrameWidth  = 256
	FrameHeight = 240
)

// CartridgeBus is the non-owning view into cartridge CHR memory and
// mirroring the PPU needs; passed in by the owning bus/console at
// construction rather than stored as a back-reference to a concrete
// Cartridge, per the composition strategy in spec.md's Design Notes.
type CartridgeBus interface {
	PPURead(addr uint16) (uint8, bool)
	PPUWrite(addr uint16, value uint8) bool
	Mirroring() cartridge.Mirroring
}

// oamEntry mirrors the 4-byte OAM layout: Y, tile index, attribute,
// X. Attribute bits: 0-1 palette, 5 priority (0 = in front), 6 flip
// horizontal, 7 flip vertical.
type oamEntry struct {
	Y, Tile, Attr, X uint8
}

// spriteUnit is the latched, shifting state of one of the up to 8
// sprites selected for the current scanline.
type spriteUnit struct {
	oamIndex         int
	row              uint8
	loShift, hiShift uint8
	x                uint8
	attr             uint8
	isSprite0        bool
}

// PPU is the 2C02 core: CPU-visible registers, Loopy V/T scroll state,
// background/sprite shift registers, and the 256x240 framebuffer.
type PPU struct {
	cart CartridgeBus

	// CPU-visible register latches.
	ctrl   uint8 // $2000
	mask   uint8 // $2001
	status uint8 // $2002 (only bits 7,6,5 meaningful)
	oamAddr uint8

	// Loopy scroll state.
	v, t uint16
	fineX uint8
	writeLatch bool
	readBuffer uint8

	nametables [2]*mem.Bank // 1 KiB each
	palette    *mem.Bank    // 32 bytes
	oam        [64]oamEntry

	scanline int // -1..260
	cycle    int // 0..340
	oddFrame bool

	bgPatternLo, bgPatternHi     uint16
	bgAttribLo, bgAttribHi       uint16
	nextTile, nextAttrib         uint8
	nextPatternLo, nextPatternHi uint8

	sprites       [8]spriteUnit
	spriteCount   int
	spriteOverflow bool

	sprite0Hit     bool
	frameComplete  bool
	nmiEdge        bool
	suppressNMI    bool

	frameBuffer [FrameWidth * FrameHeight]uint8
}

// New constructs a PPU wired to the cartridge's CHR/mirroring view.
func New(cart CartridgeBus) *PPU {
	p := &PPU{
		cart:       cart,
		nametables: [2]*mem.Bank{mem.NewBank(0x400), mem.NewBank(0x400)},
		palette:    mem.NewBank(32),
	}
	p.Reset()
	return p
}

// SetCartridge replaces the CHR/mirroring view, used when a ROM is
// loaded after construction.
func (p *PPU) SetCartridge(cart CartridgeBus) {
	p.cart = cart
}

// Reset restores power-on state: scanline -1, cycle 0, all latches
// clear, framebuffer blanked.
func (p *PPU) Reset() {
	p.ctrl, p.mask, p.status = 0, 0, 0
	p.oamAddr = 0
	p.v, p.t, p.fineX = 0, 0, 0
	p.writeLatch = false
	p.readBuffer = 0
	p.scanline, p.cycle = -1, 0
	p.oddFrame = false
	p.bgPatternLo, p.bgPatternHi = 0, 0
	p.bgAttribLo, p.bgAttribHi = 0, 0
	p.spriteCount = 0
	p.spriteOverflow = false
	p.sprite0Hit = false
	p.frameComplete = false
	p.nmiEdge = false
	for i := range p.oam {
		p.oam[i] = oamEntry{}
	}
	for i := range p.frameBuffer {
		p.frameBuffer[i] = 0
	}
	p.nametables[0].Clear()
	p.nametables[1].Clear()
	p.palette.Clear()
}

// FrameBuffer returns the current 256x240 palette-indexed framebuffer.
func (p *PPU) FrameBuffer() *[FrameWidth * FrameHeight]uint8 {
	return &p.frameBuffer
}

// FrameComplete reports and clears the frame-complete flag raised
// when the PPU wraps from scanline 260 back to -1.
func (p *PPU) FrameComplete() bool {
	v := p.frameComplete
	p.frameComplete = false
	return v
}

// TakeNMIEdge reports and clears the NMI edge the PPU raised at
// vblank start. Edge-triggered, single-flag, no callbacks, per
// spec.md's interrupt-signalling design note.
func (p *PPU) TakeNMIEdge() bool {
	v := p.nmiEdge
	p.nmiEdge = false
	return v
}

func (p *PPU) renderingEnabled() bool {
	return p.mask&0x18 != 0 // background or sprites enabled
}

func (p *PPU) backgroundEnabled() bool { return p.mask&0x08 != 0 }
func (p *PPU) spritesEnabled() bool    { return p.mask&0x10 != 0 }
func (p *PPU) spriteHeight() int {
	if p.ctrl&0x20 != 0 {
		return 16
	}
	return 8
}

// ReadRegister services a CPU read at $2000-$2007 (address&7 selects
// the register).
func (p *PPU) ReadRegister(addr uint16) uint8 {
	switch addr & 7 {
	case 2: // PPUSTATUS
		result := (p.status & 0xE0) | (p.readBuffer & 0x1F)
		p.status &^= 0x80 // clear vblank
		p.writeLatch = false
		return result
	case 4: // OAMDATA, unbuffered
		return p.oamByte(p.oamAddr)
	case 7: // PPUDATA
		return p.readPPUData()
	default:
		return 0
	}
}

// WriteRegister services a CPU write at $2000-$2007.
func (p *PPU) WriteRegister(addr uint16, value uint8) {
	switch addr & 7 {
	case 0: // PPUCTRL
		p.ctrl = value
		p.t = (p.t & 0xF3FF) | (uint16(value&0x03) << 10)
	case 1: // PPUMASK
		p.mask = value
	case 3: // OAMADDR
		p.oamAddr = value
	case 4: // OAMDATA
		p.setOAMByte(p.oamAddr, value)
		p.oamAddr++
	case 5: // PPUSCROLL
		p.writeScroll(value)
	case 6: // PPUADDR
		p.writeAddr(value)
	case 7: // PPUDATA
		p.writeData(value)
	}
}

func (p *PPU) writeScroll(value uint8) {
	if !p.writeLatch {
		p.fineX = value & 0x07
		p.t = (p.t & 0xFFE0) | uint16(value>>3)
	} else {
		p.t = (p.t & 0x8FFF) | (uint16(value&0x07) << 12)
		p.t = (p.t & 0xFC1F) | (uint16(value>>3) << 5)
	}
	p.writeLatch = !p.writeLatch
}

func (p *PPU) writeAddr(value uint8) {
	if !p.writeLatch {
		p.t = (p.t & 0x00FF) | (uint16(value&0x3F) << 8)
	} else {
		p.t = (p.t & 0xFF00) | uint16(value)
		p.v = p.t
	}
	p.writeLatch = !p.writeLatch
}

func (p *PPU) vramIncrement() uint16 {
	if p.ctrl&0x04 != 0 {
		return 32
	}
	return 1
}

func (p *PPU) readPPUData() uint8 {
	addr := p.v & 0x3FFF
	var value uint8
	if addr >= 0x3F00 {
		value = p.readMemory(addr)
		p.readBuffer = p.readMemory(addr - 0x1000) // nametable mirror behind the palette
	} else {
		value = p.readBuffer
		p.readBuffer = p.readMemory(addr)
	}
	p.v += p.vramIncrement()
	return value
}

func (p *PPU) writeData(value uint8) {
	p.writeMemory(p.v&0x3FFF, value)
	p.v += p.vramIncrement()
}

func (p *PPU) oamByte(index uint8) uint8 {
	e := p.oam[index/4]
	switch index % 4 {
	case 0:
		return e.Y
	case 1:
		return e.Tile
	case 2:
		return e.Attr
	default:
		return e.X
	}
}

func (p *PPU) setOAMByte(index uint8, value uint8) {
	e := &p.oam[index/4]
	switch index % 4 {
	case 0:
		e.Y = value
	case 1:
		e.Tile = value
	case 2:
		e.Attr = value
	default:
		e.X = value
	}
}

// WriteOAM is used by OAM-DMA to load a byte without going through
// OAMADDR auto-increment semantics beyond the destination index.
func (p *PPU) WriteOAM(index uint8, value uint8) {
	p.setOAMByte(index, value)
}
