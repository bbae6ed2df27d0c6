package ppu

import (
	"testing"

	"nescore/internal/cartridge"
)

type fakeCart struct {
	chr       [0x2000]uint8
	mirroring cartridge.Mirroring
}

func (f *fakeCart) PPURead(addr uint16) (uint8, bool) {
	if addr < 0x2000 {
		return f.chr[addr], true
	}
	return 0, false
}

func (f *fakeCart) PPUWrite(addr uint16, value uint8) bool {
	if addr < 0x2000 {
		f.chr[addr] = value
		return true
	}
	return false
}

func (f *fakeCart) Mirroring() cartridge.Mirroring { return f.mirroring }

func newTestPPU(mirroring cartridge.Mirroring) (*PPU, *fakeCart) {
	cart := &fakeCart{mirroring: mirroring}
	return New(cart), cart
}

func TestPaletteMirrorsBackgroundEntries(t *testing.T) {
	p, _ := newTestPPU(cartridge.MirrorHorizontal)
	p.writeMemory(0x3F00, 0x0F)
	if got := p.readMemory(0x3F10); got != 0x0F {
		t.Fatalf("0x3F10 = %#02x, want mirror of 0x3F00 (0x0F)", got)
	}
	p.writeMemory(0x3F04, 0x12)
	if got := p.readMemory(0x3F14); got != 0x12 {
		t.Fatalf("0x3F14 = %#02x, want mirror of 0x3F04 (0x12)", got)
	}
}

func TestVerticalMirroringSharesColumns(t *testing.T) {
	p, _ := newTestPPU(cartridge.MirrorVertical)
	p.writeMemory(0x2000, 0xAB)
	if got := p.readMemory(0x2800); got != 0xAB {
		t.Fatalf("vertical mirroring: 0x2800 = %#02x, want 0xAB", got)
	}
	if got := p.readMemory(0x2400); got == 0xAB {
		t.Fatal("vertical mirroring: 0x2400 should be the other physical table")
	}
}

func TestHorizontalMirroringSharesRows(t *testing.T) {
	p, _ := newTestPPU(cartridge.MirrorHorizontal)
	p.writeMemory(0x2000, 0xCD)
	if got := p.readMemory(0x2400); got != 0xCD {
		t.Fatalf("horizontal mirroring: 0x2400 = %#02x, want 0xCD", got)
	}
}

func TestVBlankSetAndNMIEdgeAtScanline241(t *testing.T) {
	p, _ := newTestPPU(cartridge.MirrorHorizontal)
	p.WriteRegister(0, 0x80) // enable NMI on vblank

	for !(p.scanline == 241 && p.cycle == 1) {
		p.Step()
	}
	p.Step() // execute the (241,1) edge

	if p.status&0x80 == 0 {
		t.Fatal("PPUSTATUS vblank bit should be set")
	}
	if !p.TakeNMIEdge() {
		t.Fatal("expected NMI edge at (241,1) with NMI enabled")
	}
}

func TestPPUStatusReadClearsVBlankAndLatch(t *testing.T) {
	p, _ := newTestPPU(cartridge.MirrorHorizontal)
	p.status |= 0x80
	p.writeLatch = true
	v := p.ReadRegister(0x2002)
	if v&0x80 == 0 {
		t.Fatal("read should report vblank set before clearing it")
	}
	if p.status&0x80 != 0 {
		t.Fatal("reading PPUSTATUS should clear vblank")
	}
	if p.writeLatch {
		t.Fatal("reading PPUSTATUS should clear the write latch")
	}
}

func TestPPUAddrWriteSequenceSetsV(t *testing.T) {
	p, _ := newTestPPU(cartridge.MirrorHorizontal)
	p.WriteRegister(6, 0x21)
	p.WriteRegister(6, 0x05)
	if p.v != 0x2105 {
		t.Fatalf("v = %#04x, want 0x2105", p.v)
	}
}

func TestPPUDataAutoIncrement(t *testing.T) {
	p, cart := newTestPPU(cartridge.MirrorHorizontal)
	cart.chr[0x0010] = 0x77
	p.WriteRegister(6, 0x00)
	p.WriteRegister(6, 0x10)
	p.ReadRegister(7) // primes the read buffer, returns stale data
	if got := p.ReadRegister(7); got != 0x77 {
		t.Fatalf("buffered PPUDATA read = %#02x, want 0x77", got)
	}
	if p.v != 0x0012 {
		t.Fatalf("v after two reads = %#04x, want 0x0012", p.v)
	}
}
