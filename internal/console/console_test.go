package console

import (
	"bytes"
	"testing"

	"nescore/internal/cartridge"
)

// buildTestCartridge assembles a minimal NROM-128 image: an infinite
// JMP loop at 0x8000, a second loop at 0x8010 for the NMI handler, and
// matching reset/NMI vectors.
func buildTestCartridge(t *testing.T) *cartridge.Cartridge {
	t.Helper()
	var rom bytes.Buffer
	rom.WriteString("NES\x1A")
	rom.WriteByte(1) // 1x16KiB PRG
	rom.WriteByte(1) // 1x8KiB CHR
	rom.Write(make([]byte, 10))

	prg := make([]uint8, 16*1024)
	prg[0x0000], prg[0x0001], prg[0x0002] = 0x4C, 0x00, 0x80 // JMP $8000
	prg[0x0010], prg[0x0011], prg[0x0012] = 0x4C, 0x10, 0x80 // JMP $8010
	prg[0x3FFA], prg[0x3FFB] = 0x10, 0x80                    // NMI vector -> $8010
	prg[0x3FFC], prg[0x3FFD] = 0x00, 0x80                    // reset vector -> $8000
	prg[0x3FFE], prg[0x3FFF] = 0x00, 0x80                    // IRQ vector -> $8000
	rom.Write(prg)
	rom.Write(make([]byte, 8*1024)) // CHR

	cart, err := cartridge.Load(&rom)
	if err != nil {
		t.Fatalf("building test cartridge: %v", err)
	}
	return cart
}

func TestFrameCadenceWithRenderingDisabled(t *testing.T) {
	c := New()
	c.LoadROM(buildTestCartridge(t))

	c.NextFrame(nil)
	if c.masterTick != cyclesPerFrame {
		t.Fatalf("master ticks per frame = %d, want %d", c.masterTick, cyclesPerFrame)
	}
}

func TestVBlankNMIRedirectsCPUThroughScheduler(t *testing.T) {
	c := New()
	c.LoadROM(buildTestCartridge(t))
	if c.CPU.PC != 0x8000 {
		t.Fatalf("reset vector PC = %#04x, want 0x8000", c.CPU.PC)
	}

	c.Bus.Write(0x2000, 0x80) // enable NMI generation on vblank

	c.NextFrame(nil)
	if c.CPU.PC != 0x8010 {
		t.Fatalf("expected CPU redirected into the NMI handler loop at $8010, PC = %#04x", c.CPU.PC)
	}
}

func TestOAMDMASuspendsCPUWhileAdvancingPPU(t *testing.T) {
	c := New()
	c.LoadROM(buildTestCartridge(t))

	startCPUCycles := c.CPU.TotalCycles()
	c.Bus.Write(0x4014, 0x02)

	ticks := 0
	for c.Bus.DMAActive() {
		c.tickMaster()
		ticks++
		if ticks > 5000 {
			t.Fatal("DMA never completed")
		}
	}

	if got := c.CPU.TotalCycles(); got != startCPUCycles {
		t.Fatalf("CPU should not advance while DMA owns the bus, gained %d cycles", got-startCPUCycles)
	}
	if ticks%3 != 0 {
		t.Fatalf("expected a whole number of CPU-cycle-equivalent master ticks, got %d", ticks)
	}
	cpuCycles := ticks / 3
	if cpuCycles != 513 && cpuCycles != 514 {
		t.Fatalf("expected 513 or 514 CPU-cycle-equivalent DMA ticks, got %d", cpuCycles)
	}
}

func TestAudioFrameBundlesAllFourChannels(t *testing.T) {
	c := New()
	c.LoadROM(buildTestCartridge(t))

	c.Bus.Write(0x4000, 0x3F) // pulse1 duty/volume
	c.Bus.Write(0x4002, 0x00)
	c.Bus.Write(0x4015, 0x01)
	c.Bus.Write(0x4003, 0x00)

	frame := c.AudioFrame()
	if frame.Pulse1.FrequencyHz <= 0 {
		t.Fatalf("expected pulse1 frequency > 0, got %f", frame.Pulse1.FrequencyHz)
	}
}

func TestResetRestoresPowerOnState(t *testing.T) {
	c := New()
	c.LoadROM(buildTestCartridge(t))
	c.SetButtons(0xFF)
	c.Bus.Write(0x4014, 0x02)

	c.Reset()
	if c.Bus.DMAActive() {
		t.Fatal("reset should cancel any in-flight OAM-DMA")
	}
	if c.CPU.PC != 0x8000 {
		t.Fatalf("PC after reset = %#04x, want 0x8000", c.CPU.PC)
	}
}
