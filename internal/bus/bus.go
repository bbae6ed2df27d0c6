// Package bus implements the CPU-visible address decoder: WRAM, the
// PPU/APU/controller register windows, the OAM-DMA state machine, and
// the cartridge window, unified behind the cpu.Bus interface.
package bus

import "nescore/internal/mem"

// PPUPort is the subset of the PPU the CPU bus needs.
type PPUPort interface {
	ReadRegister(addr uint16) uint8
	WriteRegister(addr uint16, value uint8)
	WriteOAM(index uint8, value uint8)
}

// APUPort is the subset of the APU the CPU bus needs.
type APUPort interface {
	WriteRegister(addr uint16, value uint8)
	ReadStatus() uint8
}

// ControllerPort is the subset of the controller the CPU bus needs.
type ControllerPort interface {
	Write(value uint8)
	Read() uint8
}

// CartridgePort is the subset of the cartridge the CPU bus needs.
type CartridgePort interface {
	CPURead(addr uint16) (uint8, bool)
	CPUWrite(addr uint16, value uint8) bool
}

// dmaState tracks the OAM-DMA transfer per spec.md's byte-at-a-time
// state machine.
type dmaState uint8

const (
	dmaInactive dmaState = iota
	dmaIdling
	dmaTransferring
)

// Bus is the CPU's unified address space: 0x0000-0x1FFF WRAM
// (mirrored every 0x0800), 0x2000-0x3FFF PPU register window,
// 0x4000-0x4017 APU/controller/DMA, 0x4020-0xFFFF cartridge.
type Bus struct {
	ram  *mem.Bank
	ppu  PPUPort
	apu  APUPort
	ctrl ControllerPort
	cart CartridgePort

	openBus uint8

	dma           dmaState
	dmaPage       uint8
	dmaAddr       uint8
	dmaBuffer     uint8
	dmaReadPhase  bool
	dmaOddCycle   bool
	cpuTickParity bool
}

// New wires a Bus to its component ports. The cartridge is supplied
// separately via SetCartridge since ROM load happens after console
// construction.
func New(ppu PPUPort, apu APUPort, ctrl ControllerPort) *Bus {
	return &Bus{
		ram:  mem.NewBank(0x0800),
		ppu:  ppu,
		apu:  apu,
		ctrl: ctrl,
	}
}

// SetCartridge attaches or replaces the cartridge window.
func (b *Bus) SetCartridge(cart CartridgePort) {
	b.cart = cart
}

// Reset clears WRAM, the open-bus latch, and any in-flight DMA.
func (b *Bus) Reset() {
	b.ram.Clear()
	b.openBus = 0
	b.dma = dmaInactive
	b.dmaPage, b.dmaAddr, b.dmaBuffer = 0, 0, 0
	b.dmaReadPhase = false
	b.dmaOddCycle = false
	b.cpuTickParity = false
}

// Read services a CPU read, updating the open-bus latch with every
// value actually produced.
func (b *Bus) Read(addr uint16) uint8 {
	value := b.read(addr)
	b.openBus = value
	return value
}

func (b *Bus) read(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return b.ram.Read(addr & 0x07FF)
	case addr < 0x4000:
		return b.ppu.ReadRegister(addr)
	case addr == 0x4015:
		return b.apu.ReadStatus()
	case addr == 0x4016:
		return b.ctrl.Read()
	case addr < 0x4020:
		return b.openBus
	default:
		if b.cart != nil {
			if v, ok := b.cart.CPURead(addr); ok {
				return v
			}
		}
		return b.openBus
	}
}

// Write services a CPU write.
func (b *Bus) Write(addr uint16, value uint8) {
	switch {
	case addr < 0x2000:
		b.ram.Write(addr&0x07FF, value)
	case addr < 0x4000:
		b.ppu.WriteRegister(addr, value)
	case addr == 0x4014:
		b.startOAMDMA(value)
	case addr == 0x4016:
		b.ctrl.Write(value)
	case addr <= 0x4013, addr == 0x4015, addr == 0x4017:
		b.apu.WriteRegister(addr, value)
	case addr < 0x4020:
		// Test-mode registers 0x4018-0x401F: ignored.
	default:
		if b.cart != nil {
			b.cart.CPUWrite(addr, value)
		}
	}
}

func (b *Bus) startOAMDMA(page uint8) {
	if b.dma != dmaInactive {
		return
	}
	b.dma = dmaIdling
	b.dmaPage = page
	b.dmaAddr = 0
	// Starting on an odd CPU cycle costs one extra alignment tick
	// (513 vs 514 total), per spec.md §8's OAM-DMA cycle-count property.
	b.dmaOddCycle = b.cpuTickParity
}

// DMAActive reports whether OAM-DMA currently owns the CPU.
func (b *Bus) DMAActive() bool {
	return b.dma != dmaInactive
}

// NotifyCPUCycle is called once per CPU tick that actually executes
// (not while DMA owns the bus) so the DMA state machine can track CPU
// cycle parity for the 513/514-cycle alignment rule.
func (b *Bus) NotifyCPUCycle() {
	b.cpuTickParity = !b.cpuTickParity
}

// TickDMA advances the OAM-DMA state machine by one CPU cycle: the
// cycle after the 0x4014 write idles (with one extra alignment cycle
// when the write landed on an odd CPU cycle), then alternating cycles
// perform one source read and one OAM write until the 256-byte page
// wraps.
func (b *Bus) TickDMA() {
	switch b.dma {
	case dmaIdling:
		if b.dmaOddCycle {
			b.dmaOddCycle = false
			return
		}
		b.dma = dmaTransferring
		b.dmaReadPhase = true
	case dmaTransferring:
		if b.dmaReadPhase {
			b.dmaBuffer = b.Read(uint16(b.dmaPage)<<8 | uint16(b.dmaAddr))
			b.dmaReadPhase = false
			return
		}
		b.ppu.WriteOAM(b.dmaAddr, b.dmaBuffer)
		b.dmaReadPhase = true
		if b.dmaAddr == 0xFF {
			b.dmaAddr = 0
			b.dma = dmaInactive
			return
		}
		b.dmaAddr++
	}
}
