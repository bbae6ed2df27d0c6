// Package console wires the CPU, PPU, APU, cartridge and controller
// together behind a single master-clock scheduler: the one entry point
// a host (cmd/gones or a test) drives to run the emulated machine.
package console

import (
	"nescore/internal/apu"
	"nescore/internal/bus"
	"nescore/internal/cartridge"
	"nescore/internal/controller"
	"nescore/internal/cpu"
	"nescore/internal/ppu"
)

// cyclesPerFrame is 3 * 341 * 262 / 3, i.e. one master tick per PPU
// dot across a full 262-scanline frame (spec.md §8).
const cyclesPerFrame = 89342

// Console owns every component and the master-clock scheduler that
// divides it 6/3/1 into APU/CPU/PPU ticks.
type Console struct {
	CPU  *cpu.CPU
	PPU  *ppu.PPU
	APU  *apu.APU
	Pad  *controller.Controller
	Bus  *bus.Bus
	cart *cartridge.Cartridge

	masterTick uint64
	nmiPending bool
}

// New constructs a Console with no cartridge loaded. Call LoadROM
// before NextFrame.
func New() *Console {
	pad := controller.New()
	apuCore := apu.New()

	var cons Console
	cons.PPU = ppu.New(nopCartridgeBus{})
	cons.APU = apuCore
	cons.Pad = pad
	cons.Bus = bus.New(cons.PPU, cons.APU, cons.Pad)
	cons.CPU = cpu.New(cons.Bus)
	cons.Reset()
	return &cons
}

// LoadROM replaces the cartridge and resets the machine to run it from
// power-on.
func (c *Console) LoadROM(cart *cartridge.Cartridge) {
	c.cart = cart
	c.Bus.SetCartridge(cart)
	c.PPU.SetCartridge(cart)
	c.Reset()
}

// Reset restores CPU, PPU, APU, controller, DMA and framebuffer state
// atomically, per spec.md §5's reset contract.
func (c *Console) Reset() {
	c.Bus.Reset()
	c.PPU.Reset()
	c.APU.Reset()
	c.Pad.Reset()
	if c.cart != nil {
		c.cart.Reset()
	}
	c.CPU.Reset()
	c.masterTick = 0
	c.nmiPending = false
}

// SetButtons updates the live controller button mask (bit layout per
// controller.Button).
func (c *Console) SetButtons(mask uint8) {
	c.Pad.SetButtons(mask)
}

// FrameBuffer returns the current 256x240 palette-indexed framebuffer.
func (c *Console) FrameBuffer() *[ppu.FrameWidth * ppu.FrameHeight]uint8 {
	return c.PPU.FrameBuffer()
}

// Pulse1State, Pulse2State, TriangleState and NoiseState expose the
// APU's per-channel control variables for an external audio DSP.
func (c *Console) Pulse1State() apu.ChannelState   { return c.APU.Pulse1State() }
func (c *Console) Pulse2State() apu.ChannelState   { return c.APU.Pulse2State() }
func (c *Console) TriangleState() apu.ChannelState { return c.APU.TriangleState() }
func (c *Console) NoiseState() apu.NoiseState      { return c.APU.NoiseState() }

// AudioFrame bundles all four channels' current control variables, for
// a host that wants one call per frame instead of four.
type AudioFrame struct {
	Pulse1, Pulse2, Triangle apu.ChannelState
	Noise                    apu.NoiseState
}

// AudioFrame returns the current per-channel control variables.
func (c *Console) AudioFrame() AudioFrame {
	return AudioFrame{
		Pulse1:   c.APU.Pulse1State(),
		Pulse2:   c.APU.Pulse2State(),
		Triangle: c.APU.TriangleState(),
		Noise:    c.APU.NoiseState(),
	}
}

// NextFrame advances the master clock until the PPU signals
// frame_complete, or until the CPU's PC matches a breakpoint address
// (checked only at instruction boundaries, i.e. when the CPU is about
// to fetch). Pass a nil slice to run with no breakpoints.
func (c *Console) NextFrame(breakpoints []uint16) {
	for {
		c.tickMaster()
		if c.PPU.FrameComplete() {
			return
		}
		if len(breakpoints) > 0 && c.CPU.Cycles() == 0 && !c.Bus.DMAActive() {
			for _, bp := range breakpoints {
				if c.CPU.PC == bp {
					return
				}
			}
		}
	}
}

// tickMaster advances exactly one master clock tick: the PPU always
// ticks, the CPU (or DMA) ticks every 3rd, and the APU ticks every 6th.
// An NMI edge the PPU raises mid-tick is latched and only delivered to
// the CPU at the next instruction boundary (c.CPU.Cycles() == 0), per
// spec.md §5's ordering guarantee that the CPU observes PPU side
// effects at the next CPU tick boundary, not mid-instruction.
func (c *Console) tickMaster() {
	c.PPU.Step()
	if c.PPU.TakeNMIEdge() {
		c.nmiPending = true
	}

	c.masterTick++
	if c.masterTick%3 == 0 {
		if c.Bus.DMAActive() {
			c.Bus.TickDMA()
		} else {
			c.Bus.NotifyCPUCycle()
			if c.nmiPending && c.CPU.Cycles() == 0 {
				c.nmiPending = false
				c.CPU.NMI()
			} else {
				c.CPU.Tick()
			}
		}
	}
	if c.masterTick%6 == 0 {
		c.APU.Step()
	}
}

// nopCartridgeBus is the PPU's CHR/mirroring view before a cartridge
// is loaded: every read misses and mirroring defaults to vertical.
type nopCartridgeBus struct{}

func (nopCartridgeBus) PPURead(addr uint16) (uint8, bool)      { return 0, false }
func (nopCartridgeBus) PPUWrite(addr uint16, value uint8) bool { return false }
func (nopCartridgeBus) Mirroring() cartridge.Mirroring         { return cartridge.MirrorVertical }
