package cpu

// AddressingMode selects how an instruction's effective address (or
// accumulator operand) is resolved. 13 modes total, per spec.
type AddressingMode uint8

const (
	ModeIMP AddressingMode = iota
	ModeACC
	ModeIMM
	ModeREL
	ModeABS
	ModeABX
	ModeABY
	ModeZP0
	ModeZPX
	ModeZPY
	ModeIND
	ModeIDX
	ModeIDY
)

// resolveOperand computes (effective address, page-crossed, operates
// on accumulator) for the given mode. IMP/ACC produce no address; REL
// produces the branch target address directly rather than a pointer to
// the offset byte.
func (c *CPU) resolveOperand(mode AddressingMode) (addr uint16, pageCrossed bool, isAccum bool) {
	switch mode {
	case ModeIMP:
		return 0, false, false

	case ModeACC:
		return 0, false, true

	case ModeIMM:
		addr = c.PC
		c.PC++
		return addr, false, false

	case ModeREL:
		offset := int8(c.bus.Read(c.PC))
		c.PC++
		base := c.PC
		target := uint16(int32(base) + int32(offset))
		return target, base&0xFF00 != target&0xFF00, false

	case ModeABS:
		addr = c.read16(c.PC)
		c.PC += 2
		return addr, false, false

	case ModeABX:
		base := c.read16(c.PC)
		c.PC += 2
		addr = base + uint16(c.X)
		return addr, base&0xFF00 != addr&0xFF00, false

	case ModeABY:
		base := c.read16(c.PC)
		c.PC += 2
		addr = base + uint16(c.Y)
		return addr, base&0xFF00 != addr&0xFF00, false

	case ModeZP0:
		addr = uint16(c.bus.Read(c.PC))
		c.PC++
		return addr, false, false

	case ModeZPX:
		zp := c.bus.Read(c.PC)
		c.PC++
		addr = uint16(zp + c.X)
		return addr, false, false

	case ModeZPY:
		zp := c.bus.Read(c.PC)
		c.PC++
		addr = uint16(zp + c.Y)
		return addr, false, false

	case ModeIND:
		ptr := c.read16(c.PC)
		c.PC += 2
		addr = c.readIndirect(ptr)
		return addr, false, false

	case ModeIDX:
		zp := c.bus.Read(c.PC)
		c.PC++
		ptr := uint16(zp + c.X)
		lo := uint16(c.bus.Read(ptr & 0x00FF))
		hi := uint16(c.bus.Read((ptr + 1) & 0x00FF))
		addr = hi<<8 | lo
		return addr, false, false

	case ModeIDY:
		zp := c.bus.Read(c.PC)
		c.PC++
		lo := uint16(c.bus.Read(uint16(zp) & 0x00FF))
		hi := uint16(c.bus.Read((uint16(zp) + 1) & 0x00FF))
		base := hi<<8 | lo
		addr = base + uint16(c.Y)
		return addr, base&0xFF00 != addr&0xFF00, false

	default:
		return 0, false, false
	}
}

// readIndirect reproduces the 6502 JMP (ind) page-wrap bug: when the
// low byte of the pointer is 0xFF, the high byte is fetched from
// ptr&0xFF00 rather than ptr+1, wrapping within the same page.
func (c *CPU) readIndirect(ptr uint16) uint16 {
	lo := uint16(c.bus.Read(ptr))
	var hiAddr uint16
	if ptr&0x00FF == 0x00FF {
		hiAddr = ptr & 0xFF00
	} else {
		hiAddr = ptr + 1
	}
	hi := uint16(c.bus.Read(hiAddr))
	return hi<<8 | lo
}

// operand reads the 8-bit value at the resolved address, or the
// accumulator when isAccum is set.
func (c *CPU) operand(addr uint16, isAccum bool) uint8 {
	if isAccum {
		return c.A
	}
	return c.bus.Read(addr)
}

func (c *CPU) storeOperand(addr uint16, isAccum bool, value uint8) {
	if isAccum {
		c.A = value
		return
	}
	c.bus.Write(addr, value)
}
