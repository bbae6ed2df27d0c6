package apu

// envelope is the decay unit shared by the pulse and noise channels:
// constant-volume bit, 4-bit volume/period nibble, reload flag, loop
// flag, internal divider and 4-bit decay level.
type envelope struct {
	constantVolume bool
	volumeOrPeriod uint8
	loop           bool
	start          bool
	divider        uint8
	decay          uint8
}

func (e *envelope) write(value uint8) {
	e.loop = value&0x20 != 0
	e.constantVolume = value&0x10 != 0
	e.volumeOrPeriod = value & 0x0F
	e.start = true
}

// clock runs on every quarter-frame tick: on the reload flag, reset
// decay to 15 and the divider to period+1; otherwise decrement the
// divider and, at zero, reload it and decrement decay (wrapping to 15
// under the loop flag).
func (e *envelope) clock() {
	if e.start {
		e.start = false
		e.decay = 15
		e.divider = e.volumeOrPeriod + 1
		return
	}
	if e.divider > 0 {
		e.divider--
		return
	}
	e.divider = e.volumeOrPeriod + 1
	if e.decay > 0 {
		e.decay--
	} else if e.loop {
		e.decay = 15
	}
}

// volume returns the channel's current output level: the constant
// nibble when constant-volume is set, otherwise the decay level.
func (e *envelope) volume() uint8 {
	if e.constantVolume {
		return e.volumeOrPeriod
	}
	return e.decay
}
