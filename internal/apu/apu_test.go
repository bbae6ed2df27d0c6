package apu

import "testing"

func TestLengthCounterTableLookup(t *testing.T) {
	for i, want := range lengthTable {
		a := New()
		a.WriteRegister(0x4015, 0x01)
		a.WriteRegister(0x4003, uint8(i)<<3)
		if got := a.pulse1.len.counter; got != want {
			t.Fatalf("length index %d = %d, want %d", i, got, want)
		}
	}
}

func TestSweepRegisterDecode(t *testing.T) {
	a := New()
	a.WriteRegister(0x4001, 0xFF)
	if !a.pulse1.sweepEnable {
		t.Fatal("sweep_enabled should be set after writing 0xFF")
	}
	a.WriteRegister(0x4001, 0x7F)
	if a.pulse1.sweepEnable {
		t.Fatal("sweep_enabled should be clear after writing 0x7F")
	}
	a.WriteRegister(0x4002, 0xCA) // timer low
	a.WriteRegister(0x4015, 0x01)
	a.WriteRegister(0x4003, 0xDD) // timer high bits + length index
	wantTimer := uint16(0b101_1100_1010)
	if a.pulse1.timer != wantTimer {
		t.Fatalf("timer = %#03x, want %#03x", a.pulse1.timer, wantTimer)
	}
	wantLen := lengthTable[0b11011]
	if a.pulse1.len.counter != wantLen {
		t.Fatalf("length = %d, want %d", a.pulse1.len.counter, wantLen)
	}
}

func TestSweepMuteOnLowTimer(t *testing.T) {
	a := New()
	a.WriteRegister(0x4000, 0x00)
	a.WriteRegister(0x4002, 0x02) // timer = 2, below the 8 floor
	a.WriteRegister(0x4015, 0x01)
	a.WriteRegister(0x4003, 0x00)
	_, muted := a.pulse1.sweepTarget()
	if !muted {
		t.Fatal("timer below 8 should mute the sweep target")
	}
}

func TestSweepMuteOnOverflow(t *testing.T) {
	a := New()
	a.WriteRegister(0x4000, 0x00)
	a.WriteRegister(0x4002, 0xFF)
	a.WriteRegister(0x4015, 0x01)
	a.WriteRegister(0x4003, 0x07) // timer = 0x7FF
	a.pulse1.sweepShift = 0
	_, muted := a.pulse1.sweepTarget()
	if !muted {
		t.Fatal("timer>>0 added to itself should overflow 0x7FF and mute")
	}
}

func TestFourStepFrameIRQAtWrap(t *testing.T) {
	a := New()
	a.WriteRegister(0x4017, 0x00) // 4-step, IRQ enabled
	for i := 0; i < 14915; i++ {
		a.Step()
	}
	if !a.frameIRQFlag {
		t.Fatal("expected frame IRQ flag set at tick 14915 in 4-step mode")
	}
	if a.tick != 0 {
		t.Fatalf("tick should reset to 0 after wrap, got %d", a.tick)
	}
}

func TestFiveStepModeSuppressesIRQ(t *testing.T) {
	a := New()
	a.WriteRegister(0x4017, 0x80) // 5-step, immediate clock on write
	for i := 0; i < 18641; i++ {
		a.Step()
	}
	if a.frameIRQFlag {
		t.Fatal("5-step mode should never raise the frame IRQ")
	}
}

func TestEnvelopeReloadsOnWrite(t *testing.T) {
	a := New()
	a.WriteRegister(0x4000, 0x0F) // constant volume off (bit 4 clear), period 15
	if !a.pulse1.env.start {
		t.Fatal("writing the control register should set the envelope start flag")
	}
	a.pulse1.env.clock()
	if a.pulse1.env.decay != 15 {
		t.Fatalf("decay after reload = %d, want 15", a.pulse1.env.decay)
	}
}

func TestTriangleGateRequiresLinearAndLength(t *testing.T) {
	a := New()
	a.WriteRegister(0x4008, 0x00) // halt clear, linear load 0
	a.WriteRegister(0x4015, 0x04)
	a.WriteRegister(0x400B, 0x08) // length index 1
	state := a.TriangleState()
	if state.Gate {
		t.Fatal("triangle should be gated off while linear counter is zero")
	}
}

func TestReadStatusClearsFrameIRQ(t *testing.T) {
	a := New()
	a.frameIRQFlag = true
	if s := a.ReadStatus(); s&0x40 == 0 {
		t.Fatal("status read should report the pending frame IRQ")
	}
	if a.frameIRQFlag {
		t.Fatal("reading status should clear the frame IRQ flag")
	}
}
