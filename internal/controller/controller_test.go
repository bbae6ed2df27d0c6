package controller

import "testing"

func TestShiftOutMSBFirst(t *testing.T) {
	c := New()
	c.SetButtons(uint8(ButtonA | ButtonStart))
	c.Write(0x01) // strobe high: latch continuously
	c.Write(0x00) // strobe falls: freeze latched state

	want := []uint8{1, 0, 0, 1, 0, 0, 0, 0} // A, B, Select, Start, Up, Down, Left, Right
	for i, w := range want {
		if got := c.Read(); got != w {
			t.Fatalf("bit %d = %d, want %d", i, got, w)
		}
	}
}

func TestStrobeHighAlwaysReadsA(t *testing.T) {
	c := New()
	c.SetButtons(uint8(ButtonA))
	c.Write(0x01)
	for i := 0; i < 3; i++ {
		if got := c.Read(); got != 1 {
			t.Fatalf("read %d while strobed high = %d, want 1", i, got)
		}
	}
}
