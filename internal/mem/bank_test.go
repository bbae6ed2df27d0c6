package mem

import "testing"

func TestBankMirroring(t *testing.T) {
	b := NewBank(0x800)
	b.Write(0x0123, 0xAB)

	if got := b.Read(0x0123); got != 0xAB {
		t.Fatalf("Read(0x0123) = %#02x, want 0xAB", got)
	}
	for k := 0; k < 4; k++ {
		addr := uint16(0x0123 + k*0x800)
		if got := b.Read(addr); got != 0xAB {
			t.Errorf("Read(%#04x) = %#02x, want 0xAB (mirror k=%d)", addr, got, k)
		}
	}
}

func TestBankWriteThenReadAllAddresses(t *testing.T) {
	sizes := []int{0x400, 0x800, 0x2000, 0x4000}
	for _, size := range sizes {
		b := NewBank(size)
		for a := 0; a < size; a += 37 {
			b.Write(uint16(a), uint8(a))
			if got := b.Read(uint16(a)); got != uint8(a) {
				t.Fatalf("size %#x: Read(%#x) = %#02x, want %#02x", size, a, got, uint8(a))
			}
		}
	}
}

func TestBankClearAndFill(t *testing.T) {
	b := NewBank(16)
	b.Fill(0xFF)
	for i := 0; i < 16; i++ {
		if b.Read(uint16(i)) != 0xFF {
			t.Fatalf("Fill did not set index %d", i)
		}
	}
	b.Clear()
	for i := 0; i < 16; i++ {
		if b.Read(uint16(i)) != 0 {
			t.Fatalf("Clear did not reset index %d", i)
		}
	}
}
