// Package mem implements the fixed-size, modulo-mirrored byte banks
// shared by WRAM, PPU nametables, palette RAM, OAM and CHR-RAM.
package mem

// Bank is a fixed-size byte store addressed modulo its declared size.
// Every read and write wraps, so a Bank of size 0x800 mirrors every
// 0x800 bytes of whatever larger address window it is placed behind.
type Bank struct {
	data []uint8
}

// NewBank allocates a Bank of the given size.
func NewBank(size int) *Bank {
	return &Bank{data: make([]uint8, size)}
}

// Len returns the bank's declared size.
func (b *Bank) Len() int {
	return len(b.data)
}

// Read returns the byte at address mod Len().
func (b *Bank) Read(addr uint16) uint8 {
	return b.data[int(addr)%len(b.data)]
}

// Write stores value at address mod Len().
func (b *Bank) Write(addr uint16, value uint8) {
	b.data[int(addr)%len(b.data)] = value
}

// Clear zeroes the bank in place, used by Reset().
func (b *Bank) Clear() {
	for i := range b.data {
		b.data[i] = 0
	}
}

// Fill sets every byte of the bank to value, used to seed test fixtures.
func (b *Bank) Fill(value uint8) {
	for i := range b.data {
		b.data[i] = value
	}
}

// Raw exposes the backing slice for bulk ROM loads. Callers must not
// retain a reference past the Bank's lifetime.
func (b *Bank) Raw() []uint8 {
	return b.data
}
