package ppu

// masterPalette is the canonical 64-entry 2C02 RGB palette. Index by
// the 6-bit value read out of palette RAM.
var masterPalette = [64][3]uint8{
	{84, 84, 84}, {0, 30, 116}, {8, 16, 144}, {48, 0, 136},
	{68, 0, 100}, {92, 0, 48}, {84, 4, 0}, {60, 24, 0},
	{32, 42, 0}, {8, 58, 0}, {0, 64, 0}, {0, 60, 0},
	{0, 50, 60}, {0, 0, 0}, {0, 0, 0}, {0, 0, 0},
	{152, 150, 152}, {8, 76, 196}, {48, 50, 236}, {92, 30, 228},
	{136, 20, 176}, {160, 20, 100}, {152, 34, 32}, {120, 60, 0},
	{84, 90, 0}, {40, 114, 0}, {8, 124, 0}, {0, 118, 40},
	{0, 102, 120}, {0, 0, 0}, {0, 0, 0}, {0, 0, 0},
	{236, 238, 236}, {76, 154, 236}, {120, 124, 236}, {176, 98, 236},
	{228, 84, 236}, {236, 88, 180}, {236, 106, 100}, {212, 136, 32},
	{160, 170, 0}, {116, 196, 0}, {76, 208, 32}, {56, 204, 108},
	{56, 180, 204}, {60, 60, 60}, {0, 0, 0}, {0, 0, 0},
	{236, 238, 236}, {168, 204, 236}, {188, 188, 236}, {212, 178, 236},
	{236, 174, 236}, {236, 174, 212}, {236, 180, 176}, {228, 196, 144},
	{204, 210, 120}, {180, 222, 120}, {168, 226, 144}, {152, 226, 180},
	{160, 214, 228}, {160, 162, 160}, {0, 0, 0}, {0, 0, 0},
}

// RGB resolves a palette RAM index (the value written into frameBuffer)
// into an 8-bit RGB triple, applying the PPUMASK grayscale and color
// emphasis bits a real 2C02 multiplies onto its DAC output.
func RGB(paletteValue uint8, mask uint8) (r, g, b uint8) {
	entry := masterPalette[paletteValue&0x3F]
	r, g, b = entry[0], entry[1], entry[2]

	if mask&0x01 != 0 { // grayscale: AND with 0x30
		gray := masterPalette[paletteValue&0x30]
		r, g, b = gray[0], gray[1], gray[2]
	}

	emphasis := mask >> 5
	if emphasis != 0 {
		// Each emphasis bit dims the complementary channels rather than
		// boosting its own, approximating the 2C02's analog behavior.
		const dim = 0.75
		if emphasis&0x01 != 0 { // red
			g = uint8(float64(g) * dim)
			b = uint8(float64(b) * dim)
		}
		if emphasis&0x02 != 0 { // green
			r = uint8(float64(r) * dim)
			b = uint8(float64(b) * dim)
		}
		if emphasis&0x04 != 0 { // blue
			r = uint8(float64(r) * dim)
			g = uint8(float64(g) * dim)
		}
	}
	return r, g, b
}
