package apu

// lengthTable maps a 5-bit length-counter-load index to its initial
// counter value.
var lengthTable = [32]uint8{
	10, 254, 20, 2, 40, 4, 80, 6,
	160, 8, 60, 10, 14, 12, 26, 14,
	12, 16, 24, 8, 48, 6, 96, 4,
	192, 2, 72, 16, 28, 32, 52, 2,
}

// noisePeriodTable is the NTSC noise-channel period-index lookup, in
// APU timer units.
var noisePeriodTable = [16]uint16{
	4, 8, 16, 32, 64, 96, 128, 160,
	202, 254, 380, 508, 762, 1016, 2034, 4068,
}

// dutyFraction maps a pulse channel's 2-bit duty select to the
// fraction of the period spent high.
var dutyFraction = [4]float64{0.125, 0.25, 0.5, 0.75}
