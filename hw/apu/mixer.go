package apu

import "math"

// pulseTable and tndTable are the standard NES non-linear mixing lookup
// curves (spec.md §4.5 Mixer): pulse1+pulse2 index into pulseTable, and
// 3*triangle + 2*noise index into tndTable. There is no DMC term; the table
// keeps the standard 203-entry size.
var pulseTable [31]float32
var tndTable [203]float32

func init() {
	for i := range pulseTable {
		if i == 0 {
			continue
		}
		pulseTable[i] = float32(95.52 / (8128.0/float64(i) + 100))
	}
	for i := range tndTable {
		if i == 0 {
			continue
		}
		tndTable[i] = float32(163.67 / (24329.0/float64(i) + 100))
	}
}

// mix combines the four channel outputs into a single sample in [-1, 1]
// using the standard two-curve approximation.
func mix(pulse1, pulse2, triangleOut, noiseOut uint8) float32 {
	p := pulseTable[pulse1+pulse2]
	t := tndTable[3*triangleOut+2*noiseOut]
	return p + t
}

// clampToPCM16 converts a mixed sample in [-1, 1] to signed 16-bit PCM.
func clampToPCM16(sample float32) int16 {
	v := sample * math.MaxInt16
	if v > math.MaxInt16 {
		v = math.MaxInt16
	}
	if v < math.MinInt16 {
		v = math.MinInt16
	}
	return int16(v)
}
