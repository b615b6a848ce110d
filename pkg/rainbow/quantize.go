package rainbow

var (
	// scale5 maps a channel to its 6x6x6 cube coordinate, (v*5)>>8.
	scale5 = buildScale5()
	// grayCodes maps a gray level to the closest step of the 24-step ramp.
	grayCodes = buildGrayCodes()
)

func buildScale5() [256]uint8 {
	var t [256]uint8
	for i := range t {
		t[i] = uint8((uint16(i) * 5) >> 8)
	}
	return t
}

func buildGrayCodes() [256]uint8 {
	var t [256]uint8
	for i := range t {
		switch {
		case i < 8:
			t[i] = 16
		case i > 248:
			t[i] = 231
		default:
			t[i] = 232 + uint8(((uint16(i)-8)*25)>>8)
		}
	}
	return t
}

// Quantize returns the xterm 256-color palette code closest to (r, g, b).
// Grays go through the 24-step ramp, everything else through the color cube
// at 16 + 36*r6 + 6*g6 + b6.
func Quantize(r, g, b uint8) uint8 {
	if r == g && g == b {
		return grayCodes[r]
	}
	return 16 + 36*scale5[r] + 6*scale5[g] + scale5[b]
}

// Palette256 is Quantize for a Color.
func (c Color) Palette256() uint8 {
	return Quantize(c.R, c.G, c.B)
}
