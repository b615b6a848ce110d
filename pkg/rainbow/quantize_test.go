package rainbow

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQuantize(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    uint8
	}{
		{name: "black", r: 0, g: 0, b: 0, want: 16},
		{name: "darkest gray below ramp", r: 7, g: 7, b: 7, want: 16},
		{name: "ramp start", r: 8, g: 8, b: 8, want: 232},
		{name: "mid gray", r: 128, g: 128, b: 128, want: 232 + (120*25)>>8},
		{name: "ramp end", r: 248, g: 248, b: 248, want: 255},
		{name: "lightest gray above ramp", r: 249, g: 249, b: 249, want: 231},
		{name: "white", r: 255, g: 255, b: 255, want: 231},
		{name: "blue just below first step", r: 0, g: 0, b: 51, want: 16 + 36*0 + 6*0 + 0},
		{name: "blue first step", r: 0, g: 0, b: 52, want: 16 + 36*0 + 6*0 + 1},
		{name: "pure red", r: 255, g: 0, b: 0, want: 16 + 36*4},
		{name: "yellow", r: 255, g: 255, b: 0, want: 16 + 36*4 + 6*4},
		{name: "first table entry", r: 128, g: 238, b: 18, want: 16 + 36*2 + 6*4 + 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Quantize(tt.r, tt.g, tt.b))
		})
	}
}

func TestQuantizeMatchesArithmetic(t *testing.T) {
	for r := 0; r < 256; r += 3 {
		for g := 0; g < 256; g += 5 {
			for b := 0; b < 256; b += 7 {
				var want int
				if r == g && g == b {
					switch {
					case r < 8:
						want = 16
					case r > 248:
						want = 231
					default:
						want = 232 + ((r-8)*25)>>8
					}
				} else {
					want = 16 + 36*((r*5)>>8) + 6*((g*5)>>8) + (b*5)>>8
				}
				got := Quantize(uint8(r), uint8(g), uint8(b))
				require.Equal(t, want, int(got), "rgb(%d,%d,%d)", r, g, b)
			}
		}
	}
}

func TestQuantizeStaysInExtendedRange(t *testing.T) {
	for v := 0; v < 256; v++ {
		c := Color{R: uint8(v), G: uint8(255 - v), B: uint8(v / 2)}
		code := c.Palette256()
		require.GreaterOrEqual(t, code, uint8(16))
	}
}
