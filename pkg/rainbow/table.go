// Package rainbow holds the precomputed rainbow color table, the escape
// sequences derived from it and the fixed-point lookup that maps a stream
// position to a table entry.
//
// Everything in this package is built once per process and read-only
// afterwards, so it is safe for concurrent use.
package rainbow

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// TableSize is the number of samples in one rotation of the rainbow. It must
// stay a power of two: indices wrap with a mask.
const TableSize = 2048

const tableMask = TableSize - 1

const (
	amplitude = 127.0
	offset    = 128.0

	// cos(2π/3) and sin(2π/3), the 120° shift between channels
	cos120 = -0.5
	sin120 = 0.8660254037844386
)

// Color is a 24-bit RGB color.
type Color struct {
	R, G, B uint8
}

// Colorful returns c as a go-colorful color.
func (c Color) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// Hex formats c as #rrggbb.
func (c Color) Hex() string {
	return c.Colorful().Hex()
}

// Table is one full rotation of the rainbow, sampled TableSize times.
type Table [TableSize]Color

// GenerateTable samples three sinusoids 120° apart. Instead of evaluating
// sin/cos for every sample, it walks the circle with the angle-addition
// recurrence, starting at (sin 0, cos 0) and stepping by 2π/TableSize.
//
// The explicit float64 conversions keep the compiler from fusing the plain
// products into FMAs on architectures that support it; only the steps that
// are meant to be fused call math.FMA. This keeps the table identical on
// every platform.
func GenerateTable() *Table {
	t := new(Table)

	delta := 2 * math.Pi / TableSize
	sx, cx := 0.0, 1.0
	sd, cd := math.Sincos(delta)

	for i := range t {
		g := float64(sx*cos120) + float64(cx*sin120)
		b := float64(sx*cos120) - float64(cx*sin120)
		t[i] = Color{
			R: saturate(math.FMA(sx, amplitude, offset)),
			G: saturate(math.FMA(g, amplitude, offset)),
			B: saturate(math.FMA(b, amplitude, offset)),
		}

		ns := math.FMA(sx, cd, float64(cx*sd))
		nc := math.FMA(cx, cd, -float64(sx*sd))
		sx, cx = ns, nc
	}
	return t
}

// saturate clamps x to [0,255] and rounds half up.
func saturate(x float64) uint8 {
	return uint8(min(max(x, 0), 255) + 0.5)
}
