package rainbow

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCacheMatchesOnDemandFormatting(t *testing.T) {
	c := Default()
	tbl := c.Table()
	for i, col := range tbl {
		want := fmt.Sprintf("\x1b[38;2;%d;%d;%dm", col.R, col.G, col.B)
		require.Equal(t, want, string(c.TrueColor(i)), "truecolor at %d", i)
		require.Equal(t, want, string(AppendTrueColor(nil, col)))

		code := Quantize(col.R, col.G, col.B)
		require.Equal(t, code, c.Palette256Code(i))
		require.Equal(t, fmt.Sprintf("\x1b[38;5;%dm", code), string(c.Palette256(i)), "256 at %d", i)
	}
}

func TestCachePaletteCodes(t *testing.T) {
	c := Default()
	for code := 0; code < 256; code++ {
		require.Equal(t, fmt.Sprintf("\x1b[38;5;%dm", code), string(c.PaletteCode(uint8(code))))
	}
	require.Equal(t, "\x1b[38;5;0m", string(c.PaletteCode(0)))
	require.Equal(t, "\x1b[38;5;255m", string(c.PaletteCode(255)))
}

func TestCacheSequencesDoNotAlias(t *testing.T) {
	c := NewCache(GenerateTable())
	seq := c.TrueColor(0)
	// appending to a cached sequence must not clobber its neighbour
	_ = append(seq, 'X')
	require.Equal(t, AppendTrueColor(nil, c.Color(1)), c.TrueColor(1))
}

func TestDefaultIsBuiltOnce(t *testing.T) {
	require.Same(t, Default(), Default())
	require.Equal(t, GenerateTable(), Default().Table())
}

func TestCacheIndexWraps(t *testing.T) {
	c := Default()
	require.Equal(t, c.TrueColor(3), c.TrueColor(TableSize+3))
	require.Equal(t, c.Color(TableSize-1), c.Color(-1))
}
