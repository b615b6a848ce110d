package rainbow

import (
	"strconv"
	"sync"
)

// Cache holds the escape sequences for every table entry so that coloring a
// glyph never formats numbers. The byte slices it hands out are shared and
// must not be modified.
type Cache struct {
	table *Table

	trueColor [TableSize][]byte
	codes     [TableSize]uint8
	palette   [256][]byte
}

// Default returns the process-wide cache for the generated rainbow table. It
// is built on first use.
var Default = sync.OnceValue(func() *Cache {
	return NewCache(GenerateTable())
})

// NewCache derives the escape-sequence caches from t.
func NewCache(t *Table) *Cache {
	c := &Cache{table: t}

	// one backing array per cache keeps the whole thing to two allocations
	seqs := make([]byte, 0, TableSize*len("\x1b[38;2;255;255;255m"))
	for i, col := range t {
		start := len(seqs)
		seqs = AppendTrueColor(seqs, col)
		c.trueColor[i] = seqs[start:len(seqs):len(seqs)]
		c.codes[i] = col.Palette256()
	}

	codes := make([]byte, 0, 256*len("\x1b[38;5;255m"))
	for code := range c.palette {
		start := len(codes)
		codes = AppendPalette256(codes, uint8(code))
		c.palette[code] = codes[start:len(codes):len(codes)]
	}
	return c
}

// Table returns the color table the cache was derived from.
func (c *Cache) Table() *Table { return c.table }

// Color returns the table entry at idx.
func (c *Cache) Color(idx int) Color { return c.table[idx&tableMask] }

// TrueColor returns ESC[38;2;R;G;Bm for the table entry at idx.
func (c *Cache) TrueColor(idx int) []byte { return c.trueColor[idx&tableMask] }

// Palette256Code returns the 256-color palette code nearest to the table
// entry at idx.
func (c *Cache) Palette256Code(idx int) uint8 { return c.codes[idx&tableMask] }

// Palette256 returns ESC[38;5;Nm for the table entry at idx.
func (c *Cache) Palette256(idx int) []byte { return c.palette[c.codes[idx&tableMask]] }

// PaletteCode returns ESC[38;5;Nm for an arbitrary palette code.
func (c *Cache) PaletteCode(code uint8) []byte { return c.palette[code] }

// AppendTrueColor appends the truecolor foreground sequence for col to dst.
func AppendTrueColor(dst []byte, col Color) []byte {
	dst = append(dst, "\x1b[38;2;"...)
	dst = strconv.AppendUint(dst, uint64(col.R), 10)
	dst = append(dst, ';')
	dst = strconv.AppendUint(dst, uint64(col.G), 10)
	dst = append(dst, ';')
	dst = strconv.AppendUint(dst, uint64(col.B), 10)
	return append(dst, 'm')
}

// AppendPalette256 appends the 256-color foreground sequence for code to dst.
func AppendPalette256(dst []byte, code uint8) []byte {
	dst = append(dst, "\x1b[38;5;"...)
	dst = strconv.AppendUint(dst, uint64(code), 10)
	return append(dst, 'm')
}
