package rainbowcat

import (
	"io"
	"unicode/utf8"

	"github.com/aybabtme/rainbowcat/pkg/rainbow"
	"github.com/aybabtme/rainbowcat/pkg/sink/bufsink"
)

const (
	stagingSize = 8 << 10

	// headroom is kept free in the staging buffer before each glyph: the
	// longest color sequence (ESC[38;2;255;255;255m, 19 bytes) plus a
	// four-byte glyph fits with room to spare.
	headroom = 64

	tabWidth = 8
)

var eol = [...]byte{'\n'}

// lineProcessor colors one line at a time. It keeps its staging buffer
// between lines so that coloring a line doesn't allocate.
type lineProcessor struct {
	mode    ColorMode
	advance float64
	lookup  *rainbow.Lookup
	cache   *rainbow.Cache

	out   io.Writer
	stage *bufsink.SizedBuffer
}

func newLineProcessor(out io.Writer, cfg *Config, mode ColorMode) (*lineProcessor, error) {
	if !finitePositive(cfg.spread) {
		return nil, &ConfigError{Field: "spread", Value: cfg.spread}
	}
	lookup, err := rainbow.NewLookup(cfg.frequency)
	if err != nil {
		return nil, &ConfigError{Field: "frequency", Value: cfg.frequency}
	}
	return &lineProcessor{
		mode:    mode,
		advance: 1 / cfg.spread,
		lookup:  lookup,
		cache:   lookup.Cache(),
		out:     out,
		stage:   bufsink.NewSizedBufferedSink(stagingSize, out),
	}, nil
}

// sequence returns the escape sequence that switches to table entry idx.
func (p *lineProcessor) sequence(idx int) []byte {
	if p.mode == TrueColor {
		return p.cache.TrueColor(idx)
	}
	return p.cache.Palette256(idx)
}

// processLine writes line, colored from stream position start onward,
// followed by a newline. line must not contain the newline itself.
func (p *lineProcessor) processLine(line []byte, start float64) error {
	if p.mode == NoColor {
		if _, err := p.out.Write(line); err != nil {
			return writeErr(err)
		}
		if _, err := p.out.Write(eol[:]); err != nil {
			return writeErr(err)
		}
		return nil
	}

	phase, inc := p.lookup.FixedPointPhase(start, p.advance)
	return p.colorLine(line, phase, inc)
}

// colorLine is processLine once the start position has been turned into a
// phase. Each glyph advances the phase by inc.
func (p *lineProcessor) colorLine(line []byte, phase, inc uint64) error {
	stage := p.stage
	last := -1

	for i := 0; i < len(line); {
		switch line[i] {
		case esc:
			if err := stage.Flush(); err != nil {
				return writeErr(err)
			}
			end := escapeEnd(line, i)
			if _, err := p.out.Write(line[i:end]); err != nil {
				return writeErr(err)
			}
			i = end
			// the sequence may have changed the color under us
			last = -1

		case '\t':
			for range tabWidth {
				if err := stage.Reserve(headroom); err != nil {
					return writeErr(err)
				}
				if idx := rainbow.IndexFromPhase(phase); idx != last {
					stage.Append(p.sequence(idx))
					last = idx
				}
				stage.AppendByte(' ')
				phase += inc
			}
			i++

		default:
			if err := stage.Reserve(headroom); err != nil {
				return writeErr(err)
			}
			if idx := rainbow.IndexFromPhase(phase); idx != last {
				stage.Append(p.sequence(idx))
				last = idx
			}
			// every glyph up to the next index boundary shares this color,
			// copy them without looking the color up again
			run := rainbow.RunLength(phase, inc)
			var n uint64
			for n < run && i < len(line) {
				c := line[i]
				if c == esc || c == '\t' || stage.Available() < utf8.UTFMax {
					break
				}
				size := 1
				if c >= utf8.RuneSelf {
					_, size = utf8.DecodeRune(line[i:])
				}
				stage.Append(line[i : i+size])
				i += size
				n++
			}
			phase += inc * n
		}
	}

	if err := stage.Reserve(len(eol)); err != nil {
		return writeErr(err)
	}
	stage.Append(eol[:])
	if err := stage.Flush(); err != nil {
		return writeErr(err)
	}
	return nil
}
