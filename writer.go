package rainbowcat

import (
	"bytes"
	"io"
)

// Writer colors whatever is written to it, line by line, the way Scan colors
// a stream. Writes are processed as soon as a line is complete; Close flushes
// a trailing unterminated line and resets the colors.
//
// The first error writing to the underlying writer sticks: every later Write
// and Close returns it without writing anything more.
type Writer struct {
	w    io.Writer
	cfg  *Config
	mode ColorMode
	proc *lineProcessor

	pending []byte
	line    uint64
	closed  bool
	err     error
}

var _ io.WriteCloser = (*Writer)(nil)

// NewWriter returns a Writer coloring onto w.
func NewWriter(w io.Writer, cfg *Config, mode ColorMode) (*Writer, error) {
	wr := &Writer{w: w, cfg: cfg, mode: mode}
	if mode == NoColor {
		return wr, nil
	}
	proc, err := newLineProcessor(w, cfg, mode)
	if err != nil {
		return nil, err
	}
	wr.proc = proc
	return wr, nil
}

func (wr *Writer) Write(p []byte) (int, error) {
	if wr.closed {
		return 0, io.ErrClosedPipe
	}
	if wr.err != nil {
		return 0, wr.err
	}
	if wr.proc == nil {
		n, err := wr.w.Write(p)
		if err != nil {
			wr.err = writeErr(err)
			return n, wr.err
		}
		return n, nil
	}
	written := 0
	for len(p) > 0 {
		i := bytes.IndexByte(p, '\n')
		if i < 0 {
			wr.pending = append(wr.pending, p...)
			written += len(p)
			break
		}
		line := p[:i]
		if len(wr.pending) > 0 {
			wr.pending = append(wr.pending, line...)
			line = wr.pending
		}
		if err := wr.emit(bytes.TrimSuffix(line, []byte{'\r'})); err != nil {
			wr.fail(err)
			return written, err
		}
		wr.pending = wr.pending[:0]
		written += i + 1
		p = p[i+1:]
	}
	return written, nil
}

func (wr *Writer) emit(line []byte) error {
	if wr.line >= maxLines {
		return nil
	}
	start := float64(wr.line)*wr.cfg.spread + wr.cfg.offset
	wr.line++
	return wr.proc.processLine(line, start)
}

// fail records the first write error and drops the partial line, which
// callers retrying with the unwritten rest of their buffer would otherwise
// see twice.
func (wr *Writer) fail(err error) {
	wr.err = err
	wr.pending = nil
}

// Close colors any unterminated last line and resets the colors. It does not
// close the underlying writer.
func (wr *Writer) Close() error {
	if wr.closed {
		return wr.err
	}
	wr.closed = true
	if wr.err != nil || wr.proc == nil {
		return wr.err
	}
	if len(wr.pending) > 0 {
		if err := wr.emit(wr.pending); err != nil {
			wr.fail(err)
			return err
		}
		wr.pending = nil
	}
	if _, err := io.WriteString(wr.w, ResetSequence); err != nil {
		wr.fail(writeErr(err))
		return wr.err
	}
	return nil
}
