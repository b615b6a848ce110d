package rainbowcat

import (
	"bufio"
	"context"
	"errors"
	"io"
)

const (
	// maxLines bounds how much an endless source can make us process.
	maxLines = 1_000_000_000

	readBufferSize  = 64 << 10
	writeBufferSize = 64 << 10
)

// Scan reads lines from src and writes them to dst in rainbow colors, then
// resets the terminal's colors. Line n starts n*spread positions plus the
// config's offset into the rainbow, so the colors flow diagonally down the
// output.
//
// With NoColor, src is copied to dst as is.
//
// Scan stops at the first I/O error, which is an *IOError. It checks ctx
// between lines; once ctx is done it stops reading, resets the colors and
// returns nil.
func Scan(ctx context.Context, src io.Reader, dst io.Writer, cfg *Config, mode ColorMode) error {
	if mode == NoColor {
		return copyThrough(dst, src)
	}

	out := bufio.NewWriterSize(dst, writeBufferSize)
	proc, err := newLineProcessor(out, cfg, mode)
	if err != nil {
		return err
	}
	in := bufio.NewReaderSize(src, readBufferSize)

	var scratch []byte
	for line := uint64(0); line < maxLines; line++ {
		select {
		case <-ctx.Done():
			return finish(out)
		default:
		}

		data, err := readLine(in, &scratch)
		if len(data) == 0 && errors.Is(err, io.EOF) {
			break
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return readErr(err)
		}

		start := float64(line)*cfg.spread + cfg.offset
		if perr := proc.processLine(data, start); perr != nil {
			return perr
		}
		if err != nil {
			break
		}
	}
	return finish(out)
}

// ScanAuto is Scan with the color mode detected for dst.
func ScanAuto(ctx context.Context, src io.Reader, dst io.Writer, cfg *Config) error {
	return Scan(ctx, src, dst, cfg, DetectColorMode(OSEnvironment(dst), cfg.forceColor))
}

func finish(out *bufio.Writer) error {
	if _, err := out.WriteString(ResetSequence); err != nil {
		return writeErr(err)
	}
	if err := out.Flush(); err != nil {
		return flushErr(err)
	}
	return nil
}

// readLine returns the next line without its "\n" or "\r\n". The result
// aliases either in's buffer or *scratch, and is only valid until the next
// call. Lines longer than in's buffer are gathered in *scratch, which is
// kept for reuse.
func readLine(in *bufio.Reader, scratch *[]byte) ([]byte, error) {
	data, err := in.ReadSlice('\n')
	if errors.Is(err, bufio.ErrBufferFull) {
		buf := append((*scratch)[:0], data...)
		for errors.Is(err, bufio.ErrBufferFull) {
			data, err = in.ReadSlice('\n')
			buf = append(buf, data...)
		}
		*scratch = buf
		data = buf
	}
	if n := len(data); n > 0 && data[n-1] == '\n' {
		data = data[:n-1]
		if n > 1 && data[n-2] == '\r' {
			data = data[:n-2]
		}
	}
	return data, err
}

// errReader remembers the error its reader returned, to tell read failures
// from write failures after an io.Copy.
type errReader struct {
	r   io.Reader
	err error
}

func (er *errReader) Read(p []byte) (int, error) {
	n, err := er.r.Read(p)
	if err != nil && err != io.EOF {
		er.err = err
	}
	return n, err
}

func copyThrough(dst io.Writer, src io.Reader) error {
	er := &errReader{r: src}
	if _, err := io.Copy(dst, er); err != nil {
		if er.err != nil {
			return readErr(err)
		}
		return writeErr(err)
	}
	return nil
}
