package bufsink

import (
	"io"
)

// SizedBuffer stages bytes in a buffer of fixed capacity and hands them to
// the underlying writer in as few writes as possible.
//
// Appends never flush on their own: callers reserve headroom first with
// Reserve, which keeps a flush from ever landing in the middle of an escape
// sequence or a multi-byte glyph. Appending past the capacity still works
// but grows the buffer.
type SizedBuffer struct {
	size     int
	Buffered []byte
	flush    io.Writer
}

func NewSizedBufferedSink(size int, flush io.Writer) *SizedBuffer {
	return &SizedBuffer{
		size:     size,
		Buffered: make([]byte, 0, size),
		flush:    flush,
	}
}

// Available is the room left before the buffer reaches its capacity.
func (sn *SizedBuffer) Available() int {
	return sn.size - len(sn.Buffered)
}

func (sn *SizedBuffer) Len() int {
	return len(sn.Buffered)
}

func (sn *SizedBuffer) Append(p []byte) {
	sn.Buffered = append(sn.Buffered, p...)
}

func (sn *SizedBuffer) AppendByte(b byte) {
	sn.Buffered = append(sn.Buffered, b)
}

// Reserve flushes the buffer if fewer than n bytes are available.
func (sn *SizedBuffer) Reserve(n int) error {
	if sn.Available() < n {
		return sn.Flush()
	}
	return nil
}

// Flush writes out everything staged so far. On error the staged bytes are
// kept.
func (sn *SizedBuffer) Flush() error {
	if len(sn.Buffered) == 0 {
		return nil
	}
	if _, err := sn.flush.Write(sn.Buffered); err != nil {
		return err
	}
	sn.Buffered = sn.Buffered[:0:sn.size]
	return nil
}
