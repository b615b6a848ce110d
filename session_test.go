package rainbowcat

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// lockedBuffer is written to from the signal goroutine.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (lb *lockedBuffer) Write(p []byte) (int, error) {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	return lb.buf.Write(p)
}

func (lb *lockedBuffer) String() string {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	return lb.buf.String()
}

func TestSessionCloseResets(t *testing.T) {
	out := new(lockedBuffer)
	sess := NewSession(out)

	require.NoError(t, sess.Close())
	require.NoError(t, sess.Close())
	require.Equal(t, ResetSequence, out.String())
}

func TestSessionSettled(t *testing.T) {
	out := new(lockedBuffer)
	sess := NewSession(out)
	sess.Settle()

	require.NoError(t, sess.Reset())
	require.NoError(t, sess.Close())
	require.Empty(t, out.String())
}

func TestSessionResetError(t *testing.T) {
	sess := NewSession(&failingWriter{})
	err := sess.Reset()
	var ioerr *IOError
	require.ErrorAs(t, err, &ioerr)
	require.Equal(t, OpWrite, ioerr.Op)
}

func TestSessionWriterStopsAtReset(t *testing.T) {
	out := new(lockedBuffer)
	sess := NewSession(out)
	w := sess.Writer()

	started := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		chunk := []byte("\x1b[38;5;196mcolored ")
		for i := 0; ; i++ {
			if i == 10 {
				close(started)
			}
			if _, err := w.Write(chunk); err != nil {
				done <- err
				return
			}
		}
	}()

	<-started
	require.NoError(t, sess.Reset())
	require.ErrorIs(t, <-done, ErrSessionDone)

	got := out.String()
	require.True(t, strings.HasSuffix(got, ResetSequence), "output must end with the reset")
	require.Equal(t, 1, strings.Count(got, ResetSequence))
	require.Nil(t, sess.Signal())
}

func TestSessionWriterAfterSettle(t *testing.T) {
	out := new(lockedBuffer)
	sess := NewSession(out)
	cfg := fixedConfig(t, 0.1, 3, 0)

	err := Scan(context.Background(), strings.NewReader("hello\n"), sess.Writer(), cfg, TrueColor)
	require.NoError(t, err)
	sess.Settle()
	want := scanString(t, "hello\n", cfg, TrueColor)
	require.Equal(t, want, out.String())

	_, err = sess.Writer().Write([]byte("late"))
	require.ErrorIs(t, err, ErrSessionDone)
	require.NoError(t, sess.Close())
	require.Equal(t, want, out.String())
}

func TestScanStopsWhenSessionResets(t *testing.T) {
	out := new(lockedBuffer)
	sess := NewSession(out)
	require.NoError(t, sess.Reset())

	cfg := fixedConfig(t, 0.1, 3, 0)
	err := Scan(context.Background(), strings.NewReader("too late\n"), sess.Writer(), cfg, TrueColor)
	var ioerr *IOError
	require.ErrorAs(t, err, &ioerr)
	require.ErrorIs(t, err, ErrSessionDone)
	require.Equal(t, ResetSequence, out.String())
}
