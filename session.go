package rainbowcat

import (
	"errors"
	"io"
	"os"
	"os/signal"
	"sync"
)

// ErrSessionDone is returned by a session's Writer once the session has been
// reset or settled.
var ErrSessionDone = errors.New("terminal session is done")

// Session makes sure a terminal we've been coloring gets its default colors
// back, however the process leaves: after a successful Scan the reset is
// already part of the output, on every other path Close or a signal writes
// it.
//
// Colored output should go through Writer so that nothing lands after the
// reset.
//
//	sess := rainbowcat.NewSession(os.Stdout)
//	defer sess.Close()
//	sess.Notify(func(os.Signal) { os.Exit(130) }, os.Interrupt)
//	if err := rainbowcat.Scan(ctx, src, sess.Writer(), cfg, mode); err == nil {
//		sess.Settle()
//	}
type Session struct {
	w io.Writer

	mu      sync.Mutex
	settled bool
	sig     os.Signal

	sigCh    chan os.Signal
	stopOnce sync.Once
	stop     chan struct{}
}

func NewSession(w io.Writer) *Session {
	return &Session{w: w, stop: make(chan struct{})}
}

// Notify resets the terminal when one of sigs arrives, then hands the signal
// to onSignal. Typically onSignal exits the process.
func (s *Session) Notify(onSignal func(os.Signal), sigs ...os.Signal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sigCh != nil {
		return
	}
	s.sigCh = make(chan os.Signal, 1)
	signal.Notify(s.sigCh, sigs...)
	go func() {
		select {
		case sig := <-s.sigCh:
			s.mu.Lock()
			s.sig = sig
			s.mu.Unlock()
			_ = s.Reset()
			if onSignal != nil {
				onSignal(sig)
			}
		case <-s.stop:
		}
	}()
}

// Writer returns a writer onto the session's output. Each write holds the
// session's lock, so a reset waits for the write in flight and every write
// after it fails with ErrSessionDone.
func (s *Session) Writer() io.Writer { return sessionWriter{s} }

type sessionWriter struct{ s *Session }

func (sw sessionWriter) Write(p []byte) (int, error) {
	sw.s.mu.Lock()
	defer sw.s.mu.Unlock()
	if sw.s.settled {
		return 0, ErrSessionDone
	}
	return sw.s.w.Write(p)
}

// Signal returns the signal that reset the session, if any.
func (s *Session) Signal() os.Signal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sig
}

// Settle records that the output already ends with a reset, so the session
// doesn't write another one.
func (s *Session) Settle() {
	s.mu.Lock()
	s.settled = true
	s.mu.Unlock()
}

// Reset writes the reset sequence, once, unless the session is settled.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settled {
		return nil
	}
	s.settled = true
	if _, err := io.WriteString(s.w, ResetSequence); err != nil {
		return writeErr(err)
	}
	if f, ok := s.w.(interface{ Sync() error }); ok {
		_ = f.Sync()
	}
	return nil
}

// Close stops watching for signals and resets the terminal if nothing did
// yet.
func (s *Session) Close() error {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		if s.sigCh != nil {
			signal.Stop(s.sigCh)
		}
		s.mu.Unlock()
		close(s.stop)
	})
	return s.Reset()
}
