//go:build unix

package twidge

import (
	"errors"
	"io"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/grindlemire/twidge/internal/debug"
	"golang.org/x/sys/unix"
)

// stdinReader implements InterruptibleReader for a real terminal.
type stdinReader struct {
	fd            int
	escapeTimeout time.Duration
	decoder       Decoder
	buf           []byte // Read scratch buffer
	pending       []byte // Bytes read but not yet decoded
	eof           bool

	wakeR, wakeW int // Self-pipe woken by Interrupt and SIGWINCH
	interrupted  atomic.Bool
	resized      atomic.Bool
	sigCh        chan os.Signal
	sigDone      chan struct{} // Closed when the SIGWINCH goroutine exits
	closed       atomic.Bool
	closeOnce    sync.Once
}

// Ensure stdinReader implements InterruptibleReader.
var _ InterruptibleReader = (*stdinReader)(nil)

// NewEventReader creates an EventReader for the given terminal input.
// The terminal should already be in raw mode when PollEvent is called.
// An escapeTimeout <= 0 selects DefaultEscapeTimeout.
func NewEventReader(in *os.File, escapeTimeout time.Duration) (InterruptibleReader, error) {
	if escapeTimeout <= 0 {
		escapeTimeout = DefaultEscapeTimeout
	}

	var p [2]int
	if err := unix.Pipe(p[:]); err != nil {
		return nil, err
	}
	for _, fd := range p {
		if err := unix.SetNonblock(fd, true); err != nil {
			unix.Close(p[0])
			unix.Close(p[1])
			return nil, err
		}
	}

	r := &stdinReader{
		fd:            int(in.Fd()),
		escapeTimeout: escapeTimeout,
		buf:           make([]byte, 256),
		wakeR:         p[0],
		wakeW:         p[1],
		sigCh:         make(chan os.Signal, 1),
		sigDone:       make(chan struct{}),
	}

	// SIGWINCH is turned into a ResizeEvent by the next PollEvent.
	signal.Notify(r.sigCh, syscall.SIGWINCH)
	go func() {
		defer close(r.sigDone)
		for range r.sigCh {
			r.resized.Store(true)
			r.wake()
		}
	}()

	return r, nil
}

// PollEvent reads the next event with a timeout.
//
// Bytes that form an incomplete sequence are held for at most the escape
// timeout; if nothing else arrives they are decoded as they stand, so a lone
// ESC becomes the escape key.
func (r *stdinReader) PollEvent(timeout time.Duration) (Event, error) {
	for {
		if r.interrupted.Swap(false) {
			return nil, ErrInterrupted
		}
		if r.resized.Swap(false) {
			w, h := getTerminalSizeForReader(r.fd)
			return ResizeEvent{Rows: h, Cols: w}, nil
		}

		if len(r.pending) > 0 {
			if ev, n := r.decoder.Decode(r.pending, r.eof); n > 0 {
				r.consume(n)
				return ev, nil
			}

			// Incomplete sequence: wait for the rest within the escape timeout.
			ready, woke, err := r.wait(r.escapeTimeout)
			if err != nil {
				return nil, err
			}
			if woke {
				continue
			}
			if !ready {
				ev, n := r.decoder.Decode(r.pending, true)
				debug.Log("escape timeout flushed input", "raw", string(r.pending[:n]))
				r.consume(n)
				return ev, nil
			}
			if err := r.fill(); err != nil {
				return nil, err
			}
			continue
		}

		if r.eof {
			return nil, io.EOF
		}

		ready, woke, err := r.wait(timeout)
		if err != nil {
			return nil, err
		}
		if woke {
			continue
		}
		if !ready {
			return nil, nil
		}
		if err := r.fill(); err != nil {
			return nil, err
		}
	}
}

// consume drops the first n pending bytes.
func (r *stdinReader) consume(n int) {
	r.pending = r.pending[n:]
	if len(r.pending) == 0 {
		r.pending = nil
	}
}

// fill reads the available bytes into the pending buffer.
// A zero-byte read marks the input as closed.
func (r *stdinReader) fill() error {
	n, err := unix.Read(r.fd, r.buf)
	if err != nil {
		if errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN) {
			return nil
		}
		if errors.Is(err, unix.EIO) {
			// The controlling side of the terminal hung up.
			debug.Log("input hung up", "err", err)
			r.eof = true
			return nil
		}
		return err
	}
	if n == 0 {
		debug.Log("input closed")
		r.eof = true
		return nil
	}
	r.pending = append(r.pending, r.buf[:n]...)
	return nil
}

// wait blocks until the input is readable, the self-pipe is written or the
// timeout elapses. woke reports a self-pipe wake-up.
func (r *stdinReader) wait(timeout time.Duration) (ready, woke bool, err error) {
	ready, woke, err = selectWithTimeoutAndInterrupt(r.fd, r.wakeR, timeout)
	if woke {
		r.drain()
	}
	return ready, woke, err
}

// wake writes a byte to the self-pipe. A full pipe already guarantees a
// wake-up, so EAGAIN is ignored.
func (r *stdinReader) wake() {
	_, _ = unix.Write(r.wakeW, []byte{0})
}

// drain empties the self-pipe.
func (r *stdinReader) drain() {
	var b [64]byte
	for {
		n, err := unix.Read(r.wakeR, b[:])
		if n <= 0 || err != nil {
			return
		}
	}
}

// Interrupt wakes up a blocking PollEvent, which returns ErrInterrupted.
func (r *stdinReader) Interrupt() error {
	if r.closed.Load() {
		return nil
	}
	r.interrupted.Store(true)
	r.wake()
	return nil
}

// ClearInterrupt discards an interrupt no PollEvent consumed.
func (r *stdinReader) ClearInterrupt() {
	r.interrupted.Store(false)
	r.drain()
}

// Close releases the signal handler and the self-pipe.
// The self-pipe is closed only after the SIGWINCH goroutine has exited, so a
// late resize never writes to a descriptor that was closed or reused.
func (r *stdinReader) Close() error {
	r.closeOnce.Do(func() {
		r.closed.Store(true)
		signal.Stop(r.sigCh)
		close(r.sigCh)
		<-r.sigDone
		unix.Close(r.wakeR)
		unix.Close(r.wakeW)
	})
	return nil
}

// getTerminalSizeForReader returns the terminal dimensions for the EventReader.
func getTerminalSizeForReader(fd int) (width, height int) {
	w, h, err := getTerminalSize(fd)
	if err != nil {
		// Default to standard terminal size on error
		return 80, 24
	}
	return w, h
}

// selectWithTimeoutAndInterrupt performs a select() call on fd and optionally an interrupt fd.
// Returns (ready, interrupted, err) where:
// - ready=true if the main fd is ready for reading
// - interrupted=true if the interrupt fd was triggered
// - err is non-nil on error
func selectWithTimeoutAndInterrupt(fd, interruptFd int, timeout time.Duration) (ready, interrupted bool, err error) {
	var readFds unix.FdSet
	readFds.Zero()
	readFds.Set(fd)

	maxFd := fd
	if interruptFd >= 0 {
		readFds.Set(interruptFd)
		if interruptFd > maxFd {
			maxFd = interruptFd
		}
	}

	var tv *unix.Timeval
	if timeout >= 0 {
		tvVal := unix.NsecToTimeval(timeout.Nanoseconds())
		tv = &tvVal
	}
	// If timeout < 0, tv is nil which means block indefinitely

	n, err := unix.Select(maxFd+1, &readFds, nil, nil, tv)
	if err != nil {
		if err == unix.EINTR {
			// A signal arrived; callers re-check their state and wait again.
			return false, true, nil
		}
		return false, false, err
	}

	if n == 0 {
		return false, false, nil // Timeout
	}

	if interruptFd >= 0 && readFds.IsSet(interruptFd) {
		return false, true, nil
	}

	return readFds.IsSet(fd), false, nil
}
