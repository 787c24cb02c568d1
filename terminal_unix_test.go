//go:build linux || darwin

package twidge

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/creack/pty"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"
)

func openPty(t *testing.T) (ptmx, tty *os.File) {
	t.Helper()
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pty not available: %v", err)
	}
	t.Cleanup(func() {
		tty.Close()
		ptmx.Close()
	})
	return ptmx, tty
}

func TestNewANSITerminal_NotATerminal(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	defer w.Close()

	if _, err := NewANSITerminal(io.Discard, r); !errors.Is(err, ErrNotTerminal) {
		t.Errorf("NewANSITerminal(pipe) error = %v, want ErrNotTerminal", err)
	}
	if _, err := NewApp(WithInput(r), WithOutput(io.Discard)); !errors.Is(err, ErrNotTerminal) {
		t.Errorf("NewApp(pipe) error = %v, want ErrNotTerminal", err)
	}
}

func TestANSITerminal_RawMode(t *testing.T) {
	_, tty := openPty(t)
	fd := int(tty.Fd())

	before, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		t.Fatalf("get termios: %v", err)
	}

	term, err := NewANSITerminal(io.Discard, tty)
	if err != nil {
		t.Fatalf("NewANSITerminal() error: %v", err)
	}
	if err := term.EnterRawMode(); err != nil {
		t.Fatalf("EnterRawMode() error: %v", err)
	}
	// Entering twice keeps the first saved state.
	if err := term.EnterRawMode(); err != nil {
		t.Fatalf("second EnterRawMode() error: %v", err)
	}

	raw, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		t.Fatalf("get termios: %v", err)
	}
	if raw.Lflag&(unix.ECHO|unix.ICANON|unix.ISIG) != 0 {
		t.Errorf("raw mode lflag %#x still has ECHO, ICANON or ISIG", raw.Lflag)
	}
	if raw.Iflag&(unix.IXON|unix.ICRNL) != 0 {
		t.Errorf("raw mode iflag %#x still has IXON or ICRNL", raw.Iflag)
	}

	if err := term.ExitRawMode(); err != nil {
		t.Fatalf("ExitRawMode() error: %v", err)
	}
	if err := term.ExitRawMode(); err != nil {
		t.Fatalf("second ExitRawMode() error: %v", err)
	}

	after, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		t.Fatalf("get termios: %v", err)
	}
	if after.Lflag != before.Lflag || after.Iflag != before.Iflag || after.Oflag != before.Oflag {
		t.Errorf("termios not restored: lflag %#x->%#x iflag %#x->%#x oflag %#x->%#x",
			before.Lflag, after.Lflag, before.Iflag, after.Iflag, before.Oflag, after.Oflag)
	}
}

func TestANSITerminal_Size(t *testing.T) {
	ptmx, tty := openPty(t)
	if err := pty.Setsize(ptmx, &pty.Winsize{Rows: 30, Cols: 100}); err != nil {
		t.Fatalf("Setsize() error: %v", err)
	}

	term, err := NewANSITerminal(io.Discard, tty)
	if err != nil {
		t.Fatalf("NewANSITerminal() error: %v", err)
	}
	if w, h := term.Size(); w != 100 || h != 30 {
		t.Errorf("Size() = %dx%d, want 100x30", w, h)
	}
}

func TestStdinReader_Pty(t *testing.T) {
	ptmx, tty := openPty(t)
	if err := pty.Setsize(ptmx, &pty.Winsize{Rows: 12, Cols: 34}); err != nil {
		t.Fatalf("Setsize() error: %v", err)
	}

	term, err := NewANSITerminal(io.Discard, tty)
	if err != nil {
		t.Fatalf("NewANSITerminal() error: %v", err)
	}
	if err := term.EnterRawMode(); err != nil {
		t.Fatalf("EnterRawMode() error: %v", err)
	}
	defer term.ExitRawMode()

	reader, err := NewEventReader(tty, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("NewEventReader() error: %v", err)
	}
	defer reader.Close()

	// ctrl+c and ctrl+s reach the reader as keys in raw mode.
	if _, err := ptmx.Write([]byte("\x03\x13\x1b[A")); err != nil {
		t.Fatalf("write error: %v", err)
	}
	want := []Event{
		KeyEvent{Key: KeyCtrlC, Raw: "\x03"},
		KeyEvent{Key: KeyCtrlS, Raw: "\x13"},
		KeyEvent{Key: KeyUp, Raw: "\x1b[A"},
	}
	for i, we := range want {
		ev, err := reader.PollEvent(time.Second)
		if err != nil {
			t.Fatalf("event %d: PollEvent() error: %v", i, err)
		}
		if ev != we {
			t.Errorf("event %d = %#v, want %#v", i, ev, we)
		}
	}

	if err := syscall.Kill(os.Getpid(), syscall.SIGWINCH); err != nil {
		t.Fatalf("kill error: %v", err)
	}
	ev, err := reader.PollEvent(2 * time.Second)
	if err != nil {
		t.Fatalf("PollEvent() error: %v", err)
	}
	if want := (ResizeEvent{Rows: 12, Cols: 34}); ev != want {
		t.Errorf("PollEvent() after SIGWINCH = %#v, want %#v", ev, want)
	}
}

// notifyWriter closes started on the first write.
type notifyWriter struct {
	mu      sync.Mutex
	buf     bytes.Buffer
	once    sync.Once
	started chan struct{}
}

func (n *notifyWriter) Write(p []byte) (int, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.once.Do(func() { close(n.started) })
	return n.buf.Write(p)
}

func TestApp_Pty(t *testing.T) {
	ptmx, tty := openPty(t)
	out := &notifyWriter{started: make(chan struct{})}

	app, err := NewApp(WithInput(tty), WithOutput(out), WithEscapeTimeout(20*time.Millisecond))
	if err != nil {
		t.Fatalf("NewApp() error: %v", err)
	}
	defer app.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var got string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// Input typed before raw mode would be line-buffered and echoed.
		select {
		case <-out.started:
		case <-gctx.Done():
			return gctx.Err()
		}
		_, err := ptmx.Write([]byte("hey\x7f\r"))
		return err
	})
	g.Go(func() error {
		var err error
		got, err = Run[string](gctx, app, NewEditString(""))
		return err
	})
	if err := g.Wait(); err != nil {
		t.Fatalf("run error: %v", err)
	}

	if got != "he" {
		t.Errorf("Run() = %q, want %q", got, "he")
	}

	termios, err := unix.IoctlGetTermios(int(tty.Fd()), ioctlReadTermios)
	if err != nil {
		t.Fatalf("get termios: %v", err)
	}
	if termios.Lflag&unix.ICANON == 0 {
		t.Error("terminal left in raw mode")
	}
}

func TestApp_PtySigint(t *testing.T) {
	_, tty := openPty(t)
	out := &notifyWriter{started: make(chan struct{})}

	fd := int(tty.Fd())
	before, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		t.Fatalf("get termios: %v", err)
	}

	app, err := NewApp(WithInput(tty), WithOutput(out))
	if err != nil {
		t.Fatalf("NewApp() error: %v", err)
	}
	defer app.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// The first frame is drawn after the handler is installed.
		select {
		case <-out.started:
		case <-gctx.Done():
			return gctx.Err()
		}
		return syscall.Kill(os.Getpid(), syscall.SIGINT)
	})

	var runErr error
	g.Go(func() error {
		_, runErr = Run[string](gctx, app, NewEditString(""))
		return nil
	})
	if err := g.Wait(); err != nil {
		t.Fatalf("signal error: %v", err)
	}

	if !errors.Is(runErr, ErrInterrupted) {
		t.Errorf("Run() error = %v, want ErrInterrupted", runErr)
	}
	if ctx.Err() != nil {
		t.Fatal("run ended by the test timeout, not by SIGINT")
	}

	after, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		t.Fatalf("get termios: %v", err)
	}
	if after.Lflag&(unix.ICANON|unix.ECHO) != before.Lflag&(unix.ICANON|unix.ECHO) {
		t.Errorf("ICANON/ECHO not restored: lflag %#x, before %#x", after.Lflag, before.Lflag)
	}
}
