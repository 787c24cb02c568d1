package twidge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"

	"github.com/grindlemire/twidge/internal/debug"
	"golang.org/x/sync/errgroup"
)

// errLoopPanicked stops the context watcher when the loop panics.
var errLoopPanicked = errors.New("twidge: run loop panicked")

// Run runs w until it returns Done, the input ends, an interrupt key is
// pressed or ctx is cancelled.
//
// The terminal is in raw mode with the cursor hidden for the duration of the
// run. Both are restored and the drawn region is erased before Run returns,
// whichever way the run ends, including a panic in a widget.
//
// Returns nil when the widget finished or the input ended, ErrAborted when
// an abort sequence ended it, ErrInterrupted on an interrupt key, an interrupt
// signal or cancellation, ErrTerminalSetup if raw mode could not be entered
// and ErrAlreadyRunning if another Run on a is in progress.
func (a *App) Run(ctx context.Context, w Widget) (err error) {
	if !a.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer a.running.Store(false)

	if ctx.Err() != nil {
		return fmt.Errorf("%w: %w", ErrInterrupted, context.Cause(ctx))
	}

	// Raw mode turns ctrl+c into a key, but a SIGINT sent by another process
	// must still end the run through the restore path below.
	if len(a.signals) > 0 {
		var stop context.CancelFunc
		ctx, stop = signal.NotifyContext(ctx, a.signals...)
		defer stop()
	}

	if err := a.terminal.EnterRawMode(); err != nil {
		return fmt.Errorf("%w: %w", ErrTerminalSetup, err)
	}
	a.terminal.HideCursor()
	defer func() {
		a.renderer.Clear()
		a.terminal.ShowCursor()
		if rerr := a.terminal.ExitRawMode(); rerr != nil && err == nil {
			err = fmt.Errorf("restore terminal: %w", rerr)
		}
		debug.Log("run finished", "err", err)
	}()

	a.renderer.SetSize(a.terminal.Size())
	a.renderer.Invalidate()

	g, gctx := errgroup.WithContext(ctx)
	loopDone := make(chan struct{})
	var panicked any

	g.Go(func() (err error) {
		defer close(loopDone)
		defer func() {
			if r := recover(); r != nil {
				panicked = r
				err = errLoopPanicked
			}
		}()
		return a.loop(ctx, w)
	})

	// Unblock the reader when the context ends before the loop does.
	g.Go(func() error {
		select {
		case <-gctx.Done():
			if ir, ok := a.reader.(InterruptibleReader); ok {
				_ = ir.Interrupt()
			}
		case <-loopDone:
		}
		return nil
	})

	err = g.Wait()
	if ir, ok := a.reader.(InterruptibleReader); ok {
		ir.ClearInterrupt()
	}
	if panicked != nil {
		panic(panicked)
	}
	return err
}

// loop renders w, then reads and dispatches events until the run ends.
func (a *App) loop(ctx context.Context, w Widget) error {
	if err := a.draw(w); err != nil {
		return err
	}

	for {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %w", ErrInterrupted, context.Cause(ctx))
		}

		ev, err := a.reader.PollEvent(InputBlocking)
		if err != nil {
			switch {
			case errors.Is(err, io.EOF):
				debug.Log("input closed, ending run")
				return nil
			case errors.Is(err, ErrInterrupted):
				if ctx.Err() != nil {
					return fmt.Errorf("%w: %w", ErrInterrupted, context.Cause(ctx))
				}
				return ErrInterrupted
			default:
				return fmt.Errorf("read input: %w", err)
			}
		}
		if ev == nil {
			continue
		}

		debug.Log("event", "name", eventName(ev), "raw", rawBytes(ev))
		if a.interruptKeys.Match(ev) {
			return ErrInterrupted
		}

		resp := w.HandleEvent(ev)
		if resp == Done {
			if isAborted(w) {
				return ErrAborted
			}
			return nil
		}
		if rs, ok := ev.(ResizeEvent); ok {
			a.renderer.SetSize(rs.Cols, rs.Rows)
			a.renderer.Invalidate()
			resp = Handled
		}
		if resp != Ignored {
			if err := a.draw(w); err != nil {
				return err
			}
		}
	}
}

// draw renders w into the transient region.
func (a *App) draw(w Widget) error {
	content := w.Render(RenderContext{
		Width:  a.renderer.Width(),
		Height: a.renderer.Height(),
		Theme:  a.theme,
	})
	if err := a.renderer.Frame(content); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

// Run runs w on a and returns its value.
//
// w is wrapped in a Close unless it already is one, so the run ends when w
// submits. If the input ends before that, the value w holds at that point is
// returned. On error the zero value is returned.
func Run[T any](ctx context.Context, a *App, w Valuer[T]) (T, error) {
	c, ok := w.(*Close[T])
	if !ok {
		c = NewClose(w)
	}
	if err := a.Run(ctx, c); err != nil {
		var zero T
		return zero, err
	}
	if c.Closed() {
		return c.Value(), nil
	}
	return c.Unwrap().Value(), nil
}
