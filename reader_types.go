package twidge

import "time"

// InputBlocking is a PollEvent timeout that blocks until an event arrives.
const InputBlocking = -1 * time.Millisecond

// DefaultEscapeTimeout is how long the reader waits after an ESC byte for the
// rest of an escape sequence before reporting a standalone escape key.
const DefaultEscapeTimeout = 50 * time.Millisecond

// EventReader reads events from the terminal.
type EventReader interface {
	// PollEvent reads the next event with a timeout.
	// Returns (event, nil) if an event was read, or (nil, nil) on timeout.
	// A timeout of 0 performs a non-blocking check.
	// A negative timeout blocks indefinitely.
	// Returns io.EOF once the input is closed and every buffered byte has
	// been decoded, and ErrInterrupted after Interrupt.
	PollEvent(timeout time.Duration) (Event, error)

	// Close releases resources. Must be called when done.
	Close() error
}

// InterruptibleReader extends EventReader with the ability to be interrupted.
// This is used to unwind a PollEvent(InputBlocking) call on cancellation.
type InterruptibleReader interface {
	EventReader

	// Interrupt wakes up a blocking PollEvent call, which returns
	// ErrInterrupted. If no call is blocking, the next one returns it.
	// Safe to call from any goroutine.
	Interrupt() error

	// ClearInterrupt discards an interrupt that no PollEvent consumed.
	ClearInterrupt()
}
