package twidge

import (
	"io"
	"sync/atomic"
	"time"
)

// MockEventReader is an EventReader for testing.
type MockEventReader struct {
	events      []Event
	index       int
	interrupted atomic.Bool
}

// Ensure MockEventReader implements EventReader and InterruptibleReader.
var _ EventReader = (*MockEventReader)(nil)
var _ InterruptibleReader = (*MockEventReader)(nil)

// NewMockEventReader creates a MockEventReader with the given events.
// Events are returned in order by successive calls to PollEvent.
func NewMockEventReader(events ...Event) *MockEventReader {
	return &MockEventReader{events: events}
}

// NewMockEventReaderFromBytes decodes data and queues the resulting events,
// as a terminal would deliver them with the escape timeout elapsed at the end.
func NewMockEventReaderFromBytes(data []byte) *MockEventReader {
	events, _ := Decoder{}.DecodeAll(data, true)
	return NewMockEventReader(events...)
}

// PollEvent returns the next queued event, ignoring the timeout.
// Returns io.EOF when all events have been consumed.
func (m *MockEventReader) PollEvent(timeout time.Duration) (Event, error) {
	if m.interrupted.Swap(false) {
		return nil, ErrInterrupted
	}
	if m.index >= len(m.events) {
		return nil, io.EOF
	}
	ev := m.events[m.index]
	m.index++
	return ev, nil
}

// Close is a no-op for the mock reader.
func (m *MockEventReader) Close() error {
	return nil
}

// AddEvents adds more events to the queue.
func (m *MockEventReader) AddEvents(events ...Event) {
	m.events = append(m.events, events...)
}

// Remaining returns the number of events yet to be returned.
func (m *MockEventReader) Remaining() int {
	return len(m.events) - m.index
}

// Interrupt makes the next PollEvent return ErrInterrupted.
func (m *MockEventReader) Interrupt() error {
	m.interrupted.Store(true)
	return nil
}

// ClearInterrupt discards a pending interrupt.
func (m *MockEventReader) ClearInterrupt() {
	m.interrupted.Store(false)
}
