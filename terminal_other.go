//go:build !unix

package twidge

import (
	"errors"
	"os"
	"time"
)

var errUnsupported = errors.New("twidge: terminal input is only supported on unix")

type rawModeState struct{}

func enableRawMode(fd int) (*rawModeState, error) {
	return nil, errUnsupported
}

func disableRawMode(state *rawModeState) error {
	return nil
}

// NewEventReader is unavailable on this platform.
func NewEventReader(in *os.File, escapeTimeout time.Duration) (InterruptibleReader, error) {
	return nil, errUnsupported
}
