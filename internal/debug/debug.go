package debug

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// EnvVar names the environment variable holding the log file path.
const EnvVar = "TWIDGE_DEBUG"

var (
	mu      sync.Mutex
	logFile *os.File
	logger  *slog.Logger
	checked bool
)

// Init initializes debug logging to the specified file path.
// If path is empty, uses "twidge-debug.log" in the current directory.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()
	checked = true
	return initLocked(path)
}

// initLocked does the actual init work. Caller must hold mu.
func initLocked(path string) error {
	if path == "" {
		path = "twidge-debug.log"
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open debug log: %w", err)
	}

	closeLocked()
	logFile = f
	logger = newLogger(f)
	return nil
}

// SetOutput sends debug records to w. Passing nil disables logging.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	checked = true
	closeLocked()
	if w != nil {
		logger = newLogger(w)
	}
}

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// Enabled reports whether debug records are being written.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	ensureLocked()
	return logger != nil
}

// ensureLocked initializes from the environment on first use.
func ensureLocked() {
	if checked {
		return
	}
	checked = true
	if path := os.Getenv(EnvVar); path != "" {
		// Logging stays disabled when the file cannot be opened.
		_ = initLocked(path)
	}
}

// Close closes the debug log file and disables logging.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	return closeLocked()
}

func closeLocked() error {
	logger = nil
	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		return err
	}
	return nil
}

// Log writes a debug record with alternating key/value attributes.
func Log(msg string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	ensureLocked()
	if logger == nil {
		return
	}
	logger.Debug(msg, args...)
}
