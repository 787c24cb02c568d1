// Package debug provides optional file-based debug logging.
//
// When the TWIDGE_DEBUG environment variable is set to a file path, debug
// records are appended to that file. Otherwise, logging is a no-op. The
// terminal is never written to, since it is in raw mode while widgets run.
package debug
