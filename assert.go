//go:build !twidgedebug

package twidge

// checkInvariant is a no-op in regular builds.
// Build with -tags twidgedebug to turn violations into panics.
func checkInvariant(ok bool, format string, args ...any) {}
