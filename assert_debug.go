//go:build twidgedebug

package twidge

import "fmt"

// checkInvariant panics when ok is false.
func checkInvariant(ok bool, format string, args ...any) {
	if !ok {
		panic("twidge: invariant violated: " + fmt.Sprintf(format, args...))
	}
}
