// Package assert implements the "programmer error" policy from the error
// handling design: violated invariants panic when debug mode is enabled and
// are logged-and-skipped otherwise. It follows the usual debug-flag-gated
// invariant-check pattern, generalized from node-disposal checks to
// arbitrary invariants.
package assert

import (
	"fmt"
	"os"
)

// Debug mirrors the most recently set debug flag. It is a package-level
// variable rather than a parameter threaded through every call: the
// session/controller/sampling code that calls Check has no natural place to
// carry a context value on every hot-path call, and exactly one process
// runs this module at a time.
var Debug bool

// SetDebug enables or disables panic-on-violation behavior.
func SetDebug(enabled bool) {
	Debug = enabled
}

// Check verifies cond and reacts to a violation according to the current
// mode: panics with a formatted message in debug mode, or prints a warning
// to stderr and continues in release mode.
func Check(cond bool, format string, args ...any) {
	if cond {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if Debug {
		panic("wavescout: invariant violated: " + msg)
	}
	_, _ = fmt.Fprintf(os.Stderr, "[wavescout] invariant violated: %s\n", msg)
}
