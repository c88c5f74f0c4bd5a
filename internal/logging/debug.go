package logging

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
)

// Output is where debug messages are written. Tests may replace it.
// Stdout is reserved for command output such as backups.
var Output io.Writer = os.Stderr

var verbose atomic.Bool

// SetVerbose turns debug output on regardless of the environment
func SetVerbose(on bool) {
	verbose.Store(on)
}

// DebugEnabled returns true if debug mode is enabled via SHIFTPAY_DEBUG environment variable or SetVerbose
func DebugEnabled() bool {
	return verbose.Load() || os.Getenv("SHIFTPAY_DEBUG") != ""
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintf(Output, format, args...)
	}
}

// Debugln prints a debug message followed by a newline only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintln(Output, args...)
	}
}
