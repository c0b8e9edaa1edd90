package logging

import (
	"fmt"
	"io"
	"os"
)

var output io.Writer = os.Stderr

// SetOutput redirects debug output and returns the previous writer
func SetOutput(w io.Writer) io.Writer {
	prev := output
	output = w
	return prev
}

// DebugEnabled returns true if debug mode is enabled via TM_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv("TM_DEBUG") != ""
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintf(output, "[debug] "+format, args...)
	}
}

// Debugln prints a debug message followed by a newline only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintln(output, append([]interface{}{"[debug]"}, args...)...)
	}
}
