package monitoring

import "log"

// Logf is the package-level diagnostic logger for the pipeline. It defaults
// to log.Printf but may be replaced with SetLogger so tests can capture or
// mute diagnostic output.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil installs a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}
