// Package watlog configures the named loggo logger used by cmd/watlex. The
// core wat package never logs; logging is strictly an ambient concern of
// the CLI driver that consumes it.
package watlog

import "github.com/juju/loggo"

const loggerName = "watlex"

// Logger returns the named "watlex" loggo.Logger, creating it on first use.
func Logger() loggo.Logger {
	return loggo.GetLogger(loggerName)
}

// SetVerbose raises the "watlex" logger to TRACE level, or restores it to
// the default INFO level.
func SetVerbose(verbose bool) {
	level := loggo.INFO
	if verbose {
		level = loggo.TRACE
	}
	loggo.GetLogger(loggerName).SetLogLevel(level)
}
