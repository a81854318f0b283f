package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// newFileLogger returns the logger for terminal sessions. Logging to the
// terminal would tear the alt screen, so without --log-file logs are dropped.
func newFileLogger() (*log.Logger, func()) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}
	}

	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return log.New(io.Discard), func() {}
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade",
		Level:           log.DebugLevel,
	})
	//nolint:errcheck // Closing a log file on exit
	return logger, func() { f.Close() }
}

// newServerLogger returns the stderr logger used by the network servers.
func newServerLogger(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}
