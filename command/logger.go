package command

import (
	"github.com/hashicorp/go-hclog"
	"io"
)

// newLogger never receives key material: callers log parameters and timings only.
func newLogger(w io.Writer, verbose bool) hclog.Logger {
	level := hclog.Warn
	if verbose {
		level = hclog.Debug
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "ndnkdf",
		Level:  level,
		Output: w,
	})
}
