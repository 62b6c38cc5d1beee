// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/wagui/wag/errors"
)

// NewLogger returns a logger writing timestamped records at or above
// level to w.
func NewLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// ParseLevel parses a log level name.
func ParseLevel(s string) (log.Level, error) {
	l, err := log.ParseLevel(s)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeConfig, err, "log level")
	}
	return l, nil
}
