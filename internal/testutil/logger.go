package testutil

import (
	"io"
	"log/slog"
)

// DiscardLogger returns a logger that drops every record.
// Tests and the harness use it to keep build logs out of test output.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
