package commands

import (
	"log/slog"

	"github.com/dotcommander/chime/internal/output"
)

type printedError struct {
	err error
}

func (e printedError) Error() string {
	// Intentionally hide the original error: the JSON error response is the output.
	return "error already printed"
}

func (e printedError) Unwrap() error {
	return e.err
}

// cmdErr reports a command failure on the JSON output stream and marks it
// as already printed so the root handler doesn't log it twice.
func cmdErr(err error) error {
	if err == nil {
		return nil
	}
	slog.Error("command error", "error", err.Error())
	_ = output.PrintError(err)
	return printedError{err: err}
}
