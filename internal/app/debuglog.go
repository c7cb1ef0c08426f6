package app

import (
	"fmt"
	"os"
)

// DebugLog appends one free-text status line to the diagnostic log.
// The log is purely diagnostic: open/write failures are ignored and
// never change control flow or exit codes. The file is opened in
// append mode per call; last-writer-wins across invocations is fine.
func DebugLog(format string, args ...any) {
	path := EffectivePlaybackSettings().DebugLog
	if path == "" {
		p, err := DefaultDebugLogPath()
		if err != nil {
			return
		}
		path = p
	} else {
		path = ExpandHome(path)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600) //nolint:gosec // G304: path from config/home
	if err != nil {
		return
	}
	defer func() { _ = f.Close() }()

	_, _ = fmt.Fprintf(f, format+"\n", args...)
}
