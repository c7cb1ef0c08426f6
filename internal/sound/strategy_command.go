package sound

import (
	"context"
	"errors"
	"os/exec"
)

// commandStrategy shells out to a platform audio player CLI. Lower level
// than in-process decode but works with whatever player the host ships.
// The candidate commands per platform live in the player_*.go files.
type commandStrategy struct{}

func (commandStrategy) Name() string { return "command" }

func (commandStrategy) Attempt(ctx context.Context, path string) error {
	var lastErr error
	for _, argv := range playerArgs(path) {
		if _, err := exec.LookPath(argv[0]); err != nil {
			lastErr = err
			continue
		}

		cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
		if err := cmd.Run(); err != nil {
			// An expired deadline means the player ran for the full wait
			// window; the sound was (at least partially) played.
			if ctx.Err() != nil {
				return nil
			}
			lastErr = err
			continue
		}
		return nil
	}

	if lastErr == nil {
		lastErr = errors.New("no audio player command available")
	}
	return lastErr
}
