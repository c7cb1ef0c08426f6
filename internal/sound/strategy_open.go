package sound

import (
	"context"
	"fmt"
	"os/exec"
)

// openStrategy asks the host shell to open the file with whatever default
// handler is registered for its type. Most universal, least controllable:
// fire-and-forget, detached, no wait, no error checking beyond the spawn.
type openStrategy struct{}

func (openStrategy) Name() string { return "open" }

func (openStrategy) Attempt(_ context.Context, path string) error {
	argv := openArgs(path)
	if _, err := exec.LookPath(argv[0]); err != nil {
		return fmt.Errorf("no opener available: %w", err)
	}

	cmd := exec.Command(argv[0], argv[1:]...) //nolint:gosec // G204: argv is a fixed per-platform command
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("spawn opener: %w", err)
	}

	// Reap the child if we happen to outlive it; the short-lived hook
	// process usually exits first and the handler plays on without us.
	go func() { _ = cmd.Wait() }()
	return nil
}
