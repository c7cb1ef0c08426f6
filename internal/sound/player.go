// Package sound implements best-effort notification playback through an
// ordered fallback chain of heterogeneous mechanisms. No single mechanism
// is guaranteed present on an arbitrary host, so the chain goes from the
// richest, most controllable one down to the most universally available.
// Failures never escape the package boundary.
package sound

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Strategy is one playback mechanism. Attempt blocks until playback has
// finished or been handed off to the host, and returns an error when the
// mechanism is unavailable or failed so the next one can be tried.
type Strategy interface {
	Name() string
	Attempt(ctx context.Context, path string) error
}

// Player runs the fallback chain with a bounded per-attempt timeout.
type Player struct {
	strategies []Strategy
	timeout    time.Duration
	logger     *slog.Logger
}

const defaultAttemptTimeout = 3 * time.Second

// DefaultStrategies returns the standard chain: in-process decode playback,
// then an external player command, then handing the file to the host
// shell's default handler.
func DefaultStrategies() []Strategy {
	return []Strategy{decodeStrategy{}, commandStrategy{}, openStrategy{}}
}

// NewPlayer creates a player. A nil logger falls back to slog.Default,
// a zero timeout to 3s, and an empty strategy list to DefaultStrategies.
func NewPlayer(logger *slog.Logger, timeout time.Duration, strategies ...Strategy) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = defaultAttemptTimeout
	}
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}
	return &Player{strategies: strategies, timeout: timeout, logger: logger}
}

// Play attempts each strategy in order until one succeeds. It returns the
// name of the winning strategy and true, or "" and false when the path is
// empty or every mechanism failed. Errors and panics are swallowed; the
// caller's primary output path must never depend on playback.
func (p *Player) Play(ctx context.Context, path string) (string, bool) {
	if path == "" {
		return "", false
	}

	for _, s := range p.strategies {
		attemptCtx, cancel := context.WithTimeout(ctx, p.timeout)
		err := attempt(attemptCtx, s, path)
		cancel()

		if err == nil {
			p.logger.Debug("playback succeeded", "strategy", s.Name(), "path", path)
			return s.Name(), true
		}
		p.logger.Debug("playback attempt failed", "strategy", s.Name(), "path", path, "error", err)
	}

	p.logger.Debug("all playback strategies failed", "path", path)
	return "", false
}

// attempt shields the chain from a misbehaving mechanism: a panic inside
// a strategy counts as a failed attempt, not a crash.
func attempt(ctx context.Context, s Strategy, path string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("strategy %s panicked: %v", s.Name(), r)
		}
	}()
	return s.Attempt(ctx, path)
}
