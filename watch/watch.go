// Package watch implements the navigation-aware auto-capture engine:
// a polling state machine that observes a live browser session and
// captures each page once it has settled.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/pagecap/pagecap"
	"golang.org/x/time/rate"
)

// Config holds the watch loop timing policy.
type Config struct {
	// Debounce is how long a URL must remain unchanged before capture.
	Debounce time.Duration

	// Cooldown is the minimum time between captures of the same URL.
	Cooldown time.Duration

	// PollInterval is the tick cadence, clamped to pagecap.MinPollInterval.
	PollInterval time.Duration
}

func (c Config) withDefaults() Config {
	if c.Debounce <= 0 {
		c.Debounce = pagecap.DefaultDebounce
	}
	if c.Cooldown <= 0 {
		c.Cooldown = pagecap.DefaultCooldown
	}
	if c.PollInterval <= 0 {
		c.PollInterval = pagecap.DefaultPollInterval
	}
	if c.PollInterval < pagecap.MinPollInterval {
		c.PollInterval = pagecap.MinPollInterval
	}
	return c
}

// Watcher polls a browser session and triggers captures automatically
// once a page is ready, stable, and outside its cooldown window.
//
// A Watcher runs until the session ends or the context is canceled; both
// are terminal, and a new Watcher must be created to resume watching.
type Watcher struct {
	Session  pagecap.Session
	Capturer pagecap.Capturer
	Config   Config

	// Stdout receives user-facing one-line messages. Defaults to
	// io.Discard.
	Stdout io.Writer

	Logger *slog.Logger

	// Now and Sleep are swappable for tests.
	Now   func() time.Time
	Sleep func(ctx context.Context, d time.Duration) error
}

// Run executes the watch loop and returns the number of pages captured.
// Loss of the browser session and context cancellation both end the loop
// normally; the returned error is non-nil only for unexpected failures.
//
// Cancellation is cooperative: it is observed at tick boundaries, never
// mid-capture.
func (w *Watcher) Run(ctx context.Context) (int, error) {
	cfg := w.Config.withDefaults()
	logger := w.logger()
	stdout := w.stdout()

	logger.Info("watch mode started",
		"debounce", cfg.Debounce,
		"cooldown", cfg.Cooldown,
		"poll", cfg.PollInterval,
	)

	state := NewState()
	captured := 0

	// Token bucket pacing: one tick per poll interval, no bursting.
	pace := rate.NewLimiter(rate.Every(cfg.PollInterval), 1)

	for {
		if ctx.Err() != nil {
			return captured, nil // stopped
		}

		url, err := w.Session.CurrentURL(ctx)
		if err != nil {
			return captured, w.terminal(err, stdout)
		}
		title, err := w.Session.Title(ctx)
		if err != nil {
			return captured, w.terminal(err, stdout)
		}

		// A failing readiness probe degrades to "ready" rather than
		// blocking the loop forever on a flaky probe.
		ready := true
		readyState, err := w.Session.ReadyState(ctx)
		switch {
		case err == nil:
			ready = readyState == pagecap.ReadyComplete
		case pagecap.ErrorCode(err) == pagecap.ECLOSED:
			return captured, w.terminal(err, stdout)
		case ctx.Err() != nil:
			return captured, nil
		default:
			logger.Debug("ready state probe failed, assuming ready", "err", err)
		}

		now := w.now()
		state.Observe(url, now)

		if state.Eligible(url, ready, now, cfg.Debounce, cfg.Cooldown) {
			markup, err := w.Session.Markup(ctx)
			if err != nil {
				if pagecap.ErrorCode(err) == pagecap.ECLOSED {
					return captured, w.terminal(err, stdout)
				}
				logger.Error("reading markup failed", "url", url, "err", err)
			} else {
				snap := &pagecap.PageSnapshot{
					URL:        url,
					Title:      title,
					RawMarkup:  markup,
					ReadyState: readyState,
				}
				if _, err := w.Capturer.Capture(ctx, snap); err != nil {
					if pagecap.ErrorCode(err) == pagecap.ECLOSED {
						return captured, w.terminal(err, stdout)
					}
					// Capture failures are never fatal to the loop.
					logger.Error("auto-capture failed", "url", url, "err", err)
					fmt.Fprintf(stdout, "Capture failed: %s\n", pagecap.ErrorMessage(err))
				} else {
					state.MarkCaptured(url, w.now())
					captured++
					fmt.Fprintf(stdout, "Auto-captured (%d total)\n", captured)
				}
			}

			// Grace period after a capture attempt, success or failure,
			// to avoid re-triggering on a still-settling DOM.
			grace := cfg.PollInterval
			if grace < pagecap.MinPollInterval {
				grace = pagecap.MinPollInterval
			}
			if err := w.sleep(ctx, grace); err != nil {
				return captured, nil
			}
		}

		if err := pace.Wait(ctx); err != nil {
			return captured, nil // stopped
		}
	}
}

// terminal classifies a poll error: session loss ends the loop normally,
// cancellation ends it normally, anything else is surfaced.
func (w *Watcher) terminal(err error, stdout io.Writer) error {
	if pagecap.ErrorCode(err) == pagecap.ECLOSED {
		w.logger().Info("browser session ended")
		fmt.Fprintln(stdout, "Browser closed")
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

func (w *Watcher) stdout() io.Writer {
	if w.Stdout == nil {
		return io.Discard
	}
	return w.Stdout
}

func (w *Watcher) logger() *slog.Logger {
	if w.Logger == nil {
		return slog.Default()
	}
	return w.Logger
}

func (w *Watcher) now() time.Time {
	if w.Now == nil {
		return time.Now()
	}
	return w.Now()
}

func (w *Watcher) sleep(ctx context.Context, d time.Duration) error {
	if w.Sleep != nil {
		return w.Sleep(ctx, d)
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
