package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pagecap/pagecap"
	"github.com/pagecap/pagecap/watch"
	"golang.org/x/sync/errgroup"
)

// Console runs the interactive capture session: the user drives the
// browser, commands typed here decide when pages get captured.
type Console struct {
	Session  pagecap.Session
	Capturer pagecap.Capturer

	// Journal backs the history command. Nil disables it.
	Journal pagecap.CaptureService

	WatchConfig watch.Config

	OutputRoot string

	// StartURL is opened before the menu when set. When empty the user
	// is prompted for one.
	StartURL string

	// AutoWatch skips the menu and goes straight to watch mode.
	AutoWatch bool

	Stdin  io.Reader
	Stdout io.Writer
	Logger *slog.Logger

	lines chan string
}

// Run executes the console session until quit, EOF, session loss, or
// cancellation.
func (c *Console) Run(ctx context.Context) error {
	c.lines = make(chan string)
	go c.readLines(ctx)

	c.banner()

	if err := c.startup(ctx); err != nil {
		return err
	}

	if c.AutoWatch {
		return c.runWatch(ctx)
	}

	return c.menu(ctx)
}

// readLines feeds stdin to the command loop one line at a time. A
// single reader keeps the menu and the watch-mode stop key from
// competing over the same stream.
func (c *Console) readLines(ctx context.Context) {
	defer close(c.lines)
	scanner := bufio.NewScanner(c.Stdin)
	for scanner.Scan() {
		select {
		case c.lines <- scanner.Text():
		case <-ctx.Done():
			return
		}
	}
}

// readLine returns the next input line, trimmed. ok is false on EOF or
// cancellation.
func (c *Console) readLine(ctx context.Context) (line string, ok bool) {
	select {
	case line, ok = <-c.lines:
		return strings.TrimSpace(line), ok
	case <-ctx.Done():
		return "", false
	}
}

func (c *Console) banner() {
	out := c.Stdout
	fmt.Fprintln(out, "Hybrid Page Capture")
	fmt.Fprintln(out, strings.Repeat("=", 50))
	fmt.Fprintln(out, "HOW IT WORKS:")
	fmt.Fprintln(out, "1. A browser window will open")
	fmt.Fprintln(out, "2. YOU navigate to the pages you want")
	fmt.Fprintln(out, "3. Use commands here to capture content")
	fmt.Fprintf(out, "4. Content is saved under %q, one folder per domain\n", c.OutputRoot)
	fmt.Fprintln(out, strings.Repeat("=", 50))
}

// startup opens the initial page, prompting for a URL when none was
// given on the command line.
func (c *Console) startup(ctx context.Context) error {
	url := c.StartURL
	if url == "" {
		fmt.Fprint(c.Stdout, "Enter a URL to open (or press Enter to skip): ")
		entered, ok := c.readLine(ctx)
		if !ok {
			return ctx.Err()
		}
		url = entered
	}
	if url == "" {
		return nil
	}

	fmt.Fprintf(c.Stdout, "Navigating to: %s\n", url)
	if err := c.Session.Navigate(ctx, url); err != nil {
		return err
	}
	fmt.Fprintln(c.Stdout, "Initial page loaded")
	return nil
}

func (c *Console) menu(ctx context.Context) error {
	out := c.Stdout
	fmt.Fprintln(out, "\nINTERACTIVE MODE STARTED")
	fmt.Fprintln(out, strings.Repeat("-", 30))

	for {
		if ctx.Err() != nil {
			return nil
		}

		url, err := c.Session.CurrentURL(ctx)
		if err != nil {
			return c.sessionEnded(err)
		}
		title, err := c.Session.Title(ctx)
		if err != nil {
			return c.sessionEnded(err)
		}
		fmt.Fprintf(out, "\nCurrent: %s\n", title)
		fmt.Fprintf(out, "URL: %s\n", url)

		fmt.Fprint(out, "\nCommand (help/capture/auto/watch/history/quit): ")
		cmd, ok := c.readLine(ctx)
		if !ok {
			fmt.Fprintln(out, "\nInteractive session ended")
			return nil
		}

		switch strings.ToLower(cmd) {
		case "capture", "c":
			if err := c.captureCurrent(ctx); err != nil {
				return err
			}
		case "auto", "a":
			if err := c.runAuto(ctx); err != nil {
				return err
			}
		case "watch", "w":
			if err := c.runWatch(ctx); err != nil {
				return err
			}
		case "history":
			if err := c.showHistory(ctx); err != nil {
				return err
			}
		case "help", "h", "":
			c.showHelp()
		case "quit", "q", "exit":
			fmt.Fprintln(out, "Interactive session ended")
			return nil
		default:
			fmt.Fprintf(out, "Unknown command: %s\n", cmd)
		}
	}
}

func (c *Console) showHelp() {
	out := c.Stdout
	fmt.Fprintln(out, "\nAVAILABLE COMMANDS:")
	fmt.Fprintln(out, "  capture (c) - Capture current page content")
	fmt.Fprintln(out, "  auto (a)    - Semi-auto: press Enter to capture each page")
	fmt.Fprintln(out, "  watch (w)   - True auto: capture on navigation change (Enter to stop)")
	fmt.Fprintln(out, "  history     - Show recently captured pages")
	fmt.Fprintln(out, "  help (h)    - Show this help")
	fmt.Fprintln(out, "  quit (q)    - Exit")
	fmt.Fprintln(out, "\nTIP: Navigate to any page, then use 'capture' to save it.")
}

// captureCurrent snapshots the live page and runs it through the
// capture pipeline. Capture failures are reported, not fatal; only
// session loss ends the console.
func (c *Console) captureCurrent(ctx context.Context) error {
	snap, err := c.snapshot(ctx)
	if err != nil {
		return c.sessionEnded(err)
	}

	fmt.Fprintf(c.Stdout, "\nCapturing: %s\n", pagecap.ResolveTitle(snap.URL, snap.Title))
	if _, err := c.Capturer.Capture(ctx, snap); err != nil {
		if pagecap.ErrorCode(err) == pagecap.ECLOSED {
			return c.sessionEnded(err)
		}
		fmt.Fprintf(c.Stdout, "Capture failed: %s\n", pagecap.ErrorMessage(err))
	}
	return nil
}

func (c *Console) snapshot(ctx context.Context) (*pagecap.PageSnapshot, error) {
	url, err := c.Session.CurrentURL(ctx)
	if err != nil {
		return nil, err
	}
	title, err := c.Session.Title(ctx)
	if err != nil {
		return nil, err
	}
	markup, err := c.Session.Markup(ctx)
	if err != nil {
		return nil, err
	}
	return &pagecap.PageSnapshot{URL: url, Title: title, RawMarkup: markup}, nil
}

// runAuto is the semi-automatic mode: one capture per Enter keypress.
func (c *Console) runAuto(ctx context.Context) error {
	out := c.Stdout
	fmt.Fprintln(out, "\nAUTO-CAPTURE MODE")
	fmt.Fprintln(out, strings.Repeat("-", 20))
	fmt.Fprintln(out, "Navigate to each page you want to capture.")
	fmt.Fprintln(out, "Press Enter after each page loads to capture it.")
	fmt.Fprintln(out, "Type 'done' when finished.")
	fmt.Fprintln(out)

	captured := 0
	for {
		title, err := c.Session.Title(ctx)
		if err != nil {
			return c.sessionEnded(err)
		}
		fmt.Fprintf(out, "Ready to capture: %s\n", title)
		fmt.Fprint(out, "Press Enter to capture, or 'done' to finish: ")

		cmd, ok := c.readLine(ctx)
		if !ok || strings.EqualFold(cmd, "done") {
			break
		}

		snap, err := c.snapshot(ctx)
		if err != nil {
			return c.sessionEnded(err)
		}
		if _, err := c.Capturer.Capture(ctx, snap); err != nil {
			if pagecap.ErrorCode(err) == pagecap.ECLOSED {
				return c.sessionEnded(err)
			}
			fmt.Fprintf(out, "Capture failed: %s\n", pagecap.ErrorMessage(err))
			continue
		}
		captured++
		fmt.Fprintf(out, "Captured! (%d total)\n", captured)
		fmt.Fprintln(out, "Navigate to next page...")
	}

	fmt.Fprintf(out, "\nAuto-capture completed! Saved %d pages.\n", captured)
	return nil
}

// runWatch runs the navigation watcher until the user presses Enter,
// the session ends, or the context is canceled.
func (c *Console) runWatch(ctx context.Context) error {
	out := c.Stdout
	cfg := c.WatchConfig
	fmt.Fprintln(out, "\nWATCH MODE (auto-capture on navigation)")
	fmt.Fprintln(out, strings.Repeat("-", 20))
	fmt.Fprintf(out, "Debounce: %s, same-URL cooldown: %s\n", cfg.Debounce, cfg.Cooldown)
	fmt.Fprintln(out, "Navigate freely in the browser; captures will trigger automatically.")
	fmt.Fprintln(out, "Press Enter here to stop and return to the menu.")
	fmt.Fprintln(out)

	wctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(wctx)

	var captured int
	g.Go(func() error {
		defer cancel()
		w := &watch.Watcher{
			Session:  c.Session,
			Capturer: c.Capturer,
			Config:   cfg,
			Stdout:   out,
			Logger:   c.Logger,
		}
		var err error
		captured, err = w.Run(gctx)
		return err
	})
	g.Go(func() error {
		select {
		case <-c.lines: // Enter stops the watcher
			cancel()
		case <-gctx.Done():
		}
		return nil
	})

	err := g.Wait()
	fmt.Fprintf(out, "\nWatch mode stopped. Saved %d pages in this session.\n", captured)
	return err
}

// showHistory lists recent journal rows, newest first.
func (c *Console) showHistory(ctx context.Context) error {
	out := c.Stdout
	if c.Journal == nil {
		fmt.Fprintln(out, "Journal is disabled (--no-journal)")
		return nil
	}

	recs, err := c.Journal.FindCaptures(ctx, pagecap.CaptureFilter{Limit: 10})
	if err != nil {
		fmt.Fprintf(out, "History unavailable: %s\n", pagecap.ErrorMessage(err))
		return nil
	}
	if len(recs) == 0 {
		fmt.Fprintln(out, "No captures recorded yet")
		return nil
	}

	fmt.Fprintln(out, "\nRECENT CAPTURES:")
	for _, rec := range recs {
		fmt.Fprintf(out, "  %s  %-40s  %s\n",
			rec.CapturedAt.Format("2006-01-02 15:04"), rec.Title, rec.FilePath)
	}
	return nil
}

// sessionEnded classifies a session error at the console level: loss of
// the browser ends the session cleanly.
func (c *Console) sessionEnded(err error) error {
	if err == nil {
		return nil
	}
	if pagecap.ErrorCode(err) == pagecap.ECLOSED {
		fmt.Fprintln(c.Stdout, "Browser closed")
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
