// Package rod implements the browser session using Chrome automation.
package rod

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/pagecap/pagecap"
)

// Ensure Session implements pagecap.Session at compile time.
var _ pagecap.Session = (*Session)(nil)

// Session drives a single visible Chrome page that a human navigates.
// One Session owns one browser and one page for its whole lifetime.
type Session struct {
	browser *rod.Browser
	lnchr   *launcher.Launcher
	page    *rod.Page
}

type sessionConfig struct {
	windowWidth  int
	windowHeight int
	userAgent    string
	stealth      bool
}

// Option configures a Session.
type Option func(*sessionConfig)

// WithWindowSize sets the browser window size.
func WithWindowSize(width, height int) Option {
	return func(c *sessionConfig) {
		c.windowWidth = width
		c.windowHeight = height
	}
}

// WithUserAgent overrides the browser user agent.
func WithUserAgent(ua string) Option {
	return func(c *sessionConfig) {
		c.userAgent = ua
	}
}

// WithStealth creates the page with stealth evasions applied, for sites
// that block automated browsers.
func WithStealth(enabled bool) Option {
	return func(c *sessionConfig) {
		c.stealth = enabled
	}
}

// NewSession launches a visible Chrome browser for human navigation.
// Close must be called when the Session is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewSession(opts ...Option) (*Session, error) {
	cfg := sessionConfig{windowWidth: 1400, windowHeight: 1000}
	for _, opt := range opts {
		opt(&cfg)
	}

	lnchr := launcher.New().
		Headless(false).
		Set("no-sandbox").
		Set("disable-dev-shm-usage").
		Set("window-size", fmt.Sprintf("%d,%d", cfg.windowWidth, cfg.windowHeight)).
		Leakless(true)
	if cfg.userAgent != "" {
		lnchr = lnchr.Set("user-agent", cfg.userAgent)
	}

	u, err := lnchr.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill() // Clean up launched process on connection failure
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	var page *rod.Page
	if cfg.stealth {
		page, err = stealth.Page(browser)
	} else {
		page, err = browser.Page(proto.TargetCreateTarget{})
	}
	if err != nil {
		browser.Close()
		lnchr.Kill()
		return nil, fmt.Errorf("opening page: %w", err)
	}

	return &Session{browser: browser, lnchr: lnchr, page: page}, nil
}

// CurrentURL returns the URL of the active page.
func (s *Session) CurrentURL(ctx context.Context) (string, error) {
	info, err := s.page.Context(ctx).Info()
	if err != nil {
		return "", mapErr("reading url", err)
	}
	return info.URL, nil
}

// Title returns the browser-reported page title.
func (s *Session) Title(ctx context.Context) (string, error) {
	info, err := s.page.Context(ctx).Info()
	if err != nil {
		return "", mapErr("reading title", err)
	}
	return info.Title, nil
}

// Markup returns the rendered HTML of the active page.
func (s *Session) Markup(ctx context.Context) (string, error) {
	html, err := s.page.Context(ctx).HTML()
	if err != nil {
		return "", mapErr("reading markup", err)
	}
	return html, nil
}

// ReadyState reports the document lifecycle stage of the active page.
func (s *Session) ReadyState(ctx context.Context) (pagecap.ReadyState, error) {
	res, err := s.page.Context(ctx).Eval(`() => document.readyState`)
	if err != nil {
		if mapped := mapErr("probing readiness", err); pagecap.ErrorCode(mapped) == pagecap.ECLOSED {
			return "", mapped
		}
		return "", pagecap.Errorf(pagecap.EPROBE, "probing readiness: %v", err)
	}

	switch state := res.Value.Str(); state {
	case "loading", "interactive", "complete":
		return pagecap.ReadyState(state), nil
	default:
		return "", pagecap.Errorf(pagecap.EPROBE, "unexpected ready state %q", state)
	}
}

// Navigate loads the given URL and waits for the load event.
func (s *Session) Navigate(ctx context.Context, url string) error {
	page := s.page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return mapErr("navigating", err)
	}
	// Best effort: slow pages are still usable for manual browsing.
	_ = page.WaitLoad()
	return nil
}

// Close releases browser resources.
func (s *Session) Close() error {
	err := s.browser.Close()
	s.lnchr.Kill()
	return err
}

// mapErr classifies rod errors. Connection or target loss means the human
// closed the browser, which is an ECLOSED-coded error; context errors pass
// through for the caller's cancellation handling.
func mapErr(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "closed") || strings.Contains(msg, "disconnect") ||
		strings.Contains(msg, "cannot find target") || strings.Contains(msg, "no such window") {
		return pagecap.Errorf(pagecap.ECLOSED, "browser session ended")
	}
	return pagecap.Errorf(pagecap.EINTERNAL, "%s: %v", op, err)
}
