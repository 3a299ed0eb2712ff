package pagecap

import "context"

// ReadyState is the browser-reported document lifecycle stage.
type ReadyState string

// Ready states, in load order. ReadyComplete means load events have
// finished firing.
const (
	ReadyLoading     ReadyState = "loading"
	ReadyInteractive ReadyState = "interactive"
	ReadyComplete    ReadyState = "complete"
)

// PageSnapshot is a read-only observation of the browser at a single
// instant. Snapshots are created fresh on every poll and never mutated.
type PageSnapshot struct {
	URL        string
	Title      string
	RawMarkup  string
	ReadyState ReadyState
}

// Session represents a live, human-steered browser session.
// All methods fail with an ECLOSED-coded error once the underlying
// session ends.
type Session interface {
	// CurrentURL returns the URL of the active page.
	CurrentURL(ctx context.Context) (string, error)

	// Title returns the browser-reported page title. May be empty.
	Title(ctx context.Context) (string, error)

	// Markup returns the rendered HTML of the active page.
	Markup(ctx context.Context) (string, error)

	// ReadyState reports the document lifecycle stage of the active page.
	// Fails with EPROBE when the readiness check itself errors; callers
	// that poll should treat that as ready rather than block forever.
	ReadyState(ctx context.Context) (ReadyState, error)

	// Navigate loads the given URL in the active page. Used only at
	// session start; afterwards the human drives.
	Navigate(ctx context.Context, url string) error

	// Close releases browser resources.
	// Must be called when the Session is no longer needed.
	Close() error
}
