package pagecap

import "time"

// Watch loop defaults.
const (
	DefaultDebounce     = 1500 * time.Millisecond
	DefaultCooldown     = 10 * time.Second
	DefaultPollInterval = 500 * time.Millisecond

	// MinPollInterval is the floor on poll cadence; configured values
	// below it are clamped.
	MinPollInterval = 250 * time.Millisecond
)

// Preview defaults.
const (
	DefaultPreviewLines = 10
	DefaultPreviewWidth = 70
)

// Config holds the capture pipeline configuration.
type Config struct {
	// OutputRoot is the directory artifacts are written under, one
	// subdirectory per sanitized domain.
	OutputRoot string

	// DebugHTML also writes the raw markup as a sibling artifact.
	DebugHTML bool

	// MaxFileNameLength truncates sanitized file names.
	MaxFileNameLength int

	// StripSelectors are removed from the document before extraction.
	StripSelectors []string

	// MainSelectors is the ordered priority list of main-content
	// selectors; the first match wins.
	MainSelectors []string

	// Debounce is how long a URL must remain unchanged before capture.
	Debounce time.Duration

	// Cooldown is the minimum time between captures of the same URL.
	Cooldown time.Duration

	// PollInterval is the watch loop tick cadence.
	PollInterval time.Duration

	// PreviewLines and PreviewWidth bound the console content preview.
	PreviewLines int
	PreviewWidth int

	// Browser window size and user agent for the visible session.
	WindowWidth  int
	WindowHeight int
	UserAgent    string
}

// DefaultConfig returns the recognized defaults.
func DefaultConfig() Config {
	return Config{
		OutputRoot:        "output",
		MaxFileNameLength: DefaultMaxFileNameLength,
		StripSelectors: []string{
			"script", "style", "noscript",
			".v-navigation-drawer", ".v-app-bar", ".v-footer",
			"nav", "header", "footer",
			`[role="banner"]`, `[role="navigation"]`, `[role="contentinfo"]`,
			".advertisement", ".ads", ".sidebar",
		},
		MainSelectors: []string{
			"main",
			`[role="main"]`,
			"#main",
			".main-content",
			"#content",
			".content",
			"#app",
			"body",
		},
		Debounce:     DefaultDebounce,
		Cooldown:     DefaultCooldown,
		PollInterval: DefaultPollInterval,
		PreviewLines: DefaultPreviewLines,
		PreviewWidth: DefaultPreviewWidth,
		WindowWidth:  1400,
		WindowHeight: 1000,
		UserAgent:    "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	}
}
