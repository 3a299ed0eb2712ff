package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/pagecap/pagecap"
	"github.com/pagecap/pagecap/fs"
	"github.com/pagecap/pagecap/goquery"
	"github.com/pagecap/pagecap/htmltomarkdown"
	"github.com/pagecap/pagecap/rod"
	"github.com/pagecap/pagecap/sqlite"
	"github.com/pagecap/pagecap/trafilatura"
	"github.com/pagecap/pagecap/watch"
	"github.com/pagecap/pagecap/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Journal database path. Set before calling Run().
	DBPath string

	// SQLite database backing the capture journal.
	DB *sqlite.DB

	// NewSession opens the browser session. Swappable for tests.
	NewSession func(cfg pagecap.Config, stealth bool) (pagecap.Session, error)
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		NewSession: func(cfg pagecap.Config, stealth bool) (pagecap.Session, error) {
			return rod.NewSession(
				rod.WithWindowSize(cfg.WindowWidth, cfg.WindowHeight),
				rod.WithUserAgent(cfg.UserAgent),
				rod.WithStealth(stealth),
			)
		},
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagecap"),
		kong.Description("Capture pages from a browser you drive by hand."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 1 && (args[0] == "help" || args[0] == "--help" || args[0] == "-h") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	if cli.URL != "" {
		if err := validateStartURL(cli.URL); err != nil {
			return err
		}
	}

	cfg := pagecap.DefaultConfig()
	if cli.Config != "" {
		cfg, err = yaml.Load(cli.Config)
		if err != nil {
			return err
		}
	}
	if cli.OutputDir != "" {
		cfg.OutputRoot = cli.OutputDir
	}
	if cli.DebugHTML {
		cfg.DebugHTML = true
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	var journal pagecap.CaptureService
	if cli.Journal {
		if cli.DB != "" {
			m.DBPath = cli.DB
		}
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintln(stderr, "Hint: Set PAGECAP_DB or pass --db to use a different database path")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()
		journal = sqlite.NewCaptureService(m.DB)
	}

	var extractor pagecap.Extractor
	switch cli.Extractor {
	case "trafilatura":
		extractor = trafilatura.NewExtractor()
	default:
		extractor = goquery.NewExtractor(
			goquery.WithStripSelectors(cfg.StripSelectors),
			goquery.WithMainSelectors(cfg.MainSelectors),
			goquery.WithLogger(logger),
		)
	}

	session, err := m.NewSession(cfg, cli.Stealth)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
		return fmt.Errorf("failed to start browser: %w", err)
	}
	defer session.Close()

	console := &Console{
		Session: rod.NewLoggingSession(session, logger),
		Capturer: &watch.Coordinator{
			Extractor:         extractor,
			Converter:         htmltomarkdown.NewConverter(),
			Store:             fs.NewStore(),
			Journal:           journal,
			OutputRoot:        cfg.OutputRoot,
			DebugHTML:         cfg.DebugHTML,
			MaxFileNameLength: cfg.MaxFileNameLength,
			PreviewLines:      cfg.PreviewLines,
			PreviewWidth:      cfg.PreviewWidth,
			Stdout:            stdout,
			Logger:            logger,
		},
		Journal: journal,
		WatchConfig: watch.Config{
			Debounce:     cfg.Debounce,
			Cooldown:     cfg.Cooldown,
			PollInterval: cfg.PollInterval,
		},
		OutputRoot: cfg.OutputRoot,
		StartURL:   cli.URL,
		AutoWatch:  cli.Watch,
		Stdin:      stdin,
		Stdout:     stdout,
		Logger:     logger,
	}

	return console.Run(ctx)
}

// validateStartURL rejects anything without an explicit http or https
// scheme before a browser is launched.
func validateStartURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return pagecap.Errorf(pagecap.EINVALID, "URL must start with http:// or https://: %s", raw)
	}
	return nil
}

func defaultDBPath() string {
	if path := os.Getenv("PAGECAP_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "pagecap.db"
	}
	dir := filepath.Join(home, ".pagecap")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "pagecap.db")
}
