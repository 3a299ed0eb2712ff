package rod

import (
	"context"
	"log/slog"
	"time"

	"github.com/pagecap/pagecap"
)

// Ensure LoggingSession implements pagecap.Session.
var _ pagecap.Session = (*LoggingSession)(nil)

// LoggingSession wraps a Session with debug logging.
type LoggingSession struct {
	next   pagecap.Session
	logger *slog.Logger
}

// NewLoggingSession creates a new LoggingSession.
func NewLoggingSession(next pagecap.Session, logger *slog.Logger) *LoggingSession {
	return &LoggingSession{next: next, logger: logger}
}

// CurrentURL delegates to the wrapped session.
func (s *LoggingSession) CurrentURL(ctx context.Context) (string, error) {
	return s.next.CurrentURL(ctx)
}

// Title delegates to the wrapped session.
func (s *LoggingSession) Title(ctx context.Context) (string, error) {
	return s.next.Title(ctx)
}

// Markup logs the size and duration of markup reads and delegates.
func (s *LoggingSession) Markup(ctx context.Context) (html string, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("markup",
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Markup(ctx)
}

// ReadyState logs probe results and delegates.
func (s *LoggingSession) ReadyState(ctx context.Context) (pagecap.ReadyState, error) {
	state, err := s.next.ReadyState(ctx)
	if err != nil {
		s.logger.Debug("ready state probe failed", "err", err)
	}
	return state, err
}

// Navigate logs the target URL and delegates.
func (s *LoggingSession) Navigate(ctx context.Context, url string) error {
	defer func(begin time.Time) {
		s.logger.Info("navigate", "url", url, "duration", time.Since(begin))
	}(time.Now())
	return s.next.Navigate(ctx, url)
}

// Close delegates to the wrapped session.
func (s *LoggingSession) Close() error {
	return s.next.Close()
}
