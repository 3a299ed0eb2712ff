package rod_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/pagecap/pagecap"
	"github.com/pagecap/pagecap/mock"
	"github.com/pagecap/pagecap/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingSession_DelegatesAndLogs(t *testing.T) {
	t.Parallel()

	inner := &mock.Session{
		CurrentURLFn: func(ctx context.Context) (string, error) {
			return "https://example.com/docs", nil
		},
		TitleFn: func(ctx context.Context) (string, error) {
			return "Docs", nil
		},
		MarkupFn: func(ctx context.Context) (string, error) {
			return "<html></html>", nil
		},
		ReadyStateFn: func(ctx context.Context) (pagecap.ReadyState, error) {
			return pagecap.ReadyComplete, nil
		},
		NavigateFn: func(ctx context.Context, url string) error { return nil },
	}

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	session := rod.NewLoggingSession(inner, logger)
	ctx := context.Background()

	url, err := session.CurrentURL(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/docs", url)

	html, err := session.Markup(ctx)
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", html)

	state, err := session.ReadyState(ctx)
	require.NoError(t, err)
	assert.Equal(t, pagecap.ReadyComplete, state)

	require.NoError(t, session.Navigate(ctx, "https://example.com/next"))

	assert.Contains(t, buf.String(), "markup")
	assert.Contains(t, buf.String(), "navigate")
}
