package mock

import (
	"context"

	"github.com/pagecap/pagecap"
)

var _ pagecap.Session = (*Session)(nil)

// Session is a mock implementation of pagecap.Session.
type Session struct {
	CurrentURLFn func(ctx context.Context) (string, error)
	TitleFn      func(ctx context.Context) (string, error)
	MarkupFn     func(ctx context.Context) (string, error)
	ReadyStateFn func(ctx context.Context) (pagecap.ReadyState, error)
	NavigateFn   func(ctx context.Context, url string) error
	CloseFn      func() error
}

func (s *Session) CurrentURL(ctx context.Context) (string, error) {
	return s.CurrentURLFn(ctx)
}

func (s *Session) Title(ctx context.Context) (string, error) {
	return s.TitleFn(ctx)
}

func (s *Session) Markup(ctx context.Context) (string, error) {
	return s.MarkupFn(ctx)
}

func (s *Session) ReadyState(ctx context.Context) (pagecap.ReadyState, error) {
	return s.ReadyStateFn(ctx)
}

func (s *Session) Navigate(ctx context.Context, url string) error {
	return s.NavigateFn(ctx, url)
}

func (s *Session) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}
