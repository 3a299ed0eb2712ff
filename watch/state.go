package watch

import "time"

// State tracks what the watch loop has seen. It is an explicit value
// owned by a single loop instance, so the eligibility decision can be
// tested deterministically without a live browser.
type State struct {
	// LastSeenURL is the URL observed on the previous tick.
	LastSeenURL string

	// LastSeenAt is when LastSeenURL was first observed; reset exactly
	// when LastSeenURL changes.
	LastSeenAt time.Time

	// LastCapturedAt maps a URL to its most recent successful capture.
	// Updated only immediately after a successful capture.
	LastCapturedAt map[string]time.Time

	seen bool
}

// NewState creates an empty State.
func NewState() *State {
	return &State{LastCapturedAt: make(map[string]time.Time)}
}

// Observe records that url was seen at now. A URL change, even to the
// same logical page via a different URL string, restarts stability
// tracking. Returns how long the URL has been stable.
func (s *State) Observe(url string, now time.Time) time.Duration {
	if !s.seen || url != s.LastSeenURL {
		s.LastSeenURL = url
		s.LastSeenAt = now
		s.seen = true
	}
	return now.Sub(s.LastSeenAt)
}

// Eligible reports whether url may be captured at now: the page must be
// ready, the URL stable for at least debounce, and outside the cooldown
// window since its last capture.
func (s *State) Eligible(url string, ready bool, now time.Time, debounce, cooldown time.Duration) bool {
	if !ready {
		return false
	}
	if !s.seen || url != s.LastSeenURL || now.Sub(s.LastSeenAt) < debounce {
		return false
	}
	if last, ok := s.LastCapturedAt[url]; ok && now.Sub(last) < cooldown {
		return false
	}
	return true
}

// MarkCaptured records a successful capture of url at now.
func (s *State) MarkCaptured(url string, now time.Time) {
	s.LastCapturedAt[url] = now
}
