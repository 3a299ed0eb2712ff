package pagecap

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// ResolveTitle determines a reasonable title for a page. The browser's
// title wins when present; otherwise the title derives from the last path
// segment of the URL. ResolveTitle is total: it never fails and always
// returns a non-empty string, even for a malformed URL.
func ResolveTitle(rawURL, browserTitle string) string {
	if t := strings.TrimSpace(browserTitle); t != "" {
		return t
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return syntheticTitle()
	}

	// Last non-empty path segment; root/empty paths become "index".
	last := "index"
	segments := strings.Split(u.EscapedPath(), "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			last = segments[i]
			break
		}
	}

	last = strings.NewReplacer("-", " ", "_", " ", "%20", " ").Replace(last)
	if strings.TrimSpace(last) == "" {
		return syntheticTitle()
	}
	return last
}

func syntheticTitle() string {
	return fmt.Sprintf("unknown-%d", time.Now().Unix())
}
