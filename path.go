package pagecap

import (
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultMaxFileNameLength bounds sanitized file names (before extension).
const DefaultMaxFileNameLength = 100

// PlaceholderDomain is used when the source URL has no host.
const PlaceholderDomain = "unknown-domain"

// CapturePath is the derived location of one capture's artifacts.
// It has no identity beyond its string value and is recomputed every
// capture, so repeated captures of the same title overwrite.
type CapturePath struct {
	Directory string
	FilePath  string
}

// DebugFilePath returns the sibling raw-markup artifact path.
func (p CapturePath) DebugFilePath() string {
	stem := strings.TrimSuffix(filepath.Base(p.FilePath), ".md")
	return filepath.Join(p.Directory, "debug-"+stem+".html")
}

var (
	illegalFileChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	unsafePathChars  = regexp.MustCompile(`[^\w\-.]`)
)

// SanitizeDomain derives a filesystem-legal directory name from a URL's
// host: leading "www." stripped, lowercased, unsafe characters replaced
// with "-". URLs without a host map to PlaceholderDomain.
func SanitizeDomain(rawURL string) string {
	domain := PlaceholderDomain
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		domain = u.Host
	}

	domain = strings.ToLower(domain)
	domain = strings.TrimPrefix(domain, "www.")
	return unsafePathChars.ReplaceAllString(domain, "-")
}

// SanitizeFileName derives a filesystem-legal file name (without
// extension) from a title: lowercased, characters illegal on common
// filesystems stripped, remaining unsafe characters replaced with "-",
// truncated to maxLen runes.
func SanitizeFileName(title string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultMaxFileNameLength
	}

	name := illegalFileChars.ReplaceAllString(strings.ToLower(title), "")
	name = unsafePathChars.ReplaceAllString(name, "-")

	if runes := []rune(name); len(runes) > maxLen {
		name = string(runes[:maxLen])
	}
	return name
}

// DerivePath derives the artifact location for a capture. It is pure and
// deterministic: the same (url, title) always yields the same path. It is
// intentionally not collision-proof; same-title captures overwrite.
func DerivePath(outputRoot, rawURL, title string, maxNameLen int) CapturePath {
	dir := filepath.Join(outputRoot, SanitizeDomain(rawURL))
	return CapturePath{
		Directory: dir,
		FilePath:  filepath.Join(dir, SanitizeFileName(title, maxNameLen)+".md"),
	}
}
