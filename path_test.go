package pagecap_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/pagecap/pagecap"
	"github.com/stretchr/testify/assert"
)

func TestSanitizeDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "strips www and lowercases",
			url:  "https://Www.Example.com/foo?x=1",
			want: "example.com",
		},
		{
			name: "keeps subdomains",
			url:  "https://docs.example.com/api",
			want: "docs.example.com",
		},
		{
			name: "port becomes hyphen",
			url:  "http://localhost:8080/page",
			want: "localhost-8080",
		},
		{
			name: "missing host uses placeholder",
			url:  "/relative/path",
			want: "unknown-domain",
		},
		{
			name: "unparsable url uses placeholder",
			url:  "://nope",
			want: "unknown-domain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, pagecap.SanitizeDomain(tt.url))
		})
	}
}

func TestSanitizeFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		title  string
		maxLen int
		want   string
	}{
		{
			name:  "lowercases and hyphenates spaces",
			title: "Test Page",
			want:  "test-page",
		},
		{
			name:  "strips filesystem-illegal characters",
			title: `What? A "Guide": <part 1>`,
			want:  "what-a-guide-part-1",
		},
		{
			name:  "keeps word chars hyphen underscore dot",
			title: "v1.2_release-notes",
			want:  "v1.2_release-notes",
		},
		{
			name:   "truncates to max length",
			title:  strings.Repeat("a", 150),
			maxLen: 100,
			want:   strings.Repeat("a", 100),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, pagecap.SanitizeFileName(tt.title, tt.maxLen))
		})
	}
}

func TestDerivePath_Deterministic(t *testing.T) {
	t.Parallel()

	a := pagecap.DerivePath("out", "https://Www.Example.com/foo?x=1", "Test Page", 100)
	b := pagecap.DerivePath("out", "https://Www.Example.com/foo?x=1", "Test Page", 100)

	assert.Equal(t, a, b)
	assert.Equal(t, filepath.Join("out", "example.com"), a.Directory)
	assert.Equal(t, filepath.Join("out", "example.com", "test-page.md"), a.FilePath)
}

func TestCapturePath_DebugFilePath(t *testing.T) {
	t.Parallel()

	p := pagecap.DerivePath("out", "https://example.com", "Test Page", 100)
	assert.Equal(t, filepath.Join("out", "example.com", "debug-test-page.html"), p.DebugFilePath())
}
