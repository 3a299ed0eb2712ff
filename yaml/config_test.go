package yaml_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pagecap/pagecap"
	"github.com/pagecap/pagecap/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pagecap.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("overrides defaults with file values", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `
outputRoot: captures
debugHtml: true
debounceSeconds: 2.5
cooldownSeconds: 30
pollIntervalSeconds: 0.25
mainSelectors:
  - article
  - body
previewLines: 5
userAgent: test-agent
`)

		cfg, err := yaml.Load(path)
		require.NoError(t, err)

		assert.Equal(t, "captures", cfg.OutputRoot)
		assert.True(t, cfg.DebugHTML)
		assert.Equal(t, 2500*time.Millisecond, cfg.Debounce)
		assert.Equal(t, 30*time.Second, cfg.Cooldown)
		assert.Equal(t, 250*time.Millisecond, cfg.PollInterval)
		assert.Equal(t, []string{"article", "body"}, cfg.MainSelectors)
		assert.Equal(t, 5, cfg.PreviewLines)
		assert.Equal(t, "test-agent", cfg.UserAgent)
	})

	t.Run("keeps defaults for absent fields", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "outputRoot: captures\n")

		cfg, err := yaml.Load(path)
		require.NoError(t, err)

		def := pagecap.DefaultConfig()
		assert.Equal(t, def.Debounce, cfg.Debounce)
		assert.Equal(t, def.Cooldown, cfg.Cooldown)
		assert.Equal(t, def.StripSelectors, cfg.StripSelectors)
		assert.Equal(t, def.WindowWidth, cfg.WindowWidth)
	})

	t.Run("returns EIO for missing file", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.Equal(t, pagecap.EIO, pagecap.ErrorCode(err))
	})

	t.Run("returns EINVALID for malformed yaml", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "outputRoot: [unclosed\n")

		_, err := yaml.Load(path)
		require.Error(t, err)
		assert.Equal(t, pagecap.EINVALID, pagecap.ErrorCode(err))
	})

	t.Run("rejects negative durations", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "debounceSeconds: -1\n")

		_, err := yaml.Load(path)
		require.Error(t, err)
		assert.Equal(t, pagecap.EINVALID, pagecap.ErrorCode(err))
	})
}
