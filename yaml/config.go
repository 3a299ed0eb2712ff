// Package yaml loads pipeline configuration from YAML files.
package yaml

import (
	"os"
	"time"

	"github.com/pagecap/pagecap"
	"gopkg.in/yaml.v3"
)

// fileConfig mirrors pagecap.Config with YAML tags. Durations are
// expressed in seconds so config files can say "debounceSeconds: 1.5".
type fileConfig struct {
	OutputRoot        string   `yaml:"outputRoot"`
	DebugHTML         *bool    `yaml:"debugHtml"`
	MaxFileNameLength *int     `yaml:"maxFileNameLength"`
	StripSelectors    []string `yaml:"stripSelectors"`
	MainSelectors     []string `yaml:"mainSelectors"`

	DebounceSeconds     *float64 `yaml:"debounceSeconds"`
	CooldownSeconds     *float64 `yaml:"cooldownSeconds"`
	PollIntervalSeconds *float64 `yaml:"pollIntervalSeconds"`

	PreviewLines *int `yaml:"previewLines"`
	PreviewWidth *int `yaml:"previewWidth"`

	WindowWidth  *int   `yaml:"windowWidth"`
	WindowHeight *int   `yaml:"windowHeight"`
	UserAgent    string `yaml:"userAgent"`
}

// Load reads a YAML config file and returns the merged configuration:
// fields absent from the file keep their pagecap.DefaultConfig values.
func Load(path string) (pagecap.Config, error) {
	cfg := pagecap.DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, pagecap.Errorf(pagecap.EIO, "reading config file %s: %v", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, pagecap.Errorf(pagecap.EINVALID, "parsing config file %s: %v", path, err)
	}

	if fc.OutputRoot != "" {
		cfg.OutputRoot = fc.OutputRoot
	}
	if fc.DebugHTML != nil {
		cfg.DebugHTML = *fc.DebugHTML
	}
	if fc.MaxFileNameLength != nil {
		if *fc.MaxFileNameLength <= 0 {
			return cfg, pagecap.Errorf(pagecap.EINVALID, "maxFileNameLength must be positive")
		}
		cfg.MaxFileNameLength = *fc.MaxFileNameLength
	}
	if fc.StripSelectors != nil {
		cfg.StripSelectors = fc.StripSelectors
	}
	if fc.MainSelectors != nil {
		cfg.MainSelectors = fc.MainSelectors
	}

	if d, err := seconds(fc.DebounceSeconds, "debounceSeconds"); err != nil {
		return cfg, err
	} else if d > 0 {
		cfg.Debounce = d
	}
	if d, err := seconds(fc.CooldownSeconds, "cooldownSeconds"); err != nil {
		return cfg, err
	} else if d > 0 {
		cfg.Cooldown = d
	}
	if d, err := seconds(fc.PollIntervalSeconds, "pollIntervalSeconds"); err != nil {
		return cfg, err
	} else if d > 0 {
		cfg.PollInterval = d
	}

	if fc.PreviewLines != nil {
		cfg.PreviewLines = *fc.PreviewLines
	}
	if fc.PreviewWidth != nil {
		cfg.PreviewWidth = *fc.PreviewWidth
	}
	if fc.WindowWidth != nil {
		cfg.WindowWidth = *fc.WindowWidth
	}
	if fc.WindowHeight != nil {
		cfg.WindowHeight = *fc.WindowHeight
	}
	if fc.UserAgent != "" {
		cfg.UserAgent = fc.UserAgent
	}

	return cfg, nil
}

func seconds(v *float64, field string) (time.Duration, error) {
	if v == nil {
		return 0, nil
	}
	if *v < 0 {
		return 0, pagecap.Errorf(pagecap.EINVALID, "%s must not be negative", field)
	}
	return time.Duration(*v * float64(time.Second)), nil
}
