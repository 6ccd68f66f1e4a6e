package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// FileValues are the optional settings a config file may carry. Zero
// values mean "not set" and leave the merged config untouched.
type FileValues struct {
	APIKey            string `toml:"api_key"`
	BaseURL           string `toml:"base_url"`
	TargetLanguage    string `toml:"target_language"`
	ReferenceLanguage string `toml:"reference_language"`
	Concurrency       int    `toml:"concurrency"`
	Timeout           string `toml:"timeout"`
}

// DefaultPath returns the conventional config file location
// (e.g. ~/.config/bazarrctl/config.toml), or "" when the user config
// directory cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "bazarrctl", "config.toml")
}

// LoadFile reads TOML values from path. When explicit is false the path
// is the default location and a missing file is fine; an explicitly
// requested file must exist.
func LoadFile(path string, explicit bool) (FileValues, error) {
	var v FileValues
	if path == "" {
		return v, nil
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return v, nil
		}
		return v, fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return v, nil
}

// Apply copies every set file value onto cfg. Values already set on cfg
// by a higher-precedence source are only overwritten when the caller says
// so via the overwrite predicate (keyed by the same names as CLI flags).
func (v FileValues) Apply(cfg *Config, overwrite func(flag string) bool) error {
	if v.APIKey != "" && cfg.Bazarr.APIKey == "" {
		cfg.Bazarr.APIKey = v.APIKey
	}
	if v.BaseURL != "" && cfg.Bazarr.BaseURL == "" {
		cfg.Bazarr.BaseURL = v.BaseURL
	}
	if v.TargetLanguage != "" && overwrite("language") {
		cfg.Translate.TargetLanguage = v.TargetLanguage
	}
	if v.ReferenceLanguage != "" && overwrite("reference-language") {
		cfg.Translate.ReferenceLanguage = v.ReferenceLanguage
	}
	if v.Concurrency != 0 && overwrite("concurrency") {
		cfg.Runtime.Concurrency = v.Concurrency
	}
	if v.Timeout != "" && overwrite("timeout") {
		d, err := time.ParseDuration(v.Timeout)
		if err != nil {
			return fmt.Errorf("config file timeout %q: %w", v.Timeout, err)
		}
		cfg.Runtime.Timeout = d
	}
	return nil
}
