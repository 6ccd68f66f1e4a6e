package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Config struct {
	// MAINTAINER NOTE: If you add/change/remove fields that affect run
	// behavior, keep these in sync:
	// - CLI flags in internal/cli/translate.go
	// - config file keys in internal/config/file.go
	Bazarr    Bazarr
	Translate Translate
	Runtime   Runtime
}

type Bazarr struct {
	// APIKey authenticates every call (X-API-KEY header). Usually comes
	// from the BAZARR_API_KEY environment variable.
	APIKey string

	// BaseURL is the Bazarr instance address, e.g. http://localhost:6767.
	// Usually comes from the BAZARR_BASE_URL environment variable.
	BaseURL string
}

type Translate struct {
	// TargetLanguage is the language code translations are requested in
	// (see --language). Bazarr expects a two-letter code like "nl".
	TargetLanguage string

	// ReferenceLanguage is the subtitle name whose file is used as the
	// translation source (see --reference-language). Matched exactly.
	ReferenceLanguage string

	// SeriesID restricts the run to one Sonarr series (see --series-id).
	// 0 means no filter.
	SeriesID int

	// EpisodeID restricts the run to one Sonarr episode (see --episode-id).
	// 0 means no filter.
	EpisodeID int
}

type Runtime struct {
	// Concurrency bounds how many episode lookups / translate actions are
	// in flight at once (see --concurrency). 1 reproduces strictly
	// sequential behavior. Must be >= 1.
	Concurrency int

	// Timeout bounds every single call to the Bazarr API (see --timeout).
	// Must be > 0.
	Timeout time.Duration

	// DryRun resolves tasks and prints what would be dispatched without
	// issuing any translate action (see --dry-run).
	DryRun bool

	// NoProgress suppresses the per-stage progress bars (see --no-progress).
	NoProgress bool

	// Verbose enables per-request HTTP tracing and debug logging.
	Verbose bool
}

func New() *Config {
	return &Config{
		Translate: Translate{
			TargetLanguage:    "nl",
			ReferenceLanguage: "English",
		},
		Runtime: Runtime{
			Concurrency: 4,
			Timeout:     30 * time.Second,
		},
	}
}

func (c *Config) Validate() error {
	c.Translate.TargetLanguage = strings.TrimSpace(c.Translate.TargetLanguage)
	c.Translate.ReferenceLanguage = strings.TrimSpace(c.Translate.ReferenceLanguage)

	if c.Translate.TargetLanguage == "" {
		return errors.New("--language must not be empty")
	}
	if c.Translate.ReferenceLanguage == "" {
		return errors.New("--reference-language must not be empty")
	}
	if c.Translate.SeriesID < 0 {
		return fmt.Errorf("--series-id must be >= 0, got %d", c.Translate.SeriesID)
	}
	if c.Translate.EpisodeID < 0 {
		return fmt.Errorf("--episode-id must be >= 0, got %d", c.Translate.EpisodeID)
	}
	if c.Runtime.Concurrency <= 0 {
		return fmt.Errorf("--concurrency must be >= 1, got %d", c.Runtime.Concurrency)
	}
	if c.Runtime.Timeout <= 0 {
		return errors.New("--timeout must be > 0")
	}
	return nil
}
