package config

import (
	"strings"
	"testing"
	"time"
)

func TestNew_Defaults(t *testing.T) {
	cfg := New()
	if cfg.Translate.TargetLanguage != "nl" {
		t.Errorf("TargetLanguage = %q", cfg.Translate.TargetLanguage)
	}
	if cfg.Translate.ReferenceLanguage != "English" {
		t.Errorf("ReferenceLanguage = %q", cfg.Translate.ReferenceLanguage)
	}
	if cfg.Runtime.Concurrency != 4 {
		t.Errorf("Concurrency = %d", cfg.Runtime.Concurrency)
	}
	if cfg.Runtime.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v", cfg.Runtime.Timeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestValidate_Rejections(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{"empty language", func(c *Config) { c.Translate.TargetLanguage = " " }, "--language"},
		{"empty reference", func(c *Config) { c.Translate.ReferenceLanguage = "" }, "--reference-language"},
		{"negative series", func(c *Config) { c.Translate.SeriesID = -1 }, "--series-id"},
		{"negative episode", func(c *Config) { c.Translate.EpisodeID = -2 }, "--episode-id"},
		{"zero concurrency", func(c *Config) { c.Runtime.Concurrency = 0 }, "--concurrency"},
		{"zero timeout", func(c *Config) { c.Runtime.Timeout = 0 }, "--timeout"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := New()
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tc.wantMsg)
			}
		})
	}
}

func TestValidate_TrimsLanguages(t *testing.T) {
	cfg := New()
	cfg.Translate.TargetLanguage = " nl "
	cfg.Translate.ReferenceLanguage = " English "
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if cfg.Translate.TargetLanguage != "nl" {
		t.Errorf("TargetLanguage = %q", cfg.Translate.TargetLanguage)
	}
	if cfg.Translate.ReferenceLanguage != "English" {
		t.Errorf("ReferenceLanguage = %q", cfg.Translate.ReferenceLanguage)
	}
}
