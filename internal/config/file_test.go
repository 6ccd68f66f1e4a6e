package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func overwriteAll(string) bool { return true }

func TestLoadFile_Appliesvalues(t *testing.T) {
	path := writeTempConfig(t, `
api_key = "file-key"
base_url = "http://file.local:6767"
target_language = "de"
reference_language = "Dutch"
concurrency = 8
timeout = "45s"
`)
	values, err := LoadFile(path, true)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	cfg := New()
	if err := values.Apply(cfg, overwriteAll); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if cfg.Bazarr.APIKey != "file-key" || cfg.Bazarr.BaseURL != "http://file.local:6767" {
		t.Errorf("Bazarr = %+v", cfg.Bazarr)
	}
	if cfg.Translate.TargetLanguage != "de" {
		t.Errorf("TargetLanguage = %q", cfg.Translate.TargetLanguage)
	}
	if cfg.Translate.ReferenceLanguage != "Dutch" {
		t.Errorf("ReferenceLanguage = %q", cfg.Translate.ReferenceLanguage)
	}
	if cfg.Runtime.Concurrency != 8 {
		t.Errorf("Concurrency = %d", cfg.Runtime.Concurrency)
	}
	if cfg.Runtime.Timeout != 45*time.Second {
		t.Errorf("Timeout = %v", cfg.Runtime.Timeout)
	}
}

func TestLoadFile_MissingDefaultPathIsFine(t *testing.T) {
	values, err := LoadFile(filepath.Join(t.TempDir(), "does-not-exist.toml"), false)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if values != (FileValues{}) {
		t.Errorf("values = %+v, want zero", values)
	}
}

func TestLoadFile_MissingExplicitPathFails(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "does-not-exist.toml"), true)
	if err == nil {
		t.Fatalf("expected error for explicitly requested missing file")
	}
}

func TestLoadFile_BadTOML(t *testing.T) {
	path := writeTempConfig(t, "api_key = [broken")
	if _, err := LoadFile(path, true); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestApply_RespectsFlagPrecedence(t *testing.T) {
	values := FileValues{TargetLanguage: "de", Concurrency: 16}
	cfg := New()
	cfg.Translate.TargetLanguage = "fr" // pretend --language was given
	changed := map[string]bool{"language": true}
	err := values.Apply(cfg, func(flag string) bool { return !changed[flag] })
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if cfg.Translate.TargetLanguage != "fr" {
		t.Errorf("flag value was clobbered: %q", cfg.Translate.TargetLanguage)
	}
	if cfg.Runtime.Concurrency != 16 {
		t.Errorf("unflagged value not applied: %d", cfg.Runtime.Concurrency)
	}
}

func TestApply_BadTimeout(t *testing.T) {
	values := FileValues{Timeout: "soon"}
	cfg := New()
	err := values.Apply(cfg, overwriteAll)
	if err == nil || !strings.Contains(err.Error(), "timeout") {
		t.Fatalf("expected timeout parse error, got %v", err)
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# comment\n\nBAZARR_TEST_KEY=\"quoted value\"\nBAZARR_TEST_URL=http://x\nNOEQUALS\n=novalue\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("BAZARR_TEST_URL", "http://already-set")
	os.Unsetenv("BAZARR_TEST_KEY")
	t.Cleanup(func() { os.Unsetenv("BAZARR_TEST_KEY") })

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile failed: %v", err)
	}
	if got := os.Getenv("BAZARR_TEST_KEY"); got != "quoted value" {
		t.Errorf("BAZARR_TEST_KEY = %q", got)
	}
	// Real environment wins over the file.
	if got := os.Getenv("BAZARR_TEST_URL"); got != "http://already-set" {
		t.Errorf("BAZARR_TEST_URL = %q", got)
	}
}

func TestLoadEnvFile_MissingFileIsFine(t *testing.T) {
	if err := LoadEnvFile(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Fatalf("LoadEnvFile failed: %v", err)
	}
}
