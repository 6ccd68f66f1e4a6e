package cli

import (
	"bytes"
	"testing"
)

func TestFatalExitCode(t *testing.T) {
	// Exit code contract: 0 = run completed, 2 = fatal startup error.
	if fatalExitCode != 2 {
		t.Errorf("fatalExitCode = %d, want 2", fatalExitCode)
	}
}

func TestParseFailureSurfacesAsError(t *testing.T) {
	// Unknown flags must return through rootCmd.Execute so Execute can
	// exit with the fatal startup code rather than running anything.
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"translate", "--no-such-flag"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	if err := rootCmd.Execute(); err == nil {
		t.Fatalf("expected a parse error for an unknown flag")
	}
}

func TestMalformedFlagValueSurfacesAsError(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"translate", "--timeout", "soon"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	if err := rootCmd.Execute(); err == nil {
		t.Fatalf("expected a parse error for a malformed duration")
	}
}
