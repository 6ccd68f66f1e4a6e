package cli

import (
	"strings"
	"testing"

	"bazarrctl/internal/flags"
)

func TestTranslateFlagDefaults(t *testing.T) {
	cases := []struct {
		flag string
		want string
	}{
		{flags.FlagLanguage, "nl"},
		{flags.FlagReferenceLanguage, "English"},
		{flags.FlagSeriesID, "0"},
		{flags.FlagEpisodeID, "0"},
		{flags.FlagConcurrency, "4"},
		{flags.FlagTimeout, "30s"},
		{flags.FlagDryRun, "false"},
		{flags.FlagNoProgress, "false"},
	}
	for _, tc := range cases {
		f := translateCmd.Flags().Lookup(tc.flag)
		if f == nil {
			t.Errorf("flag --%s not registered", tc.flag)
			continue
		}
		if f.DefValue != tc.want {
			t.Errorf("--%s default = %q, want %q", tc.flag, f.DefValue, tc.want)
		}
	}
}

func TestWantedFlags(t *testing.T) {
	for _, name := range []string{flags.FlagSeriesID, flags.FlagEpisodeID, flags.FlagTimeout} {
		if wantedCmd.Flags().Lookup(name) == nil {
			t.Errorf("flag --%s not registered on wanted", name)
		}
	}
	if wantedCmd.Flags().Lookup(flags.FlagDryRun) != nil {
		t.Errorf("wanted is read-only and must not take --dry-run")
	}
}

func TestRenderTable(t *testing.T) {
	out := renderTable(
		[]string{"SERIES", "EPISODE", "MISSING"},
		[][]string{{"10", "55", "Dutch"}},
		[]columnAlignment{alignRight, alignRight, alignLeft},
	)
	for _, want := range []string{"SERIES", "Dutch", "55"} {
		if !strings.Contains(out, want) {
			t.Errorf("table %q missing %q", out, want)
		}
	}
}
