package flags

// Package flags defines canonical CLI flag names shared across commands.
// Keeping these as constants avoids drift between Cobra flag wiring and
// code paths that reference flags by name (e.g. precedence checks via
// cmd.Flags().Changed).
// IMPORTANT: These are flag *names* without leading dashes.
const (
	// Targeting
	FlagSeriesID  = "series-id"
	FlagEpisodeID = "episode-id"

	// Translation
	FlagLanguage          = "language"
	FlagReferenceLanguage = "reference-language"

	// Runtime
	FlagConcurrency = "concurrency"
	FlagTimeout     = "timeout"
	FlagDryRun      = "dry-run"
	FlagNoProgress  = "no-progress"
	FlagVerbose     = "verbose"
	FlagConfig      = "config"
)
