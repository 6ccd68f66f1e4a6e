package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bazarrctl/internal/config"
	"bazarrctl/internal/flags"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

var cfg = config.New()

// cfgFile is the --config value. Empty means the default location, where
// a missing file is fine.
var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "bazarrctl",
	Short: "Batch-trigger Bazarr subtitle translations for episodes missing a language",
	Long: `bazarrctl drives a Bazarr instance's API to find episodes that are missing
a subtitle in your target language, locate each episode's existing
reference-language subtitle, and ask Bazarr to machine-translate it.

Translation itself happens server-side in Bazarr; bazarrctl only
orchestrates the requests.

Examples:
	# Show available commands and global flags
	bazarrctl --help

	# Request Dutch translations for everything Bazarr wants
	bazarrctl translate

	# Preview what would be translated for one series
	bazarrctl translate --series-id 10 --dry-run

	# List the missing-subtitle backlog
	bazarrctl wanted

	# Print build info
	bazarrctl version`,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&cfg.Runtime.Verbose, flags.FlagVerbose, false, "Enable verbose logging (prints every Bazarr API call and full error details)")
	rootCmd.PersistentFlags().StringVar(&cfgFile, flags.FlagConfig, "", "Path to a TOML config file (default: "+config.DefaultPath()+")")
}

func SetBuildInfo(version, commit, date string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}

	rootCmd.Version = fmt.Sprintf("%s (%s) %s", buildVersion, buildCommit, buildDate)
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func BuildInfo() (version, commit, date string) {
	return buildVersion, buildCommit, buildDate
}

func Execute() {
	// Parse failures (unknown flag, malformed value) are startup errors
	// and share the fatal exit code with credential/validation failures.
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(fatalExitCode)
	}
}
