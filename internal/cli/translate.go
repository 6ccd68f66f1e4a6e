package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"bazarrctl/internal/bazarr"
	"bazarrctl/internal/config"
	"bazarrctl/internal/flags"
	"bazarrctl/internal/output"
	"bazarrctl/internal/pipeline"
)

// fatalExitCode is used only for startup/configuration failures. Once a
// run starts it always completes and exits 0, regardless of per-item
// outcomes.
const fatalExitCode = 2

const translateHelpTemplate = `{{with (or .Long .Short)}}{{. | trimTrailingWhitespaces}}

{{end}}Usage:
  {{.UseLine}}

{{if .HasAvailableLocalFlags}}Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}{{if .HasAvailableInheritedFlags}}Global Flags:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}Environment:
	bazarrctl authenticates to Bazarr with an API key.

	Required (environment or config file):
	  BAZARR_API_KEY    the API key from Bazarr's Settings > General
	  BAZARR_BASE_URL   the instance address, e.g. http://localhost:6767

	A .env file in the working directory is loaded first; real environment
	variables win over it.

  Examples:
    export BAZARR_API_KEY="<your_key>"
    export BAZARR_BASE_URL="http://localhost:6767"
    bazarrctl translate

{{if .HasAvailableSubCommands}}Available Commands:
{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}

{{end}}`

var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Request translations for every missing subtitle",
	Long: `Request a server-side translation for every episode subtitle Bazarr wants.

The run has three stages: discover the wanted collection, look up each
episode's reference-language subtitle path, then issue one translate
action per resolved item. Items that fail are logged and skipped; a
failed item never aborts the run.

Exit codes:
	0 = run completed (individual items may still have failed; see the log)
	2 = fatal startup error (missing credentials or invalid configuration)

Examples:
  bazarrctl translate
  bazarrctl translate --language de --reference-language English
  bazarrctl translate --series-id 10 --episode-id 55
  bazarrctl translate --dry-run
`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		client, logger := mustSetup(cmd)

		progressEnabled := !cfg.Runtime.NoProgress && !cfg.Runtime.Verbose && output.IsTerminal(os.Stderr)
		progress := output.NewStageProgress(os.Stderr, progressEnabled)

		p := pipeline.New(client, logger, pipeline.Options{
			TargetLanguage:    cfg.Translate.TargetLanguage,
			ReferenceLanguage: cfg.Translate.ReferenceLanguage,
			SeriesID:          cfg.Translate.SeriesID,
			EpisodeID:         cfg.Translate.EpisodeID,
			Concurrency:       cfg.Runtime.Concurrency,
			DryRun:            cfg.Runtime.DryRun,
			Progress:          progress,
		})
		summary := p.Run(context.Background())
		progress.Close()

		output.NewConsole(cmd.OutOrStdout()).Summary(summary, cfg.Runtime.DryRun)
	},
}

func init() {
	translateCmd.SetHelpTemplate(translateHelpTemplate)

	translateCmd.Flags().StringVar(&cfg.Translate.TargetLanguage, flags.FlagLanguage, cfg.Translate.TargetLanguage, "Target language code translations are requested in")
	translateCmd.Flags().StringVar(&cfg.Translate.ReferenceLanguage, flags.FlagReferenceLanguage, cfg.Translate.ReferenceLanguage, "Subtitle name used as the translation source (exact match)")
	translateCmd.Flags().IntVar(&cfg.Translate.SeriesID, flags.FlagSeriesID, 0, "Only translate this Sonarr series id (0 = all)")
	translateCmd.Flags().IntVar(&cfg.Translate.EpisodeID, flags.FlagEpisodeID, 0, "Only translate this Sonarr episode id (0 = all)")
	translateCmd.Flags().IntVar(&cfg.Runtime.Concurrency, flags.FlagConcurrency, cfg.Runtime.Concurrency, "How many Bazarr calls may be in flight at once (1 = sequential)")
	translateCmd.Flags().DurationVar(&cfg.Runtime.Timeout, flags.FlagTimeout, cfg.Runtime.Timeout, "Per-call timeout for the Bazarr API")
	translateCmd.Flags().BoolVar(&cfg.Runtime.DryRun, flags.FlagDryRun, false, "Resolve tasks and print what would be dispatched without translating")
	translateCmd.Flags().BoolVar(&cfg.Runtime.NoProgress, flags.FlagNoProgress, false, "Disable the per-stage progress bars")

	rootCmd.AddCommand(translateCmd)
}

// mustSetup merges configuration sources, resolves credentials, and
// builds the authenticated client. Any failure here is the fatal startup
// condition: print and exit, the pipeline never starts.
func mustSetup(cmd *cobra.Command) (*bazarr.Client, *slog.Logger) {
	if err := mergeConfig(cmd); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(fatalExitCode)
	}

	logger := newLogger(cfg.Runtime.Verbose)

	creds, sources, err := bazarr.ResolveCredentials(bazarr.Credentials{
		APIKey:  cfg.Bazarr.APIKey,
		BaseURL: cfg.Bazarr.BaseURL,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(fatalExitCode)
	}
	logger.Debug("credentials resolved",
		"apiKeySource", sources.APIKey, "baseUrlSource", sources.BaseURL)
	client, err := bazarr.NewClient(creds.BaseURL, creds.APIKey,
		bazarr.WithTimeout(cfg.Runtime.Timeout),
		bazarr.WithVerbose(cfg.Runtime.Verbose, nil),
		bazarr.WithLogger(logger),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(fatalExitCode)
	}
	return client, logger
}

func mergeConfig(cmd *cobra.Command) error {
	// The original workflow keeps credentials in a .env next to the
	// invocation; real environment variables win over it.
	if err := config.LoadEnvFile(".env"); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}

	path := cfgFile
	explicit := path != ""
	if path == "" {
		path = config.DefaultPath()
	}
	values, err := config.LoadFile(path, explicit)
	if err != nil {
		return err
	}
	if err := values.Apply(cfg, func(flag string) bool {
		return !cmd.Flags().Changed(flag)
	}); err != nil {
		return err
	}

	return cfg.Validate()
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
