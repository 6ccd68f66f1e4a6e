package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"bazarrctl/internal/flags"
	"bazarrctl/internal/pipeline"
)

var wantedCmd = &cobra.Command{
	Use:   "wanted",
	Short: "List episodes with missing subtitles",
	Long: `List the missing-subtitle backlog Bazarr reports, one row per
(episode, missing language) pair. Read-only: no translation is requested.

Examples:
  bazarrctl wanted
  bazarrctl wanted --series-id 10
`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		client, logger := mustSetup(cmd)

		discoverer := pipeline.NewDiscoverer(client, logger)
		gaps := discoverer.DiscoverGaps(context.Background(), cfg.Translate.SeriesID, cfg.Translate.EpisodeID)
		if len(gaps) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No missing subtitles found.")
			return
		}

		rows := make([][]string, 0, len(gaps))
		for _, gap := range gaps {
			rows = append(rows, []string{
				strconv.Itoa(gap.SeriesID),
				strconv.Itoa(gap.EpisodeID),
				gap.MissingLanguage,
			})
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderTable(
			[]string{"SERIES", "EPISODE", "MISSING"},
			rows,
			[]columnAlignment{alignRight, alignRight, alignLeft},
		))
	},
}

func init() {
	wantedCmd.Flags().IntVar(&cfg.Translate.SeriesID, flags.FlagSeriesID, 0, "Only list this Sonarr series id (0 = all)")
	wantedCmd.Flags().IntVar(&cfg.Translate.EpisodeID, flags.FlagEpisodeID, 0, "Only list this Sonarr episode id (0 = all)")
	wantedCmd.Flags().DurationVar(&cfg.Runtime.Timeout, flags.FlagTimeout, cfg.Runtime.Timeout, "Per-call timeout for the Bazarr API")

	rootCmd.AddCommand(wantedCmd)
}
