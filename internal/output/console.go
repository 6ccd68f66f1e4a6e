package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"

	"bazarrctl/internal/pipeline"
)

// Console writes the human-facing run summary. One line per run; per-item
// visibility lives in the log stream.
type Console struct {
	writer io.Writer
	mu     sync.Mutex
}

func NewConsole(w io.Writer) *Console {
	if w == nil {
		w = os.Stdout
	}
	return &Console{writer: w}
}

// Summary prints the closing line for a run.
func (c *Console) Summary(s pipeline.Summary, dryRun bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s.Gaps == 0 {
		fmt.Fprintln(c.writer, "No missing subtitles found, nothing to do.")
		return
	}

	if dryRun {
		fmt.Fprintf(c.writer, "Dry run: %d gap(s), %s, %d skipped (no reference subtitle).\n",
			s.Gaps, color.CyanString("%d translation(s) would be requested", s.Tasks), s.Skipped)
		return
	}

	fmt.Fprintf(c.writer, "Done: %d gap(s), %s, %s, %s, %d skipped.\n",
		s.Gaps,
		color.GreenString("%d translated", s.Translated),
		color.YellowString("%d rejected", s.Rejected),
		color.RedString("%d failed", s.Failed),
		s.Skipped)
}
