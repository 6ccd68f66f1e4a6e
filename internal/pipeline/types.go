package pipeline

// SubtitleGap identifies one missing subtitle occurrence: an episode that
// Bazarr wants a subtitle for in one language. Produced by the discoverer,
// consumed once by the resolver.
type SubtitleGap struct {
	SeriesID        int
	EpisodeID       int
	MissingLanguage string
}

// TranslationTask is a gap enriched with everything the translate action
// needs. SourcePath is the reference-language subtitle file on the Bazarr
// host. Consumed once by the dispatcher.
type TranslationTask struct {
	SeriesID   int
	EpisodeID  int
	Title      string
	Episode    string
	SourcePath string
}

// Outcome classifies one dispatch attempt. It exists for logging and the
// run summary only; nothing is persisted between runs.
type Outcome int

const (
	OutcomeTransportFailed Outcome = iota
	OutcomeTranslated
	OutcomeRejected
)

func (o Outcome) String() string {
	switch o {
	case OutcomeTranslated:
		return "translated"
	case OutcomeRejected:
		return "rejected"
	default:
		return "transport-failed"
	}
}

// Summary counts what happened during one run. Observability is log-line
// based; the summary only feeds the final console line.
type Summary struct {
	Gaps       int
	Tasks      int
	Skipped    int
	Translated int
	Rejected   int
	Failed     int
}
