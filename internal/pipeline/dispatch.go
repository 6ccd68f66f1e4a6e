package pipeline

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"

	"bazarrctl/internal/bazarr"
)

// Dispatcher issues one translate action per task. Success means "the
// action request was accepted" (204); no follow-up query verifies that
// the translation was actually produced.
type Dispatcher struct {
	client         *bazarr.Client
	log            *slog.Logger
	targetLanguage string
}

func NewDispatcher(client *bazarr.Client, log *slog.Logger, targetLanguage string) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	return &Dispatcher{client: client, log: log, targetLanguage: targetLanguage}
}

// Dispatch issues a single translate action for task and classifies the
// outcome. Each task gets exactly one attempt per run; a failure is
// logged and isolated to this task.
func (d *Dispatcher) Dispatch(ctx context.Context, task TranslationTask) Outcome {
	query := url.Values{}
	query.Set("action", "translate")
	query.Set("language", d.targetLanguage)
	query.Set("path", task.SourcePath)
	query.Set("type", "episode")
	query.Set("id", strconv.Itoa(task.EpisodeID))
	query.Set("forced", "false")
	query.Set("hi", "false")
	query.Set("original_format", "true")

	switch d.client.IssueAction(ctx, "/api/subtitles", query) {
	case bazarr.ActionSucceeded:
		d.log.Info("translated subtitle",
			"episode", task.Episode, "episodeId", task.EpisodeID, "language", d.targetLanguage)
		return OutcomeTranslated
	case bazarr.ActionRejected:
		d.log.Info("translation not confirmed by service",
			"episode", task.Episode, "episodeId", task.EpisodeID)
		return OutcomeRejected
	default:
		// The client already logged the cause.
		return OutcomeTransportFailed
	}
}
