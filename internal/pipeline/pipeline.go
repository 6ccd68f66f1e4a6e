package pipeline

import (
	"context"
	"log/slog"

	"bazarrctl/internal/bazarr"
)

// Progress receives one notification per item as it moves through a
// stage. Implementations are purely observational; nothing feeds back
// into the pipeline. Advance may be called from multiple goroutines.
type Progress interface {
	StartStage(name string, total int)
	Advance(name string)
	EndStage(name string)
}

type nopProgress struct{}

func (nopProgress) StartStage(string, int) {}
func (nopProgress) Advance(string)         {}
func (nopProgress) EndStage(string)        {}

// Options fix one run. A run is fully described by these values and the
// client it is given; no state survives past Run.
type Options struct {
	TargetLanguage    string
	ReferenceLanguage string

	// SeriesID and EpisodeID are exact-match filters; 0 matches everything.
	SeriesID  int
	EpisodeID int

	// Concurrency bounds in-flight remote calls during the resolve and
	// dispatch stages. Values below 1 are treated as 1 (sequential).
	Concurrency int

	// DryRun stops after resolution and logs would-be dispatches.
	DryRun bool

	Progress Progress
}

// Pipeline sequences discovery, resolution, and dispatch. Each stage
// materializes its full output before the next begins; data flows
// strictly forward and records are never re-read after advancing.
type Pipeline struct {
	discoverer *Discoverer
	resolver   *Resolver
	dispatcher *Dispatcher
	log        *slog.Logger
	opts       Options
}

func New(client *bazarr.Client, log *slog.Logger, opts Options) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if opts.Progress == nil {
		opts.Progress = nopProgress{}
	}
	return &Pipeline{
		discoverer: NewDiscoverer(client, log),
		resolver:   NewResolver(client, log, opts.ReferenceLanguage),
		dispatcher: NewDispatcher(client, log, opts.TargetLanguage),
		log:        log,
		opts:       opts,
	}
}

// Run drives one complete pass. It always runs to completion: every
// per-item failure is isolated to that item and only counted in the
// summary. The returned Summary feeds the final console line; the per
// item record is the log stream.
func (p *Pipeline) Run(ctx context.Context) Summary {
	var summary Summary

	gaps := p.discoverer.DiscoverGaps(ctx, p.opts.SeriesID, p.opts.EpisodeID)
	summary.Gaps = len(gaps)
	p.log.Info("discovered subtitle gaps", "count", len(gaps))
	if len(gaps) == 0 {
		return summary
	}

	tasks := p.resolveAll(ctx, gaps)
	summary.Tasks = len(tasks)
	summary.Skipped = len(gaps) - len(tasks)
	p.log.Info("resolved translation sources",
		"tasks", len(tasks), "skipped", summary.Skipped)

	if p.opts.DryRun {
		for _, task := range tasks {
			p.log.Info("would translate",
				"episode", task.Episode, "episodeId", task.EpisodeID,
				"title", task.Title, "path", task.SourcePath,
				"language", p.opts.TargetLanguage)
		}
		return summary
	}

	outcomes := p.dispatchAll(ctx, tasks)
	for _, outcome := range outcomes {
		switch outcome {
		case OutcomeTranslated:
			summary.Translated++
		case OutcomeRejected:
			summary.Rejected++
		default:
			summary.Failed++
		}
	}
	return summary
}

func (p *Pipeline) resolveAll(ctx context.Context, gaps []SubtitleGap) []TranslationTask {
	type resolved struct {
		task TranslationTask
		ok   bool
	}

	p.opts.Progress.StartStage("resolving", len(gaps))
	results := runAll(ctx, p.opts.Concurrency, gaps, func(ctx context.Context, gap SubtitleGap) resolved {
		task, ok := p.resolver.Resolve(ctx, gap)
		p.opts.Progress.Advance("resolving")
		return resolved{task: task, ok: ok}
	})
	p.opts.Progress.EndStage("resolving")

	// Compact absences, keeping input order.
	tasks := make([]TranslationTask, 0, len(results))
	for _, res := range results {
		if res.ok {
			tasks = append(tasks, res.task)
		}
	}
	return tasks
}

func (p *Pipeline) dispatchAll(ctx context.Context, tasks []TranslationTask) []Outcome {
	p.opts.Progress.StartStage("translating", len(tasks))
	outcomes := runAll(ctx, p.opts.Concurrency, tasks, func(ctx context.Context, task TranslationTask) Outcome {
		outcome := p.dispatcher.Dispatch(ctx, task)
		p.opts.Progress.Advance("translating")
		return outcome
	})
	p.opts.Progress.EndStage("translating")
	return outcomes
}
