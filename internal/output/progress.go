package output

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/mattn/go-isatty"
)

// StageProgress renders one progress bar per pipeline stage, the way a
// terminal user expects during long resolve/translate passes. It
// implements pipeline.Progress. On a non-terminal writer it renders
// nothing — the log stream is the machine-readable record.
type StageProgress struct {
	pw progress.Writer

	mu       sync.Mutex
	trackers map[string]*progress.Tracker
}

// NewStageProgress returns a renderer writing to w, or a disabled one
// when enabled is false. Rendering starts lazily with the first stage.
func NewStageProgress(w io.Writer, enabled bool) *StageProgress {
	if !enabled {
		return &StageProgress{}
	}
	pw := progress.NewWriter()
	pw.SetOutputWriter(w)
	pw.SetAutoStop(false)
	pw.SetTrackerPosition(progress.PositionRight)
	pw.SetUpdateFrequency(100 * time.Millisecond)
	go pw.Render()
	return &StageProgress{
		pw:       pw,
		trackers: make(map[string]*progress.Tracker),
	}
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (p *StageProgress) StartStage(name string, total int) {
	if p.pw == nil {
		return
	}
	tracker := &progress.Tracker{Message: name, Total: int64(total)}
	p.mu.Lock()
	p.trackers[name] = tracker
	p.mu.Unlock()
	p.pw.AppendTracker(tracker)
}

func (p *StageProgress) Advance(name string) {
	if p.pw == nil {
		return
	}
	p.mu.Lock()
	tracker := p.trackers[name]
	p.mu.Unlock()
	if tracker != nil {
		tracker.Increment(1)
	}
}

func (p *StageProgress) EndStage(name string) {
	if p.pw == nil {
		return
	}
	p.mu.Lock()
	tracker := p.trackers[name]
	p.mu.Unlock()
	if tracker != nil {
		tracker.MarkAsDone()
	}
}

// Close stops rendering. Call after the run so the final frame is drawn.
func (p *StageProgress) Close() {
	if p.pw == nil {
		return
	}
	p.pw.Stop()
	for p.pw.IsRenderInProgress() {
		time.Sleep(10 * time.Millisecond)
	}
}
