package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/url"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"bazarrctl/internal/bazarr"
)

// Resolver looks up episode detail for each gap and extracts the path of
// the existing reference-language subtitle. Several gaps can point at the
// same episode (one per missing language), so episode lookups are
// de-duplicated: singleflight collapses concurrent calls and a per-run
// memo answers repeats. Resolution is a pure read, so memoizing within a
// run cannot change output.
type Resolver struct {
	client            *bazarr.Client
	log               *slog.Logger
	referenceLanguage string

	group singleflight.Group
	mu    sync.Mutex
	memo  map[string]*episodeDetail
}

func NewResolver(client *bazarr.Client, log *slog.Logger, referenceLanguage string) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{
		client:            client,
		log:               log,
		referenceLanguage: referenceLanguage,
		memo:              make(map[string]*episodeDetail),
	}
}

type episodesResponse struct {
	Data []episodeDetail `json:"data"`
}

type episodeDetail struct {
	Title     string          `json:"title"`
	Episode   episodeNumber   `json:"episode"`
	Subtitles []subtitleEntry `json:"subtitles"`
}

type subtitleEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// episodeNumber tolerates both string ("1x03") and numeric encodings of
// the episode field.
type episodeNumber string

func (n *episodeNumber) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*n = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = episodeNumber(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return err
	}
	*n = episodeNumber(num.String())
	return nil
}

var errNoEpisode = errors.New("no episode record")

// Resolve turns one gap into at most one TranslationTask. It emits
// nothing (ok=false) when the episode lookup fails, the record is absent,
// or no subtitle entry matches the reference language — all silent skips,
// never errors. When several entries match, the first wins.
func (r *Resolver) Resolve(ctx context.Context, gap SubtitleGap) (TranslationTask, bool) {
	detail, err := r.episode(ctx, gap.SeriesID, gap.EpisodeID)
	if err != nil {
		return TranslationTask{}, false
	}

	for _, sub := range detail.Subtitles {
		if sub.Name != r.referenceLanguage {
			continue
		}
		r.log.Debug("resolved subtitle source",
			"seriesId", gap.SeriesID, "episodeId", gap.EpisodeID,
			"title", detail.Title, "path", sub.Path)
		return TranslationTask{
			SeriesID:   gap.SeriesID,
			EpisodeID:  gap.EpisodeID,
			Title:      detail.Title,
			Episode:    string(detail.Episode),
			SourcePath: sub.Path,
		}, true
	}

	r.log.Debug("no reference-language subtitle, skipping",
		"seriesId", gap.SeriesID, "episodeId", gap.EpisodeID,
		"reference", r.referenceLanguage)
	return TranslationTask{}, false
}

// episode fetches one episode record, collapsing duplicate lookups.
func (r *Resolver) episode(ctx context.Context, seriesID, episodeID int) (*episodeDetail, error) {
	key := strconv.Itoa(seriesID) + "/" + strconv.Itoa(episodeID)

	r.mu.Lock()
	if detail, ok := r.memo[key]; ok {
		r.mu.Unlock()
		if detail == nil {
			return nil, errNoEpisode
		}
		return detail, nil
	}
	r.mu.Unlock()

	v, err, _ := r.group.Do(key, func() (any, error) {
		detail := r.fetchEpisode(ctx, seriesID, episodeID)
		r.mu.Lock()
		r.memo[key] = detail
		r.mu.Unlock()
		return detail, nil
	})
	if err != nil {
		return nil, err
	}
	detail, _ := v.(*episodeDetail)
	if detail == nil {
		return nil, errNoEpisode
	}
	return detail, nil
}

// fetchEpisode returns nil when the lookup fails or the record is absent;
// the cause has already been logged at the appropriate level.
func (r *Resolver) fetchEpisode(ctx context.Context, seriesID, episodeID int) *episodeDetail {
	query := url.Values{}
	query.Set("seriesid[]", strconv.Itoa(seriesID))
	query.Set("episodeid[]", strconv.Itoa(episodeID))

	raw, err := r.client.FetchJSON(ctx, "/api/episodes", query)
	if err != nil {
		return nil
	}

	var resp episodesResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		r.log.Warn("unexpected episode response shape",
			"seriesId", seriesID, "episodeId", episodeID, "cause", err)
		return nil
	}
	if len(resp.Data) == 0 {
		r.log.Debug("episode record absent",
			"seriesId", seriesID, "episodeId", episodeID)
		return nil
	}
	// The first element is the canonical record.
	return &resp.Data[0]
}
