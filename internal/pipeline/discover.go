package pipeline

import (
	"context"
	"encoding/json"
	"log/slog"

	"bazarrctl/internal/bazarr"
)

// Discoverer enumerates subtitle gaps from Bazarr's wanted collection.
type Discoverer struct {
	client *bazarr.Client
	log    *slog.Logger
}

func NewDiscoverer(client *bazarr.Client, log *slog.Logger) *Discoverer {
	if log == nil {
		log = slog.Default()
	}
	return &Discoverer{client: client, log: log}
}

type wantedResponse struct {
	Data []wantedEpisode `json:"data"`
}

type wantedEpisode struct {
	SeriesID         int               `json:"sonarrSeriesId"`
	EpisodeID        int               `json:"sonarrEpisodeId"`
	MissingSubtitles []missingSubtitle `json:"missing_subtitles"`
}

type missingSubtitle struct {
	Name string `json:"name"`
}

// DiscoverGaps fetches the full wanted collection in one call and
// flattens it into one SubtitleGap per (episode, missing language) pair,
// preserving the source order. seriesID and episodeID are exact-match
// filters; 0 matches everything. A missing or misshapen response is
// logged as a warning and yields an empty slice — "nothing to do", not
// an error.
func (d *Discoverer) DiscoverGaps(ctx context.Context, seriesID, episodeID int) []SubtitleGap {
	raw, err := d.client.FetchJSON(ctx, "/api/episodes/wanted", nil)
	if err != nil {
		d.log.Warn("wanted subtitles unavailable, nothing to do", "cause", err)
		return nil
	}

	var resp wantedResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		d.log.Warn("unexpected wanted response shape", "cause", err)
		return nil
	}
	if resp.Data == nil {
		d.log.Warn("wanted response has no data field")
		return nil
	}

	var gaps []SubtitleGap
	for _, ep := range resp.Data {
		if len(ep.MissingSubtitles) == 0 {
			continue
		}
		if seriesID != 0 && ep.SeriesID != seriesID {
			continue
		}
		if episodeID != 0 && ep.EpisodeID != episodeID {
			continue
		}
		for _, missing := range ep.MissingSubtitles {
			gaps = append(gaps, SubtitleGap{
				SeriesID:        ep.SeriesID,
				EpisodeID:       ep.EpisodeID,
				MissingLanguage: missing.Name,
			})
			d.log.Debug("discovered subtitle gap",
				"seriesId", ep.SeriesID, "episodeId", ep.EpisodeID, "missing", missing.Name)
		}
	}
	return gaps
}
