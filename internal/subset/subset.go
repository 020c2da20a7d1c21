// Package subset ranks videos and trims them to a count and size budget.
package subset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	ytapi "google.golang.org/api/youtube/v3"

	"ytcatalog/internal/filter"
	"ytcatalog/internal/logging"
	"ytcatalog/internal/youtube"
)

const bytesPerGiB = 1024 * 1024 * 1024

// ErrUnknownStrategy indicates an unsupported ordering name.
var ErrUnknownStrategy = errors.New("subset: unknown strategy")

// Strategy names the ordering applied before the caps.
type Strategy string

const (
	// ByNone keeps input order.
	ByNone Strategy = ""
	// ByViews orders by view count, highest first.
	ByViews Strategy = "views"
	// ByRecent orders by publication timestamp, newest first.
	ByRecent Strategy = "recent"
	// ByViewsPerYear orders by views divided by the calendar years since publication plus one.
	ByViewsPerYear Strategy = "views-per-year"
)

// ParseStrategy validates s. The empty string and "none" mean ByNone.
func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(strings.ToLower(strings.TrimSpace(s))); st {
	case ByNone, ByViews, ByRecent, ByViewsPerYear:
		return st, nil
	case "none":
		return ByNone, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}

// LookupError reports a video missing from a statistics response.
type LookupError struct {
	VideoID string
}

// Error returns a string representation of the lookup failure.
func (e *LookupError) Error() string {
	return fmt.Sprintf("subset: no statistics returned for video %s", e.VideoID)
}

// SizeError reports a failed size estimate. Selection is aborted.
type SizeError struct {
	VideoID string
	Err     error
}

// Error returns a string representation of the size failure.
func (e *SizeError) Error() string {
	return fmt.Sprintf("subset: size estimate for video %s: %v", e.VideoID, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *SizeError) Unwrap() error { return e.Err }

// StatisticsFetcher returns statistics for at most youtube.MaxResults ids.
type StatisticsFetcher interface {
	VideoStatistics(ctx context.Context, ids []string) (*ytapi.VideoListResponse, error)
}

// SizeOracle estimates the download size of a video in bytes.
type SizeOracle interface {
	EstimateSize(ctx context.Context, videoID string) (int64, error)
}

// Options bounds a selection. Zero values disable the corresponding step.
type Options struct {
	By        Strategy
	MaxVideos int
	MaxGB     float64
}

// IsZero reports whether the options select everything in input order.
func (o Options) IsZero() bool {
	return o.By == ByNone && o.MaxVideos <= 0 && o.MaxGB <= 0
}

// Selector applies Options to a list of videos.
type Selector struct {
	stats  StatisticsFetcher
	sizes  SizeOracle
	logger *slog.Logger

	// Now is the clock used by ByViewsPerYear.
	Now func() time.Time
}

// NewSelector creates a Selector. sizes may be nil when MaxGB is never set.
func NewSelector(stats StatisticsFetcher, sizes SizeOracle, logger *slog.Logger) *Selector {
	return &Selector{
		stats:  stats,
		sizes:  sizes,
		logger: logging.NewComponentLogger(logger, "subset"),
		Now:    time.Now,
	}
}

// Select attaches statistics to every video, orders them, keeps the first
// MaxVideos and then the longest prefix whose estimated size fits in MaxGB.
// The input slice is not modified.
func (s *Selector) Select(ctx context.Context, videos []youtube.Video, opts Options) ([]youtube.Video, error) {
	if opts.IsZero() || len(videos) == 0 {
		return videos, nil
	}

	out := make([]youtube.Video, len(videos))
	copy(out, videos)

	if err := s.attachStatistics(ctx, out); err != nil {
		return nil, err
	}
	if err := s.order(out, opts.By); err != nil {
		return nil, err
	}

	if opts.MaxVideos > 0 && len(out) > opts.MaxVideos {
		out = out[:opts.MaxVideos]
	}

	if opts.MaxGB > 0 {
		var err error
		if out, err = s.capSize(ctx, out, opts.MaxGB); err != nil {
			return nil, err
		}
	}

	s.logger.Info("selected videos",
		slog.String("by", string(opts.By)),
		slog.Int("input", len(videos)),
		slog.Int("selected", len(out)),
	)
	return out, nil
}

func (s *Selector) attachStatistics(ctx context.Context, videos []youtube.Video) error {
	stats := make(map[string]*ytapi.VideoStatistics, len(videos))
	for start := 0; start < len(videos); start += youtube.MaxResults {
		end := min(start+youtube.MaxResults, len(videos))
		ids := make([]string, 0, end-start)
		for _, v := range videos[start:end] {
			ids = append(ids, v.ID)
		}

		resp, err := s.stats.VideoStatistics(ctx, ids)
		if err != nil {
			return err
		}
		for _, item := range resp.Items {
			if item.Statistics != nil {
				stats[item.Id] = item.Statistics
			}
		}
	}

	for i := range videos {
		st, ok := stats[videos[i].ID]
		if !ok {
			return &LookupError{VideoID: videos[i].ID}
		}
		videos[i].Statistics = &youtube.Statistics{ViewCount: st.ViewCount}
	}
	return nil
}

func (s *Selector) order(videos []youtube.Video, by Strategy) error {
	switch by {
	case ByNone:
	case ByViews:
		sort.SliceStable(videos, func(i, j int) bool {
			return videos[i].Statistics.ViewCount > videos[j].Statistics.ViewCount
		})
	case ByRecent:
		sort.SliceStable(videos, func(i, j int) bool {
			return videos[i].PublishedAt > videos[j].PublishedAt
		})
	case ByViewsPerYear:
		nowYear := s.Now().Year()
		for i := range videos {
			published, err := filter.ParsePublished(videos[i].PublishedAt)
			if err != nil {
				return fmt.Errorf("subset: video %s: %w", videos[i].ID, err)
			}
			years := nowYear - published.Year()
			videos[i].Statistics.ViewsPerYear = float64(videos[i].Statistics.ViewCount) / float64(years+1)
		}
		sort.SliceStable(videos, func(i, j int) bool {
			return videos[i].Statistics.ViewsPerYear > videos[j].Statistics.ViewsPerYear
		})
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStrategy, by)
	}
	return nil
}

// capSize keeps videos while the running total stays within maxGB and stops
// at the first one that would exceed it.
func (s *Selector) capSize(ctx context.Context, videos []youtube.Video, maxGB float64) ([]youtube.Video, error) {
	if s.sizes == nil {
		return nil, errors.New("subset: size cap requires a size oracle")
	}

	var totalGB float64
	var totalBytes int64
	for i, v := range videos {
		size, err := s.sizes.EstimateSize(ctx, v.ID)
		if err != nil {
			return nil, &SizeError{VideoID: v.ID, Err: err}
		}
		gb := float64(size) / bytesPerGiB
		if totalGB+gb > maxGB {
			s.logger.Debug("size cap reached",
				slog.String(logging.FieldVideoID, v.ID),
				slog.String("total", humanize.IBytes(uint64(totalBytes))),
				slog.String("next", humanize.IBytes(uint64(size))),
			)
			return videos[:i], nil
		}
		totalGB += gb
		totalBytes += size
	}
	return videos, nil
}
