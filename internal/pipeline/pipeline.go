// Package pipeline runs a catalog request end to end: resolve the
// collection, walk its playlists, filter, select, override titles and save
// channel branding.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"ytcatalog/internal/branding"
	"ytcatalog/internal/catalog"
	"ytcatalog/internal/filter"
	"ytcatalog/internal/logging"
	"ytcatalog/internal/subset"
	"ytcatalog/internal/titles"
	"ytcatalog/internal/youtube"
)

// Request describes one catalog run.
type Request struct {
	Type catalog.CollectionType
	ID   string

	Dates  filter.DateRange
	Subset subset.Options

	// TitlesFiles is empty or holds the id file and the title file.
	TitlesFiles []string

	// SkipBranding disables owner lookup and profile pictures.
	SkipBranding bool
}

// Result is the outcome of Run.
type Result struct {
	RunID         string             `json:"run_id"`
	MainChannelID string             `json:"main_channel_id"`
	Playlists     []youtube.Playlist `json:"playlists"`
	Videos        []youtube.Video    `json:"videos"`

	// Discovered counts unique videos before filtering.
	Discovered int `json:"discovered"`
	// Overridden counts videos whose title was replaced.
	Overridden int `json:"overridden"`

	Owners   map[string]youtube.VideoOwner `json:"owners,omitempty"`
	Profiles map[string]string             `json:"profiles,omitempty"`
}

// Pipeline wires the stages together. Stages run sequentially.
type Pipeline struct {
	acq      *catalog.Acquirer
	resolver *catalog.Resolver
	selector *subset.Selector
	saver    *branding.Saver
	logger   *slog.Logger

	newRunID func() string
}

// New creates a Pipeline. saver may be nil to disable branding.
func New(acq *catalog.Acquirer, selector *subset.Selector, saver *branding.Saver, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		acq:      acq,
		resolver: catalog.NewResolver(acq),
		selector: selector,
		saver:    saver,
		logger:   logging.NewComponentLogger(logger, "pipeline"),
		newRunID: uuid.NewString,
	}
}

// Run executes req.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	res := &Result{RunID: p.newRunID()}
	logger := p.logger.With(slog.String(logging.FieldRunID, res.RunID))

	var overrides []titles.Override
	if len(req.TitlesFiles) > 0 {
		var err error
		if overrides, err = titles.Load(req.TitlesFiles, logger); err != nil {
			return nil, err
		}
	}

	resolution, err := p.resolver.Resolve(ctx, req.Type, req.ID)
	if err != nil {
		return nil, fmt.Errorf("resolve %s %q: %w", req.Type, req.ID, err)
	}
	res.MainChannelID = resolution.MainChannelID
	res.Playlists = resolution.Playlists

	videos, err := p.collect(ctx, resolution.Playlists)
	if err != nil {
		return nil, err
	}
	res.Discovered = len(videos)

	preds := []filter.Predicate{filter.Available}
	if !req.Dates.IsZero() {
		preds = append(preds, req.Dates.InRange)
	}
	videos = filter.Apply(videos, preds...)
	logger.Info("filtered videos",
		slog.Int("discovered", res.Discovered),
		slog.Int("kept", len(videos)),
		slog.String("dates", req.Dates.String()),
	)

	if videos, err = p.selector.Select(ctx, videos, req.Subset); err != nil {
		return nil, err
	}

	if len(overrides) > 0 {
		res.Overridden = titles.Apply(videos, overrides, logger)
	}
	res.Videos = videos

	if req.SkipBranding || p.saver == nil {
		return res, nil
	}

	if err := p.brand(ctx, res, logger); err != nil {
		return nil, err
	}
	return res, nil
}

// collect walks every playlist and keeps the first occurrence of each video.
func (p *Pipeline) collect(ctx context.Context, playlists []youtube.Playlist) ([]youtube.Video, error) {
	seen := make(map[string]struct{})
	var out []youtube.Video
	for _, pl := range playlists {
		videos, err := p.acq.Videos(ctx, pl.ID)
		if err != nil {
			return nil, fmt.Errorf("playlist %s: %w", pl.ID, err)
		}
		for _, v := range videos {
			if _, dup := seen[v.ID]; dup {
				continue
			}
			seen[v.ID] = struct{}{}
			out = append(out, v)
		}
	}
	return out, nil
}

// brand looks up the owner of every selected video and saves the profile
// picture of each distinct owner and of the main channel.
func (p *Pipeline) brand(ctx context.Context, res *Result, logger *slog.Logger) error {
	ids := make([]string, 0, len(res.Videos))
	for _, v := range res.Videos {
		ids = append(ids, v.ID)
	}

	owners, err := p.acq.VideoOwners(ctx, ids)
	if err != nil {
		return err
	}
	res.Owners = owners

	var channelIDs []string
	seen := make(map[string]struct{})
	add := func(id string) {
		if id == "" {
			return
		}
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		channelIDs = append(channelIDs, id)
	}
	add(res.MainChannelID)
	for _, id := range ids {
		add(owners[id].ChannelID)
	}

	res.Profiles = make(map[string]string, len(channelIDs))
	for _, channelID := range channelIDs {
		raw, err := p.acq.Channel(ctx, channelID, false)
		if err != nil {
			return err
		}
		path, skipped, err := p.saver.Save(ctx, youtube.ChannelFromAPI(raw))
		if errors.Is(err, branding.ErrNoThumbnail) {
			logger.Warn("channel has no thumbnail", slog.String(logging.FieldChannelID, channelID))
			continue
		}
		if err != nil {
			return err
		}
		if !skipped {
			logger.Debug("profile written", slog.String(logging.FieldChannelID, channelID))
		}
		res.Profiles[channelID] = path
	}
	return nil
}
