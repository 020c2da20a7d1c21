// Package catalog acquires channel, playlist and video metadata through a
// cache and resolves a user request into the playlists it covers.
package catalog

import (
	"context"
	"fmt"
	"log/slog"

	ytapi "google.golang.org/api/youtube/v3"

	"ytcatalog/internal/cache"
	"ytcatalog/internal/logging"
	"ytcatalog/internal/youtube"
)

// Acquirer fetches remote metadata, serving every request it can from the
// cache. A cached document is returned as-is without contacting the API.
type Acquirer struct {
	api    youtube.API
	store  cache.Store
	logger *slog.Logger
}

// NewAcquirer creates an Acquirer.
func NewAcquirer(api youtube.API, store cache.Store, logger *slog.Logger) *Acquirer {
	return &Acquirer{
		api:    api,
		store:  store,
		logger: logging.NewComponentLogger(logger, "catalog"),
	}
}

// load reports whether name was found in the cache.
func (a *Acquirer) load(name string, v any) (bool, error) {
	found, err := a.store.Load(name, v)
	if err != nil {
		return false, err
	}
	if found {
		a.logger.Debug("cache hit", slog.String(logging.FieldCacheKey, name))
	}
	return found, nil
}

// Channel returns the channel record for id, or for the legacy username id
// when byUsername is set.
func (a *Acquirer) Channel(ctx context.Context, id string, byUsername bool) (*ytapi.Channel, error) {
	key := cache.ChannelKey(id)

	var channel ytapi.Channel
	found, err := a.load(key, &channel)
	if err != nil {
		return nil, err
	}
	if found {
		return &channel, nil
	}

	a.logger.Debug("query api for channel",
		slog.String(logging.FieldChannelID, id),
		slog.Bool("by_username", byUsername),
	)
	resp, err := a.api.Channel(ctx, id, byUsername)
	if err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		notFound := &youtube.NotFoundError{Kind: "channel", ID: id, ByUsername: byUsername}
		a.logger.Error("channel not found", logging.Error(notFound))
		return nil, notFound
	}

	if err := a.store.Save(key, resp.Items[0]); err != nil {
		return nil, err
	}
	return resp.Items[0], nil
}

// ChannelPlaylists returns the id-only playlist records of a channel. The
// cache is rewritten after every page so an interrupted walk keeps the pages
// it already fetched.
func (a *Acquirer) ChannelPlaylists(ctx context.Context, channelID string) ([]*ytapi.Playlist, error) {
	key := cache.ChannelPlaylistsKey(channelID)

	var items []*ytapi.Playlist
	found, err := a.load(key, &items)
	if err != nil {
		return nil, err
	}
	if found {
		return items, nil
	}

	a.logger.Debug("query api for channel playlists", slog.String(logging.FieldChannelID, channelID))

	items = []*ytapi.Playlist{}
	pageToken := ""
	for {
		resp, err := a.api.ChannelPlaylists(ctx, channelID, pageToken)
		if err != nil {
			return nil, err
		}
		items = append(items, resp.Items...)
		if err := a.store.Save(key, items); err != nil {
			return nil, err
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}
	return items, nil
}

// Playlist returns the snippet record of a playlist.
func (a *Acquirer) Playlist(ctx context.Context, playlistID string) (*ytapi.Playlist, error) {
	key := cache.PlaylistKey(playlistID)

	var playlist ytapi.Playlist
	found, err := a.load(key, &playlist)
	if err != nil {
		return nil, err
	}
	if found {
		return &playlist, nil
	}

	a.logger.Debug("query api for playlist", slog.String(logging.FieldPlaylist, playlistID))
	resp, err := a.api.Playlist(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		notFound := &youtube.NotFoundError{Kind: "playlist", ID: playlistID}
		a.logger.Error("playlist not found", logging.Error(notFound))
		return nil, notFound
	}

	if err := a.store.Save(key, resp.Items[0]); err != nil {
		return nil, err
	}
	return resp.Items[0], nil
}

// PlaylistVideos returns every item of a playlist in API order. The cache is
// written once, after the last page.
func (a *Acquirer) PlaylistVideos(ctx context.Context, playlistID string) ([]*ytapi.PlaylistItem, error) {
	key := cache.PlaylistVideosKey(playlistID)

	var items []*ytapi.PlaylistItem
	found, err := a.load(key, &items)
	if err != nil {
		return nil, err
	}
	if found {
		return items, nil
	}

	a.logger.Debug("query api for playlist items", slog.String(logging.FieldPlaylist, playlistID))

	items = []*ytapi.PlaylistItem{}
	pageToken := ""
	for {
		resp, err := a.api.PlaylistItems(ctx, playlistID, pageToken)
		if err != nil {
			return nil, err
		}
		items = append(items, resp.Items...)

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	if err := a.store.Save(key, items); err != nil {
		return nil, err
	}
	return items, nil
}

// Videos returns the typed records of a playlist's items.
func (a *Acquirer) Videos(ctx context.Context, playlistID string) ([]youtube.Video, error) {
	items, err := a.PlaylistVideos(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	videos := make([]youtube.Video, 0, len(items))
	for _, item := range items {
		videos = append(videos, youtube.VideoFromPlaylistItem(item))
	}
	return videos, nil
}

// VideoOwners maps each video id to the channel that published it. Ids are
// queried in chunks of youtube.MaxResults, each chunk paginated, and the
// merged map is cached under a single key.
//
// The cached map is returned whole on later calls regardless of ids.
func (a *Acquirer) VideoOwners(ctx context.Context, ids []string) (map[string]youtube.VideoOwner, error) {
	owners := make(map[string]youtube.VideoOwner)
	found, err := a.load(cache.VideoOwnersKey, &owners)
	if err != nil {
		return nil, err
	}
	if found {
		return owners, nil
	}

	a.logger.Debug("query api for video owners", slog.Int("videos", len(ids)))

	for start := 0; start < len(ids); start += youtube.MaxResults {
		end := min(start+youtube.MaxResults, len(ids))
		if err := a.videoOwnersChunk(ctx, ids[start:end], owners); err != nil {
			return nil, err
		}
	}

	if err := a.store.Save(cache.VideoOwnersKey, owners); err != nil {
		return nil, err
	}
	return owners, nil
}

func (a *Acquirer) videoOwnersChunk(ctx context.Context, ids []string, owners map[string]youtube.VideoOwner) error {
	pageToken := ""
	for {
		resp, err := a.api.VideoSnippets(ctx, ids, pageToken)
		if err != nil {
			return fmt.Errorf("video owners: %w", err)
		}
		for _, item := range resp.Items {
			if item.Snippet == nil {
				continue
			}
			owners[item.Id] = youtube.VideoOwner{
				ChannelID:    item.Snippet.ChannelId,
				ChannelTitle: item.Snippet.ChannelTitle,
			}
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			return nil
		}
	}
}
