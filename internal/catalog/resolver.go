package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"ytcatalog/internal/youtube"
)

// ErrUnsupportedCollection indicates a collection type other than user,
// channel or playlist.
var ErrUnsupportedCollection = errors.New("catalog: unsupported collection type")

// CollectionType names what a request identifier refers to.
type CollectionType string

const (
	// CollectionUser is a legacy YouTube username.
	CollectionUser CollectionType = "user"
	// CollectionChannel is a channel id.
	CollectionChannel CollectionType = "channel"
	// CollectionPlaylist is one or more comma-separated playlist ids.
	CollectionPlaylist CollectionType = "playlist"
)

// ParseCollectionType validates s.
func ParseCollectionType(s string) (CollectionType, error) {
	ct := CollectionType(strings.ToLower(strings.TrimSpace(s)))
	switch ct {
	case CollectionUser, CollectionChannel, CollectionPlaylist:
		return ct, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedCollection, s)
	}
}

// Resolution is the set of playlists a request covers.
type Resolution struct {
	// Playlists are unique by id, in first-seen order.
	Playlists []youtube.Playlist
	// MainChannelID is the channel the request is about.
	MainChannelID string
	// UploadsPlaylistID is empty for playlist requests.
	UploadsPlaylistID string
}

// Resolver turns a request into a Resolution.
type Resolver struct {
	acq *Acquirer
}

// NewResolver creates a Resolver backed by acq.
func NewResolver(acq *Acquirer) *Resolver {
	return &Resolver{acq: acq}
}

// Resolve expands id according to ct.
//
// Users and channels cover every playlist of the channel followed by its
// uploads playlist. A playlist request covers the listed playlists and is
// attributed to the creator of the first one.
func (r *Resolver) Resolve(ctx context.Context, ct CollectionType, id string) (*Resolution, error) {
	var (
		ids []string
		res Resolution
	)

	switch ct {
	case CollectionUser, CollectionChannel:
		channel, err := r.acq.Channel(ctx, id, ct == CollectionUser)
		if err != nil {
			return nil, err
		}
		res.MainChannelID = channel.Id

		playlists, err := r.acq.ChannelPlaylists(ctx, res.MainChannelID)
		if err != nil {
			return nil, err
		}
		for _, p := range playlists {
			ids = append(ids, p.Id)
		}

		res.UploadsPlaylistID = youtube.ChannelFromAPI(channel).UploadsPlaylistID
		if res.UploadsPlaylistID != "" {
			ids = append(ids, res.UploadsPlaylistID)
		}

	case CollectionPlaylist:
		ids = splitIDs(id)
		if len(ids) == 0 {
			return nil, fmt.Errorf("catalog: no playlist id in %q", id)
		}
		first, err := r.acq.Playlist(ctx, ids[0])
		if err != nil {
			return nil, err
		}
		res.MainChannelID = youtube.PlaylistFromAPI(first).CreatorID

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCollection, ct)
	}

	for _, playlistID := range dedupe(ids) {
		p, err := r.acq.Playlist(ctx, playlistID)
		if err != nil {
			return nil, err
		}
		res.Playlists = append(res.Playlists, youtube.PlaylistFromAPI(p))
	}

	r.acq.logger.Info("resolved collection",
		slog.String("type", string(ct)),
		slog.String("id", id),
		slog.Int("playlists", len(res.Playlists)),
		slog.String("main_channel", res.MainChannelID),
	)
	return &res, nil
}

func splitIDs(s string) []string {
	var ids []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			ids = append(ids, part)
		}
	}
	return ids
}

// dedupe drops repeated ids, keeping the first occurrence.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
