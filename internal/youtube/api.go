package youtube

import (
	"context"

	ytapi "google.golang.org/api/youtube/v3"
)

// MaxResults is the page size used for every paginated call, and the
// maximum number of ids accepted by a single videos.list request.
const MaxResults = 50

// API is the remote metadata surface. Every method performs exactly one
// request; callers drive pagination with the returned NextPageToken.
type API interface {
	// Channel fetches the channel by id, or by legacy username when byUsername is set.
	Channel(ctx context.Context, id string, byUsername bool) (*ytapi.ChannelListResponse, error)
	// ChannelPlaylists fetches one page of the channel's playlist ids.
	ChannelPlaylists(ctx context.Context, channelID, pageToken string) (*ytapi.PlaylistListResponse, error)
	// Playlist fetches the snippet of a single playlist.
	Playlist(ctx context.Context, playlistID string) (*ytapi.PlaylistListResponse, error)
	// PlaylistItems fetches one page of a playlist's items.
	PlaylistItems(ctx context.Context, playlistID, pageToken string) (*ytapi.PlaylistItemListResponse, error)
	// VideoStatistics fetches statistics for at most MaxResults ids.
	VideoStatistics(ctx context.Context, ids []string) (*ytapi.VideoListResponse, error)
	// VideoSnippets fetches one page of snippets for at most MaxResults ids.
	VideoSnippets(ctx context.Context, ids []string, pageToken string) (*ytapi.VideoListResponse, error)
	// CredentialsOK runs a minimal search to validate the API key.
	CredentialsOK(ctx context.Context) (bool, error)
}
