package cache

// Document names follow {kind}_{id}[_{suffix}] so that a directory of cached
// responses is readable at a glance.

// ChannelKey names the cached channel record.
func ChannelKey(channelID string) string { return "channel_" + channelID }

// ChannelPlaylistsKey names the cached list of a channel's playlists.
func ChannelPlaylistsKey(channelID string) string { return "channel_" + channelID + "_playlists" }

// PlaylistKey names the cached playlist record.
func PlaylistKey(playlistID string) string { return "playlist_" + playlistID }

// PlaylistVideosKey names the cached list of a playlist's items.
func PlaylistVideosKey(playlistID string) string { return "playlist_" + playlistID + "_videos" }

// VideoOwnersKey names the cached video id to owning channel map.
const VideoOwnersKey = "videos_channels"
