package youtube

import (
	"encoding/json"
	"strings"

	ytapi "google.golang.org/api/youtube/v3"
)

// Privacy status values reported by playlistItems.list.
const (
	PrivacyPublic   = "public"
	PrivacyUnlisted = "unlisted"
	PrivacyPrivate  = "private"
)

// Playlist is a named, ordered collection owned by a channel.
type Playlist struct {
	ID          string
	Title       string
	Description string
	CreatorID   string
	CreatorName string
	Slug        string
}

// NewPlaylist builds a Playlist and derives its slug from title.
func NewPlaylist(id, title, description, creatorID, creatorName string) Playlist {
	return Playlist{
		ID:          id,
		Title:       title,
		Description: description,
		CreatorID:   creatorID,
		CreatorName: creatorName,
		Slug:        Slugify(title),
	}
}

// PlaylistFromAPI converts a playlists.list resource fetched with the snippet part.
func PlaylistFromAPI(p *ytapi.Playlist) Playlist {
	if p.Snippet == nil {
		return NewPlaylist(p.Id, "", "", "", "")
	}
	return NewPlaylist(p.Id, p.Snippet.Title, p.Snippet.Description, p.Snippet.ChannelId, p.Snippet.ChannelTitle)
}

type playlistJSON struct {
	PlaylistID  string `json:"playlist_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CreatorID   string `json:"creator_id"`
	CreatorName string `json:"creator_name"`
	Slug        string `json:"slug"`
}

// MarshalJSON serializes the playlist with "-" in place of "_" in the slug.
func (p Playlist) MarshalJSON() ([]byte, error) {
	return json.Marshal(playlistJSON{
		PlaylistID:  p.ID,
		Title:       p.Title,
		Description: p.Description,
		CreatorID:   p.CreatorID,
		CreatorName: p.CreatorName,
		Slug:        strings.ReplaceAll(p.Slug, "_", "-"),
	})
}

// Statistics holds the per-video figures used for ranking.
type Statistics struct {
	ViewCount uint64 `json:"view_count"`
	// ViewsPerYear is only populated by the views-per-year ordering.
	ViewsPerYear float64 `json:"views_per_year,omitempty"`
}

// Video is one playlist entry.
type Video struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	PublishedAt   string      `json:"published_at"`
	ChannelID     string      `json:"channel_id"`
	ChannelTitle  string      `json:"channel_title"`
	PrivacyStatus string      `json:"privacy_status"`
	Thumbnail     string      `json:"thumbnail,omitempty"`
	Statistics    *Statistics `json:"statistics,omitempty"`
}

// VideoFromPlaylistItem converts a playlistItems.list resource fetched with
// the snippet, contentDetails and status parts. The video id comes from
// contentDetails, not from the item id.
func VideoFromPlaylistItem(item *ytapi.PlaylistItem) Video {
	var v Video
	if item.ContentDetails != nil {
		v.ID = item.ContentDetails.VideoId
	}
	if s := item.Snippet; s != nil {
		v.Title = s.Title
		v.Description = s.Description
		v.PublishedAt = s.PublishedAt
		v.ChannelID = s.ChannelId
		v.ChannelTitle = s.ChannelTitle
		v.Thumbnail = thumbnailURL(s.Thumbnails)
	}
	if item.Status != nil {
		v.PrivacyStatus = item.Status.PrivacyStatus
	}
	return v
}

// Channel is the subset of a channel resource ytcatalog uses.
type Channel struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	CustomURL         string `json:"custom_url,omitempty"`
	Thumbnail         string `json:"thumbnail,omitempty"`
	BannerURL         string `json:"banner_url,omitempty"`
	UploadsPlaylistID string `json:"uploads_playlist_id"`
}

// ChannelFromAPI converts a channels.list resource.
func ChannelFromAPI(c *ytapi.Channel) Channel {
	ch := Channel{ID: c.Id}
	if s := c.Snippet; s != nil {
		ch.Title = s.Title
		ch.Description = s.Description
		ch.CustomURL = s.CustomUrl
		ch.Thumbnail = thumbnailURL(s.Thumbnails)
	}
	if c.ContentDetails != nil && c.ContentDetails.RelatedPlaylists != nil {
		ch.UploadsPlaylistID = c.ContentDetails.RelatedPlaylists.Uploads
	}
	if c.BrandingSettings != nil && c.BrandingSettings.Image != nil {
		ch.BannerURL = c.BrandingSettings.Image.BannerExternalUrl
	}
	return ch
}

// VideoOwner identifies the channel that published a video.
type VideoOwner struct {
	ChannelID    string `json:"channelId"`
	ChannelTitle string `json:"channelTitle"`
}

// thumbnailURL prefers the medium rendition and falls back to default.
func thumbnailURL(t *ytapi.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	if t.Medium != nil && t.Medium.Url != "" {
		return t.Medium.Url
	}
	if t.Default != nil {
		return t.Default.Url
	}
	return ""
}
