package youtube

import (
	"encoding/json"
	"errors"
	"testing"

	ytapi "google.golang.org/api/youtube/v3"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello_world"},
		{"  Leading & trailing!! ", "leading_trailing"},
		{"Café Crème", "cafe_creme"},
		{"C++ / Go: 2024", "c_go_2024"},
		{"under_score-dash", "under_score_dash"},
		{"???", ""},
	}

	for _, tt := range tests {
		if got := Slugify(tt.title); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestPlaylistMarshalJSON(t *testing.T) {
	p := NewPlaylist("PL1", "My Great List", "desc", "UC1", "Creator")
	if p.Slug != "my_great_list" {
		t.Fatalf("Slug = %q, want my_great_list", p.Slug)
	}

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var got map[string]string
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	want := map[string]string{
		"playlist_id":  "PL1",
		"title":        "My Great List",
		"description":  "desc",
		"creator_id":   "UC1",
		"creator_name": "Creator",
		"slug":         "my-great-list",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %q, want %q", k, got[k], v)
		}
	}
}

func TestPlaylistFromAPI(t *testing.T) {
	p := PlaylistFromAPI(&ytapi.Playlist{
		Id: "PL2",
		Snippet: &ytapi.PlaylistSnippet{
			Title:        "Talks",
			Description:  "all talks",
			ChannelId:    "UC2",
			ChannelTitle: "Conf",
		},
	})
	if p.ID != "PL2" || p.CreatorID != "UC2" || p.CreatorName != "Conf" || p.Slug != "talks" {
		t.Errorf("PlaylistFromAPI() = %+v", p)
	}
}

func TestVideoFromPlaylistItem(t *testing.T) {
	item := &ytapi.PlaylistItem{
		Id:             "item-id-not-video-id",
		ContentDetails: &ytapi.PlaylistItemContentDetails{VideoId: "vid1"},
		Snippet: &ytapi.PlaylistItemSnippet{
			Title:        "First",
			Description:  "d",
			PublishedAt:  "2020-05-01T10:00:00Z",
			ChannelId:    "UC1",
			ChannelTitle: "Chan",
			Thumbnails: &ytapi.ThumbnailDetails{
				Default: &ytapi.Thumbnail{Url: "https://i.ytimg.com/default.jpg"},
			},
		},
		Status: &ytapi.PlaylistItemStatus{PrivacyStatus: PrivacyPublic},
	}

	v := VideoFromPlaylistItem(item)
	if v.ID != "vid1" {
		t.Errorf("ID = %q, want vid1 from contentDetails", v.ID)
	}
	if v.PublishedAt != "2020-05-01T10:00:00Z" || v.PrivacyStatus != PrivacyPublic {
		t.Errorf("VideoFromPlaylistItem() = %+v", v)
	}
	if v.Thumbnail != "https://i.ytimg.com/default.jpg" {
		t.Errorf("Thumbnail = %q, want default fallback", v.Thumbnail)
	}
}

func TestChannelFromAPI(t *testing.T) {
	c := ChannelFromAPI(&ytapi.Channel{
		Id: "UC1",
		Snippet: &ytapi.ChannelSnippet{
			Title: "Chan",
			Thumbnails: &ytapi.ThumbnailDetails{
				Default: &ytapi.Thumbnail{Url: "d.jpg"},
				Medium:  &ytapi.Thumbnail{Url: "m.jpg"},
			},
		},
		ContentDetails: &ytapi.ChannelContentDetails{
			RelatedPlaylists: &ytapi.ChannelContentDetailsRelatedPlaylists{Uploads: "UU1"},
		},
	})
	if c.UploadsPlaylistID != "UU1" {
		t.Errorf("UploadsPlaylistID = %q, want UU1", c.UploadsPlaylistID)
	}
	if c.Thumbnail != "m.jpg" {
		t.Errorf("Thumbnail = %q, want medium rendition", c.Thumbnail)
	}
}

func TestNotFoundError(t *testing.T) {
	tests := []struct {
		err  *NotFoundError
		want string
	}{
		{&NotFoundError{Kind: "channel", ID: "UC1"}, `youtube: invalid channelId "UC1": no channel found`},
		{&NotFoundError{Kind: "channel", ID: "bob", ByUsername: true}, `youtube: invalid username "bob": no channel found`},
		{&NotFoundError{Kind: "playlist", ID: "PL1"}, `youtube: invalid playlistId "PL1": no playlist found`},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
		if !errors.Is(tt.err, ErrNotFound) {
			t.Errorf("%v should match ErrNotFound", tt.err)
		}
	}
}
