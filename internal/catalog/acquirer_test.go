package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"

	ytapi "google.golang.org/api/youtube/v3"

	"ytcatalog/internal/cache"
	"ytcatalog/internal/logging"
	"ytcatalog/internal/youtube"
)

func newAcquirer(api *MockAPI) (*Acquirer, *MockStore) {
	store := NewMockStore()
	return NewAcquirer(api, store, logging.NewNop()), store
}

func TestChannelCacheIdempotence(t *testing.T) {
	api := &MockAPI{Channels: map[string]*ytapi.Channel{"UC1": channelFixture("UC1", "UU1")}}
	acq, store := newAcquirer(api)
	ctx := context.Background()

	first, err := acq.Channel(ctx, "UC1", false)
	if err != nil {
		t.Fatalf("Channel() error = %v", err)
	}
	if api.Calls != 1 {
		t.Fatalf("first call made %d API calls, want 1", api.Calls)
	}

	second, err := acq.Channel(ctx, "UC1", false)
	if err != nil {
		t.Fatalf("Channel() error = %v", err)
	}
	if api.Calls != 1 {
		t.Errorf("second call made %d extra API calls, want 0", api.Calls-1)
	}
	if first.Id != second.Id || second.ContentDetails.RelatedPlaylists.Uploads != "UU1" {
		t.Errorf("cached channel = %+v, want same as fetched", second)
	}
	if _, ok := store.Docs["channel_UC1"]; !ok {
		t.Error("channel_UC1 was not cached")
	}
}

func TestChannelNotFound(t *testing.T) {
	tests := []struct {
		name       string
		byUsername bool
	}{
		{"channel id", false},
		{"username", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acq, store := newAcquirer(&MockAPI{})

			_, err := acq.Channel(context.Background(), "missing", tt.byUsername)
			var notFound *youtube.NotFoundError
			if !errors.As(err, &notFound) {
				t.Fatalf("Channel() error = %v, want *youtube.NotFoundError", err)
			}
			if notFound.ID != "missing" || notFound.ByUsername != tt.byUsername {
				t.Errorf("NotFoundError = %+v", notFound)
			}
			if len(store.Saves) != 0 {
				t.Errorf("nothing should be cached on failure, saved %v", store.Saves)
			}
		})
	}
}

func TestChannelPlaylistsPagination(t *testing.T) {
	api := &MockAPI{ChannelPages: map[string][][]string{
		"UC1": {{"PL1", "PL2"}, {"PL3"}, {"PL4", "PL5"}},
	}}
	acq, store := newAcquirer(api)

	got, err := acq.ChannelPlaylists(context.Background(), "UC1")
	if err != nil {
		t.Fatalf("ChannelPlaylists() error = %v", err)
	}

	var ids []string
	for _, p := range got {
		ids = append(ids, p.Id)
	}
	if fmt.Sprint(ids) != "[PL1 PL2 PL3 PL4 PL5]" {
		t.Errorf("ids = %v, want pages concatenated in order", ids)
	}
	if api.CallsByOp["channelPlaylists"] != 3 {
		t.Errorf("made %d page requests, want 3", api.CallsByOp["channelPlaylists"])
	}
	// Rewritten after every page.
	if len(store.Saves) != 3 {
		t.Errorf("cache saved %d times, want 3", len(store.Saves))
	}

	api.Calls = 0
	if _, err := acq.ChannelPlaylists(context.Background(), "UC1"); err != nil {
		t.Fatalf("ChannelPlaylists() error = %v", err)
	}
	if api.Calls != 0 {
		t.Errorf("cached call made %d API calls, want 0", api.Calls)
	}
}

func TestChannelPlaylistsKeepsPartialProgress(t *testing.T) {
	api := &failingAfterAPI{MockAPI: &MockAPI{ChannelPages: map[string][][]string{
		"UC1": {{"PL1"}, {"PL2"}},
	}}, failAfter: 1}
	store := NewMockStore()
	acq := NewAcquirer(api, store, logging.NewNop())

	if _, err := acq.ChannelPlaylists(context.Background(), "UC1"); err == nil {
		t.Fatal("ChannelPlaylists() should fail on the second page")
	}

	var partial []*ytapi.Playlist
	found, err := store.Load(cache.ChannelPlaylistsKey("UC1"), &partial)
	if err != nil || !found || len(partial) != 1 || partial[0].Id != "PL1" {
		t.Errorf("partial cache = (%v, %v, %d items), want first page", found, err, len(partial))
	}
}

type failingAfterAPI struct {
	*MockAPI
	failAfter int
}

func (f *failingAfterAPI) ChannelPlaylists(ctx context.Context, channelID, pageToken string) (*ytapi.PlaylistListResponse, error) {
	if f.failAfter == 0 {
		return nil, &youtube.APIError{Op: "playlists.list", StatusCode: 500, Err: errors.New("backend error")}
	}
	f.failAfter--
	return f.MockAPI.ChannelPlaylists(ctx, channelID, pageToken)
}

func TestPlaylistVideosPagination(t *testing.T) {
	api := &MockAPI{ItemPages: map[string][][]string{
		"PL1": {{"v1", "v2"}, {"v3"}},
	}}
	acq, store := newAcquirer(api)

	videos, err := acq.Videos(context.Background(), "PL1")
	if err != nil {
		t.Fatalf("Videos() error = %v", err)
	}

	var ids []string
	for _, v := range videos {
		ids = append(ids, v.ID)
	}
	if fmt.Sprint(ids) != "[v1 v2 v3]" {
		t.Errorf("ids = %v, want [v1 v2 v3]", ids)
	}
	if videos[2].Title != "title v3" || videos[2].PrivacyStatus != "public" {
		t.Errorf("video = %+v", videos[2])
	}
	// Written once at the end.
	if len(store.Saves) != 1 || store.Saves[0] != "playlist_PL1_videos" {
		t.Errorf("saves = %v, want a single playlist_PL1_videos", store.Saves)
	}

	api.Calls = 0
	if _, err := acq.PlaylistVideos(context.Background(), "PL1"); err != nil {
		t.Fatalf("PlaylistVideos() error = %v", err)
	}
	if api.Calls != 0 {
		t.Errorf("cached call made %d API calls, want 0", api.Calls)
	}
}

func TestPlaylistVideosErrorPropagates(t *testing.T) {
	apiErr := &youtube.APIError{Op: "playlistItems.list", StatusCode: 403}
	acq, store := newAcquirer(&MockAPI{Err: apiErr})

	_, err := acq.PlaylistVideos(context.Background(), "PL1")
	if !errors.Is(err, apiErr) {
		t.Fatalf("PlaylistVideos() error = %v, want the API error", err)
	}
	if len(store.Saves) != 0 {
		t.Errorf("saves = %v, want none", store.Saves)
	}
}

func TestPlaylistNotFound(t *testing.T) {
	acq, _ := newAcquirer(&MockAPI{})
	_, err := acq.Playlist(context.Background(), "PLx")
	if !errors.Is(err, youtube.ErrNotFound) {
		t.Fatalf("Playlist() error = %v, want ErrNotFound", err)
	}
}

func TestVideoOwnersChunking(t *testing.T) {
	ids := make([]string, 120)
	owners := make(map[string]string)
	for i := range ids {
		ids[i] = fmt.Sprintf("v%03d", i)
		owners[ids[i]] = fmt.Sprintf("uc%d", i%3)
	}
	api := &MockAPI{Owners: owners, OwnerPageSize: 20}
	acq, store := newAcquirer(api)

	got, err := acq.VideoOwners(context.Background(), ids)
	if err != nil {
		t.Fatalf("VideoOwners() error = %v", err)
	}
	if len(got) != 120 {
		t.Fatalf("VideoOwners() returned %d owners, want 120", len(got))
	}
	if got["v004"].ChannelID != "uc1" || got["v004"].ChannelTitle != "UC1" {
		t.Errorf("owner of v004 = %+v", got["v004"])
	}
	// Chunks of 50, 50, 20 ids with 20 per page: 3 + 3 + 1 requests.
	if api.CallsByOp["videoSnippets"] != 7 {
		t.Errorf("made %d requests, want 7", api.CallsByOp["videoSnippets"])
	}
	if len(store.Saves) != 1 || store.Saves[0] != cache.VideoOwnersKey {
		t.Errorf("saves = %v, want a single %s", store.Saves, cache.VideoOwnersKey)
	}

	api.Calls = 0
	again, err := acq.VideoOwners(context.Background(), ids)
	if err != nil || len(again) != 120 || api.Calls != 0 {
		t.Errorf("cached VideoOwners() = (%d owners, %v, %d calls)", len(again), err, api.Calls)
	}
}
