package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	ytapi "google.golang.org/api/youtube/v3"
)

// MockAPI is a scripted youtube.API that counts calls.
type MockAPI struct {
	Channels      map[string]*ytapi.Channel
	Playlists     map[string]*ytapi.Playlist
	ChannelPages  map[string][][]string // channel id -> pages of playlist ids
	ItemPages     map[string][][]string // playlist id -> pages of video ids
	Owners        map[string]string     // video id -> channel id
	OwnerPageSize int
	Err           error

	Calls     int
	CallsByOp map[string]int
}

func (m *MockAPI) record(op string) error {
	m.Calls++
	if m.CallsByOp == nil {
		m.CallsByOp = make(map[string]int)
	}
	m.CallsByOp[op]++
	return m.Err
}

func pageIndex(token string) int {
	if token == "" {
		return 0
	}
	var i int
	fmt.Sscanf(token, "page-%d", &i)
	return i
}

func nextToken(i, pages int) string {
	if i+1 < pages {
		return fmt.Sprintf("page-%d", i+1)
	}
	return ""
}

func (m *MockAPI) Channel(ctx context.Context, id string, byUsername bool) (*ytapi.ChannelListResponse, error) {
	if err := m.record("channels"); err != nil {
		return nil, err
	}
	resp := &ytapi.ChannelListResponse{}
	if c, ok := m.Channels[id]; ok {
		resp.Items = []*ytapi.Channel{c}
	}
	return resp, nil
}

func (m *MockAPI) ChannelPlaylists(ctx context.Context, channelID, pageToken string) (*ytapi.PlaylistListResponse, error) {
	if err := m.record("channelPlaylists"); err != nil {
		return nil, err
	}
	pages := m.ChannelPages[channelID]
	i := pageIndex(pageToken)
	resp := &ytapi.PlaylistListResponse{NextPageToken: nextToken(i, len(pages))}
	if i < len(pages) {
		for _, id := range pages[i] {
			resp.Items = append(resp.Items, &ytapi.Playlist{Id: id})
		}
	}
	return resp, nil
}

func (m *MockAPI) Playlist(ctx context.Context, playlistID string) (*ytapi.PlaylistListResponse, error) {
	if err := m.record("playlists"); err != nil {
		return nil, err
	}
	resp := &ytapi.PlaylistListResponse{}
	if p, ok := m.Playlists[playlistID]; ok {
		resp.Items = []*ytapi.Playlist{p}
	}
	return resp, nil
}

func (m *MockAPI) PlaylistItems(ctx context.Context, playlistID, pageToken string) (*ytapi.PlaylistItemListResponse, error) {
	if err := m.record("playlistItems"); err != nil {
		return nil, err
	}
	pages := m.ItemPages[playlistID]
	i := pageIndex(pageToken)
	resp := &ytapi.PlaylistItemListResponse{NextPageToken: nextToken(i, len(pages))}
	if i < len(pages) {
		for _, id := range pages[i] {
			resp.Items = append(resp.Items, &ytapi.PlaylistItem{
				ContentDetails: &ytapi.PlaylistItemContentDetails{VideoId: id},
				Snippet:        &ytapi.PlaylistItemSnippet{Title: "title " + id},
				Status:         &ytapi.PlaylistItemStatus{PrivacyStatus: "public"},
			})
		}
	}
	return resp, nil
}

func (m *MockAPI) VideoStatistics(ctx context.Context, ids []string) (*ytapi.VideoListResponse, error) {
	if err := m.record("videoStatistics"); err != nil {
		return nil, err
	}
	return &ytapi.VideoListResponse{}, nil
}

// VideoSnippets splits the requested ids into pages of OwnerPageSize.
func (m *MockAPI) VideoSnippets(ctx context.Context, ids []string, pageToken string) (*ytapi.VideoListResponse, error) {
	if err := m.record("videoSnippets"); err != nil {
		return nil, err
	}
	if len(ids) > 50 {
		return nil, fmt.Errorf("too many ids: %d", len(ids))
	}
	size := m.OwnerPageSize
	if size == 0 {
		size = 50
	}
	pages := (len(ids) + size - 1) / size
	i := pageIndex(pageToken)
	resp := &ytapi.VideoListResponse{NextPageToken: nextToken(i, pages)}
	for _, id := range ids[i*size : min((i+1)*size, len(ids))] {
		ch, ok := m.Owners[id]
		if !ok {
			continue
		}
		resp.Items = append(resp.Items, &ytapi.Video{
			Id:      id,
			Snippet: &ytapi.VideoSnippet{ChannelId: ch, ChannelTitle: strings.ToUpper(ch)},
		})
	}
	return resp, nil
}

func (m *MockAPI) CredentialsOK(ctx context.Context) (bool, error) {
	if err := m.record("search"); err != nil {
		return false, err
	}
	return true, nil
}

// MockStore is an in-memory cache.Store that records every save.
type MockStore struct {
	Docs  map[string][]byte
	Saves []string
}

func NewMockStore() *MockStore {
	return &MockStore{Docs: make(map[string][]byte)}
}

func (s *MockStore) Load(name string, v any) (bool, error) {
	data, ok := s.Docs[name]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, v)
}

func (s *MockStore) Save(name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.Docs[name] = data
	s.Saves = append(s.Saves, name)
	return nil
}

func (s *MockStore) Close() error { return nil }

func channelFixture(id, uploads string) *ytapi.Channel {
	return &ytapi.Channel{
		Id:      id,
		Snippet: &ytapi.ChannelSnippet{Title: "Channel " + id},
		ContentDetails: &ytapi.ChannelContentDetails{
			RelatedPlaylists: &ytapi.ChannelContentDetailsRelatedPlaylists{Uploads: uploads},
		},
	}
}

func playlistFixture(id, channelID, title string) *ytapi.Playlist {
	return &ytapi.Playlist{
		Id:      id,
		Snippet: &ytapi.PlaylistSnippet{Title: title, ChannelId: channelID, ChannelTitle: "Channel " + channelID},
	}
}
