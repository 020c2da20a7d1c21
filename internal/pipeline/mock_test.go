package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"testing"

	ytapi "google.golang.org/api/youtube/v3"

	"ytcatalog/internal/httpclient"
)

// MockAPI serves a single channel with fixed playlists, one page each.
type MockAPI struct {
	Channels  map[string]*ytapi.Channel
	Playlists map[string][]string // playlist id -> video ids
	Order     []string            // channel playlist ids in listing order
	Videos    map[string]mockVideo

	Calls map[string]int
}

type mockVideo struct {
	Title     string
	Published string
	Privacy   string
	Views     uint64
	Owner     string
}

func (m *MockAPI) record(op string) {
	if m.Calls == nil {
		m.Calls = make(map[string]int)
	}
	m.Calls[op]++
}

func (m *MockAPI) Channel(ctx context.Context, id string, byUsername bool) (*ytapi.ChannelListResponse, error) {
	m.record("channels")
	resp := &ytapi.ChannelListResponse{}
	if c, ok := m.Channels[id]; ok {
		resp.Items = []*ytapi.Channel{c}
	}
	return resp, nil
}

func (m *MockAPI) ChannelPlaylists(ctx context.Context, channelID, pageToken string) (*ytapi.PlaylistListResponse, error) {
	m.record("channelPlaylists")
	resp := &ytapi.PlaylistListResponse{}
	for _, id := range m.Order {
		resp.Items = append(resp.Items, &ytapi.Playlist{Id: id})
	}
	return resp, nil
}

func (m *MockAPI) Playlist(ctx context.Context, playlistID string) (*ytapi.PlaylistListResponse, error) {
	m.record("playlists")
	resp := &ytapi.PlaylistListResponse{}
	if _, ok := m.Playlists[playlistID]; ok {
		resp.Items = []*ytapi.Playlist{{
			Id:      playlistID,
			Snippet: &ytapi.PlaylistSnippet{Title: "Playlist " + playlistID, ChannelId: "UCmain", ChannelTitle: "Main"},
		}}
	}
	return resp, nil
}

func (m *MockAPI) PlaylistItems(ctx context.Context, playlistID, pageToken string) (*ytapi.PlaylistItemListResponse, error) {
	m.record("playlistItems")
	resp := &ytapi.PlaylistItemListResponse{}
	for _, id := range m.Playlists[playlistID] {
		v := m.Videos[id]
		privacy := v.Privacy
		if privacy == "" {
			privacy = "public"
		}
		resp.Items = append(resp.Items, &ytapi.PlaylistItem{
			ContentDetails: &ytapi.PlaylistItemContentDetails{VideoId: id},
			Snippet:        &ytapi.PlaylistItemSnippet{Title: v.Title, PublishedAt: v.Published},
			Status:         &ytapi.PlaylistItemStatus{PrivacyStatus: privacy},
		})
	}
	return resp, nil
}

func (m *MockAPI) VideoStatistics(ctx context.Context, ids []string) (*ytapi.VideoListResponse, error) {
	m.record("videoStatistics")
	resp := &ytapi.VideoListResponse{}
	for _, id := range ids {
		if v, ok := m.Videos[id]; ok {
			resp.Items = append(resp.Items, &ytapi.Video{Id: id, Statistics: &ytapi.VideoStatistics{ViewCount: v.Views}})
		}
	}
	return resp, nil
}

func (m *MockAPI) VideoSnippets(ctx context.Context, ids []string, pageToken string) (*ytapi.VideoListResponse, error) {
	m.record("videoSnippets")
	resp := &ytapi.VideoListResponse{}
	for _, id := range ids {
		if v, ok := m.Videos[id]; ok {
			resp.Items = append(resp.Items, &ytapi.Video{
				Id:      id,
				Snippet: &ytapi.VideoSnippet{ChannelId: v.Owner, ChannelTitle: v.Owner},
			})
		}
	}
	return resp, nil
}

func (m *MockAPI) CredentialsOK(ctx context.Context) (bool, error) {
	m.record("search")
	return true, nil
}

// MockFetcher returns the same PNG for every URL.
type MockFetcher struct {
	Body []byte
	URLs []string
}

func (f *MockFetcher) Get(ctx context.Context, url string) (*httpclient.Response, error) {
	f.URLs = append(f.URLs, url)
	return &httpclient.Response{StatusCode: 200, Body: f.Body}, nil
}

// MockSizes answers every video with the same size.
type MockSizes struct {
	Bytes int64
}

func (m *MockSizes) EstimateSize(ctx context.Context, id string) (int64, error) {
	return m.Bytes, nil
}

func channelFixture(id, uploads string, withThumb bool) *ytapi.Channel {
	c := &ytapi.Channel{
		Id:      id,
		Snippet: &ytapi.ChannelSnippet{Title: "Channel " + id},
		ContentDetails: &ytapi.ChannelContentDetails{
			RelatedPlaylists: &ytapi.ChannelContentDetailsRelatedPlaylists{Uploads: uploads},
		},
	}
	if withThumb {
		c.Snippet.Thumbnails = &ytapi.ThumbnailDetails{
			Medium: &ytapi.Thumbnail{Url: fmt.Sprintf("https://yt3.example/%s.png", id)},
		}
	}
	return c
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}
