package youtube

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"

	"ytcatalog/internal/logging"
)

// DataAPIConfig configures a DataAPI.
type DataAPIConfig struct {
	// APIKey is the Data API key.
	APIKey string
	// HTTPClient replaces the default client. option.WithHTTPClient disables
	// option.WithAPIKey, so the client's transport must attach the key itself
	// (httpclient.Transport does).
	HTTPClient *http.Client
	// Endpoint overrides the API base URL.
	Endpoint string
}

// DataAPI implements API on top of google.golang.org/api/youtube/v3.
type DataAPI struct {
	service *ytapi.Service
	logger  *slog.Logger
}

// NewDataAPI creates the Data API v3 service.
func NewDataAPI(ctx context.Context, cfg DataAPIConfig, logger *slog.Logger) (*DataAPI, error) {
	if cfg.APIKey == "" && cfg.HTTPClient == nil {
		return nil, ErrMissingAPIKey
	}

	var opts []option.ClientOption
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	} else {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	service, err := ytapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	return &DataAPI{
		service: service,
		logger:  logging.NewComponentLogger(logger, "youtube"),
	}, nil
}

// Channel implements API.
func (a *DataAPI) Channel(ctx context.Context, id string, byUsername bool) (*ytapi.ChannelListResponse, error) {
	call := a.service.Channels.List([]string{"brandingSettings", "snippet", "contentDetails"})
	if byUsername {
		call = call.ForUsername(id)
	} else {
		call = call.Id(id)
	}
	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, a.wrap("channels.list", err)
	}
	return resp, nil
}

// ChannelPlaylists implements API.
func (a *DataAPI) ChannelPlaylists(ctx context.Context, channelID, pageToken string) (*ytapi.PlaylistListResponse, error) {
	call := a.service.Playlists.List([]string{"id"}).
		ChannelId(channelID).
		MaxResults(MaxResults)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}
	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, a.wrap("playlists.list", err)
	}
	return resp, nil
}

// Playlist implements API.
func (a *DataAPI) Playlist(ctx context.Context, playlistID string) (*ytapi.PlaylistListResponse, error) {
	resp, err := a.service.Playlists.List([]string{"snippet"}).
		Id(playlistID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, a.wrap("playlists.list", err)
	}
	return resp, nil
}

// PlaylistItems implements API.
func (a *DataAPI) PlaylistItems(ctx context.Context, playlistID, pageToken string) (*ytapi.PlaylistItemListResponse, error) {
	call := a.service.PlaylistItems.List([]string{"snippet", "contentDetails", "status"}).
		PlaylistId(playlistID).
		MaxResults(MaxResults)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}
	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, a.wrap("playlistItems.list", err)
	}
	return resp, nil
}

// VideoStatistics implements API.
func (a *DataAPI) VideoStatistics(ctx context.Context, ids []string) (*ytapi.VideoListResponse, error) {
	if len(ids) > MaxResults {
		return nil, fmt.Errorf("youtube: videos.list accepts at most %d ids, got %d", MaxResults, len(ids))
	}
	resp, err := a.service.Videos.List([]string{"statistics"}).
		Id(strings.Join(ids, ",")).
		Context(ctx).
		Do()
	if err != nil {
		return nil, a.wrap("videos.list", err)
	}
	return resp, nil
}

// VideoSnippets implements API.
func (a *DataAPI) VideoSnippets(ctx context.Context, ids []string, pageToken string) (*ytapi.VideoListResponse, error) {
	if len(ids) > MaxResults {
		return nil, fmt.Errorf("youtube: videos.list accepts at most %d ids, got %d", MaxResults, len(ids))
	}
	call := a.service.Videos.List([]string{"snippet"}).
		Id(strings.Join(ids, ",")).
		MaxResults(MaxResults)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}
	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, a.wrap("videos.list", err)
	}
	return resp, nil
}

// CredentialsOK implements API. A key rejected by the API reports false
// together with an error wrapping ErrInvalidCredentials.
func (a *DataAPI) CredentialsOK(ctx context.Context) (bool, error) {
	resp, err := a.service.Search.List([]string{"snippet"}).
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		wrapped := a.wrap("search.list", err)
		var apiErr *APIError
		if errors.As(wrapped, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			return false, fmt.Errorf("%w: %w", ErrInvalidCredentials, wrapped)
		}
		return false, wrapped
	}
	return len(resp.Items) > 0, nil
}

// wrap converts a client error into an *APIError, logging HTTP failures with
// their status and body.
func (a *DataAPI) wrap(op string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		a.logger.Error("api request failed",
			slog.String("op", op),
			slog.Int("status", gerr.Code),
			slog.String("body", gerr.Body),
		)
		msg := gerr.Message
		if msg == "" {
			msg = http.StatusText(gerr.Code)
		}
		return &APIError{Op: op, StatusCode: gerr.Code, Body: gerr.Body, Err: errors.New(msg)}
	}

	return &APIError{Op: op, Err: err}
}
