package ytcatalog

import (
	"ytcatalog/internal/cache"
	"ytcatalog/internal/catalog"
	"ytcatalog/internal/httpclient"
	"ytcatalog/internal/subset"
	"ytcatalog/internal/titles"
	"ytcatalog/internal/youtube"
	"ytcatalog/internal/ytdlp"
)

// Error handling types exported for library users.
//
// Using errors.Is() for sentinel errors:
//
//	if errors.Is(err, ytcatalog.ErrUnsupportedCollection) {
//		fmt.Println("use user, channel or playlist")
//	}
//
// Using errors.As() for wrapped errors:
//
//	var apiErr *ytcatalog.APIError
//	if errors.As(err, &apiErr) {
//		fmt.Printf("%s failed with status %d\n", apiErr.Op, apiErr.StatusCode)
//	}

// Type aliases for convenient error handling.
type (
	// NotFoundError reports a channel or playlist the API does not know.
	NotFoundError = youtube.NotFoundError
	// APIError wraps a Data API failure with its status and body.
	APIError = youtube.APIError
	// HTTPError reports a non-2xx response to a plain HTTP request.
	HTTPError = httpclient.HTTPError
	// StorageError wraps errors during cache operations.
	StorageError = cache.StorageError
	// LookupError reports a video missing from a statistics response.
	LookupError = subset.LookupError
	// SizeError reports a video whose size could not be estimated.
	SizeError = subset.SizeError
	// InputError reports malformed title override files.
	InputError = titles.InputError
	// EstimateError wraps a yt-dlp failure for one video.
	EstimateError = ytdlp.EstimateError
)

// Sentinel errors exported from sub-packages.
var (
	// ErrNotFound indicates a channel or playlist does not exist.
	ErrNotFound = youtube.ErrNotFound
	// ErrInvalidCredentials indicates the API key was rejected.
	ErrInvalidCredentials = youtube.ErrInvalidCredentials
	// ErrMissingAPIKey indicates no API key was configured.
	ErrMissingAPIKey = youtube.ErrMissingAPIKey
	// ErrUnsupportedCollection indicates a collection type other than
	// user, channel or playlist.
	ErrUnsupportedCollection = catalog.ErrUnsupportedCollection
	// ErrUnknownStrategy indicates an unsupported ordering.
	ErrUnknownStrategy = subset.ErrUnknownStrategy
	// ErrRequestFailed indicates a network failure before any response.
	ErrRequestFailed = httpclient.ErrRequestFailed

	// Cache errors
	// ErrInvalidKey indicates a document name that cannot be stored.
	ErrInvalidKey = cache.ErrInvalidKey
	// ErrStorageCorrupt indicates a cached document could not be decoded.
	ErrStorageCorrupt = cache.ErrStorageCorrupt
	// ErrLockTimeout indicates another process holds the cache.
	ErrLockTimeout = cache.ErrLockTimeout
	// ErrUnknownBackend indicates an unsupported cache backend.
	ErrUnknownBackend = cache.ErrUnknownBackend

	// Size estimation errors
	// ErrYtdlpNotInstalled indicates the yt-dlp binary was not found.
	ErrYtdlpNotInstalled = ytdlp.ErrNotInstalled
	// ErrNoEstimate indicates yt-dlp reported no size for a video.
	ErrNoEstimate = ytdlp.ErrNoEstimate
)
