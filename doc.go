// Package ytcatalog selects a bounded, cached working set of videos from a
// YouTube channel, user or set of playlists.
//
// Overview
//
// A run goes through these stages, in order:
//
//  1. Resolve the collection into playlists. A channel or user covers all of
//     its playlists plus its uploads playlist. A playlist request covers the
//     comma separated ids given.
//  2. Walk every playlist through the response cache. A second run makes no
//     Data API calls.
//  3. Drop deleted, unavailable and private videos, and videos published
//     outside the date range.
//  4. Order by views, recency or views per year, keep at most N videos, then
//     keep the longest prefix whose yt-dlp size estimate fits in a GiB budget.
//  5. Replace titles from a pair of override files.
//  6. Look up the channel of every selected video and save a 100x100 profile
//     picture for each.
//
// Quick Start
//
//	ytcatalog config init
//	export YTCATALOG_API_KEY=...
//	ytcatalog select channel UCxxxxxxxxxxxxxxxxxxxxxx --by views --max-videos 50
//
// Cache
//
// Responses are stored under the cache directory as {kind}_{id} documents:
//
//   - channel_{id}
//   - channel_{id}_playlists
//   - playlist_{id}
//   - playlist_{id}_videos
//   - videos_channels
//
// The "dir" backend writes one JSON file per document and locks the
// directory for the lifetime of the process. The "bolt" backend keeps every
// document in a single ytcatalog.db file.
//
// Configuration
//
// Settings are loaded from, in increasing priority:
//
//  1. Built-in defaults
//  2. A TOML file (--config, ./ytcatalog.toml or ~/.config/ytcatalog/config.toml)
//  3. YTCATALOG_* environment variables
//  4. Command line flags
//
// Error Handling
//
// Errors wrap sentinels and typed errors that are re-exported here:
//
//	if errors.Is(err, ytcatalog.ErrNotFound) {
//		fmt.Println("channel or playlist not found")
//	}
//
//	var sizeErr *ytcatalog.SizeError
//	if errors.As(err, &sizeErr) {
//		fmt.Printf("could not estimate %s: %v\n", sizeErr.VideoID, sizeErr.Err)
//	}
//
// Dependencies
//
// Size budgets need yt-dlp in PATH or configured with YTCATALOG_YTDLP_PATH.
//
// Install yt-dlp: https://github.com/yt-dlp/yt-dlp
package ytcatalog
