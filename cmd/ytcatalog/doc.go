// Command ytcatalog resolves a YouTube channel, user or set of playlists into
// a filtered, bounded and cached list of videos.
//
// Usage:
//
//	ytcatalog select channel UC... --by views --max-videos 50
//	ytcatalog playlists playlist PL1,PL2
//	ytcatalog check-credentials
//	ytcatalog cache list
//	ytcatalog config init
package main
