// Package youtube talks to the YouTube Data API v3 and turns its resources
// into the typed records the rest of ytcatalog works with.
//
// API is the narrow remote surface the acquisition layer depends on; it
// returns the raw API resources so they can be cached in their wire shape.
// DataAPI implements it with google.golang.org/api/youtube/v3.
package youtube
