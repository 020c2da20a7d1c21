// Package filter drops videos that are unavailable or outside a date range.
package filter

import (
	"fmt"
	"strings"
	"time"

	"ytcatalog/internal/youtube"
)

// Markers the API uses for entries that can no longer be played.
const (
	DeletedTitle           = "Deleted video"
	UnavailableDescription = "This video is unavailable."
)

// Predicate reports whether a video should be kept.
type Predicate func(youtube.Video) bool

// Available is false for deleted, unavailable and private videos.
func Available(v youtube.Video) bool {
	return v.Title != DeletedTitle &&
		v.Description != UnavailableDescription &&
		v.PrivacyStatus != youtube.PrivacyPrivate
}

// DateRange is an inclusive range of calendar dates. A zero bound is open.
type DateRange struct {
	After  time.Time
	Before time.Time
}

// IsZero reports whether the range admits every date.
func (r DateRange) IsZero() bool {
	return r.After.IsZero() && r.Before.IsZero()
}

// Contains reports whether the calendar date of t lies within the range.
func (r DateRange) Contains(t time.Time) bool {
	d := dateOf(t)
	if !r.After.IsZero() && d.Before(dateOf(r.After)) {
		return false
	}
	if !r.Before.IsZero() && d.After(dateOf(r.Before)) {
		return false
	}
	return true
}

// InRange reports whether the video's publication date lies within the range.
// A video whose date cannot be parsed is only kept by an open range.
func (r DateRange) InRange(v youtube.Video) bool {
	if r.IsZero() {
		return true
	}
	published, err := ParsePublished(v.PublishedAt)
	if err != nil {
		return false
	}
	return r.Contains(published)
}

// String renders the range with open bounds as "..".
func (r DateRange) String() string {
	bound := func(t time.Time) string {
		if t.IsZero() {
			return ".."
		}
		return t.Format(time.DateOnly)
	}
	return bound(r.After) + "/" + bound(r.Before)
}

// Apply keeps the videos that satisfy every predicate, in input order.
func Apply(videos []youtube.Video, preds ...Predicate) []youtube.Video {
	out := make([]youtube.Video, 0, len(videos))
next:
	for _, v := range videos {
		for _, keep := range preds {
			if !keep(v) {
				continue next
			}
		}
		out = append(out, v)
	}
	return out
}

// ParsePublished parses an API publishedAt timestamp.
func ParsePublished(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("filter: invalid publishedAt %q", s)
}

// ParseDate parses YYYYMMDD or YYYY-MM-DD. An empty string yields the zero time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{"20060102", time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("filter: invalid date %q (want YYYYMMDD or YYYY-MM-DD)", s)
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
