// Package branding stores a resized profile picture for each channel.
package branding

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"ytcatalog/internal/atomicfile"
	"ytcatalog/internal/httpclient"
	"ytcatalog/internal/logging"
	"ytcatalog/internal/youtube"
)

// Profile picture dimensions.
const (
	ProfileWidth    = 100
	ProfileHeight   = 100
	ProfileFileName = "profile.jpg"
)

// ErrNoThumbnail indicates a channel record without a thumbnail URL.
var ErrNoThumbnail = errors.New("branding: channel has no thumbnail")

// Fetcher downloads a URL. *httpclient.Client implements it.
type Fetcher interface {
	Get(ctx context.Context, url string) (*httpclient.Response, error)
}

// Saver writes {Dir}/{channelID}/profile.jpg.
type Saver struct {
	fetcher Fetcher
	dir     string
	logger  *slog.Logger
}

// NewSaver creates a Saver rooted at dir.
func NewSaver(fetcher Fetcher, dir string, logger *slog.Logger) *Saver {
	return &Saver{
		fetcher: fetcher,
		dir:     dir,
		logger:  logging.NewComponentLogger(logger, "branding"),
	}
}

// ProfilePath returns where the profile picture of channelID is stored.
func (s *Saver) ProfilePath(channelID string) string {
	return filepath.Join(s.dir, channelID, ProfileFileName)
}

// Save downloads the channel's thumbnail, resizes it and writes it as JPEG.
// An existing file is left untouched and reported as skipped.
func (s *Saver) Save(ctx context.Context, channel youtube.Channel) (path string, skipped bool, err error) {
	path = s.ProfilePath(channel.ID)
	if _, err := os.Stat(path); err == nil {
		s.logger.Debug("profile exists", slog.String(logging.FieldChannelID, channel.ID))
		return path, true, nil
	}
	if channel.Thumbnail == "" {
		return "", false, fmt.Errorf("%w: %s", ErrNoThumbnail, channel.ID)
	}

	resp, err := s.fetcher.Get(ctx, channel.Thumbnail)
	if err != nil {
		return "", false, fmt.Errorf("branding: fetch %s: %w", channel.ID, err)
	}

	src, format, err := image.Decode(bytes.NewReader(resp.Body))
	if err != nil {
		return "", false, fmt.Errorf("branding: decode %s: %w", channel.ID, err)
	}

	if err := writeJPEG(path, Resize(src, ProfileWidth, ProfileHeight)); err != nil {
		return "", false, fmt.Errorf("branding: write %s: %w", path, err)
	}

	s.logger.Info("saved channel profile",
		slog.String(logging.FieldChannelID, channel.ID),
		slog.String("source_format", format),
		slog.String("path", path),
	)
	return path, false, nil
}

// Resize scales src to exactly width x height.
func Resize(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}

func writeJPEG(path string, img image.Image) error {
	return atomicfile.WriteFile(path, 0644, func(w io.Writer) error {
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 85})
	})
}
