// Package ytdlp estimates download sizes by asking yt-dlp for a video's
// metadata without downloading it.
package ytdlp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"ytcatalog/internal/logging"
)

const (
	defaultPath    = "yt-dlp"
	defaultTimeout = 2 * time.Minute
)

// Sentinel errors for size estimation.
var (
	ErrNotInstalled  = errors.New("ytdlp: yt-dlp not installed")
	ErrVideoNotFound = errors.New("ytdlp: video unavailable")
	ErrNoEstimate    = errors.New("ytdlp: no size estimate")
	ErrTimeout       = errors.New("ytdlp: timed out")
)

// EstimateError wraps a failed estimate with the video id.
type EstimateError struct {
	VideoID string
	Err     error
}

// Error returns a string representation of the estimate failure.
func (e *EstimateError) Error() string {
	return fmt.Sprintf("ytdlp: estimate %s: %v", e.VideoID, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *EstimateError) Unwrap() error { return e.Err }

// Estimator runs yt-dlp as a subprocess.
type Estimator struct {
	// Path is the path to the yt-dlp executable. Defaults to "yt-dlp".
	Path string

	// Timeout bounds a single invocation. Defaults to 2 minutes.
	Timeout time.Duration

	// ExtraArgs are additional arguments to pass to yt-dlp, e.g. a format selector.
	ExtraArgs []string

	// Logger receives one debug record per estimate. Nil disables logging.
	Logger *slog.Logger
}

// Info is the part of yt-dlp's -J output the estimator reads.
type Info struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Duration       float64 `json:"duration"`
	Filesize       int64   `json:"filesize"`
	FilesizeApprox int64   `json:"filesize_approx"`
}

// Size returns the approximate size in bytes, falling back to the exact
// filesize when only that is reported.
func (i *Info) Size() (int64, bool) {
	if i.FilesizeApprox > 0 {
		return i.FilesizeApprox, true
	}
	if i.Filesize > 0 {
		return i.Filesize, true
	}
	return 0, false
}

// EstimateSize returns the approximate download size of videoID in bytes.
func (e *Estimator) EstimateSize(ctx context.Context, videoID string) (int64, error) {
	info, err := e.Fetch(ctx, videoID)
	if err != nil {
		return 0, err
	}
	size, ok := info.Size()
	if !ok {
		return 0, &EstimateError{VideoID: videoID, Err: ErrNoEstimate}
	}
	if e.Logger != nil {
		e.Logger.Debug("estimated size",
			slog.String(logging.FieldVideoID, info.ID),
			slog.String("title", info.Title),
			slog.Duration("duration", time.Duration(info.Duration*float64(time.Second))),
			slog.String("size", humanize.IBytes(uint64(size))),
		)
	}
	return size, nil
}

// Fetch runs yt-dlp -J for videoID and decodes its metadata.
func (e *Estimator) Fetch(ctx context.Context, videoID string) (*Info, error) {
	args := []string{"-J", "--no-warnings", "--skip-download"}
	args = append(args, e.ExtraArgs...)
	// "--" keeps ids starting with "-" from being parsed as flags.
	args = append(args, "--", videoID)

	timeout := e.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	cmdCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(cmdCtx, e.path(), args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		switch {
		case errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist):
			return nil, &EstimateError{VideoID: videoID, Err: ErrNotInstalled}
		case errors.Is(cmdCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil:
			return nil, &EstimateError{VideoID: videoID, Err: ErrTimeout}
		case ctx.Err() != nil:
			return nil, &EstimateError{VideoID: videoID, Err: ctx.Err()}
		}

		errMsg := strings.TrimSpace(stderr.String())
		if strings.Contains(errMsg, "Video unavailable") || strings.Contains(errMsg, "Private video") {
			return nil, &EstimateError{VideoID: videoID, Err: fmt.Errorf("%w: %s", ErrVideoNotFound, errMsg)}
		}
		return nil, &EstimateError{VideoID: videoID, Err: fmt.Errorf("yt-dlp failed: %w: %s", err, errMsg)}
	}

	var info Info
	if err := json.Unmarshal(stdout.Bytes(), &info); err != nil {
		return nil, &EstimateError{VideoID: videoID, Err: fmt.Errorf("parse yt-dlp output: %w", err)}
	}
	return &info, nil
}

func (e *Estimator) path() string {
	if e.Path != "" {
		return e.Path
	}
	return defaultPath
}
