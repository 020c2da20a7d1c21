package ytdlp

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"ytcatalog/internal/logging"
)

// fakeYtdlp writes a shell script standing in for yt-dlp.
func fakeYtdlp(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fake requires a Unix shell")
	}
	path := filepath.Join(t.TempDir(), "yt-dlp")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755); err != nil {
		t.Fatalf("write fake yt-dlp: %v", err)
	}
	return path
}

func TestEstimateSize(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    int64
		wantErr error
	}{
		{"approx", `{"id":"abc","title":"T","filesize_approx":1048576}`, 1048576, nil},
		{"exact fallback", `{"id":"abc","title":"T","filesize":2048}`, 2048, nil},
		{"approx preferred", `{"id":"abc","filesize":1,"filesize_approx":5}`, 5, nil},
		{"no estimate", `{"id":"abc","title":"T"}`, 0, ErrNoEstimate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := fakeYtdlp(t, "cat <<'EOF'\n"+tt.output+"\nEOF\n")
			e := &Estimator{Path: path}

			got, err := e.EstimateSize(context.Background(), "abc")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("EstimateSize() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("EstimateSize() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("EstimateSize() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFetchPassesArguments(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "args")
	path := fakeYtdlp(t, `echo "$@" > `+argsFile+"\n"+`echo '{"id":"-dash"}'`+"\n")
	e := &Estimator{Path: path, ExtraArgs: []string{"-f", "best"}}

	info, err := e.Fetch(context.Background(), "-dash")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if info.ID != "-dash" {
		t.Errorf("ID = %q, want -dash", info.ID)
	}

	args, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatal(err)
	}
	want := "-J --no-warnings --skip-download -f best -- -dash"
	if got := strings.TrimSpace(string(args)); got != want {
		t.Errorf("args = %q, want %q", got, want)
	}
}

func TestFetchUnavailable(t *testing.T) {
	path := fakeYtdlp(t, "echo 'ERROR: [youtube] abc: Video unavailable' >&2\nexit 1\n")
	e := &Estimator{Path: path}

	_, err := e.EstimateSize(context.Background(), "abc")
	if !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("EstimateSize() error = %v, want ErrVideoNotFound", err)
	}
	var estErr *EstimateError
	if !errors.As(err, &estErr) || estErr.VideoID != "abc" {
		t.Errorf("error = %#v, want EstimateError for abc", err)
	}
}

func TestFetchNotInstalled(t *testing.T) {
	e := &Estimator{Path: "/nonexistent/path/to/yt-dlp"}
	_, err := e.EstimateSize(context.Background(), "abc")
	if !errors.Is(err, ErrNotInstalled) {
		t.Fatalf("EstimateSize() error = %v, want ErrNotInstalled", err)
	}
}

func TestFetchTimeout(t *testing.T) {
	path := fakeYtdlp(t, "exec sleep 5\n")
	e := &Estimator{Path: path, Timeout: 50 * time.Millisecond}

	_, err := e.EstimateSize(context.Background(), "abc")
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("EstimateSize() error = %v, want ErrTimeout", err)
	}
}

func TestFetchBadJSON(t *testing.T) {
	path := fakeYtdlp(t, "echo 'not json'\n")
	e := &Estimator{Path: path}
	if _, err := e.Fetch(context.Background(), "abc"); err == nil {
		t.Fatal("Fetch() should fail on malformed output")
	}
}

func TestEstimateSizeLogsMetadata(t *testing.T) {
	path := fakeYtdlp(t, "cat <<'EOF'\n"+`{"id":"abc","title":"Lecture 1","duration":90,"filesize_approx":2097152}`+"\nEOF\n")

	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "json", Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	e := &Estimator{Path: path, Logger: logger}

	if _, err := e.EstimateSize(context.Background(), "abc"); err != nil {
		t.Fatalf("EstimateSize() error = %v", err)
	}
	for _, want := range []string{`"video_id":"abc"`, `"title":"Lecture 1"`, `"duration":90000000000`, `"size":"2.0 MiB"`} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("log missing %s:\n%s", want, buf.String())
		}
	}
}
