// Package titles replaces video titles from a pair of plain-text files: one
// listing video URLs, the other listing the replacement titles in the same
// order.
package titles

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	ytdl "github.com/kkdai/youtube/v2"

	"ytcatalog/internal/logging"
	"ytcatalog/internal/youtube"
)

// InputError reports unusable override files. No title has been changed
// when it is returned.
type InputError struct {
	Reason string
	Err    error
}

// Error returns a string representation of the input problem.
func (e *InputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("titles: %s: %v", e.Reason, e.Err)
	}
	return "titles: " + e.Reason
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *InputError) Unwrap() error { return e.Err }

// Override pairs a video id with its replacement title.
type Override struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Load reads exactly two files. Lines starting with "https://" are video
// URLs, every other non-blank line is a title; either file may hold either
// kind. The n-th URL is paired with the n-th title.
func Load(paths []string, logger *slog.Logger) ([]Override, error) {
	logger = logging.NewComponentLogger(logger, "titles")

	switch len(paths) {
	case 0:
		return nil, &InputError{Reason: "no custom titles files given"}
	case 1:
		return nil, &InputError{Reason: "only one custom titles file given (need one for ids and one for titles)"}
	case 2:
	default:
		return nil, &InputError{Reason: fmt.Sprintf("too many custom titles files given (%d, need 2)", len(paths))}
	}

	var ids, titles []string
	for _, path := range paths {
		fileIDs, fileTitles, err := readFile(path)
		if err != nil {
			return nil, err
		}
		logger.Debug("read custom titles file",
			slog.String("path", path),
			slog.Int("ids", len(fileIDs)),
			slog.Int("titles", len(fileTitles)),
		)
		ids = append(ids, fileIDs...)
		titles = append(titles, fileTitles...)
	}

	if len(ids) != len(titles) {
		return nil, &InputError{Reason: fmt.Sprintf("number of titles (%d) and ids (%d) do not match", len(titles), len(ids))}
	}

	if dups := duplicates(ids); len(dups) > 0 {
		logger.Warn("duplicate ids in custom titles", slog.Any("ids", dups))
	}

	overrides := make([]Override, len(ids))
	for i := range ids {
		overrides[i] = Override{ID: ids[i], Title: titles[i]}
	}
	return overrides, nil
}

func readFile(path string) (ids, titles []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, &InputError{Reason: "open " + path, Err: err}
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		switch {
		case strings.HasPrefix(line, "https://"):
			id, err := ytdl.ExtractVideoID(strings.TrimSpace(line))
			if err != nil {
				return nil, nil, &InputError{Reason: fmt.Sprintf("%s:%d: no video id in %q", path, lineNo, line), Err: err}
			}
			ids = append(ids, id)
		case strings.TrimSpace(line) == "":
		default:
			titles = append(titles, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, &InputError{Reason: "read " + path, Err: err}
	}
	return ids, titles, nil
}

func duplicates(ids []string) []string {
	seen := make(map[string]int, len(ids))
	var dups []string
	for _, id := range ids {
		seen[id]++
		if seen[id] == 2 {
			dups = append(dups, id)
		}
	}
	return dups
}

// Apply walks videos once with a single forward cursor into overrides. For
// each video the overrides from the cursor onward are searched for its id;
// on a match the title is replaced and the cursor moves past the match, on a
// miss the cursor stays put. The walk stops once the cursor is exhausted, so
// an override positioned before the cursor is never applied. Apply returns
// the number of titles replaced.
func Apply(videos []youtube.Video, overrides []Override, logger *slog.Logger) int {
	logger = logging.NewComponentLogger(logger, "titles")

	replaced := 0
	cursor := 0
	for i := range videos {
		if cursor >= len(overrides) {
			logger.Debug("no more titles to replace", slog.Int("remaining", len(videos)-i))
			break
		}

		match := cursor
		for match < len(overrides) && overrides[match].ID != videos[i].ID {
			match++
		}
		if match == len(overrides) {
			continue
		}

		logger.Info("replacing title",
			slog.String(logging.FieldVideoID, videos[i].ID),
			slog.String("from", videos[i].Title),
			slog.String("to", overrides[match].Title),
		)
		videos[i].Title = overrides[match].Title
		replaced++
		cursor = match + 1
	}
	return replaced
}
