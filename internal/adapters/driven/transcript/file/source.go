// Package file provides a transcript source that reads caption files from
// disk. It resolves a video or document id to a local file, trying a set
// of language-suffixed candidates, and strips WebVTT/SRT cue metadata down
// to plain transcript text.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/vidchat-dev/vidchat-cli/internal/core/ports/driven"
	"github.com/vidchat-dev/vidchat-cli/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.TranscriptSource = (*Source)(nil)

// caption file extensions tried in order.
var extensions = []string{".vtt", ".srt", ".txt"}

// Source resolves transcript ids against a base directory. An id that is
// already a path to an existing file is used directly.
type Source struct {
	baseDir string
}

// NewSource creates a file-backed transcript source. An empty baseDir
// resolves ids relative to the working directory.
func NewSource(baseDir string) *Source {
	return &Source{baseDir: baseDir}
}

// Fetch reads the transcript for the given id, preferring the listed
// languages in order. A missing transcript is not an error: it returns
// ok=false so callers can distinguish "no captions" from a read failure.
func (s *Source) Fetch(ctx context.Context, id string, languages []string) (string, bool, error) {
	for _, candidate := range s.candidates(id, languages) {
		if err := ctx.Err(); err != nil {
			return "", false, err
		}

		data, err := os.ReadFile(candidate)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return "", false, fmt.Errorf("read transcript %s: %w", candidate, err)
		}

		logger.Debug("transcript %q resolved to %s", id, candidate)
		return cleanCaptions(string(data)), true, nil
	}
	return "", false, nil
}

// candidates lists the paths tried for an id: the id itself, then
// language-suffixed and bare caption extensions.
func (s *Source) candidates(id string, languages []string) []string {
	base := id
	if s.baseDir != "" && !filepath.IsAbs(id) {
		base = filepath.Join(s.baseDir, id)
	}

	paths := []string{base}
	for _, lang := range languages {
		for _, ext := range extensions {
			paths = append(paths, base+"."+lang+ext)
		}
	}
	for _, ext := range extensions {
		paths = append(paths, base+ext)
	}
	return paths
}

// cueTimingRe matches WebVTT and SRT timing lines, e.g.
// "00:00:01.000 --> 00:00:04.000" or "00:00:01,000 --> 00:00:04,000".
var cueTimingRe = regexp.MustCompile(`^\d{2}:\d{2}(:\d{2})?[.,]\d{3}\s+-->\s+\d{2}:\d{2}(:\d{2})?[.,]\d{3}`)

// cueNumberRe matches bare SRT cue sequence numbers.
var cueNumberRe = regexp.MustCompile(`^\d+$`)

// tagRe strips inline markup such as <c> voice spans and timestamps.
var tagRe = regexp.MustCompile(`<[^>]+>`)

// cleanCaptions reduces a caption file to plain transcript text. Plain
// text files pass through mostly untouched since no line matches the cue
// patterns.
func cleanCaptions(raw string) string {
	var parts []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			continue
		case trimmed == "WEBVTT" || strings.HasPrefix(trimmed, "WEBVTT "):
			continue
		case strings.HasPrefix(trimmed, "NOTE"):
			continue
		case strings.HasPrefix(trimmed, "STYLE") || strings.HasPrefix(trimmed, "REGION"):
			continue
		case strings.HasPrefix(trimmed, "Kind:") || strings.HasPrefix(trimmed, "Language:"):
			continue
		case cueTimingRe.MatchString(trimmed):
			continue
		case cueNumberRe.MatchString(trimmed):
			continue
		}

		parts = append(parts, tagRe.ReplaceAllString(trimmed, ""))
	}
	return strings.Join(parts, " ")
}
