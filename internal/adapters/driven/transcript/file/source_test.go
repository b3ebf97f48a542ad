package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestFetch_PlainTextFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "talk.txt", "Hello world.\nThis is a talk.\n")

	src := NewSource(dir)
	text, ok, err := src.Fetch(context.Background(), "talk", nil)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Hello world. This is a talk.", text)
}

func TestFetch_DirectPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "exact.vtt")
	require.NoError(t, os.WriteFile(path, []byte("WEBVTT\n\njust words\n"), 0o644))

	src := NewSource("")
	text, ok, err := src.Fetch(context.Background(), path, nil)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "just words", text)
}

func TestFetch_LanguagePreference(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "vid.en.vtt", "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nenglish line\n")
	writeFile(t, dir, "vid.de.vtt", "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\ngerman line\n")

	src := NewSource(dir)
	text, ok, err := src.Fetch(context.Background(), "vid", []string{"de", "en"})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "german line", text)
}

func TestFetch_Missing(t *testing.T) {
	src := NewSource(t.TempDir())
	text, ok, err := src.Fetch(context.Background(), "nothing-here", []string{"en"})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, text)
}

func TestCleanCaptions_WebVTT(t *testing.T) {
	raw := "WEBVTT\nKind: captions\nLanguage: en\n\n" +
		"NOTE internal comment\n\n" +
		"00:00:00.000 --> 00:00:02.500\n" +
		"A cat <c.colorE5E5E5>sat</c> on the mat.\n\n" +
		"00:00:02.500 --> 00:00:05.000\n" +
		"It was <00:00:03.000>comfortable.\n"

	assert.Equal(t, "A cat sat on the mat. It was comfortable.", cleanCaptions(raw))
}

func TestCleanCaptions_SRT(t *testing.T) {
	raw := "1\r\n00:00:01,000 --> 00:00:04,000\r\nFirst subtitle.\r\n\r\n" +
		"2\r\n00:00:04,000 --> 00:00:06,000\r\nSecond subtitle.\r\n"

	assert.Equal(t, "First subtitle. Second subtitle.", cleanCaptions(raw))
}
