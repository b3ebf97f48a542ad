package chunker

import (
	"errors"
	"strings"
	"testing"

	"github.com/vidchat-dev/vidchat-cli/internal/core/domain"
)

func TestNew(t *testing.T) {
	t.Run("valid configuration", func(t *testing.T) {
		s, err := New(1000, 200)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.ChunkSize() != 1000 {
			t.Errorf("expected chunk size 1000, got %d", s.ChunkSize())
		}
		if s.Overlap() != 200 {
			t.Errorf("expected overlap 200, got %d", s.Overlap())
		}
	})

	t.Run("zero overlap allowed", func(t *testing.T) {
		if _, err := New(10, 0); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("zero chunk size rejected", func(t *testing.T) {
		_, err := New(0, 0)
		if !errors.Is(err, domain.ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("negative overlap rejected", func(t *testing.T) {
		_, err := New(10, -1)
		if !errors.Is(err, domain.ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("overlap equal to chunk size rejected", func(t *testing.T) {
		_, err := New(10, 10)
		if !errors.Is(err, domain.ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("overlap above chunk size rejected", func(t *testing.T) {
		_, err := New(10, 15)
		if !errors.Is(err, domain.ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestSplitter_Split_Empty(t *testing.T) {
	s, err := New(10, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if chunks := s.Split(""); len(chunks) != 0 {
		t.Errorf("expected no chunks for empty text, got %d", len(chunks))
	}
}

func TestSplitter_Split_SingleChunk(t *testing.T) {
	s, err := New(100, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := "shorter than one chunk"
	chunks := s.Split(text)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != text {
		t.Errorf("expected chunk text %q, got %q", text, chunks[0].Text)
	}
	if chunks[0].Position != 0 {
		t.Errorf("expected position 0, got %d", chunks[0].Position)
	}
}

func TestSplitter_Split_Overlap(t *testing.T) {
	s, err := New(10, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	chunks := s.Split("A cat sat. A dog ran. A bird flew.")
	if len(chunks) < 4 {
		t.Fatalf("expected at least 4 chunks, got %d", len(chunks))
	}

	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1].Text)
		tail := string(prev[len(prev)-2:])
		head := string([]rune(chunks[i].Text)[:2])
		if tail != head {
			t.Errorf("chunk %d: expected overlap %q at start, got %q", i, tail, head)
		}
		if chunks[i].Position != i {
			t.Errorf("chunk %d: expected position %d, got %d", i, i, chunks[i].Position)
		}
	}
}

// Concatenating chunks with the overlap removed must reconstruct the
// original text exactly: no loss, no duplication beyond the overlap.
func TestSplitter_Split_Coverage(t *testing.T) {
	texts := []string{
		"A cat sat. A dog ran. A bird flew.",
		strings.Repeat("abcdefghij", 37),
		"短い日本語のトランスクリプトです。音声認識の出力を分割します。",
		"x",
	}
	configs := []struct{ size, overlap int }{
		{10, 2},
		{10, 0},
		{7, 6},
		{1000, 200},
	}

	for _, text := range texts {
		for _, cfg := range configs {
			s, err := New(cfg.size, cfg.overlap)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			chunks := s.Split(text)

			var rebuilt strings.Builder
			for i, ch := range chunks {
				r := []rune(ch.Text)
				if i == 0 {
					rebuilt.WriteString(ch.Text)
					continue
				}
				if len(r) < cfg.overlap {
					t.Fatalf("size=%d overlap=%d: chunk %d shorter than overlap", cfg.size, cfg.overlap, i)
				}
				rebuilt.WriteString(string(r[cfg.overlap:]))
			}
			if rebuilt.String() != text {
				t.Errorf("size=%d overlap=%d: reconstruction mismatch for %q", cfg.size, cfg.overlap, text)
			}
		}
	}
}

func TestSplitter_Split_BoundedSize(t *testing.T) {
	s, err := New(10, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, ch := range s.Split(strings.Repeat("y", 95)) {
		if n := len([]rune(ch.Text)); n > 10 {
			t.Errorf("chunk %d exceeds chunk size: %d runes", ch.Position, n)
		}
	}
}
