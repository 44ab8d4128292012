package chunker

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestChunkDocument_SplitsByHeaders(t *testing.T) {
	content := `# Intro

Some introduction text.

## Setup

Install the thing.

## Usage

Run the thing.
`

	chunks := ChunkDocument(content, "guide.md", DefaultOptions())

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}

	expectedTitles := []string{"Intro", "Setup", "Usage"}

	for i, chunk := range chunks {
		if chunk.SectionTitle != expectedTitles[i] {
			t.Errorf("chunk %d: expected title %q, got %q", i, expectedTitles[i], chunk.SectionTitle)
		}

		if chunk.DocName != "guide" {
			t.Errorf("chunk %d: expected doc name 'guide', got %q", i, chunk.DocName)
		}

		if chunk.Path != "guide.md" {
			t.Errorf("chunk %d: expected path 'guide.md', got %q", i, chunk.Path)
		}
	}
}

func TestChunkDocument_StripsFrontmatter(t *testing.T) {
	content := `---
title: Secret Frontmatter
---
# Visible

Body text.
`

	chunks := ChunkDocument(content, "doc.md", DefaultOptions())

	for _, chunk := range chunks {
		if strings.Contains(chunk.Content, "Secret Frontmatter") {
			t.Error("frontmatter should be stripped from chunk content")
		}
	}
}

func TestChunkDocument_ContentWithoutHeaders(t *testing.T) {
	chunks := ChunkDocument("just a plain paragraph of text", "note.txt", DefaultOptions())

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}

	if chunks[0].SectionTitle != "" {
		t.Errorf("expected untitled section, got %q", chunks[0].SectionTitle)
	}
}

func TestChunkDocument_SplitsLargeSections(t *testing.T) {
	// build a section well past the token budget
	var builder strings.Builder
	builder.WriteString("# Big Section\n\n")

	for range 100 {
		builder.WriteString(strings.Repeat("word ", 50))
		builder.WriteString("\n\n")
	}

	opts := DefaultOptions()
	chunks := ChunkDocument(builder.String(), "big.md", opts)

	if len(chunks) < 2 {
		t.Fatalf("expected the section to be split, got %d chunks", len(chunks))
	}

	for i, chunk := range chunks {
		if chunk.SectionTitle != "Big Section" {
			t.Errorf("chunk %d: expected title preserved, got %q", i, chunk.SectionTitle)
		}

		// header is re-written into continuation chunks
		if !strings.HasPrefix(chunk.Content, "# Big Section") {
			t.Errorf("chunk %d should carry the section header", i)
		}
	}
}

func TestChunkDocuments_WalksDirectory(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "a.md", "# A\n\ncontent a\n")
	writeFile(t, dir, "sub/b.txt", "content b\n")
	writeFile(t, dir, "ignored.pdf", "binary-ish\n")

	chunks, errs := ChunkDocuments(dir)

	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks (pdf ignored), got %d", len(chunks))
	}

	paths := map[string]bool{}
	for _, chunk := range chunks {
		paths[chunk.Path] = true
	}

	if !paths["a.md"] || !paths[filepath.Join("sub", "b.txt")] {
		t.Errorf("unexpected chunk paths: %v", paths)
	}
}

func TestChunkDocuments_EmptyDirectory(t *testing.T) {
	chunks, errs := ChunkDocuments(t.TempDir())

	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	if len(chunks) != 0 {
		t.Errorf("expected no chunks from an empty directory, got %d", len(chunks))
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()

	path := filepath.Join(dir, name)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
}
