package index

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// deterministic embedder for tests: axis 0 tracks "alpha", axis 1 tracks
// "beta", axis 2 is a constant so no vector is ever zero
type fakeEmbedder struct {
	calls int
}

func (f *fakeEmbedder) GenerateEmbedding(_ context.Context, text string) ([]float32, error) {
	f.calls++

	vec := []float32{0, 0, 0.1}

	if strings.Contains(text, "alpha") {
		vec[0] = 1
	}

	if strings.Contains(text, "beta") {
		vec[1] = 1
	}

	return vec, nil
}

func (f *fakeEmbedder) GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))

	for i, text := range texts {
		embedding, err := f.GenerateEmbedding(ctx, text)
		if err != nil {
			return nil, err
		}

		embeddings[i] = embedding
	}

	return embeddings, nil
}

func writeDoc(t *testing.T, dir, name, content string) {
	t.Helper()

	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write doc: %v", err)
	}
}

func TestMemoryIndex_QueryRanksBySimilarity(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "alpha.md", "# Alpha\n\nall about alpha things\n")
	writeDoc(t, dir, "beta.md", "# Beta\n\nall about beta things\n")

	idx, err := NewMemoryIndex(context.Background(), dir, &fakeEmbedder{})
	if err != nil {
		t.Fatalf("failed to build index: %v", err)
	}

	defer idx.Close()

	if idx.Len() != 2 {
		t.Fatalf("expected 2 chunks indexed, got %d", idx.Len())
	}

	results, err := idx.Query(context.Background(), "tell me about alpha", 2)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	if results[0].DocName != "alpha" {
		t.Errorf("expected alpha ranked first, got %s", results[0].DocName)
	}

	if results[0].Similarity <= results[1].Similarity {
		t.Errorf("results not sorted by similarity: %f <= %f", results[0].Similarity, results[1].Similarity)
	}
}

func TestMemoryIndex_TopKLimit(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"one.md", "two.md", "three.md"} {
		writeDoc(t, dir, name, "# Doc\n\nsome alpha content\n")
	}

	idx, err := NewMemoryIndex(context.Background(), dir, &fakeEmbedder{})
	if err != nil {
		t.Fatalf("failed to build index: %v", err)
	}

	defer idx.Close()

	results, err := idx.Query(context.Background(), "alpha", 2)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}

	if len(results) != 2 {
		t.Errorf("expected topK to limit results to 2, got %d", len(results))
	}
}

func TestMemoryIndex_EmptyDirectory(t *testing.T) {
	embedder := &fakeEmbedder{}

	idx, err := NewMemoryIndex(context.Background(), t.TempDir(), embedder)
	if err != nil {
		t.Fatalf("empty directory should build an empty index, got error: %v", err)
	}

	defer idx.Close()

	if idx.Len() != 0 {
		t.Fatalf("expected empty index, got %d chunks", idx.Len())
	}

	embedderCallsBefore := embedder.calls

	results, err := idx.Query(context.Background(), "anything", 4)
	if err != nil {
		t.Fatalf("query against empty index failed: %v", err)
	}

	if results != nil {
		t.Errorf("expected nil results, got %v", results)
	}

	// no point embedding the query when there is nothing to compare against
	if embedder.calls != embedderCallsBefore {
		t.Error("query embedding should be skipped for an empty index")
	}
}

func TestMemoryIndex_CreatesMissingDocsDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "docs")

	idx, err := NewMemoryIndex(context.Background(), dir, &fakeEmbedder{})
	if err != nil {
		t.Fatalf("missing docs dir should be created, got error: %v", err)
	}

	defer idx.Close()

	if _, err := os.Stat(dir); err != nil {
		t.Errorf("docs directory was not created: %v", err)
	}
}

func TestMemoryIndex_ReloadPicksUpNewDocuments(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "alpha.md", "# Alpha\n\nalpha content\n")

	idx, err := NewMemoryIndex(context.Background(), dir, &fakeEmbedder{})
	if err != nil {
		t.Fatalf("failed to build index: %v", err)
	}

	defer idx.Close()

	if idx.Len() != 1 {
		t.Fatalf("expected 1 chunk, got %d", idx.Len())
	}

	writeDoc(t, dir, "beta.md", "# Beta\n\nbeta content\n")

	stats, err := idx.Reload(context.Background())
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}

	if stats.Documents != 2 || stats.Chunks != 2 {
		t.Errorf("unexpected reload stats: %+v", stats)
	}

	if idx.Len() != 2 {
		t.Errorf("expected 2 chunks after reload, got %d", idx.Len())
	}
}

func TestMemoryIndex_ReloadSwapsAtomically(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "alpha.md", "# Alpha\n\nalpha content\n")

	idx, err := NewMemoryIndex(context.Background(), dir, &fakeEmbedder{})
	if err != nil {
		t.Fatalf("failed to build index: %v", err)
	}

	defer idx.Close()

	// grab the snapshot a long-running query would be using
	before := idx.snap.Load()

	writeDoc(t, dir, "beta.md", "# Beta\n\nbeta content\n")

	if _, err := idx.Reload(context.Background()); err != nil {
		t.Fatalf("reload failed: %v", err)
	}

	// the old snapshot is untouched, readers holding it stay consistent
	if len(before.chunks) != 1 {
		t.Errorf("previous snapshot mutated during reload: %d chunks", len(before.chunks))
	}

	if len(idx.snap.Load().chunks) != 2 {
		t.Errorf("new snapshot not visible after reload")
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float32
		expected float32
	}{
		{"identical direction", []float32{1, 0}, []float32{2, 0}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"zero vector", []float32{0, 0}, []float32{1, 0}, 0},
		{"length mismatch", []float32{1, 0}, []float32{1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cosineSimilarity(tt.a, tt.b)

			if diff := got - tt.expected; diff > 1e-6 || diff < -1e-6 {
				t.Errorf("cosineSimilarity = %f, expected %f", got, tt.expected)
			}
		})
	}
}
