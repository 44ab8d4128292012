package chunker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brooffline/server/internal/logger"
)

// file extensions picked up from the docs directory
var supportedExtensions = map[string]bool{
	".md":  true,
	".mdx": true,
	".txt": true,
}

func DefaultOptions() ChunkOptions {
	return ChunkOptions{
		MaxTokens:       800,
		OverlapTokens:   100,
		PreserveHeaders: true,
	}
}

// splits one document into embeddable chunks
func ChunkDocument(content, relPath string, opts ChunkOptions) []Chunk {
	docName := strings.TrimSuffix(filepath.Base(relPath), filepath.Ext(relPath))
	content = stripFrontmatter(content)

	sections := splitByHeaders(content)

	var chunks []Chunk

	for _, section := range sections {
		if estimateTokens(section.Content) <= opts.MaxTokens {
			chunks = append(chunks, Chunk{
				DocName:      docName,
				Path:         relPath,
				SectionTitle: section.Title,
				Content:      strings.TrimSpace(section.Content),
			})

			continue
		}

		for _, subChunk := range splitLargeSection(section, opts) {
			chunks = append(chunks, Chunk{
				DocName:      docName,
				Path:         relPath,
				SectionTitle: section.Title,
				Content:      strings.TrimSpace(subChunk),
			})
		}
	}

	return chunks
}

// discovers all supported files under docsPath and chunks them
// returns chunks and a slice of errors encountered (one per failed file)
func ChunkDocuments(docsPath string) ([]Chunk, []error) {
	opts := DefaultOptions()
	var allChunks []Chunk
	var errs []error
	fileCount := 0

	walkErr := filepath.Walk(docsPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			logger.Warn("error accessing path",
				"path", path,
				"error", err,
			)
			errs = append(errs, fmt.Errorf("path %s: %w", path, err))

			return nil // keep walking
		}

		if info.IsDir() || !supportedExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("read %s: %w", path, err))
			return nil
		}

		relPath, err := filepath.Rel(docsPath, path)
		if err != nil {
			relPath = path
		}

		allChunks = append(allChunks, ChunkDocument(string(content), relPath, opts)...)
		fileCount++

		return nil
	})

	if walkErr != nil {
		errs = append(errs, fmt.Errorf("walk %s: %w", docsPath, walkErr))
	}

	logger.Debug("chunked documents",
		"path", docsPath,
		"files", fileCount,
		"chunks", len(allChunks),
	)

	return allChunks, errs
}
