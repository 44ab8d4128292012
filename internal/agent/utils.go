package agent

import (
	"strings"

	"github.com/brooffline/server/internal/index"
)

// picks docs mode when the lower-cased message contains any docs keyword,
// llm mode otherwise
func DetectMode(message string, keywords []string) Mode {
	lowered := strings.ToLower(message)

	for _, keyword := range keywords {
		if strings.Contains(lowered, keyword) {
			return ModeDocs
		}
	}

	return ModeLLM
}

// builds deduplicated source references for the response, one per document
func buildSourceReferences(results []index.SearchResult) []SourceReference {
	refs := make([]SourceReference, 0, len(results))
	seen := make(map[string]bool)

	for _, result := range results {
		if seen[result.Path] {
			continue
		}

		seen[result.Path] = true
		refs = append(refs, SourceReference{
			DocName:      result.DocName,
			SectionTitle: result.SectionTitle,
			Path:         result.Path,
		})
	}

	return refs
}
