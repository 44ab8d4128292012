package agent

import (
	"fmt"
	"strings"

	"github.com/brooffline/server/internal/index"
)

// assembles the grounded prompt for docs mode
// an empty result set still produces a prompt so the model can say so
// instead of the request failing
func buildDocsPrompt(question string, results []index.SearchResult) string {
	var builder strings.Builder

	builder.WriteString("You are a helpful assistant answering questions about a local document collection.\n")
	builder.WriteString("Answer using only the context below. If the context does not contain the answer, say so.\n\n")

	if len(results) == 0 {
		builder.WriteString("CONTEXT: no matching documents were found in the index.\n\n")
	} else {
		// group chunks by document
		docMap := make(map[string][]index.SearchResult)
		docOrder := []string{}

		for _, result := range results {
			if _, exists := docMap[result.DocName]; !exists {
				docOrder = append(docOrder, result.DocName)
			}

			docMap[result.DocName] = append(docMap[result.DocName], result)
		}

		builder.WriteString("CONTEXT:\n\n")

		for _, docName := range docOrder {
			builder.WriteString("─────────────────────────────────────────\n")
			builder.WriteString(fmt.Sprintf("Document: %s\n", docName))
			builder.WriteString("─────────────────────────────────────────\n")

			for _, result := range docMap[docName] {
				if result.SectionTitle != "" {
					builder.WriteString(fmt.Sprintf("\nSECTION: %s\n", result.SectionTitle))
				} else {
					builder.WriteString("\n")
				}

				builder.WriteString(result.Content)
				builder.WriteString("\n")
			}

			builder.WriteString("\n")
		}
	}

	builder.WriteString("QUESTION: ")
	builder.WriteString(question)
	builder.WriteString("\n\nANSWER:")

	return builder.String()
}
