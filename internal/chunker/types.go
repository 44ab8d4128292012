package chunker

// a piece of a document ready for embedding
type Chunk struct {
	DocName      string // file name without extension
	Path         string // path relative to the docs root
	SectionTitle string // markdown section heading, empty for untitled content
	Content      string
}

// a markdown section delimited by a header
type Section struct {
	Title   string
	Level   int
	Content string
}

// controls how documents are split
type ChunkOptions struct {
	MaxTokens       int
	OverlapTokens   int
	PreserveHeaders bool
}
