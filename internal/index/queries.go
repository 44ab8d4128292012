package index

const (
	createExtensionQuery = "CREATE EXTENSION IF NOT EXISTS vector"

	// %d is the embedding dimension for the configured model
	createTableQueryFmt = `
		CREATE TABLE IF NOT EXISTS doc_chunks (
			id UUID PRIMARY KEY,
			doc_name TEXT NOT NULL,
			path TEXT NOT NULL,
			section_title TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL,
			embedding vector(%d) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`

	createIndexQuery = `
		CREATE INDEX IF NOT EXISTS doc_chunks_embedding_idx
		ON doc_chunks USING ivfflat (embedding vector_cosine_ops)
		WITH (lists = 100)
	`

	getChunkCountQuery   = "SELECT COUNT(*) FROM doc_chunks"
	deleteAllChunksQuery = "DELETE FROM doc_chunks"

	insertChunkQuery = `
		INSERT INTO doc_chunks (id, doc_name, path, section_title, content, embedding)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	// <=> is pgvector cosine distance, similarity = 1 - distance
	searchChunksQuery = `
		SELECT
			id::text,
			doc_name,
			path,
			section_title,
			content,
			1 - (embedding <=> $1) AS similarity
		FROM doc_chunks
		ORDER BY embedding <=> $1
		LIMIT $2
	`
)
