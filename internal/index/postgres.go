package index

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/brooffline/server/internal/llm"
	"github.com/brooffline/server/internal/logger"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

// embedding dimensions for known local models; anything unknown falls back
// to the nomic default
func dimensionForModel(model string) int {
	switch model {
	case "nomic-embed-text":
		return 768
	case "mxbai-embed-large":
		return 1024
	case "all-minilm":
		return 384
	case "text-embedding-3-small":
		return 1536
	default:
		return 768
	}
}

// document index backed by Postgres with pgvector
type PostgresIndex struct {
	pool     *pgxpool.Pool
	docsDir  string
	embedder llm.Embedder

	reloadMu sync.Mutex
}

// connects to Postgres, ensures the schema, and performs the initial build
// if the table is empty
func NewPostgresIndex(ctx context.Context, connString, docsDir string, embedder llm.Embedder, embedModel string) (*PostgresIndex, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	idx := &PostgresIndex{
		pool:     pool,
		docsDir:  docsDir,
		embedder: embedder,
	}

	if err := idx.ensureSchema(ctx, dimensionForModel(embedModel)); err != nil {
		pool.Close()
		return nil, err
	}

	// load-or-create: reuse previously ingested chunks, build only when empty
	count, err := idx.chunkCount(ctx)
	if err != nil {
		pool.Close()
		return nil, err
	}

	if count == 0 {
		if _, err := idx.Reload(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("initial index build failed: %w", err)
		}
	} else {
		logger.Info("reusing existing postgres index", "chunks", count)
	}

	return idx, nil
}

func (idx *PostgresIndex) ensureSchema(ctx context.Context, dimension int) error {
	if _, err := idx.pool.Exec(ctx, createExtensionQuery); err != nil {
		return fmt.Errorf("failed to create vector extension: %w", err)
	}

	if _, err := idx.pool.Exec(ctx, fmt.Sprintf(createTableQueryFmt, dimension)); err != nil {
		return fmt.Errorf("failed to create doc_chunks table: %w", err)
	}

	if _, err := idx.pool.Exec(ctx, createIndexQuery); err != nil {
		return fmt.Errorf("failed to create embedding index: %w", err)
	}

	return nil
}

func (idx *PostgresIndex) Reload(ctx context.Context) (*ReloadStats, error) {
	idx.reloadMu.Lock()
	defer idx.reloadMu.Unlock()

	chunks, embeddings, stats, err := buildEmbeddedChunks(ctx, idx.docsDir, idx.embedder)
	if err != nil {
		return nil, err
	}

	// delete and reinsert in one transaction so queries never see a torn index
	tx, err := idx.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			logger.Warn("failed to rollback transaction", "error", err)
		}
	}()

	if _, err := tx.Exec(ctx, deleteAllChunksQuery); err != nil {
		return nil, fmt.Errorf("failed to clear chunks: %w", err)
	}

	batch := &pgx.Batch{}

	for i, chunk := range chunks {
		batch.Queue(insertChunkQuery,
			uuid.New(),
			chunk.DocName,
			chunk.Path,
			chunk.SectionTitle,
			chunk.Content,
			pgvector.NewVector(embeddings[i]),
		)
	}

	br := tx.SendBatch(ctx, batch)

	for i := range len(chunks) {
		if _, err := br.Exec(); err != nil {
			br.Close() //nolint:errcheck,gosec // G104: error path cleanup
			return nil, fmt.Errorf("failed to insert chunk %d: %w", i, err)
		}
	}

	// must close batch results before committing, otherwise connection is still "busy"
	if err := br.Close(); err != nil {
		return nil, fmt.Errorf("failed to close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Info("postgres index rebuilt",
		"documents", stats.Documents,
		"chunks", stats.Chunks,
		"duration", stats.Duration,
	)

	return stats, nil
}

func (idx *PostgresIndex) Query(ctx context.Context, queryText string, topK int) ([]SearchResult, error) {
	embedding, err := idx.embedder.GenerateEmbedding(ctx, queryText)
	if err != nil {
		return nil, fmt.Errorf("failed to generate query embedding: %w", err)
	}

	rows, err := idx.pool.Query(ctx, searchChunksQuery, pgvector.NewVector(embedding), topK)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search query: %w", err)
	}

	defer rows.Close()

	var results []SearchResult

	for rows.Next() {
		var result SearchResult

		err := rows.Scan(
			&result.ID,
			&result.DocName,
			&result.Path,
			&result.SectionTitle,
			&result.Content,
			&result.Similarity,
		)

		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return results, nil
}

func (idx *PostgresIndex) Len() int {
	count, err := idx.chunkCount(context.Background())
	if err != nil {
		return 0
	}

	return count
}

func (idx *PostgresIndex) Close() {
	idx.pool.Close()
}

func (idx *PostgresIndex) chunkCount(ctx context.Context) (int, error) {
	var count int

	if err := idx.pool.QueryRow(ctx, getChunkCountQuery).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to get chunk count: %w", err)
	}

	return count, nil
}
