package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/brooffline/server/internal/llm"
)

const defaultTopK = 4

// returned when a request names a mode the agent does not know
var ErrInvalidMode = errors.New("invalid mode")

func New(ret Retriever, generator llm.TextGenerator, opts Options) *Agent {
	topK := opts.TopK
	if topK < 1 {
		topK = defaultTopK
	}

	return &Agent{
		retriever: ret,
		generator: generator,
		keywords:  opts.DocsKeywords,
		topK:      topK,
	}
}

// answers a single chat message, resolving auto mode first
func (a *Agent) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	mode, err := a.ResolveMode(req.Message, req.Mode)
	if err != nil {
		return nil, err
	}

	switch mode {
	case ModeLLM:
		return a.complete(ctx, req.Message)
	case ModeDocs:
		return a.answerFromDocs(ctx, req.Message)
	default:
		// ResolveMode never returns anything else
		return nil, fmt.Errorf("%w: %s", ErrInvalidMode, mode)
	}
}

// maps a requested mode to the mode that will actually run
// empty and auto go through keyword detection, explicit modes pass through
func (a *Agent) ResolveMode(message string, requested Mode) (Mode, error) {
	switch requested {
	case "", ModeAuto:
		return DetectMode(message, a.keywords), nil
	case ModeLLM, ModeDocs:
		return requested, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidMode, requested)
	}
}

func (a *Agent) complete(ctx context.Context, message string) (*ChatResponse, error) {
	result, err := a.generator.Complete(ctx, message)
	if err != nil {
		return nil, fmt.Errorf("completion failed: %w", err)
	}

	return &ChatResponse{
		Mode:         ModeLLM,
		Response:     result.Text,
		Model:        result.Model,
		InputTokens:  result.InputTokens,
		OutputTokens: result.OutputTokens,
	}, nil
}

func (a *Agent) answerFromDocs(ctx context.Context, message string) (*ChatResponse, error) {
	results, err := a.retriever.Query(ctx, message, a.topK)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve docs: %w", err)
	}

	prompt := buildDocsPrompt(message, results)

	result, err := a.generator.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("completion failed: %w", err)
	}

	return &ChatResponse{
		Mode:            ModeDocs,
		Response:        result.Text,
		Model:           result.Model,
		ChunksRetrieved: len(results),
		Sources:         buildSourceReferences(results),
		InputTokens:     result.InputTokens,
		OutputTokens:    result.OutputTokens,
	}, nil
}
