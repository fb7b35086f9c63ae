// Package deconstruct wraps the Gemini call that produces a book breakdown.
package deconstruct

import (
	"context"
	"errors"
	"log"
	"time"

	"book-deconstructor/internal/deconstruct/deps"
	"book-deconstructor/internal/deconstruct/prompt"
	"book-deconstructor/internal/deconstruct/response"
	"book-deconstructor/internal/metrics"
	"book-deconstructor/internal/model"
)

// DefaultModel is the Gemini model used when GEMINI_MODEL is not set
const DefaultModel = "gemini-3-flash-preview"

// DefaultSampling gives moderate creative variance. Not user-configurable.
var DefaultSampling = deps.Sampling{
	Temperature: 0.7,
	TopP:        0.95,
	TopK:        40,
}

// Gateway is the live Deconstructor backed by an LLM client.
// Every call issues exactly one request; nothing is cached or retried.
type Gateway struct {
	llm           deps.LLMClient
	promptBuilder *prompt.Builder
}

// NewGateway creates a Gateway over llm
func NewGateway(llm deps.LLMClient) *Gateway {
	return &Gateway{
		llm:           llm,
		promptBuilder: prompt.NewBuilder(),
	}
}

// NewLiveGateway creates a Gateway talking to the Gemini API
func NewLiveGateway(ctx context.Context, apiKey, modelName string) (*Gateway, error) {
	client, err := NewGenAIClient(ctx, apiKey, "")
	if err != nil {
		return nil, err
	}
	if modelName == "" {
		modelName = DefaultModel
	}
	return NewGateway(NewGeminiLLMClient(client, modelName)), nil
}

// Deconstruct asks the model for a breakdown of title
func (g *Gateway) Deconstruct(ctx context.Context, title string) (*model.BookDeconstruction, error) {
	start := time.Now()
	log.Printf("[GATEWAY] Deconstructing title=%q", title)

	text, err := g.llm.GenerateStructured(ctx, g.promptBuilder.BuildDeconstructPrompt(title), BookSchema(), DefaultSampling)
	if err != nil {
		ge := transportError(err)
		g.record(ge.Kind, start)
		log.Printf("[GATEWAY] Request failed kind=%s after %v: %v", ge.Kind, time.Since(start), err)
		return nil, ge
	}

	book, err := response.Parse(text, RequiredFields)
	if err != nil {
		ge := &GatewayError{Kind: parseErrorKind(err), Err: err}
		g.record(ge.Kind, start)
		log.Printf("[GATEWAY] Unusable response kind=%s: %v", ge.Kind, err)
		return nil, ge
	}

	g.record("ok", start)
	log.Printf("[GATEWAY] Deconstructed %q in %v (%d chapters)", book.Title, time.Since(start), len(book.KeyChapters))
	return book, nil
}

func (g *Gateway) record(kind ErrorKind, start time.Time) {
	metrics.RecordGateway(string(kind), time.Since(start))
}

func parseErrorKind(err error) ErrorKind {
	switch {
	case errors.Is(err, response.ErrEmpty):
		return KindEmpty
	case errors.Is(err, response.ErrMalformed):
		return KindMalformed
	default:
		return KindSchema
	}
}
