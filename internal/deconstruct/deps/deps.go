package deps

import (
	"context"

	"book-deconstructor/internal/model"

	"google.golang.org/genai"
)

// Sampling holds the generation knobs sent with every request
type Sampling struct {
	Temperature float32
	TopP        float32
	TopK        float32
}

// LLMClient abstracts a schema-constrained Gemini call
type LLMClient interface {
	GenerateStructured(ctx context.Context, prompt string, schema *genai.Schema, sampling Sampling) (string, error)
}

// Deconstructor turns a book title into a structured breakdown.
// Implementations: the live Gemini gateway, a fixed fixture, and a failure simulator.
type Deconstructor interface {
	Deconstruct(ctx context.Context, title string) (*model.BookDeconstruction, error)
}
