package deconstruct

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"book-deconstructor/internal/deconstruct/deps"
	"book-deconstructor/internal/deconstruct/response"
	"book-deconstructor/internal/model"
)

var (
	_ deps.Deconstructor = (*Gateway)(nil)
	_ deps.Deconstructor = (*Fixture)(nil)
	_ deps.Deconstructor = (*Failing)(nil)
)

//go:embed fixtures/selfish_gene.json
var selfishGeneJSON string

// Fixture always returns the same record. Used for demo mode and tests.
type Fixture struct {
	Record *model.BookDeconstruction
}

// NewFixture creates a Fixture returning record
func NewFixture(record *model.BookDeconstruction) *Fixture {
	return &Fixture{Record: record}
}

// DemoFixture returns a Fixture with the bundled sample record
func DemoFixture() (*Fixture, error) {
	book, err := response.Parse(selfishGeneJSON, RequiredFields)
	if err != nil {
		return nil, fmt.Errorf("failed to parse demo fixture: %w", err)
	}
	return NewFixture(book), nil
}

// Deconstruct returns a copy of the fixed record regardless of title
func (f *Fixture) Deconstruct(ctx context.Context, _ string) (*model.BookDeconstruction, error) {
	if err := ctx.Err(); err != nil {
		return nil, transportError(err)
	}
	data, err := json.Marshal(f.Record)
	if err != nil {
		return nil, err
	}
	var out model.BookDeconstruction
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Failing always fails with Err
type Failing struct {
	Err error
}

// NewFailing creates a failure simulator
func NewFailing(err error) *Failing {
	return &Failing{Err: err}
}

// Unavailable is used when no API key is configured
func Unavailable() *Failing {
	return NewFailing(&GatewayError{
		Kind:    KindUnavailable,
		Message: UnavailableMessageZh,
		Err:     errors.New("GEMINI_API_KEY is not set"),
	})
}

func (f *Failing) Deconstruct(context.Context, string) (*model.BookDeconstruction, error) {
	return nil, f.Err
}
