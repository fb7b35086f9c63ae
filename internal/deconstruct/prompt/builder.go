package prompt

import "fmt"

// Builder constructs prompts for the gateway
type Builder struct{}

// NewBuilder creates a new prompt builder
func NewBuilder() *Builder {
	return &Builder{}
}

// BuildDeconstructPrompt embeds the title verbatim into the instruction
func (b *Builder) BuildDeconstructPrompt(title string) string {
	return fmt.Sprintf(DeconstructPromptZh, title)
}
