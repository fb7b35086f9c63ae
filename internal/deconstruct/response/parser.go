package response

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"book-deconstructor/internal/model"
)

// stringArrayFields are the ARRAY of STRING fields; null items are rejected
var stringArrayFields = []string{"targetAudience", "mainThemes", "practicalTakeaways"}

var (
	// ErrEmpty means the model returned no text at all
	ErrEmpty = errors.New("empty response")
	// ErrMalformed means the text is not a JSON document
	ErrMalformed = errors.New("response is not valid JSON")
	// ErrSchema means the JSON does not have the BookDeconstruction shape
	ErrSchema = errors.New("response does not match schema")
)

// Parse decodes the model's reply into a BookDeconstruction.
// Every field in required must be present and non-null and every value must
// decode into its Go type. Nothing is repaired or salvaged.
func Parse(text string, required []string) (*model.BookDeconstruction, error) {
	raw := []byte(strings.TrimSpace(text))
	if len(raw) == 0 {
		return nil, ErrEmpty
	}
	if !json.Valid(raw) {
		return nil, ErrMalformed
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: top level is not an object", ErrSchema)
	}
	for _, name := range required {
		if isAbsent(fields[name]) {
			return nil, fmt.Errorf("%w: missing required field %q", ErrSchema, name)
		}
	}
	if err := checkChapters(fields["keyChapters"]); err != nil {
		return nil, err
	}
	for _, name := range stringArrayFields {
		if err := checkStrings(name, fields[name]); err != nil {
			return nil, err
		}
	}

	var book model.BookDeconstruction
	if err := json.Unmarshal(raw, &book); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	return &book, nil
}

// checkChapters enforces the required keys of each keyChapters item
func checkChapters(raw json.RawMessage) error {
	if isAbsent(raw) {
		return nil
	}
	var chapters []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &chapters); err != nil {
		return fmt.Errorf("%w: keyChapters: %v", ErrSchema, err)
	}
	for i, ch := range chapters {
		for _, name := range []string{"title", "summary"} {
			if isAbsent(ch[name]) {
				return fmt.Errorf("%w: keyChapters[%d] missing %q", ErrSchema, i, name)
			}
		}
	}
	return nil
}

// checkStrings rejects null items, which would otherwise decode as ""
func checkStrings(name string, raw json.RawMessage) error {
	if isAbsent(raw) {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSchema, name, err)
	}
	for i, item := range items {
		if isAbsent(item) {
			return fmt.Errorf("%w: %s[%d] is null", ErrSchema, name, i)
		}
	}
	return nil
}

func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
