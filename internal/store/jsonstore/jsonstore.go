package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/idilsaglam/tada/internal/model"
)

// JSON-backed slot storage. A slot holds one JSON array of {id, text}
// objects and nothing else: no envelope, no version field.

// ErrEmpty means the slot has never been written.
var ErrEmpty = errors.New("slot is empty")

// Slot is a single named, overwrite-only storage cell.
type Slot interface {
	Read() ([]byte, error)
	Write(b []byte) error
}

const slotSchemaURL = "tada://slot.schema.json"

const slotSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "text"],
    "properties": {
      "id":   {"type": "string", "minLength": 1},
      "text": {"type": "string", "minLength": 1}
    }
  }
}`

var schema = jsonschema.MustCompileString(slotSchemaURL, slotSchema)

// Encode serializes todos for the slot. A nil list encodes as [].
func Encode(todos []model.Todo) ([]byte, error) {
	if todos == nil {
		todos = []model.Todo{}
	}
	b, err := json.MarshalIndent(todos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return b, nil
}

// Decode parses slot content. Content that is not JSON, does not match the
// slot schema or breaks the list invariants is rejected.
func Decode(b []byte) ([]model.Todo, error) {
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	var todos []model.Todo
	if err := json.Unmarshal(b, &todos); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if err := model.Validate(todos); err != nil {
		return nil, fmt.Errorf("invalid list: %w", err)
	}
	if todos == nil {
		todos = []model.Todo{}
	}
	return todos, nil
}

// Load reads and decodes the slot. An unwritten slot yields an empty list
// together with ErrEmpty.
func Load(s Slot) ([]model.Todo, error) {
	b, err := s.Read()
	if err != nil {
		if errors.Is(err, ErrEmpty) {
			return []model.Todo{}, err
		}
		return nil, fmt.Errorf("read slot: %w", err)
	}
	return Decode(b)
}

// Save encodes todos and overwrites the slot.
func Save(s Slot, todos []model.Todo) error {
	b, err := Encode(todos)
	if err != nil {
		return err
	}
	if err := s.Write(b); err != nil {
		return fmt.Errorf("write slot: %w", err)
	}
	return nil
}
