package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/myrjola/adaptlearn/internal/errors"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

var ErrInvalidResponse = errors.NewSentinel("invalid model response")

// Schema is a named JSON schema used both to constrain the model's response
// format and to validate what actually came back.
type Schema struct {
	Name       string
	Definition json.RawMessage
}

// compiledSchemas caches compiled schemas by name.
var compiledSchemas sync.Map // map[string]*jsonschema.Schema

// Validate checks raw against the schema. It returns ErrInvalidResponse when
// raw is not valid JSON or does not conform.
func (s *Schema) Validate(raw json.RawMessage) error {
	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return errors.Wrap(ErrInvalidResponse, "parse response JSON", slog.String("schema", s.Name))
	}
	compiled, err := s.compile()
	if err != nil {
		return errors.Wrap(err, "compile schema", slog.String("schema", s.Name))
	}
	if err = compiled.Validate(parsed); err != nil {
		return errors.Wrap(ErrInvalidResponse, err.Error(), slog.String("schema", s.Name))
	}
	return nil
}

func (s *Schema) compile() (*jsonschema.Schema, error) {
	if cached, ok := compiledSchemas.Load(s.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	definition, err := jsonschema.UnmarshalJSON(bytes.NewReader(s.Definition))
	if err != nil {
		return nil, errors.Wrap(err, "parse schema definition")
	}

	compiler := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", s.Name)
	if err = compiler.AddResource(schemaURL, definition); err != nil {
		return nil, errors.Wrap(err, "add schema resource")
	}
	compiled, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, errors.Wrap(err, "compile schema")
	}

	compiledSchemas.Store(s.Name, compiled)
	return compiled, nil
}
