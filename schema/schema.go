// Package schema builds and compiles JSON Schemas for validating configuration documents.
//
// # Quick Start
//
//	s := schema.MustCompile(schema.Closed(schema.Object(map[string]*schema.Property{
//	    "max_listeners": schema.Integer("Distinct event names tracked").Min(0),
//	})))
//
//	var doc map[string]any
//	_ = yaml.Unmarshal(data, &doc)
//	if err := s.Validate(doc); err != nil {
//	    return err // *schema.ValidationError
//	}
//
// Validate accepts values decoded by any YAML or JSON decoder; they are normalized to their
// JSON form before validation, so a YAML int and a JSON number validate the same way.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a compiled validator.
type Schema struct {
	compiled *jsonschema.Schema
}

// Validate checks data against the schema. A nil Schema accepts everything.
func (s *Schema) Validate(data any) error {
	if s == nil || s.compiled == nil {
		return nil
	}
	normalized, err := normalize(data)
	if err != nil {
		return err
	}
	if err := s.compiled.Validate(normalized); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}

// normalize re-reads data through encoding/json so that its numbers and maps have the shapes
// the validator expects.
func normalize(data any) (any, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return v, nil
}

// ValidationError wraps a JSON Schema validation error with a cleaner message.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("schema validation failed: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Compile compiles a raw schema map. A nil map compiles to a nil Schema.
func Compile(raw map[string]any) (*Schema, error) {
	if raw == nil {
		return nil, nil
	}

	const location = "config.schema.json"
	doc, err := normalize(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(location, doc); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	compiled, err := c.Compile(location)
	if err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	return &Schema{compiled: compiled}, nil
}

// MustCompile is like Compile but panics on error.
// Use this for schemas defined at init time.
func MustCompile(raw map[string]any) *Schema {
	s, err := Compile(raw)
	if err != nil {
		panic(err)
	}
	return s
}

// Object creates an object schema whose properties are all optional.
func Object(properties map[string]*Property) map[string]any {
	props := make(map[string]any, len(properties))
	for name, prop := range properties {
		props[name] = prop.build()
	}

	return map[string]any{
		"type":       "object",
		"properties": props,
	}
}

// Closed forbids properties not declared in the object schema and returns it.
func Closed(object map[string]any) map[string]any {
	object["additionalProperties"] = false
	return object
}

// Property represents a property in an object schema.
type Property struct {
	typ         string
	description string
	minimum     *float64
	def         any
}

func (p *Property) build() map[string]any {
	m := map[string]any{}
	if p.typ != "" {
		m["type"] = p.typ
	}
	if p.description != "" {
		m["description"] = p.description
	}
	if p.minimum != nil {
		m["minimum"] = *p.minimum
	}
	if p.def != nil {
		m["default"] = p.def
	}
	return m
}

// Integer creates an integer property. Whole-valued numbers such as 5.0 are integers.
func Integer(description string) *Property {
	return &Property{typ: "integer", description: description}
}

// Min sets the minimum value for integer properties.
func (p *Property) Min(min float64) *Property {
	p.minimum = &min
	return p
}

// Default records the default value. It is documentation only; Validate does not apply it.
func (p *Property) Default(value any) *Property {
	p.def = value
	return p
}
