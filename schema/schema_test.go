package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------
// Builder Tests
// -----------------------------------------------------------------------------

func TestObject_Build(t *testing.T) {
	raw := Closed(Object(map[string]*Property{
		"max_listeners": Integer("Capacity").Min(0).Default(10),
	}))

	assert.Equal(t, map[string]any{
		"type": "object",
		"properties": map[string]any{
			"max_listeners": map[string]any{
				"type":        "integer",
				"description": "Capacity",
				"minimum":     float64(0),
				"default":     10,
			},
		},
		"additionalProperties": false,
	}, raw)
}

// -----------------------------------------------------------------------------
// Compile and Validate Tests
// -----------------------------------------------------------------------------

func TestCompile_Nil(t *testing.T) {
	s, err := Compile(nil)

	require.NoError(t, err)
	assert.Nil(t, s)
	assert.NoError(t, s.Validate(map[string]any{"anything": true}))
}

func TestCompile_InvalidSchema(t *testing.T) {
	_, err := Compile(map[string]any{"type": 12})

	assert.Error(t, err)
}

func TestMustCompile_PanicsOnInvalidSchema(t *testing.T) {
	assert.Panics(t, func() {
		MustCompile(map[string]any{"type": 12})
	})
}

func TestSchema_Validate(t *testing.T) {
	s := MustCompile(Closed(Object(map[string]*Property{
		"max_listeners": Integer("Capacity").Min(0),
	})))

	tests := []struct {
		name    string
		data    any
		wantErr bool
	}{
		{name: "go int", data: map[string]any{"max_listeners": 5}},
		{name: "whole float", data: map[string]any{"max_listeners": 5.0}},
		{name: "missing", data: map[string]any{}},
		{name: "fraction", data: map[string]any{"max_listeners": 5.5}, wantErr: true},
		{name: "string", data: map[string]any{"max_listeners": "5"}, wantErr: true},
		{name: "below minimum", data: map[string]any{"max_listeners": -3}, wantErr: true},
		{name: "extra key", data: map[string]any{"other": 1}, wantErr: true},
		{name: "not an object", data: []any{1, 2}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := s.Validate(tc.data)

			if !tc.wantErr {
				assert.NoError(t, err)
				return
			}
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Contains(t, err.Error(), "schema validation failed")
		})
	}
}

func TestSchema_Validate_UnencodableData(t *testing.T) {
	s := MustCompile(Object(nil))

	err := s.Validate(map[string]any{"fn": func() {}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to marshal document")
}
