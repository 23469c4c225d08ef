package emitter

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/rickchristie/emitter/schema"
	"gopkg.in/yaml.v3"
)

// Config configures an Emitter.
//
// Config can be loaded from YAML with LoadConfig:
//
//	# emitter.yaml
//	max_listeners: 25
type Config struct {
	// MaxListeners is the maximum number of distinct event names the Emitter tracks.
	MaxListeners int `yaml:"max_listeners" json:"max_listeners"`
}

// DefaultConfig returns the configuration used by New.
func DefaultConfig() Config {
	return Config{MaxListeners: DefaultMaxListeners}
}

// Option customizes an Emitter created by New.
type Option func(*Emitter)

// WithMaxListeners sets the capacity of the new Emitter.
func WithMaxListeners(n int) Option {
	return func(e *Emitter) {
		e.maxListeners = n
	}
}

var configSchema = schema.MustCompile(schema.Closed(schema.Object(map[string]*schema.Property{
	"max_listeners": schema.Integer("Maximum number of distinct event names").
		Min(0).
		Default(DefaultMaxListeners),
})))

// ErrMultipleDocuments is returned by LoadConfig when the input holds more than one YAML
// document.
var ErrMultipleDocuments = errors.New("config must be a single YAML document")

// LoadConfig reads a YAML configuration document. Fields absent from the document keep their
// DefaultConfig value, and an empty document yields DefaultConfig. Input with a second
// document after a --- separator is rejected with ErrMultipleDocuments.
//
// The document is validated before it is applied: max_listeners must be a non-negative whole
// number and unknown keys are rejected. Validation failures are *schema.ValidationError.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(r)
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to decode config: %w", err)
	}

	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return cfg, fmt.Errorf("failed to decode config: %w", err)
		}
		return cfg, ErrMultipleDocuments
	}

	if doc == nil {
		return cfg, nil
	}

	if err := configSchema.Validate(doc); err != nil {
		return cfg, err
	}

	// The document is valid, so its JSON form decodes cleanly onto the defaults.
	b, err := json.Marshal(doc)
	if err != nil {
		return cfg, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to apply config: %w", err)
	}
	return cfg, nil
}
