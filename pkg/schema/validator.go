package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Mindburn-Labs/sdui/pkg/canonicalize"
	"github.com/Mindburn-Labs/sdui/pkg/token"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("schema: node does not match schema")

// cacheExpiration bounds how long an unused validator stays cached.
// Entries are content-addressed and expire on read, so no janitor runs.
const cacheExpiration = 30 * time.Minute

// compiled holds validators keyed by the digest of the schema document.
var compiled = sync.OnceValue(func() *gocache.Cache {
	return gocache.New(cacheExpiration, 0)
})

// Validator checks node JSON against a compiled schema document.
type Validator struct {
	digest string
	schema *jsonschema.Schema
}

// NewValidator compiles doc. Compiling the same document twice returns the
// cached validator.
func NewValidator(doc *Schema) (*Validator, error) {
	if doc == nil {
		return nil, errors.New("schema: nil document")
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("schema: encode: %w", err)
	}
	canonical, err := canonicalize.Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("schema: canonicalize: %w", err)
	}
	digest := canonicalize.HashBytes(canonical)
	if v, ok := compiled().Get(digest); ok {
		if val, ok := v.(*Validator); ok {
			return val, nil
		}
	}

	url := doc.ID
	if url == "" {
		url = DefaultOptions().ID
	}
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft7
	if err := c.AddResource(url, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("schema: load: %w", err)
	}
	s, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("schema: compile: %w", err)
	}
	v := &Validator{digest: digest, schema: s}
	compiled().SetDefault(digest, v)
	return v, nil
}

// Digest identifies the compiled document.
func (v *Validator) Digest() string { return v.digest }

// Validate checks one serialized node.
func (v *Validator) Validate(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := v.schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// ValidateNode encodes n and validates it.
func (v *Validator) ValidateNode(n token.Node) error {
	data, err := token.Marshal(n)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return v.Validate(data)
}
