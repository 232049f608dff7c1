// Package document is the file format that carries tokens and screens
// between server and tooling: a schema version, the token list, and the
// screen payloads that reference them. JSON and YAML are both accepted.
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Mindburn-Labs/sdui/pkg/canonicalize"
	"github.com/Mindburn-Labs/sdui/pkg/registry"
	"github.com/Mindburn-Labs/sdui/pkg/screen"
	"github.com/Mindburn-Labs/sdui/pkg/token"
	"github.com/Mindburn-Labs/sdui/pkg/versioning"
)

// CurrentSchemaVersion is written by Encode when a document has none.
var CurrentSchemaVersion = versioning.Version{Major: 1}

// ErrMalformed is returned for input that is not a document.
var ErrMalformed = errors.New("document: malformed")

// Document is a set of tokens plus the screens built from them.
type Document struct {
	SchemaVersion versioning.Version `json:"schemaVersion"`
	Tokens        token.NodeList     `json:"tokens"`
	Screens       []screen.Payload   `json:"screens,omitempty"`
}

// Format is a serialization of a Document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatOf picks the format from a file extension; anything that is not
// .yaml or .yml is JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

type wire struct {
	SchemaVersion *versioning.Version `json:"schemaVersion"`
	Tokens        []json.RawMessage   `json:"tokens"`
	Screens       []screen.Payload    `json:"screens"`
}

// DecodeJSON parses a JSON document. opts apply to every token.
func DecodeJSON(data []byte, opts ...token.DecodeOption) (*Document, error) {
	var w wire
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	doc := &Document{SchemaVersion: CurrentSchemaVersion, Screens: w.Screens}
	if w.SchemaVersion != nil {
		doc.SchemaVersion = *w.SchemaVersion
	}
	for i, raw := range w.Tokens {
		n, err := token.Decode(raw, opts...)
		if err != nil {
			return nil, fmt.Errorf("tokens[%d]: %w", i, err)
		}
		doc.Tokens = append(doc.Tokens, n)
	}
	return doc, nil
}

// DecodeYAML parses a YAML document by way of its JSON equivalent.
func DecodeYAML(data []byte, opts ...token.DecodeOption) (*Document, error) {
	b, err := YAMLToJSON(data)
	if err != nil {
		return nil, err
	}
	return DecodeJSON(b, opts...)
}

// Decode parses data in format f.
func Decode(data []byte, f Format, opts ...token.DecodeOption) (*Document, error) {
	if f == FormatYAML {
		return DecodeYAML(data, opts...)
	}
	return DecodeJSON(data, opts...)
}

// Load reads and decodes the document at path.
func Load(path string, opts ...token.DecodeOption) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	doc, err := Decode(data, FormatOf(path), opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Encode serializes d in format f. JSON output is indented.
func (d *Document) Encode(f Format) ([]byte, error) {
	out := *d
	if out.SchemaVersion.IsZero() {
		out.SchemaVersion = CurrentSchemaVersion
	}
	b, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return nil, err
	}
	if f == FormatYAML {
		return JSONToYAML(b)
	}
	return append(b, '\n'), nil
}

// Registry registers every listed token in a new registry.
func (d *Document) Registry(opts ...registry.Option) *registry.Registry {
	r := registry.New(opts...)
	for _, n := range d.Tokens {
		r.Register(n)
	}
	return r
}

// Validate returns the payload structure findings, the registry findings,
// and every unreachable screen reference of d.
func (d *Document) Validate(opts ...registry.Option) []string {
	var out []string
	r := d.Registry(opts...)
	out = append(out, r.ValidateRegistry()...)
	for _, s := range d.Screens {
		out = append(out, s.Check()...)
		for _, id := range r.ValidateScreenPayload(s) {
			out = append(out, fmt.Sprintf("screen %q: token %q is unreachable", s.ID, id))
		}
	}
	return out
}

// Screen returns the screen with the given id.
func (d *Document) Screen(id string) (screen.Payload, bool) {
	for _, s := range d.Screens {
		if s.ID == id {
			return s, true
		}
	}
	return screen.Payload{}, false
}

// Digest returns the SHA-256 of the canonical JSON form of d.
func (d *Document) Digest() (string, error) {
	return canonicalize.CanonicalHash(d)
}

// YAMLToJSON converts a YAML document to JSON.
func YAMLToJSON(data []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	v, err := jsonable(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// JSONToYAML converts JSON to YAML.
func JSONToYAML(data []byte) ([]byte, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return yaml.Marshal(v)
}

// jsonable rewrites YAML-only shapes, such as non-string map keys, into
// values encoding/json accepts.
func jsonable(v any) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			c, err := jsonable(e)
			if err != nil {
				return nil, err
			}
			t[k] = c
		}
		return t, nil
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			c, err := jsonable(e)
			if err != nil {
				return nil, err
			}
			out[fmt.Sprint(k)] = c
		}
		return out, nil
	case []any:
		for i, e := range t {
			c, err := jsonable(e)
			if err != nil {
				return nil, err
			}
			t[i] = c
		}
		return t, nil
	}
	return v, nil
}
