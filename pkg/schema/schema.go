// Package schema generates the draft-07 JSON Schema that describes every
// token variant, and compiles it into a validator for node JSON.
//
// Two generators build the same document: Explicit spells out each variant
// by hand and FromMetadata derives it from token.Variants. Tests hold them
// equal so either can serve as the reference for the other.
package schema

import (
	"encoding/json"

	"github.com/Mindburn-Labs/sdui/pkg/token"
	"github.com/Mindburn-Labs/sdui/pkg/value"
)

// Draft07 is the meta-schema URI written to the root.
const Draft07 = "http://json-schema.org/draft-07/schema#"

// Schema is one JSON Schema node. The root carries $schema, $id and
// definitions; nested nodes leave them empty.
type Schema struct {
	SchemaURI            string             `json:"$schema,omitempty"`
	ID                   string             `json:"$id,omitempty"`
	Ref                  string             `json:"$ref,omitempty"`
	Title                string             `json:"title,omitempty"`
	Description          string             `json:"description,omitempty"`
	Type                 string             `json:"type,omitempty"`
	Const                string             `json:"const,omitempty"`
	Enum                 []string           `json:"enum,omitempty"`
	Minimum              *float64           `json:"minimum,omitempty"`
	Maximum              *float64           `json:"maximum,omitempty"`
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties *Schema            `json:"additionalProperties,omitempty"`
	Items                *Schema            `json:"items,omitempty"`
	AllOf                []*Schema          `json:"allOf,omitempty"`
	OneOf                []*Schema          `json:"oneOf,omitempty"`
	Definitions          map[string]*Schema `json:"definitions,omitempty"`
}

// JSON returns the indented encoding with a trailing newline.
func (s *Schema) JSON() ([]byte, error) {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// Options fill the root header.
type Options struct {
	ID          string
	Title       string
	Description string
}

// DefaultOptions returns the header used when none is configured.
func DefaultOptions() Options {
	return Options{
		ID:          "https://sdui.schemas.local/token.schema.json",
		Title:       "SDUI Token",
		Description: "A server-driven UI token tree.",
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.ID == "" {
		o.ID = d.ID
	}
	if o.Title == "" {
		o.Title = d.Title
	}
	if o.Description == "" {
		o.Description = d.Description
	}
	return o
}

// Definition returns the "#/definitions/<name>" reference.
func Definition(name string) string { return "#/definitions/" + name }

func ref(def string) *Schema { return &Schema{Ref: Definition(def)} }

func prim(jsonType string) *Schema { return &Schema{Type: jsonType} }

func enum(values []string) *Schema { return &Schema{Type: "string", Enum: values} }

func bounded(jsonType string, lo, hi *float64) *Schema {
	return &Schema{Type: jsonType, Minimum: lo, Maximum: hi}
}

func num(f float64) *float64 { return &f }

func object(props map[string]*Schema, required ...string) *Schema {
	return &Schema{Type: "object", Properties: props, Required: required}
}

// variant wraps the variant's own properties with the BaseToken header and
// the "type" discriminator.
func variant(k token.Kind, title, description string, props map[string]*Schema, required ...string) *Schema {
	own := map[string]*Schema{"type": {Const: string(k)}}
	for name, p := range props {
		own[name] = p
	}
	return &Schema{
		Title:       title,
		Description: description,
		AllOf: []*Schema{
			ref(token.DefBaseToken),
			object(own, append([]string{"type"}, required...)...),
		},
	}
}

// anyToken is the oneOf over every variant used at the root and for
// children.
func anyToken() []*Schema {
	kinds := token.Kinds()
	out := make([]*Schema, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, ref(string(k)))
	}
	return out
}

func children() *Schema {
	return &Schema{Type: "array", Items: &Schema{OneOf: anyToken()}}
}

// valueDefinitions are the shared value objects both generators reference.
func valueDefinitions() map[string]*Schema {
	spacing := func() *Schema {
		props := make(map[string]*Schema, 7)
		for _, side := range []string{"all", "horizontal", "vertical", "start", "top", "end", "bottom"} {
			props[side] = bounded("integer", num(0), nil)
		}
		return object(props)
	}
	channel := func() *Schema { return bounded("integer", num(0), num(255)) }

	return map[string]*Schema{
		token.DefPadding: spacing(),
		token.DefMargin:  spacing(),
		token.DefColorValue: object(map[string]*Schema{
			"red":   channel(),
			"green": channel(),
			"blue":  channel(),
			"alpha": channel(),
		}, "red", "green", "blue", "alpha"),
		token.DefBackground: object(map[string]*Schema{
			"color":        ref(token.DefColorValue),
			"borderColor":  ref(token.DefColorValue),
			"borderWidth":  bounded("integer", num(0), nil),
			"cornerRadius": bounded("integer", num(0), nil),
		}),
		token.DefAction: object(map[string]*Schema{
			"type": enum(value.ActionTypes()),
			"data": {Type: "object", AdditionalProperties: prim("string")},
		}, "type"),
		token.DefAccessibility: object(map[string]*Schema{
			"role":       enum(value.Roles()),
			"label":      prim("string"),
			"liveRegion": enum(value.LiveRegions()),
			"enabled":    prim("boolean"),
			"focusable":  prim("boolean"),
		}),
		token.DefTemplateString: {Type: "string", Description: "Text that may contain {{key}} placeholders."},
		token.DefValueRange: object(map[string]*Schema{
			"start": prim("number"),
			"end":   prim("number"),
		}, "start", "end"),
	}
}

// root assembles the document from the BaseToken and per-variant
// definitions a generator produced.
func root(opts Options, base *Schema, variants map[token.Kind]*Schema) *Schema {
	opts = opts.withDefaults()
	defs := valueDefinitions()
	defs[token.DefBaseToken] = base
	for k, v := range variants {
		defs[string(k)] = v
	}
	return &Schema{
		SchemaURI:   Draft07,
		ID:          opts.ID,
		Title:       opts.Title,
		Description: opts.Description,
		Type:        "object",
		Definitions: defs,
		OneOf:       anyToken(),
	}
}
