package schema

import (
	"fmt"

	"github.com/Mindburn-Labs/sdui/pkg/token"
)

// FromMetadata derives the document from the variant metadata table.
func FromMetadata(opts Options) *Schema {
	variants := make(map[token.Kind]*Schema)
	for _, v := range token.Variants() {
		props := make(map[string]*Schema, len(v.Fields))
		for _, f := range v.Fields {
			props[f.Name] = fieldSchema(f)
		}
		variants[v.Kind] = variant(v.Kind, v.Title, v.Description, props, v.Required()...)
	}
	return root(opts, baseFromMetadata(), variants)
}

func baseFromMetadata() *Schema {
	props := make(map[string]*Schema)
	var required []string
	for _, f := range token.BaseFields() {
		props[f.Name] = fieldSchema(f)
		if f.Required {
			required = append(required, f.Name)
		}
	}
	return object(props, required...)
}

func fieldSchema(f token.Field) *Schema {
	switch f.Kind {
	case token.FieldPrimitive:
		return prim(f.JSONType)
	case token.FieldEnum:
		return enum(f.Enum)
	case token.FieldRef:
		return ref(f.Ref)
	case token.FieldChildren:
		return children()
	}
	panic(fmt.Sprintf("schema: field %q has unhandled kind %s", f.Name, f.Kind))
}
