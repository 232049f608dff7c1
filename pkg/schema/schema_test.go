package schema

import (
	"encoding/json"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mindburn-Labs/sdui/pkg/canonicalize"
	"github.com/Mindburn-Labs/sdui/pkg/token"
	"github.com/Mindburn-Labs/sdui/pkg/token/tokentest"
)

func TestExplicitMatchesMetadata(t *testing.T) {
	opts := Options{ID: "https://example.test/sdui.json", Title: "T", Description: "D"}
	explicit := Explicit(opts)
	derived := FromMetadata(opts)

	a, err := canonicalize.JCS(explicit)
	require.NoError(t, err)
	b, err := canonicalize.JCS(derived)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))

	for name, def := range explicit.Definitions {
		assert.Equal(t, def, derived.Definitions[name], name)
	}
}

func TestRoot(t *testing.T) {
	s := FromMetadata(Options{})
	assert.Equal(t, Draft07, s.SchemaURI)
	assert.Equal(t, DefaultOptions().ID, s.ID)
	assert.Equal(t, DefaultOptions().Title, s.Title)
	assert.Equal(t, "object", s.Type)
	require.Len(t, s.OneOf, len(token.Kinds()))

	for _, name := range []string{
		token.DefBaseToken, token.DefPadding, token.DefMargin, token.DefBackground, token.DefColorValue,
		token.DefAction, token.DefAccessibility, token.DefTemplateString, token.DefValueRange,
	} {
		assert.Contains(t, s.Definitions, name)
	}

	for _, v := range token.Variants() {
		def := s.Definitions[string(v.Kind)]
		require.NotNil(t, def, v.Kind)
		require.Len(t, def.AllOf, 2)
		assert.Equal(t, Definition(token.DefBaseToken), def.AllOf[0].Ref)

		own := def.AllOf[1]
		assert.Equal(t, string(v.Kind), own.Properties["type"].Const)
		assert.Equal(t, "type", own.Required[0])

		_, hasChildren := own.Properties["children"]
		assert.Equal(t, v.Capabilities.Has(token.CapContainer), hasChildren, v.Kind)
		if v.Capabilities.Has(token.CapInteractive) {
			assert.Equal(t, Definition(token.DefAction), own.Properties["onClick"].Ref, v.Kind)
		}
	}

	data, err := s.JSON()
	require.NoError(t, err)
	var generic map[string]any
	require.NoError(t, json.Unmarshal(data, &generic))
	assert.Equal(t, Draft07, generic["$schema"])
}

func TestValidator_AcceptsNodes(t *testing.T) {
	for name, doc := range map[string]*Schema{"explicit": Explicit(Options{}), "metadata": FromMetadata(Options{})} {
		t.Run(name, func(t *testing.T) {
			v, err := NewValidator(doc)
			require.NoError(t, err)

			gen := token.NewIDGen("")
			for _, k := range token.Kinds() {
				assert.NoError(t, v.ValidateNode(token.Sample(k, gen)), k)
				for _, mask := range []uint16{0, 0x00ff, 0xffff} {
					assert.NoError(t, v.ValidateNode(tokentest.Tree(k, "s", mask, 1)), "%s %#x", k, mask)
					assert.NoError(t, v.ValidateNode(tokentest.Build(k, mask, "s", 1)), "%s %#x", k, mask)
				}
			}
		})
	}
}

func TestValidator_Rejects(t *testing.T) {
	v, err := NewValidator(FromMetadata(Options{}))
	require.NoError(t, err)

	tests := []struct {
		name string
		json string
	}{
		{"missing type", `{"id":"t","version":1,"text":"hi"}`},
		{"unknown type", `{"type":"Carousel","id":"t","version":1}`},
		{"missing id", `{"type":"Text","version":1,"text":"hi"}`},
		{"missing required field", `{"type":"Divider","id":"d","version":1}`},
		{"bad enum", `{"type":"Text","id":"t","version":1,"text":"hi","style":"Huge"}`},
		{"color out of range", `{"type":"Text","id":"t","version":1,"text":"hi","color":{"red":300,"green":0,"blue":0,"alpha":255}}`},
		{"bad action type", `{"type":"Button","id":"b","version":1,"text":"Go","onClick":{"type":"Teleport"}}`},
		{"bad child", `{"type":"Column","id":"c","version":1,"children":[{"type":"Text","id":"t","version":1}]}`},
		{"negative padding", `{"type":"Divider","id":"d","version":1,"thickness":1,"padding":{"all":-1}}`},
		{"not json", `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, v.Validate([]byte(tt.json)), ErrInvalid)
		})
	}
}

func TestNewValidator_Cached(t *testing.T) {
	a, err := NewValidator(Explicit(Options{}))
	require.NoError(t, err)
	b, err := NewValidator(FromMetadata(Options{}))
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.NotEmpty(t, a.Digest())

	c, err := NewValidator(FromMetadata(Options{ID: "https://example.test/other.json"}))
	require.NoError(t, err)
	assert.NotEqual(t, a.Digest(), c.Digest())

	_, err = NewValidator(nil)
	assert.Error(t, err)
}

func TestNewValidator_NoJanitor(t *testing.T) {
	v, err := NewValidator(FromMetadata(DefaultOptions()))
	require.NoError(t, err)
	_, ok := compiled().Get(v.Digest())
	assert.True(t, ok)

	buf := make([]byte, 1<<20)
	stacks := string(buf[:runtime.Stack(buf, true)])
	assert.NotContains(t, stacks, "patrickmn/go-cache", "validator cache must not start a cleanup goroutine")
}
