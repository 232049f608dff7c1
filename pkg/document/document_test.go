package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mindburn-Labs/sdui/pkg/token"
	"github.com/Mindburn-Labs/sdui/pkg/value"
	"github.com/Mindburn-Labs/sdui/pkg/versioning"
)

const homeJSON = `{
  "schemaVersion": "1.2.0",
  "tokens": [
    {"type": "Card", "id": "enhanced_card", "version": 1, "children": [
      {"type": "Text", "id": "title", "version": 1, "text": "{{title}}"}
    ]},
    {"type": "Text", "id": "title", "version": 1, "text": "{{title}}"}
  ],
  "screens": [
    {"id": "home", "tokens": [{"id": "enhanced_card", "bind": {"title": "Welcome"}}]}
  ]
}`

const homeYAML = `
schemaVersion: 1.2.0
tokens:
  - type: Card
    id: enhanced_card
    version: 1
    children:
      - type: Text
        id: title
        version: 1
        text: "{{title}}"
  - type: Text
    id: title
    version: 1
    text: "{{title}}"
screens:
  - id: home
    tokens:
      - id: enhanced_card
        bind:
          title: Welcome
`

func TestDecode_JSONAndYAMLAgree(t *testing.T) {
	j, err := DecodeJSON([]byte(homeJSON))
	require.NoError(t, err)
	y, err := DecodeYAML([]byte(homeYAML))
	require.NoError(t, err)

	assert.Equal(t, j, y)
	assert.Equal(t, versioning.MustParse("1.2.0"), j.SchemaVersion)
	require.Len(t, j.Tokens, 2)
	assert.IsType(t, &token.Card{}, j.Tokens[0])

	home, ok := j.Screen("home")
	require.True(t, ok)
	assert.Equal(t, "Welcome", home.Tokens[0].Bind["title"])
}

func TestDecode_DefaultsSchemaVersion(t *testing.T) {
	d, err := DecodeJSON([]byte(`{"tokens":[]}`))
	require.NoError(t, err)
	assert.Equal(t, CurrentSchemaVersion, d.SchemaVersion)
	assert.Empty(t, d.Tokens)
}

func TestDecode_Errors(t *testing.T) {
	_, err := DecodeJSON([]byte(`{"tokens":[{"id":"x","version":1,"text":"hi"}]}`))
	assert.ErrorIs(t, err, token.ErrMissingType)
	assert.ErrorContains(t, err, "tokens[0]")

	_, err = DecodeJSON([]byte(`{"schemaVersion":"one"}`))
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = DecodeYAML([]byte("tokens: [unclosed"))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestDecode_ShapeInference(t *testing.T) {
	d, err := DecodeJSON([]byte(`{"tokens":[{"id":"x","version":1,"thickness":2}]}`), token.WithShapeInference())
	require.NoError(t, err)
	assert.IsType(t, &token.Divider{}, d.Tokens[0])
}

func TestEncode_RoundTrip(t *testing.T) {
	d, err := DecodeJSON([]byte(homeJSON))
	require.NoError(t, err)
	for _, f := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(f), func(t *testing.T) {
			b, err := d.Encode(f)
			require.NoError(t, err)
			back, err := Decode(b, f)
			require.NoError(t, err)
			assert.Equal(t, d, back)
		})
	}
}

func TestValidate(t *testing.T) {
	d, err := DecodeJSON([]byte(homeJSON))
	require.NoError(t, err)
	assert.Empty(t, d.Validate())

	d.Tokens = d.Tokens[:1]
	d.Screens[0].Tokens = append(d.Screens[0].Tokens, d.Screens[0].Tokens[0])
	d.Screens[0].Tokens[1].ID = "gone"
	assert.Equal(t, []string{
		`"enhanced_card": child "title" is not registered`,
		`screen "home": token "title" is unreachable`,
		`screen "home": token "gone" is unreachable`,
	}, d.Validate())
}

func TestDigest(t *testing.T) {
	a, err := DecodeJSON([]byte(homeJSON))
	require.NoError(t, err)
	b, err := DecodeYAML([]byte(homeYAML))
	require.NoError(t, err)

	da, err := a.Digest()
	require.NoError(t, err)
	db, err := b.Digest()
	require.NoError(t, err)
	assert.Equal(t, da, db)

	b.Tokens[1].(*token.Text).Text = value.TemplateString("changed")
	db, err = b.Digest()
	require.NoError(t, err)
	assert.NotEqual(t, da, db)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "home.yml")
	require.NoError(t, os.WriteFile(path, []byte(homeYAML), 0o600))

	d, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, d.Tokens, 2)

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
	assert.Equal(t, FormatJSON, FormatOf("x.JSON"))
	assert.Equal(t, FormatYAML, FormatOf("x.YAML"))
}
