package canonicalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJCS_Sorting(t *testing.T) {
	b, err := JCS(map[string]any{"c": 3, "a": 1, "b": 2})
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"b":2,"c":3}`, string(b))
}

func TestJCS_RecursiveSorting(t *testing.T) {
	input := map[string]any{
		"z": map[string]any{"y": "foo", "x": "bar"},
		"a": 1,
	}
	b, err := JCS(input)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"z":{"x":"bar","y":"foo"}}`, string(b))
}

func TestJCS_NoHTMLEscaping(t *testing.T) {
	b, err := JCS(map[string]string{"html": "<b>{{name}}</b> &"})
	require.NoError(t, err)
	assert.Equal(t, `{"html":"<b>{{name}}</b> &"}`, string(b))
}

func TestBytes_IgnoresWhitespaceAndOrder(t *testing.T) {
	a, err := Bytes([]byte(`{ "b": [1, 2], "a": 1.0 }`))
	require.NoError(t, err)
	b, err := Bytes([]byte(`{"a":1,"b":[1,2]}`))
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestBytes_Invalid(t *testing.T) {
	_, err := Bytes([]byte(`{"a":`))
	assert.Error(t, err)
}

func TestCanonicalHash_Stable(t *testing.T) {
	type node struct {
		ID      string `json:"id"`
		Version int    `json:"version"`
	}
	h1, err := CanonicalHash(node{ID: "x", Version: 1})
	require.NoError(t, err)
	h2, err := CanonicalHash(map[string]any{"version": 1, "id": "x"})
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)

	h3, err := CanonicalHash(node{ID: "x", Version: 2})
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)
}
