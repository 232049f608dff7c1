package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateString_Resolve(t *testing.T) {
	tests := []struct {
		name     string
		tmpl     TemplateString
		bindings map[string]string
		want     string
	}{
		{"single", "Hello {{name}}", map[string]string{"name": "World"}, "Hello World"},
		{"unknown key left verbatim", "{{x}}", map[string]string{}, "{{x}}"},
		{"nil bindings", "{{x}}", nil, "{{x}}"},
		{"repeated", "{{a}}-{{a}}", map[string]string{"a": "1"}, "1-1"},
		{"mixed", "{{a}} and {{b}}", map[string]string{"a": "A"}, "A and {{b}}"},
		{"no placeholders", "plain", map[string]string{"a": "A"}, "plain"},
		{"empty value", "[{{a}}]", map[string]string{"a": ""}, "[]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tmpl.Resolve(tt.bindings))
		})
	}
}

func TestTemplateString_Keys(t *testing.T) {
	keys := TemplateString("{{b}} {{a}} {{b}}").Keys()
	assert.Equal(t, []string{"b", "a"}, keys)
	assert.Empty(t, TemplateString("none").Keys())
}

func TestSpacing_ResolvePrecedence(t *testing.T) {
	t.Run("all overrides everything", func(t *testing.T) {
		s := &Spacing{All: Int(8), Horizontal: Int(2), Start: Int(1)}
		assert.Equal(t, Insets{Start: 8, Top: 8, End: 8, Bottom: 8}, s.Resolve())
	})
	t.Run("pair overrides sides", func(t *testing.T) {
		s := &Spacing{Horizontal: Int(4), Start: Int(1), Top: Int(3)}
		assert.Equal(t, Insets{Start: 4, Top: 3, End: 4, Bottom: 0}, s.Resolve())
	})
	t.Run("sides only", func(t *testing.T) {
		s := &Spacing{Start: Int(1), Top: Int(2), End: Int(3), Bottom: Int(4)}
		assert.Equal(t, Insets{Start: 1, Top: 2, End: 3, Bottom: 4}, s.Resolve())
	})
	t.Run("nil", func(t *testing.T) {
		var s *Spacing
		assert.Equal(t, Insets{}, s.Resolve())
		assert.True(t, s.IsZero())
	})
}

func TestSpacing_Check(t *testing.T) {
	assert.Empty(t, Uniform(4).Check())
	msgs := (&Spacing{Top: Int(-1)}).Check()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "top")
}

func TestColorValue(t *testing.T) {
	c, err := ParseHex("#FF336699")
	require.NoError(t, err)
	assert.Equal(t, ColorValue{Alpha: 255, Red: 0x33, Green: 0x66, Blue: 0x99}, *c)
	assert.Equal(t, "#FF336699", c.Hex())

	short, err := ParseHex("336699")
	require.NoError(t, err)
	assert.Equal(t, 255, short.Alpha)

	_, err = ParseHex("#123")
	assert.Error(t, err)

	bad := &ColorValue{Red: 256, Green: -1}
	assert.Len(t, bad.Check(), 2)
}

func TestBackground_Check(t *testing.T) {
	b := &Background{Color: &ColorValue{Red: 300, Alpha: 255}, BorderWidth: Int(-2)}
	msgs := b.Check()
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[0], "color: ")
	assert.Contains(t, msgs[1], "borderWidth")
}

func TestAction(t *testing.T) {
	a := &Action{Type: ActionDeepLink, Data: map[string]string{"uri": "app://{{screen}}"}}
	assert.Empty(t, a.Check())

	r := a.Resolve(map[string]string{"screen": "home"})
	assert.Equal(t, "app://home", r.Data["uri"])
	assert.Equal(t, "app://{{screen}}", a.Data["uri"], "original untouched")

	assert.NotEmpty(t, (&Action{Type: "Teleport"}).Check())
}

func TestAccessibility_Check(t *testing.T) {
	ok := &Accessibility{Role: RoleButton, LiveRegion: LiveRegionPolite, Enabled: true}
	assert.Empty(t, ok.Check())
	bad := &Accessibility{Role: "Slider", LiveRegion: "Loud"}
	assert.Len(t, bad.Check(), 2)
}

func TestValidEnum(t *testing.T) {
	assert.True(t, ValidEnum(TextStyle(""), TextStyles()))
	assert.True(t, ValidEnum(TextBodySmall, TextStyles()))
	assert.False(t, ValidEnum(TextStyle("Huge"), TextStyles()))
}
