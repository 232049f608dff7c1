package migrate

import (
	"github.com/Mindburn-Labs/sdui/pkg/token"
	"github.com/Mindburn-Labs/sdui/pkg/value"
)

// FieldRule transforms one field of one variant when a node crosses
// version Since. It applies when from < Since <= target, so a chain of
// migrations applies every rule exactly once.
//
// Raw and Typed must express the same change: Raw on the JSON value of the
// field (returning nil removes the field) and Typed on a private copy of
// the node.
type FieldRule struct {
	Kind  token.Kind
	Field string
	Since int
	Raw   func(v any) any
	Typed func(n token.Node)
}

func (r FieldRule) applies(from, target int) bool {
	return from < r.Since && r.Since <= target
}

// renameEnum replaces one enum value with another.
func renameEnum(k token.Kind, field string, since int, from, to string, typed func(token.Node)) FieldRule {
	return FieldRule{
		Kind:  k,
		Field: field,
		Since: since,
		Raw: func(v any) any {
			if s, ok := v.(string); ok && s == from {
				return to
			}
			return v
		},
		Typed: typed,
	}
}

// DefaultRules returns the built-in migrations.
func DefaultRules() []FieldRule {
	return []FieldRule{
		renameEnum(token.KindText, "style", 2, string(value.TextBodySmall), string(value.TextBodyMedium), func(n token.Node) {
			if t := n.(*token.Text); t.Style == value.TextBodySmall {
				t.Style = value.TextBodyMedium
			}
		}),
		renameEnum(token.KindButton, "style", 2, string(value.ButtonElevated), string(value.ButtonTonal), func(n token.Node) {
			if b := n.(*token.Button); b.Style == value.ButtonElevated {
				b.Style = value.ButtonTonal
			}
		}),
		renameEnum(token.KindAsyncImage, "contentScale", 3, string(value.ScaleNone), string(value.ScaleInside), func(n token.Node) {
			if img := n.(*token.AsyncImage); img.ContentScale == value.ScaleNone {
				img.ContentScale = value.ScaleInside
			}
		}),
	}
}

// LatestVersion is the highest Since among DefaultRules, the version a
// freshly migrated document ends up at by default.
func LatestVersion() int {
	latest := 1
	for _, r := range DefaultRules() {
		latest = max(latest, r.Since)
	}
	return latest
}
