package value

import (
	"regexp"
	"strings"
)

var placeholderRe = regexp.MustCompile(`\{\{([^{}]+)\}\}`)

// TemplateString is a raw string that may contain {{key}} placeholders.
type TemplateString string

// Resolve substitutes every {{key}} with bindings[key]. Keys without a
// binding are left verbatim.
func (t TemplateString) Resolve(bindings map[string]string) string {
	s := string(t)
	if len(bindings) == 0 || !strings.Contains(s, "{{") {
		return s
	}
	return placeholderRe.ReplaceAllStringFunc(s, func(m string) string {
		key := m[2 : len(m)-2]
		if v, ok := bindings[key]; ok {
			return v
		}
		return m
	})
}

// Keys returns the placeholder keys in order of first appearance.
func (t TemplateString) Keys() []string {
	var keys []string
	seen := make(map[string]bool)
	for _, m := range placeholderRe.FindAllStringSubmatch(string(t), -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			keys = append(keys, m[1])
		}
	}
	return keys
}

// String returns the raw template.
func (t TemplateString) String() string { return string(t) }
