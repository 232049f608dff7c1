// Package screen describes one screen as an ordered list of references to
// registered nodes, each with its own placeholder bindings.
package screen

import (
	"fmt"
	"maps"
	"strings"
)

// TokenRef points at a registered node and carries the values substituted
// into its template strings.
type TokenRef struct {
	ID   string            `json:"id" yaml:"id"`
	Bind map[string]string `json:"bind" yaml:"bind"`
}

// Payload is the wire form of one screen.
type Payload struct {
	ID     string     `json:"id" yaml:"id"`
	Tokens []TokenRef `json:"tokens" yaml:"tokens"`
}

// Ref returns a TokenRef to id with the given bindings.
func Ref(id string, bind map[string]string) TokenRef {
	return TokenRef{ID: id, Bind: bind}
}

// IDs returns the referenced ids in payload order.
func (p Payload) IDs() []string {
	out := make([]string, len(p.Tokens))
	for i, t := range p.Tokens {
		out[i] = t.ID
	}
	return out
}

// Check reports structural problems of the payload itself. Reachability
// against a registry is the registry's concern.
func (p Payload) Check() []string {
	var out []string
	if strings.TrimSpace(p.ID) == "" {
		out = append(out, "screen id must not be blank")
	}
	for i, t := range p.Tokens {
		if strings.TrimSpace(t.ID) == "" {
			out = append(out, fmt.Sprintf("screen %q: tokens[%d] has a blank id", p.ID, i))
		}
	}
	return out
}

// Merge returns the bindings of r overlaid with extra. Keys in extra win.
func (r TokenRef) Merge(extra map[string]string) map[string]string {
	out := maps.Clone(r.Bind)
	if out == nil {
		out = make(map[string]string, len(extra))
	}
	maps.Copy(out, extra)
	return out
}
