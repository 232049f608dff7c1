package registry

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/Mindburn-Labs/sdui/pkg/canonicalize"
	"github.com/Mindburn-Labs/sdui/pkg/screen"
	"github.com/Mindburn-Labs/sdui/pkg/token"
)

// Snapshot is an immutable point-in-time view of a Registry. A whole
// resolution or validation pass runs against one snapshot.
type Snapshot struct {
	nodes      map[string]token.Node
	variants   map[string]int
	overwrites int
}

// Get returns the node registered under id.
func (s *Snapshot) Get(id string) (token.Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// Len returns the number of ids in the snapshot.
func (s *Snapshot) Len() int { return len(s.nodes) }

// IDs returns every registered id in sorted order.
func (s *Snapshot) IDs() []string {
	ids := make([]string, 0, len(s.nodes))
	for id := range s.nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// All returns every node ordered by id.
func (s *Snapshot) All() []token.Node {
	ids := s.IDs()
	out := make([]token.Node, len(ids))
	for i, id := range ids {
		out[i] = s.nodes[id]
	}
	return out
}

// Stats summarizes the registry contents.
type Stats struct {
	TotalTokens     int                `json:"totalTokens"`
	TokensByVariant map[token.Kind]int `json:"tokensByVariant"`
	SortedIDs       []string           `json:"sortedIds"`
	Overwrites      int                `json:"overwrites"`
}

// Stats returns registration statistics for the snapshot.
func (s *Snapshot) Stats() Stats {
	st := Stats{
		TotalTokens:     len(s.nodes),
		TokensByVariant: make(map[token.Kind]int),
		SortedIDs:       s.IDs(),
		Overwrites:      s.overwrites,
	}
	for _, n := range s.nodes {
		st.TokensByVariant[n.Kind()]++
	}
	return st
}

const (
	unvisited = iota
	onPath
	done
)

// Validate returns one message per violated integrity rule, sorted and
// deduplicated. It follows child references by id through the snapshot,
// reports references it cannot follow, and terminates on cycles.
func (s *Snapshot) Validate() []string {
	var out []string
	report := func(format string, args ...any) { out = append(out, fmt.Sprintf(format, args...)) }

	ids := s.IDs()
	for _, id := range ids {
		n := s.nodes[id]
		if strings.TrimSpace(id) == "" {
			report("%s token has a blank id", n.Kind())
		}
		if d := s.variants[id]; d > 1 {
			report("duplicate id %q: %d distinct tokens were registered under it", id, d)
		}
		for _, msg := range token.Check(n) {
			report("%s %q: %s", n.Kind(), id, msg)
		}
	}

	state := make(map[string]int, len(ids))
	var visit func(id string, path []string)
	visit = func(id string, path []string) {
		state[id] = onPath
		path = append(path, id)
		children, _ := token.ChildrenOf(s.nodes[id])
		for i, c := range children {
			if c == nil {
				report("%q: children[%d] is nil", id, i)
				continue
			}
			cid := c.Common().ID
			if strings.TrimSpace(cid) == "" {
				report("%q: children[%d] (%s) has a blank id", id, i, c.Kind())
				continue
			}
			reg, ok := s.nodes[cid]
			if !ok {
				report("%q: child %q is not registered", id, cid)
				continue
			}
			if reg != c && fingerprint(reg) != fingerprint(c) {
				report("duplicate id %q: child of %q differs from the registered token", cid, id)
			}
			switch state[cid] {
			case onPath:
				cycle := append(slices.Clone(path[slices.Index(path, cid):]), cid)
				report("cyclic reference: %s", strings.Join(cycle, " -> "))
			case unvisited:
				visit(cid, path)
			}
		}
		state[id] = done
	}
	for _, id := range ids {
		if state[id] == unvisited {
			visit(id, nil)
		}
	}

	slices.Sort(out)
	return slices.Compact(out)
}

// Unreachable returns the distinct ids referenced by p, directly or through
// the children of registered containers, that are not in the snapshot.
// Ids are reported in first-encounter order.
func (s *Snapshot) Unreachable(p screen.Payload) []string {
	var missing []string
	seen := make(map[string]bool)
	var reach func(id string)
	reach = func(id string) {
		if seen[id] {
			return
		}
		seen[id] = true
		n, ok := s.nodes[id]
		if !ok {
			missing = append(missing, id)
			return
		}
		children, _ := token.ChildrenOf(n)
		for _, c := range children {
			if c != nil {
				reach(c.Common().ID)
			}
		}
	}
	for _, ref := range p.Tokens {
		reach(ref.ID)
	}
	return missing
}

// fingerprint digests n with its children reduced to their ids, so that
// it is defined for cyclic trees and two nodes compare by their own fields.
func fingerprint(n token.Node) string {
	shallow := token.Shallow(n)
	children, _ := token.ChildrenOf(shallow)
	childIDs := make([]string, len(children))
	for i, c := range children {
		childIDs[i] = token.ID(c)
	}
	token.SetChildren(shallow, nil)
	body, err := token.Marshal(shallow)
	if err != nil {
		return fmt.Sprintf("unmarshalable:%p", n)
	}
	sum, err := canonicalize.CanonicalHash(struct {
		Node     json.RawMessage `json:"node"`
		Children []string        `json:"children"`
	}{body, childIDs})
	if err != nil {
		return fmt.Sprintf("unmarshalable:%p", n)
	}
	return sum
}
