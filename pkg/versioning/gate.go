package versioning

import (
	"fmt"
	"maps"

	"github.com/Mindburn-Labs/sdui/pkg/token"
)

// Compatibility is the outcome of gating one node.
type Compatibility struct {
	Kind         token.Kind
	ID           string
	Version      int
	MinSupported int
	Compatible   bool
}

func (c Compatibility) String() string {
	if c.Compatible {
		return fmt.Sprintf("%s %q v%d: compatible", c.Kind, c.ID, c.Version)
	}
	return fmt.Sprintf("%s %q v%d: below minimum supported version %d", c.Kind, c.ID, c.Version, c.MinSupported)
}

// Gate compares node versions against per-variant floors. The zero value
// and nil both use the floors from the variant metadata.
type Gate struct {
	floors map[token.Kind]int
}

// NewGate returns a gate with the metadata floors, overridden by overrides.
func NewGate(overrides map[token.Kind]int) *Gate {
	return &Gate{floors: maps.Clone(overrides)}
}

// ParseFloors converts a kind-name keyed map, as read from configuration,
// into gate overrides. Unknown kinds and floors below 1 are rejected.
func ParseFloors(raw map[string]int) (map[token.Kind]int, error) {
	out := make(map[token.Kind]int, len(raw))
	for name, floor := range raw {
		k := token.Kind(name)
		if _, ok := token.Lookup(k); !ok {
			return nil, fmt.Errorf("versioning: unknown variant %q in version floors", name)
		}
		if floor < 1 {
			return nil, fmt.Errorf("versioning: floor for %s must be >= 1, got %d", name, floor)
		}
		out[k] = floor
	}
	return out, nil
}

// WithFloor returns a copy of g with the floor for k replaced.
func (g *Gate) WithFloor(k token.Kind, floor int) *Gate {
	next := &Gate{floors: make(map[token.Kind]int)}
	if g != nil {
		maps.Copy(next.floors, g.floors)
	}
	next.floors[k] = floor
	return next
}

// MinSupported returns the effective floor for k.
func (g *Gate) MinSupported(k token.Kind) int {
	if g != nil {
		if f, ok := g.floors[k]; ok {
			return f
		}
	}
	return token.MinSupportedVersion(k)
}

// Check gates n. A version equal to the floor is compatible.
func (g *Gate) Check(n token.Node) Compatibility {
	floor := g.MinSupported(n.Kind())
	b := n.Common()
	return Compatibility{
		Kind:         n.Kind(),
		ID:           b.ID,
		Version:      b.Version,
		MinSupported: floor,
		Compatible:   b.Version >= floor,
	}
}
