package token

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/google/uuid"
)

// IDGen hands out node ids for one build session. It is safe for
// concurrent use; separate sessions should use separate generators.
type IDGen struct {
	mu       sync.Mutex
	prefix   string
	random   bool
	counters map[Kind]int
}

// NewIDGen returns a generator producing "<prefix><kind>_<n>" ids with a
// counter per kind.
func NewIDGen(prefix string) *IDGen {
	return &IDGen{prefix: prefix, counters: make(map[Kind]int)}
}

// NewUUIDGen returns a generator producing "<kind>_<uuid>" ids.
func NewUUIDGen() *IDGen {
	return &IDGen{random: true, counters: make(map[Kind]int)}
}

// Next returns a fresh id for kind k.
func (g *IDGen) Next(k Kind) string {
	name := snake(string(k))
	if g.random {
		return name + "_" + uuid.NewString()
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counters[k]++
	return fmt.Sprintf("%s%s_%d", g.prefix, name, g.counters[k])
}

func snake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
