// Package registry is the identity-keyed store of nodes and its integrity
// checks. It never mutates or migrates the nodes it holds.
package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/Mindburn-Labs/sdui/pkg/screen"
	"github.com/Mindburn-Labs/sdui/pkg/token"
)

var (
	// ErrInvalidArgument is returned by RegisterWithValidation for a nil node
	// or a blank id.
	ErrInvalidArgument = errors.New("registry: invalid argument")
	// ErrNotFound is returned by Unregister for an unknown id.
	ErrNotFound = errors.New("registry: token not found")
)

// Registry holds nodes keyed by id. It is safe for concurrent use: writes
// are serialized and readers that need a stable view take a Snapshot.
type Registry struct {
	mu         sync.RWMutex
	nodes      map[string]token.Node
	variants   map[string][]string // distinct value digests seen per id
	overwrites int
	logger     *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for overwrite warnings.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// New returns an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		nodes:    make(map[string]token.Node),
		variants: make(map[string][]string),
		logger:   slog.Default().With("component", "registry"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register inserts n, replacing any node with the same id. Overwrites are
// logged and counted; a nil node is ignored. Replacing a node with a higher
// version of the same kind is an upgrade: the earlier values no longer
// count toward the duplicate-id finding.
func (r *Registry) Register(n token.Node) {
	if n == nil {
		return
	}
	id := n.Common().ID
	digest := fingerprint(n)

	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.nodes[id]; ok {
		r.overwrites++
		r.logger.Warn("registry: overwriting token",
			"id", id,
			"previous_kind", prev.Kind(),
			"kind", n.Kind(),
		)
		if prev.Kind() == n.Kind() && n.Common().Version > prev.Common().Version {
			delete(r.variants, id)
		}
	}
	r.nodes[id] = n
	if !slices.Contains(r.variants[id], digest) {
		r.variants[id] = append(r.variants[id], digest)
	}
}

// RegisterWithValidation is Register with a fail-fast check on the id.
func (r *Registry) RegisterWithValidation(n token.Node) error {
	if n == nil {
		return fmt.Errorf("%w: nil token", ErrInvalidArgument)
	}
	if strings.TrimSpace(n.Common().ID) == "" {
		return fmt.Errorf("%w: %s token has a blank id", ErrInvalidArgument, n.Kind())
	}
	r.Register(n)
	return nil
}

// RegisterTree registers n and every descendant that carries an id.
func (r *Registry) RegisterTree(n token.Node) {
	token.Walk(n, func(c token.Node, _ int) bool {
		r.Register(c)
		return true
	})
}

// Unregister removes the node with the given id.
func (r *Registry) Unregister(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.nodes[id]; !ok {
		return ErrNotFound
	}
	delete(r.nodes, id)
	delete(r.variants, id)
	return nil
}

// Get returns the node registered under id.
func (r *Registry) Get(id string) (token.Node, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.nodes[id]
	return n, ok
}

// Len returns the number of registered ids.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.nodes)
}

// All returns every registered node ordered by id.
func (r *Registry) All() []token.Node {
	return r.Snapshot().All()
}

// Snapshot returns a point-in-time view of the registry. Later writes are
// not visible through it.
func (r *Registry) Snapshot() *Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s := &Snapshot{
		nodes:      maps.Clone(r.nodes),
		variants:   make(map[string]int, len(r.variants)),
		overwrites: r.overwrites,
	}
	for id, ds := range r.variants {
		s.variants[id] = len(ds)
	}
	return s
}

// Stats returns registration statistics.
func (r *Registry) Stats() Stats {
	return r.Snapshot().Stats()
}

// ValidateRegistry returns one message per violated integrity rule. An
// empty result means the registry is valid.
func (r *Registry) ValidateRegistry() []string {
	return r.Snapshot().Validate()
}

// ValidateScreenPayload returns the ids referenced by p, directly or
// through registered children, that are not registered.
func (r *Registry) ValidateScreenPayload(p screen.Payload) []string {
	return r.Snapshot().Unreachable(p)
}
