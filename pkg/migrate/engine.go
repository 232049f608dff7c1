// Package migrate moves nodes, their JSON form, and whole documents forward
// to a target version. Migration never goes backward and never mutates its
// input.
package migrate

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/Mindburn-Labs/sdui/pkg/token"
	"github.com/Mindburn-Labs/sdui/pkg/tracing"
)

// Engine holds the field rules per variant.
type Engine struct {
	mu      sync.RWMutex
	rules   map[token.Kind][]FieldRule
	infer   bool
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *tracing.Metrics
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithTracer sets the tracer used by MigrateDocument.
func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) {
		if t != nil {
			e.tracer = t
		}
	}
}

// WithMetrics counts the tokens MigrateDocument processes.
func WithMetrics(m *tracing.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithShapeInference lets the raw path infer a missing "type" from the
// fields present instead of failing with ErrUnknownVariant.
func WithShapeInference(enabled bool) Option {
	return func(e *Engine) { e.infer = enabled }
}

// New returns an engine with no rules.
func New(opts ...Option) *Engine {
	e := &Engine{
		rules:  make(map[token.Kind][]FieldRule),
		logger: slog.Default().With("component", "migrate"),
		tracer: otel.Tracer("github.com/Mindburn-Labs/sdui/pkg/migrate"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Default returns an engine loaded with DefaultRules.
func Default(opts ...Option) *Engine {
	e := New(opts...)
	for _, r := range DefaultRules() {
		if err := e.Register(r); err != nil {
			panic(err)
		}
	}
	return e
}

// Register adds a rule. The variant and field must exist in the variant
// metadata, Since must be at least 2, and both transforms must be set.
func (e *Engine) Register(r FieldRule) error {
	v, ok := token.Lookup(r.Kind)
	if !ok {
		return fmt.Errorf("migrate: rule for unknown variant %q", r.Kind)
	}
	if _, ok := v.Field(r.Field); !ok && !isBaseField(r.Field) {
		return fmt.Errorf("migrate: %s has no field %q", r.Kind, r.Field)
	}
	if r.Field == "version" || r.Field == "type" || r.Field == "children" {
		return fmt.Errorf("migrate: field %q is managed by the engine", r.Field)
	}
	if r.Since < 2 {
		return fmt.Errorf("migrate: rule %s.%s: since must be >= 2, got %d", r.Kind, r.Field, r.Since)
	}
	if r.Raw == nil || r.Typed == nil {
		return fmt.Errorf("migrate: rule %s.%s needs both Raw and Typed transforms", r.Kind, r.Field)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	rules := append(e.rules[r.Kind], r)
	slices.SortStableFunc(rules, func(a, b FieldRule) int { return cmp.Compare(a.Since, b.Since) })
	e.rules[r.Kind] = rules
	return nil
}

// Rules returns the rules for k in application order.
func (e *Engine) Rules(k token.Kind) []FieldRule {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return slices.Clone(e.rules[k])
}

func (e *Engine) applicable(k token.Kind, from, target int) []FieldRule {
	var out []FieldRule
	for _, r := range e.Rules(k) {
		if r.applies(from, target) {
			out = append(out, r)
		}
	}
	return out
}

func isBaseField(name string) bool {
	for _, f := range token.BaseFields() {
		if f.Name == name {
			return true
		}
	}
	return false
}

// Migrate returns n brought to target. Children are migrated first. A node
// already at target keeps its fields, and a subtree with nothing to change
// is returned as is. A node ahead of target fails with
// ErrUnsupportedDowngrade.
func (e *Engine) Migrate(n token.Node, target int) (token.Node, error) {
	if n == nil {
		return nil, fail(CodeMalformed, "", "nil node")
	}
	if target < 1 {
		return nil, fail(CodeTarget, token.ID(n), "target version must be >= 1, got %d", target)
	}
	run := &typedRun{
		e:      e,
		target: target,
		onPath: make(map[token.Node]bool),
		done:   make(map[token.Node]token.Node),
	}
	return run.node(n)
}

type typedRun struct {
	e      *Engine
	target int
	onPath map[token.Node]bool
	done   map[token.Node]token.Node
}

func (m *typedRun) node(n token.Node) (token.Node, error) {
	if out, ok := m.done[n]; ok {
		return out, nil
	}
	b := n.Common()
	if m.onPath[n] {
		return nil, fail(CodeCycle, b.ID, "node is its own descendant")
	}
	if b.Version > m.target {
		return nil, fail(CodeDowngrade, b.ID, "cannot migrate %s from version %d back to %d", n.Kind(), b.Version, m.target)
	}

	m.onPath[n] = true
	defer delete(m.onPath, n)

	children, container := token.ChildrenOf(n)
	var migrated []token.Node
	changed := false
	for _, c := range children {
		if c == nil {
			migrated = append(migrated, nil)
			continue
		}
		mc, err := m.node(c)
		if err != nil {
			return nil, err
		}
		changed = changed || mc != c
		migrated = append(migrated, mc)
	}

	if b.Version == m.target && !changed {
		m.done[n] = n
		return n, nil
	}

	out := token.Shallow(n)
	if container {
		token.SetChildren(out, migrated)
	}
	if b.Version < m.target {
		for _, r := range m.e.applicable(n.Kind(), b.Version, m.target) {
			r.Typed(out)
		}
		out.Common().Version = m.target
	}
	m.done[n] = out
	return out, nil
}
