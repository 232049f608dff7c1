// Package resolve turns a screen payload into a tree of bound nodes ready
// for rendering, using one consistent view of a registry.
package resolve

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Mindburn-Labs/sdui/pkg/registry"
	"github.com/Mindburn-Labs/sdui/pkg/screen"
	"github.com/Mindburn-Labs/sdui/pkg/token"
	"github.com/Mindburn-Labs/sdui/pkg/tracing"
	"github.com/Mindburn-Labs/sdui/pkg/versioning"
)

// Status is the outcome of resolving one element.
type Status string

const (
	StatusOK           Status = "ok"
	StatusMissing      Status = "missing"
	StatusIncompatible Status = "incompatible"
	StatusCyclic       Status = "cyclic"
)

// Element is one resolved position in the screen tree. Node is nil unless
// Status is StatusOK. For containers, Node's children are the nodes of the
// ok child elements, so Node alone is a renderable tree.
type Element struct {
	ID                  string
	Status              Status
	Node                token.Node
	Children            []*Element
	MinSupportedVersion int
}

func (e *Element) MarshalJSON() ([]byte, error) {
	out := struct {
		ID                  string          `json:"id"`
		Status              Status          `json:"status"`
		Node                json.RawMessage `json:"node,omitempty"`
		Children            []*Element      `json:"children,omitempty"`
		MinSupportedVersion int             `json:"minSupportedVersion,omitempty"`
	}{ID: e.ID, Status: e.Status, Children: e.Children, MinSupportedVersion: e.MinSupportedVersion}
	if e.Node != nil {
		// Children are carried by the element tree.
		n := token.Shallow(e.Node)
		token.SetChildren(n, nil)
		b, err := token.Marshal(n)
		if err != nil {
			return nil, err
		}
		out.Node = b
	}
	return json.Marshal(out)
}

// Issue records one element that could not be resolved.
type Issue struct {
	ScreenID string `json:"screenId"`
	ID       string `json:"id"`
	ParentID string `json:"parentId,omitempty"`
	Status   Status `json:"status"`
	Message  string `json:"message"`
}

// Screen is a resolved payload.
type Screen struct {
	ID     string     `json:"id"`
	Roots  []*Element `json:"roots"`
	Issues []Issue    `json:"issues,omitempty"`
}

// OK reports whether every element resolved.
func (s *Screen) OK() bool { return len(s.Issues) == 0 }

// Find returns the first element with the given id in depth-first order.
func (s *Screen) Find(id string) *Element {
	var find func([]*Element) *Element
	find = func(es []*Element) *Element {
		for _, e := range es {
			if e.ID == id {
				return e
			}
			if f := find(e.Children); f != nil {
				return f
			}
		}
		return nil
	}
	return find(s.Roots)
}

// Source supplies registry snapshots.
type Source interface {
	Snapshot() *registry.Snapshot
}

// Resolver resolves payloads against a Source.
type Resolver struct {
	source   Source
	gate     *versioning.Gate
	observer Observer
	tracer   trace.Tracer
	metrics  *tracing.Metrics
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithGate sets the version gate. The default uses metadata floors.
func WithGate(g *versioning.Gate) Option {
	return func(r *Resolver) { r.gate = g }
}

// WithObserver sets the signal receiver. The default logs warnings.
func WithObserver(o Observer) Option {
	return func(r *Resolver) {
		if o != nil {
			r.observer = o
		}
	}
}

// WithTracer sets the tracer. The default is the global provider's.
func WithTracer(t trace.Tracer) Option {
	return func(r *Resolver) {
		if t != nil {
			r.tracer = t
		}
	}
}

// WithMetrics counts resolved elements by status.
func WithMetrics(m *tracing.Metrics) Option {
	return func(r *Resolver) { r.metrics = m }
}

// New returns a resolver reading from src.
func New(src Source, opts ...Option) *Resolver {
	r := &Resolver{
		source:   src,
		observer: LogObserver{Logger: slog.Default().With("component", "resolve")},
		tracer:   otel.Tracer("github.com/Mindburn-Labs/sdui/pkg/resolve"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve binds and gates every node reachable from p against a single
// registry snapshot. Absent, too-old, and cyclic references become
// elements with a non-ok status plus an Issue; they never fail the call.
func (r *Resolver) Resolve(ctx context.Context, p screen.Payload) (*Screen, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctx, span := r.tracer.Start(ctx, tracing.SpanResolveScreen,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String(tracing.AttrScreenID, p.ID),
			attribute.Int(tracing.AttrTokenCount, len(p.Tokens)),
		),
	)
	defer span.End()

	pass := &pass{
		ctx:    ctx,
		r:      r,
		snap:   r.source.Snapshot(),
		screen: &Screen{ID: p.ID},
	}
	for _, ref := range p.Tokens {
		pass.screen.Roots = append(pass.screen.Roots, pass.element(ref.ID, "", ref.Bind, nil))
	}

	span.SetAttributes(attribute.Int(tracing.AttrIssueCount, len(pass.screen.Issues)))
	if len(pass.screen.Issues) > 0 {
		span.SetStatus(codes.Error, fmt.Sprintf("%d unresolved elements", len(pass.screen.Issues)))
	} else {
		span.SetStatus(codes.Ok, "")
	}
	return pass.screen, nil
}

type pass struct {
	ctx    context.Context
	r      *Resolver
	snap   *registry.Snapshot
	screen *Screen
}

func (p *pass) issue(id, parent string, st Status, format string, args ...any) {
	p.screen.Issues = append(p.screen.Issues, Issue{
		ScreenID: p.screen.ID,
		ID:       id,
		ParentID: parent,
		Status:   st,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (p *pass) element(id, parent string, bind map[string]string, path []string) *Element {
	el := p.resolve(id, parent, bind, path)
	p.r.metrics.RecordResolved(p.ctx, string(el.Status))
	return el
}

func (p *pass) resolve(id, parent string, bind map[string]string, path []string) *Element {
	if slices.Contains(path, id) {
		cycle := append(slices.Clone(path[slices.Index(path, id):]), id)
		p.r.observer.OnCycle(p.screen.ID, cycle)
		p.issue(id, parent, StatusCyclic, "cyclic reference: %s", strings.Join(cycle, " -> "))
		return &Element{ID: id, Status: StatusCyclic}
	}

	n, ok := p.snap.Get(id)
	if !ok {
		p.r.observer.OnMissing(p.screen.ID, id)
		p.issue(id, parent, StatusMissing, "token %q is not registered", id)
		return &Element{ID: id, Status: StatusMissing}
	}

	if c := p.r.gate.Check(n); !c.Compatible {
		p.r.observer.OnIncompatible(p.screen.ID, c)
		p.issue(id, parent, StatusIncompatible, "%s", c.String())
		return &Element{ID: id, Status: StatusIncompatible, MinSupportedVersion: c.MinSupported}
	}

	bound := token.Bind(n, bind)
	el := &Element{ID: id, Status: StatusOK, Node: bound}
	if children, ok := token.ChildrenOf(n); ok {
		path = append(path, id)
		var nodes []token.Node
		for _, c := range children {
			if c == nil {
				continue
			}
			ce := p.element(c.Common().ID, id, bind, path)
			el.Children = append(el.Children, ce)
			if ce.Node != nil {
				nodes = append(nodes, ce.Node)
			}
		}
		token.SetChildren(bound, nodes)
	}
	return el
}
