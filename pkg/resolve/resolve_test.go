package resolve

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/Mindburn-Labs/sdui/pkg/registry"
	"github.com/Mindburn-Labs/sdui/pkg/screen"
	"github.com/Mindburn-Labs/sdui/pkg/token"
	"github.com/Mindburn-Labs/sdui/pkg/tracing"
	"github.com/Mindburn-Labs/sdui/pkg/value"
	"github.com/Mindburn-Labs/sdui/pkg/versioning"
)

type recorder struct {
	missing      []string
	incompatible []versioning.Compatibility
	cycles       [][]string
}

func (r *recorder) observer() Observer {
	return ObserverFuncs{
		Missing:      func(_, id string) { r.missing = append(r.missing, id) },
		Incompatible: func(_ string, c versioning.Compatibility) { r.incompatible = append(r.incompatible, c) },
		Cycle:        func(_ string, path []string) { r.cycles = append(r.cycles, path) },
	}
}

func enhancedCardRegistry() *registry.Registry {
	title := &token.Text{Base: token.Base{ID: "title", Version: 1}, Text: "{{title}}", Style: value.TextTitleLarge}
	desc := &token.Text{Base: token.Base{ID: "description", Version: 1}, Text: "Signed in as {{user}}"}
	btn := &token.Button{
		Base:    token.Base{ID: "button", Version: 1},
		Text:    "Open {{title}}",
		OnClick: value.Action{Type: value.ActionNavigate, Data: map[string]string{"route": "/{{user}}"}},
	}
	r := registry.New()
	r.Register(&token.Card{
		Base:      token.Base{ID: "enhanced_card", Version: 1},
		Children:  token.NodeList{title, desc, btn},
		Elevation: value.Int(2),
	})
	r.Register(title)
	r.Register(desc)
	r.Register(btn)
	return r
}

func TestResolve_EnhancedCard(t *testing.T) {
	reg := enhancedCardRegistry()
	p := screen.Payload{
		ID:     "home",
		Tokens: []screen.TokenRef{screen.Ref("enhanced_card", map[string]string{"title": "Welcome"})},
	}
	require.Empty(t, reg.ValidateScreenPayload(p))

	var rec recorder
	s, err := New(reg, WithObserver(rec.observer())).Resolve(context.Background(), p)
	require.NoError(t, err)
	require.True(t, s.OK(), "issues: %v", s.Issues)

	require.Len(t, s.Roots, 1)
	root := s.Roots[0]
	assert.Equal(t, "enhanced_card", root.ID)
	assert.Equal(t, StatusOK, root.Status)
	require.Len(t, root.Children, 3)

	title := s.Find("title")
	require.NotNil(t, title)
	assert.Equal(t, value.TemplateString("Welcome"), title.Node.(*token.Text).Text)

	desc := s.Find("description").Node.(*token.Text)
	assert.Equal(t, value.TemplateString("Signed in as {{user}}"), desc.Text, "unbound keys stay verbatim")

	btn := s.Find("button").Node.(*token.Button)
	assert.Equal(t, value.TemplateString("Open Welcome"), btn.Text)

	card := root.Node.(*token.Card)
	require.Len(t, card.Children, 3)
	assert.Same(t, title.Node, card.Children[0], "root node carries the bound children")

	registered, _ := reg.Get("title")
	assert.Equal(t, value.TemplateString("{{title}}"), registered.(*token.Text).Text, "registry untouched")
	assert.Empty(t, rec.missing)
}

func TestResolve_Missing(t *testing.T) {
	reg := registry.New()
	reg.Register(&token.Column{
		Base:     token.Base{ID: "col", Version: 1},
		Children: token.NodeList{&token.Text{Base: token.Base{ID: "ghost", Version: 1}, Text: "x"}},
	})

	var rec recorder
	s, err := New(reg, WithObserver(rec.observer())).Resolve(context.Background(), screen.Payload{
		ID:     "s",
		Tokens: []screen.TokenRef{{ID: "col"}, {ID: "nowhere"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"ghost", "nowhere"}, rec.missing)
	require.Len(t, s.Issues, 2)
	assert.Equal(t, Issue{ScreenID: "s", ID: "ghost", ParentID: "col", Status: StatusMissing, Message: `token "ghost" is not registered`}, s.Issues[0])

	col := s.Roots[0]
	assert.Equal(t, StatusOK, col.Status)
	assert.Equal(t, StatusMissing, col.Children[0].Status)
	assert.Nil(t, col.Children[0].Node)
	assert.Empty(t, col.Node.(*token.Column).Children)
	assert.Equal(t, StatusMissing, s.Roots[1].Status)
}

func TestResolve_Incompatible(t *testing.T) {
	reg := registry.New()
	reg.Register(&token.Text{Base: token.Base{ID: "old", Version: 1}, Text: "x"})
	reg.Register(&token.Text{Base: token.Base{ID: "new", Version: 3}, Text: "y"})

	var rec recorder
	gate := versioning.NewGate(map[token.Kind]int{token.KindText: 2})
	s, err := New(reg, WithGate(gate), WithObserver(rec.observer())).Resolve(context.Background(), screen.Payload{
		ID:     "s",
		Tokens: []screen.TokenRef{{ID: "old"}, {ID: "new"}},
	})
	require.NoError(t, err)

	require.Len(t, rec.incompatible, 1)
	assert.Equal(t, "old", rec.incompatible[0].ID)
	assert.Empty(t, rec.missing, "incompatible is distinct from missing")

	old := s.Find("old")
	assert.Equal(t, StatusIncompatible, old.Status)
	assert.Equal(t, 2, old.MinSupportedVersion)
	assert.Nil(t, old.Node)
	assert.Equal(t, StatusOK, s.Find("new").Status)
}

func TestResolve_Cycle(t *testing.T) {
	a := &token.Column{Base: token.Base{ID: "a", Version: 1}}
	b := &token.Box{Base: token.Base{ID: "b", Version: 1}, Children: token.NodeList{a}}
	a.Children = token.NodeList{b}
	reg := registry.New()
	reg.Register(a)
	reg.Register(b)

	var rec recorder
	s, err := New(reg, WithObserver(rec.observer())).Resolve(context.Background(), screen.Payload{
		ID: "s", Tokens: []screen.TokenRef{{ID: "a"}},
	})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b", "a"}}, rec.cycles)
	require.Len(t, s.Issues, 1)
	assert.Equal(t, StatusCyclic, s.Issues[0].Status)
	assert.Equal(t, StatusCyclic, s.Roots[0].Children[0].Children[0].Status)
}

func TestResolve_SharedChildIsNotACycle(t *testing.T) {
	shared := &token.Divider{Base: token.Base{ID: "line", Version: 1}, Thickness: 1}
	reg := registry.New()
	reg.Register(shared)
	reg.Register(&token.Column{Base: token.Base{ID: "col", Version: 1}, Children: token.NodeList{shared, shared}})

	s, err := New(reg).Resolve(context.Background(), screen.Payload{ID: "s", Tokens: []screen.TokenRef{{ID: "col"}}})
	require.NoError(t, err)
	assert.True(t, s.OK())
	assert.Len(t, s.Roots[0].Children, 2)
}

func TestResolve_UsesOneSnapshot(t *testing.T) {
	reg := enhancedCardRegistry()
	snap := reg.Snapshot()
	require.NoError(t, reg.Unregister("title"))

	s, err := New(fixedSource{snap}).Resolve(context.Background(), screen.Payload{
		ID: "s", Tokens: []screen.TokenRef{{ID: "enhanced_card"}},
	})
	require.NoError(t, err)
	assert.True(t, s.OK())
}

type fixedSource struct{ s *registry.Snapshot }

func (f fixedSource) Snapshot() *registry.Snapshot { return f.s }

func TestResolve_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(registry.New()).Resolve(ctx, screen.Payload{ID: "s"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolve_Span(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

	_, err := New(registry.New(), WithTracer(tp.Tracer("test")), WithObserver(ObserverFuncs{})).
		Resolve(context.Background(), screen.Payload{ID: "s", Tokens: []screen.TokenRef{{ID: "x"}}})
	require.NoError(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, tracing.SpanResolveScreen, spans[0].Name())
	attrs := map[string]any{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.AsInterface()
	}
	assert.Equal(t, "s", attrs[tracing.AttrScreenID])
	assert.Equal(t, int64(1), attrs[tracing.AttrIssueCount])
}

func TestResolve_Metrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	m, err := tracing.NewMetrics(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test"))
	require.NoError(t, err)

	reg := enhancedCardRegistry()
	_, err = New(reg, WithMetrics(m), WithObserver(ObserverFuncs{})).Resolve(context.Background(), screen.Payload{
		ID:     "home",
		Tokens: []screen.TokenRef{{ID: "enhanced_card"}, {ID: "nowhere"}},
	})
	require.NoError(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	got := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, metric := range sm.Metrics {
			if metric.Name != tracing.MetricResolvedElements {
				continue
			}
			for _, dp := range metric.Data.(metricdata.Sum[int64]).DataPoints {
				v, _ := dp.Attributes.Value(tracing.AttrStatus)
				got[v.Emit()] += dp.Value
			}
		}
	}
	assert.Equal(t, map[string]int64{"ok": 4, "missing": 1}, got)
}

func TestElementJSON(t *testing.T) {
	s, err := New(enhancedCardRegistry()).Resolve(context.Background(), screen.Payload{
		ID: "home", Tokens: []screen.TokenRef{screen.Ref("enhanced_card", map[string]string{"title": "Welcome"})},
	})
	require.NoError(t, err)

	b, err := json.Marshal(s)
	require.NoError(t, err)

	var back struct {
		ID    string `json:"id"`
		Roots []struct {
			ID       string          `json:"id"`
			Status   string          `json:"status"`
			Node     json.RawMessage `json:"node"`
			Children []struct {
				ID   string          `json:"id"`
				Node json.RawMessage `json:"node"`
			} `json:"children"`
		} `json:"roots"`
	}
	require.NoError(t, json.Unmarshal(b, &back))
	require.Len(t, back.Roots, 1)
	assert.Equal(t, "ok", back.Roots[0].Status)

	root, err := token.Decode(back.Roots[0].Node)
	require.NoError(t, err)
	assert.Empty(t, root.(*token.Card).Children, "children live in the element tree")

	child, err := token.Decode(back.Roots[0].Children[0].Node)
	require.NoError(t, err)
	assert.Equal(t, value.TemplateString("Welcome"), child.(*token.Text).Text)
}
