package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric names.
const (
	MetricResolvedElements = "sdui.resolve.elements"
	MetricMigratedTokens   = "sdui.migrate.tokens"
)

// Metric attribute keys.
const (
	AttrStatus  = "resolve.status"
	AttrChanged = "migration.changed"
)

// Metrics holds the counters recorded by the resolver and the migration
// engine. A nil *Metrics records nothing.
type Metrics struct {
	resolved metric.Int64Counter
	migrated metric.Int64Counter
}

// NewMetrics creates the counters on m.
func NewMetrics(m metric.Meter) (*Metrics, error) {
	resolved, err := m.Int64Counter(MetricResolvedElements,
		metric.WithDescription("Screen elements resolved, by outcome"),
		metric.WithUnit("{element}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s counter: %w", MetricResolvedElements, err)
	}
	migrated, err := m.Int64Counter(MetricMigratedTokens,
		metric.WithDescription("Document tokens migrated, by kind"),
		metric.WithUnit("{token}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s counter: %w", MetricMigratedTokens, err)
	}
	return &Metrics{resolved: resolved, migrated: migrated}, nil
}

// RecordResolved counts one resolved element with the given outcome.
func (m *Metrics) RecordResolved(ctx context.Context, status string) {
	if m == nil {
		return
	}
	m.resolved.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrStatus, status)))
}

// RecordMigrated counts one top-level document token.
func (m *Metrics) RecordMigrated(ctx context.Context, kind string, target int, changed bool) {
	if m == nil {
		return
	}
	m.migrated.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrTokenKind, kind),
		attribute.Int(AttrTargetVersion, target),
		attribute.Bool(AttrChanged, changed),
	))
}
