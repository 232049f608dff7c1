package migrate

import (
	"context"
	"slices"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/Mindburn-Labs/sdui/pkg/document"
	"github.com/Mindburn-Labs/sdui/pkg/token"
	"github.com/Mindburn-Labs/sdui/pkg/tracing"
	"github.com/Mindburn-Labs/sdui/pkg/versioning"
)

// Target is where MigrateDocument takes a document.
type Target struct {
	SchemaVersion versioning.Version
	NodeVersion   int
}

// MigrateDocument returns a copy of doc with every token migrated to
// t.NodeVersion and the schema version set to t.SchemaVersion. Tokens
// shared between entries stay shared in the result.
func (e *Engine) MigrateDocument(ctx context.Context, doc *document.Document, t Target) (*document.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fail(CodeMalformed, "", "nil document")
	}
	ctx, span := e.tracer.Start(ctx, tracing.SpanMigrateDocument)
	defer span.End()
	span.SetAttributes(
		attribute.String(tracing.AttrSchemaVersion, t.SchemaVersion.String()),
		attribute.Int(tracing.AttrTargetVersion, t.NodeVersion),
		attribute.Int(tracing.AttrTokenCount, len(doc.Tokens)),
	)

	out, err := e.migrateDocument(doc, t)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	for i, n := range out.Tokens {
		e.metrics.RecordMigrated(ctx, string(n.Kind()), t.NodeVersion, n != doc.Tokens[i])
	}
	return out, nil
}

func (e *Engine) migrateDocument(doc *document.Document, t Target) (*document.Document, error) {
	if !doc.SchemaVersion.CanMigrateTo(t.SchemaVersion) {
		return nil, fail(CodeSchemaVersion, "", "schema version %s cannot migrate to %s", doc.SchemaVersion, t.SchemaVersion)
	}
	if t.NodeVersion < 1 {
		return nil, fail(CodeTarget, "", "target version must be >= 1, got %d", t.NodeVersion)
	}
	run := &typedRun{
		e:      e,
		target: t.NodeVersion,
		onPath: make(map[token.Node]bool),
		done:   make(map[token.Node]token.Node),
	}
	out := &document.Document{
		SchemaVersion: t.SchemaVersion,
		Tokens:        make(token.NodeList, 0, len(doc.Tokens)),
		Screens:       slices.Clone(doc.Screens),
	}
	changed := 0
	for i, n := range doc.Tokens {
		if n == nil {
			return nil, fail(CodeMalformed, "", "tokens[%d] is nil", i)
		}
		m, err := run.node(n)
		if err != nil {
			return nil, err
		}
		if m != n {
			changed++
		}
		out.Tokens = append(out.Tokens, m)
	}
	e.logger.Debug("document migrated",
		"schema_from", doc.SchemaVersion.String(),
		"schema_to", t.SchemaVersion.String(),
		"node_version", t.NodeVersion,
		"tokens", len(doc.Tokens),
		"changed", changed,
	)
	return out, nil
}
