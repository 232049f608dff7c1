package tracing

// Span names.
const (
	SpanResolveScreen   = "sdui.resolve.screen"
	SpanMigrateDocument = "sdui.migrate.document"
	SpanMigrateNode     = "sdui.migrate.node"
)

// Attribute keys.
const (
	AttrScreenID      = "screen.id"
	AttrTokenCount    = "screen.token_count"
	AttrIssueCount    = "screen.issue_count"
	AttrTokenID       = "token.id"
	AttrTokenKind     = "token.kind"
	AttrFromVersion   = "migration.from_version"
	AttrTargetVersion = "migration.target_version"
	AttrSchemaVersion = "migration.schema_version"
)
