package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Mindburn-Labs/sdui/pkg/document"
	"github.com/Mindburn-Labs/sdui/pkg/migrate"
	"github.com/Mindburn-Labs/sdui/pkg/registry"
	"github.com/Mindburn-Labs/sdui/pkg/resolve"
	"github.com/Mindburn-Labs/sdui/pkg/schema"
	"github.com/Mindburn-Labs/sdui/pkg/token"
	"github.com/Mindburn-Labs/sdui/pkg/versioning"
)

func exactArgs(n int, names string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usagef("%s: expected %s", cmd.Name(), names)
		}
		return nil
	}
}

func indent(v any) ([]byte, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

func indentJSON(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func (a *app) generateCommand() *cobra.Command {
	var useUUID bool
	var prefix string
	cmd := &cobra.Command{
		Use:   "generate <type> <out>",
		Short: "Write one sample node of the given variant",
		Args:  exactArgs(2, "<type> <out>"),
		RunE: run(func(cmd *cobra.Command, args []string) error {
			k := token.Kind(args[0])
			if _, ok := token.Lookup(k); !ok {
				return fmt.Errorf("%w %q (known: %s)", token.ErrUnknownKind, args[0], kindList())
			}
			gen := token.NewIDGen(prefix)
			if useUUID {
				gen = token.NewUUIDGen()
			}
			data, err := token.Marshal(token.Sample(k, gen))
			if err != nil {
				return err
			}
			out, err := indentJSON(data)
			if err != nil {
				return err
			}
			return a.writeOutput(args[1], out)
		}),
	}
	cmd.Flags().BoolVar(&useUUID, "uuid", false, "use random UUID ids")
	cmd.Flags().StringVar(&prefix, "id-prefix", "", "prefix for generated ids")
	return cmd
}

func kindList() string {
	var names []string
	for _, k := range token.Kinds() {
		names = append(names, string(k))
	}
	return strings.Join(names, ", ")
}

func (a *app) schemaCommand() *cobra.Command {
	var strategy string
	cmd := &cobra.Command{
		Use:   "schema <out>",
		Short: "Write the JSON Schema for every token variant",
		Args:  exactArgs(1, "<out>"),
		RunE: run(func(cmd *cobra.Command, args []string) error {
			var doc *schema.Schema
			switch strategy {
			case "metadata":
				doc = schema.FromMetadata(a.cfg.SchemaOptions())
			case "explicit":
				doc = schema.Explicit(a.cfg.SchemaOptions())
			default:
				return usagef("schema: --strategy must be metadata or explicit, got %q", strategy)
			}
			if _, err := schema.NewValidator(doc); err != nil {
				return err
			}
			data, err := doc.JSON()
			if err != nil {
				return err
			}
			return a.writeOutput(args[0], data)
		}),
	}
	cmd.Flags().StringVar(&strategy, "strategy", "metadata", "generator: metadata or explicit")
	return cmd
}

func (a *app) renderCommand() *cobra.Command {
	var screenID string
	var infer bool
	cmd := &cobra.Command{
		Use:   "render <in> <out>",
		Short: "Decode and check a node, or resolve a screen of a document",
		Long: "Without --screen, <in> holds one serialized node: it is decoded into typed form, " +
			"checked against the generated schema and field rules, and written back normalized. " +
			"With --screen, <in> is a document and the named screen is resolved against its tokens.",
		Args: exactArgs(2, "<in> <out>"),
		RunE: run(func(cmd *cobra.Command, args []string) error {
			opts := a.cfg.DecodeOptions()
			if infer {
				opts = append(opts, token.WithShapeInference())
			}
			if screenID != "" {
				return a.renderScreen(cmd, args[0], args[1], screenID, opts)
			}
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			n, err := token.Decode(data, opts...)
			if err != nil {
				return err
			}
			v, err := schema.NewValidator(schema.FromMetadata(a.cfg.SchemaOptions()))
			if err != nil {
				return err
			}
			if err := v.ValidateNode(n); err != nil {
				return err
			}
			if findings := checkTree(n); len(findings) > 0 {
				return fmt.Errorf("render: %d field check(s) failed:\n  %s", len(findings), strings.Join(findings, "\n  "))
			}
			typed, err := token.Marshal(n)
			if err != nil {
				return err
			}
			out, err := indentJSON(typed)
			if err != nil {
				return err
			}
			return a.writeOutput(args[1], out)
		}),
	}
	cmd.Flags().StringVar(&screenID, "screen", "", "resolve this screen of a document instead of decoding one node")
	cmd.Flags().BoolVar(&infer, "infer-types", false, "infer a missing \"type\" from the fields present")
	return cmd
}

func checkTree(n token.Node) []string {
	var out []string
	token.Walk(n, func(c token.Node, _ int) bool {
		for _, msg := range token.Check(c) {
			out = append(out, fmt.Sprintf("%s %q: %s", c.Kind(), token.ID(c), msg))
		}
		return true
	})
	return out
}

func (a *app) renderScreen(cmd *cobra.Command, in, out, screenID string, opts []token.DecodeOption) error {
	doc, err := a.loadDocument(cmd, in, opts)
	if err != nil {
		return err
	}
	p, ok := doc.Screen(screenID)
	if !ok {
		return fmt.Errorf("render: document has no screen %q", screenID)
	}
	gate, err := a.cfg.Gate()
	if err != nil {
		return err
	}
	reg := doc.Registry(registry.WithLogger(a.logger))
	r := resolve.New(reg,
		resolve.WithGate(gate),
		resolve.WithObserver(resolve.LogObserver{Logger: a.logger}),
		resolve.WithTracer(a.tracer.Tracer()),
		resolve.WithMetrics(a.tracer.Metrics()),
	)
	s, err := r.Resolve(cmd.Context(), p)
	if err != nil {
		return err
	}
	data, err := indent(s)
	if err != nil {
		return err
	}
	return a.writeOutput(out, data)
}

func (a *app) loadDocument(cmd *cobra.Command, path string, opts []token.DecodeOption) (*document.Document, error) {
	data, err := readInput(cmd, path)
	if err != nil {
		return nil, err
	}
	doc, err := document.Decode(data, document.FormatOf(path), opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func (a *app) migrateCommand() *cobra.Command {
	var asDocument bool
	var schemaVersion string
	cmd := &cobra.Command{
		Use:   "migrate <in> <out> [targetVersion]",
		Short: "Migrate a serialized node, or a whole document, to a target version",
		Long: "targetVersion defaults to migration.target_version. With --document, <in> is a " +
			"document and its schema version moves to --schema-version (default: unchanged).",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 || len(args) > 3 {
				return usagef("migrate: expected <in> <out> [targetVersion]")
			}
			return nil
		},
		RunE: run(func(cmd *cobra.Command, args []string) error {
			target := a.cfg.Migration.TargetVersion
			if len(args) == 3 {
				t, err := strconv.Atoi(args[2])
				if err != nil {
					return usagef("migrate: targetVersion %q is not an integer", args[2])
				}
				target = t
			}
			e := migrate.Default(
				migrate.WithLogger(a.logger),
				migrate.WithTracer(a.tracer.Tracer()),
				migrate.WithMetrics(a.tracer.Metrics()),
				migrate.WithShapeInference(a.cfg.Decode.InferTypes),
			)
			if asDocument {
				return a.migrateDocument(cmd, e, args[0], args[1], target, schemaVersion)
			}

			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			migrated, err := e.MigrateJSON(data, target)
			if err != nil {
				return err
			}
			out, err := indentJSON(migrated)
			if err != nil {
				return err
			}
			return a.writeOutput(args[1], out)
		}),
	}
	cmd.Flags().BoolVar(&asDocument, "document", false, "treat <in> as a document")
	cmd.Flags().StringVar(&schemaVersion, "schema-version", "", "target document schema version")
	return cmd
}

func (a *app) migrateDocument(cmd *cobra.Command, e *migrate.Engine, in, out string, target int, schemaVersion string) error {
	doc, err := a.loadDocument(cmd, in, a.cfg.DecodeOptions())
	if err != nil {
		return err
	}
	t := migrate.Target{SchemaVersion: doc.SchemaVersion, NodeVersion: target}
	if schemaVersion != "" {
		v, err := versioning.Parse(schemaVersion)
		if err != nil {
			return usagef("migrate: --schema-version: %v", err)
		}
		t.SchemaVersion = *v
	}
	migrated, err := e.MigrateDocument(cmd.Context(), doc, t)
	if err != nil {
		return err
	}
	data, err := migrated.Encode(document.FormatOf(out))
	if err != nil {
		return err
	}
	return a.writeOutput(out, data)
}

func (a *app) validateCommand() *cobra.Command {
	var infer bool
	cmd := &cobra.Command{
		Use:   "validate <in>",
		Short: "Check a document's tokens, references and screens",
		Args:  exactArgs(1, "<in>"),
		RunE: run(func(cmd *cobra.Command, args []string) error {
			opts := a.cfg.DecodeOptions()
			if infer {
				opts = append(opts, token.WithShapeInference())
			}
			doc, err := a.loadDocument(cmd, args[0], opts)
			if err != nil {
				return err
			}
			v, err := schema.NewValidator(schema.FromMetadata(a.cfg.SchemaOptions()))
			if err != nil {
				return err
			}

			findings := doc.Validate(registry.WithLogger(a.logger))
			for i, n := range doc.Tokens {
				if err := v.ValidateNode(n); err != nil {
					findings = append(findings, fmt.Sprintf("tokens[%d] %q: %v", i, token.ID(n), err))
				}
			}
			for _, f := range findings {
				_, _ = fmt.Fprintln(a.stdout, f)
			}
			if len(findings) > 0 {
				return fmt.Errorf("validate: %d finding(s) in %s", len(findings), args[0])
			}
			_, _ = fmt.Fprintf(a.stdout, "%s: ok (%d tokens, %d screens)\n", args[0], len(doc.Tokens), len(doc.Screens))
			return nil
		}),
	}
	cmd.Flags().BoolVar(&infer, "infer-types", false, "infer a missing \"type\" from the fields present")
	return cmd
}
