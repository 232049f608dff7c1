package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mindburn-Labs/sdui/pkg/document"
	"github.com/Mindburn-Labs/sdui/pkg/store"
	"github.com/Mindburn-Labs/sdui/pkg/token"
)

type storeFlags struct {
	driver string
	dsn    string
}

func (f *storeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.driver, "driver", "", "override store.driver (sqlite or postgres)")
	cmd.Flags().StringVar(&f.dsn, "dsn", "", "override store.dsn")
}

func (a *app) openStore(cmd *cobra.Command, f storeFlags) (*store.Store, error) {
	driver, dsn := a.cfg.Store.Driver, a.cfg.Store.DSN
	if f.driver != "" {
		driver = f.driver
	}
	if f.dsn != "" {
		dsn = f.dsn
	}
	s, err := store.Open(driver, dsn, store.WithLogger(a.logger))
	if err != nil {
		return nil, err
	}
	if err := s.Init(cmd.Context()); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

func (a *app) importCommand() *cobra.Command {
	var sf storeFlags
	cmd := &cobra.Command{
		Use:   "import <in>",
		Short: "Store every token of a document",
		Args:  exactArgs(1, "<in>"),
		RunE: run(func(cmd *cobra.Command, args []string) error {
			doc, err := a.loadDocument(cmd, args[0], a.cfg.DecodeOptions())
			if err != nil {
				return err
			}
			if findings := doc.Validate(); len(findings) > 0 {
				for _, f := range findings {
					_, _ = fmt.Fprintln(a.stderr, f)
				}
				return fmt.Errorf("import: %s has %d finding(s); nothing stored", args[0], len(findings))
			}
			s, err := a.openStore(cmd, sf)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			for _, n := range doc.Tokens {
				rec, err := s.Put(cmd.Context(), n)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(a.stdout, "%s\t%d\t%s\t%s\n", rec.ID, rec.Version, rec.Kind, rec.Digest[:12])
			}
			return nil
		}),
	}
	sf.register(cmd)
	return cmd
}

func (a *app) exportCommand() *cobra.Command {
	var sf storeFlags
	cmd := &cobra.Command{
		Use:   "export <out>",
		Short: "Write the latest version of every stored token as a document",
		Args:  exactArgs(1, "<out>"),
		RunE: run(func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore(cmd, sf)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			nodes, err := s.Latest(cmd.Context())
			if err != nil {
				return err
			}
			doc := &document.Document{SchemaVersion: document.CurrentSchemaVersion, Tokens: token.NodeList(nodes)}
			data, err := doc.Encode(document.FormatOf(args[0]))
			if err != nil {
				return err
			}
			return a.writeOutput(args[0], data)
		}),
	}
	sf.register(cmd)
	return cmd
}
