package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formfield/pkg/document"
	"github.com/goliatone/go-formfield/pkg/openapi"
)

type pageFlags struct {
	namespace string
	output    string
	fragments bool
}

func (f *pageFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.namespace, "namespace", "n", "", "override the document namespace")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&f.fragments, "fragments", false, "print one field per line instead of a page")
}

func newDocumentCommand(a *app) *cobra.Command {
	var flags pageFlags
	cmd := &cobra.Command{
		Use:   "document FILE",
		Short: "Render a YAML or JSON form document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := document.LoadFile(args[0])
			if err != nil {
				return err
			}
			return a.renderDocument(cmd, doc, flags)
		},
	}
	flags.bind(cmd)
	return cmd
}

func newOpenAPICommand(a *app) *cobra.Command {
	var (
		flags    pageFlags
		schema   string
		validate bool
	)
	cmd := &cobra.Command{
		Use:   "openapi FILE",
		Short: "Render a form from an OpenAPI component schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			doc, err := openapi.Import(cmd.Context(), data, schema, openapi.WithValidation(validate))
			if err != nil {
				return err
			}
			return a.renderDocument(cmd, doc, flags)
		},
	}
	flags.bind(cmd)
	cmd.Flags().StringVarP(&schema, "schema", "s", "", "component schema name")
	cmd.Flags().BoolVar(&validate, "validate", false, "validate the OpenAPI document first")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}

func (a *app) renderDocument(cmd *cobra.Command, doc document.Document, flags pageFlags) error {
	if flags.namespace != "" {
		doc.Namespace = flags.namespace
	}

	if flags.fragments {
		fields, err := document.RenderAll(a.resolver, doc)
		if err != nil {
			return err
		}
		return writeOutput(cmd, flags.output, []byte(strings.Join(fields, "\n")+"\n"))
	}

	engine, err := a.engine()
	if err != nil {
		return err
	}
	page, err := engine.Render(cmd.Context(), doc)
	if err != nil {
		return err
	}
	a.logger.Debug().
		Str("source", doc.Source).
		Int("fields", len(doc.Fields)).
		Msg("document rendered")
	return writeOutput(cmd, flags.output, page)
}
