package cli

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/resolver"
)

func newRenderCommand(a *app) *cobra.Command {
	var (
		req     resolver.Request
		kind    string
		options []string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a single field",
		Example: `  formfield render --label "Test field" --kind text --value "Test text" --name texttest
  formfield render --kind radiogroup --option foo --option bar --value bar --name grp`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			code, err := parseKindFlag(kind)
			if err != nil {
				return err
			}
			req.Kind = code
			req.Options = strings.Join(options, "\n")

			markup, err := a.resolver.Render(req)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), markup)
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&req.Namespace, "namespace", "n", "", "skin namespace (defaults to the configured namespace)")
	flags.StringVarP(&req.Label, "label", "l", "", "field label")
	flags.StringVarP(&kind, "kind", "k", "text", "kind name or numeric code")
	flags.StringVar(&req.Value, "value", "", "field value")
	flags.StringArrayVar(&options, "option", nil, "option of a composite field (repeatable)")
	flags.StringVar(&req.Name, "name", "", "name attribute")
	flags.StringVar(&req.ID, "id", "", "id attribute")
	flags.StringVar(&req.Class, "class", "", "class attribute")
	flags.BoolVar(&req.Required, "required", false, "mark the field as required")
	flags.BoolVar(&req.Disabled, "disabled", false, "render the field disabled")
	return cmd
}

// parseKindFlag keeps unknown numeric codes so the resolver can report its
// text fallback; names must match a kind.
func parseKindFlag(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return field.KindText.Code(), nil
	}
	if code, err := strconv.Atoi(raw); err == nil {
		return code, nil
	}
	kind, err := field.ParseKind(raw)
	if err != nil {
		return 0, err
	}
	return kind.Code(), nil
}

func newKindsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the kind code table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tKIND\tTAG\tCHILDREN")
			for _, kind := range field.Kinds() {
				children := "-"
				if child, ok := kind.ChildKind(); ok {
					children = child.String()
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", kind.Code(), kind, kind.Tag(), children)
			}
			return w.Flush()
		},
	}
}
