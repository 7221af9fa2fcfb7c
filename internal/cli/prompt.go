package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formfield/pkg/prompt"
)

func newPromptCommand(a *app) *cobra.Command {
	var namespace string
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Build a field interactively and print its markup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			driver := a.driver
			if driver == nil {
				driver = prompt.NewSurveyDriver()
			}
			req, err := prompt.Build(cmd.Context(), driver, namespace)
			if err != nil {
				return err
			}
			markup, err := a.resolver.Render(req)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), markup)
			return err
		},
	}
	cmd.Flags().StringVarP(&namespace, "namespace", "n", "", "skin namespace")
	return cmd
}
