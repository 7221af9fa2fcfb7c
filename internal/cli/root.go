// Package cli wires the formfield command line tool.
package cli

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formfield/internal/config"
	"github.com/goliatone/go-formfield/internal/logging"
	"github.com/goliatone/go-formfield/pkg/layout"
	"github.com/goliatone/go-formfield/pkg/metrics"
	"github.com/goliatone/go-formfield/pkg/prompt"
	"github.com/goliatone/go-formfield/pkg/resolver"
)

// app carries the state shared by every subcommand once the configuration
// has been loaded.
type app struct {
	cfgPath  string
	cfg      *config.Config
	logger   zerolog.Logger
	registry *prometheus.Registry
	resolver *resolver.Resolver

	// driver replaces the terminal prompt driver in tests.
	driver prompt.Driver
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{})
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "formfield",
		Short:         "Render HTML form fields from kind codes and skins",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
	}
	root.PersistentFlags().StringVarP(&a.cfgPath, "config", "c", os.Getenv(config.EnvPrefix+"CONFIG"), "configuration file (YAML or JSON)")

	root.AddCommand(
		newRenderCommand(a),
		newKindsCommand(a),
		newDocumentCommand(a),
		newOpenAPICommand(a),
		newPromptCommand(a),
		newServeCommand(a),
	)
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg

	logger, err := logging.New("formfield", cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	a.logger = logger

	options := []resolver.Option{
		resolver.WithLogger(logger),
		resolver.WithDefaultNamespace(cfg.Namespace),
	}
	if cfg.Labels.Sanitize {
		options = append(options, resolver.WithLabelPolicy(resolver.LabelPolicy()))
	}
	if cfg.Server.Metrics {
		a.registry = prometheus.NewRegistry()
		observer, err := metrics.NewPromObserver(a.registry)
		if err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
		options = append(options, resolver.WithObserver(observer))
	}
	a.resolver = resolver.New(options...)
	return nil
}

func (a *app) engine() (*layout.Engine, error) {
	options := []layout.Option{
		layout.WithResolver(a.resolver),
		layout.WithBaseDir(a.cfg.Layout.Dir),
		layout.WithTemplate(a.cfg.Layout.Template),
	}
	if a.cfg.Theme.Manifest != "" {
		manifest, err := layout.LoadManifest(a.cfg.Theme.Manifest)
		if err != nil {
			return nil, err
		}
		selector := layout.NewManifestSelector(manifest)
		options = append(options, layout.WithThemeSelector(selector, a.cfg.Theme.Name, a.cfg.Theme.Variant))
	}
	return layout.New(options...)
}

func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	_, err := fmt.Fprintf(cmd.ErrOrStderr(), "written to %s\n", path)
	return err
}
