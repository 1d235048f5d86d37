package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"logidconf/config"
	"logidconf/diagnostic"
	"logidconf/internal/document"
	"logidconf/internal/live"
	"logidconf/node"
	"logidconf/schema"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	logLevel      string
	unknownFields string
	format        string

	logger zerolog.Logger
	policy schema.UnknownFieldPolicy
	fmt    document.Format
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "logidconf",
		Short: "Resolve and check device configuration files",
		Long: `logidconf resolves device configuration documents (devices, profiles,
buttons, gestures) into typed configuration and reports every problem
with the document path it was found at.

Supported syntaxes, chosen by file extension or --format:
  - YAML (.yaml, .yml)
  - JSON (.json)
  - TOML (.toml)`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&opts.unknownFields, "unknown-fields", "warn",
		"what to do with undeclared fields (warn, ignore, reject)")
	rootCmd.PersistentFlags().StringVar(&opts.format, "format", "", "document format (yaml, json, toml); default from extension")

	rootCmd.AddCommand(newCheckCommand(opts))
	rootCmd.AddCommand(newNormalizeCommand(opts))
	rootCmd.AddCommand(newQueryCommand(opts))
	rootCmd.AddCommand(newWatchCommand(opts))

	return rootCmd
}

func (o *globalOptions) init(cmd *cobra.Command) error {
	level, err := zerolog.ParseLevel(o.logLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	o.logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: true}).
		Level(level).
		With().
		Timestamp().
		Logger()

	policy, ok := schema.ParseUnknownFieldPolicy(o.unknownFields)
	if !ok {
		return fmt.Errorf("invalid --unknown-fields %q: expected warn, ignore or reject", o.unknownFields)
	}

	o.policy = policy

	if o.format != "" {
		f, err := document.ParseFormat(o.format)
		if err != nil {
			return fmt.Errorf("invalid --format: %w", err)
		}

		o.fmt = f
	}

	return nil
}

func (o *globalOptions) schemaOptions() []schema.Option {
	return []schema.Option{schema.WithUnknownFields(o.policy)}
}

// load reads a document without resolving it.
func (o *globalOptions) load(path string) (node.Node, error) {
	return document.Load(path, o.fmt)
}

// resolve reads and resolves a document, logging its diagnostics.
func (o *globalOptions) resolve(path string) (*config.Config, *diagnostic.Diagnostics, error) {
	root, err := o.load(path)
	if err != nil {
		return nil, nil, err
	}

	cfg, diags, err := config.Resolve(root, o.schemaOptions()...)
	live.LogDiagnostics(o.logger, diags)

	if err != nil {
		live.LogResolveError(o.logger.Debug(), err).Msg("Resolution failed")
		return nil, diags, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, diags, nil
}
