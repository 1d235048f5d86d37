package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"logidconf/config"
	"logidconf/diagnostic"
	"logidconf/internal/live"
)

func newWatchCommand(opts *globalOptions) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Keep a configuration resolved while the file changes",
		Long: `Resolve a configuration file, then re-resolve it every time it changes
until interrupted. A change that fails to resolve is reported and the
previous configuration stays in effect.`,
		Example: `  logidconf watch --debounce 1s /etc/logid.yaml`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := live.NewLoader(args[0],
				live.WithFormat(opts.fmt),
				live.WithSchemaOptions(opts.schemaOptions()...),
				live.WithDebounce(debounce),
				live.WithLogger(opts.logger),
			)

			diags, err := loader.Reload()
			live.LogDiagnostics(opts.logger, diags)

			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, summary(args[0], loader.Current(), len(diags.Warnings)))

			ctx := cmd.Context()

			if err := loader.Watch(ctx, func(cfg *config.Config, diags *diagnostic.Diagnostics) {
				fmt.Fprintln(out, summary(args[0], cfg, len(diags.Warnings)))
			}); err != nil {
				return err
			}

			<-ctx.Done()

			opts.logger.Info().Msg("Stopped watching")

			return nil
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", live.DefaultDebounce, "delay between a change and the reload")

	return cmd
}
