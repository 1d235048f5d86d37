package main

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"logidconf/config"
)

func newCheckCommand(opts *globalOptions) *cobra.Command {
	var (
		dump   bool
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Resolve a configuration file and report problems",
		Long: `Resolve a configuration file and report the first error, with the
document path it was found at, and every warning.

Exits non-zero when the file does not resolve, or with --strict when
there are warnings.`,
		Example: `  # Check the system configuration
  logidconf check /etc/logid.yaml

  # Fail on unknown fields and print the resolved tree
  logidconf check --unknown-fields reject --dump logid.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, diags, err := opts.resolve(args[0])
			if err != nil {
				return err
			}

			if dump {
				spew.Fdump(cmd.OutOrStdout(), cfg)
			}

			if strict && diags.HasWarnings() {
				return fmt.Errorf("%s: %d warning(s)", args[0], len(diags.Warnings))
			}

			fmt.Fprintln(cmd.OutOrStdout(), summary(args[0], cfg, len(diags.Warnings)))

			return nil
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "print the resolved configuration tree")
	cmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as errors")

	return cmd
}

func summary(path string, cfg *config.Config, warnings int) string {
	var devices, profiles int

	if ds, ok := cfg.Devices.Get(); ok {
		for _, settings := range ds.All() {
			devices++

			if d, ok := settings.(config.Device); ok {
				profiles += d.Profiles.Len()
			} else {
				profiles++
			}
		}
	}

	return fmt.Sprintf("%s: ok (%d devices, %d profiles, %d warnings)", path, devices, profiles, warnings)
}
