package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"logidconf/config"
	"logidconf/internal/document"
)

func newNormalizeCommand(opts *globalOptions) *cobra.Command {
	var (
		output     string
		outputFile string
	)

	cmd := &cobra.Command{
		Use:   "normalize <file>",
		Short: "Rewrite a configuration file in canonical form",
		Long: `Resolve a configuration file and write it back out. Fields keep their
declared order, absent optional fields are dropped, and every collection
element starts with its key. Unknown fields are not carried over.`,
		Example: `  # Convert a TOML configuration to YAML
  logidconf normalize logid.toml > logid.yaml

  # Write JSON to a file
  logidconf normalize --output json -o logid.json logid.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := opts.resolve(args[0])
			if err != nil {
				return err
			}

			f, err := document.ParseFormat(output)
			if err != nil {
				return fmt.Errorf("invalid --output: %w", err)
			}

			var data []byte

			switch f {
			case document.FormatYAML:
				data, err = document.EncodeYAML(config.Encode(cfg))
				if err != nil {
					return err
				}
			case document.FormatJSON:
				data = append(document.EncodeJSON(config.Encode(cfg)), '\n')
			default:
				return fmt.Errorf("invalid --output: cannot write %v", f)
			}

			if outputFile == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			if err := os.WriteFile(outputFile, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", outputFile, err)
			}

			opts.logger.Info().Str("file", outputFile).Msg("Wrote normalized configuration")

			return nil
		},
	}

	cmd.Flags().StringVar(&output, "output", "yaml", "output syntax (yaml, json)")
	cmd.Flags().StringVarP(&outputFile, "out", "o", "", "write to file instead of stdout")

	return cmd
}
