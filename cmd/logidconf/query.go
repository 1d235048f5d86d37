package main

import (
	"fmt"

	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"logidconf/internal/document"
)

func newQueryCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <file> <jsonpath>",
		Short: "Evaluate a JSONPath expression against a configuration file",
		Long: `Evaluate a JSONPath expression against the parsed document, before
resolution. Every match is printed as one line of JSON.`,
		Example: `  # Names of all configured devices
  logidconf query logid.yaml '$.devices[*].name'

  # Buttons remapped to a keypress
  logidconf query logid.yaml '$..buttons[?(@.action.type == "Keypress")].cid'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := opts.load(args[0])
			if err != nil {
				return err
			}

			results, err := document.Query(root, args[1])
			if err != nil {
				return err
			}

			opts.logger.Debug().Int("matches", len(results)).Str("expr", args[1]).Msg("Query evaluated")

			for _, r := range results {
				fmt.Fprintln(cmd.OutOrStdout(), oj.JSON(r, &oj.Options{Sort: true}))
			}

			return nil
		},
	}

	return cmd
}
