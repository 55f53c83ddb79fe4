package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"textmerger/pkg/formats"
)

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the supported file formats by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table := formats.SupportedFormats()
			for _, category := range formats.Categories() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", category, strings.Join(table[category], " "))
			}
			return nil
		},
	}
}
