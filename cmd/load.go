package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"textmerger/pkg/ingest"
)

func newLoadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "load [paths...]",
		Short: "Print the ingested records as JSON",
		Long:  `Load ingests the given paths and prints the path-to-record mapping as JSON.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.ingestOptions()
			if err != nil {
				return err
			}

			records, expanded := ingest.LoadFiles(args, opts)
			if n := len(expanded.Missing); n > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d files not found\n", n)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(records); err != nil {
				return fmt.Errorf("failed to encode records: %w", err)
			}
			return nil
		},
	}
}
