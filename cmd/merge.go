package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"textmerger/pkg/config"
	"textmerger/pkg/progress"
	"textmerger/pkg/workspace"
)

func newMergeCmd(a *app) *cobra.Command {
	var (
		output string
		format string
		tree   bool
	)

	cmd := &cobra.Command{
		Use:   "merge [paths...]",
		Short: "Merge files and directories into one document",
		Long: `Merge reads every given file and walks every given directory, then writes one
merged document to stdout or, with --output, atomically to a file.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("output") {
				output = a.cfg.Output.Path
			}
			if !cmd.Flags().Changed("format") {
				format = a.cfg.Output.Format
			}
			if !cmd.Flags().Changed("tree") {
				tree = a.cfg.Output.Tree
			}
			if format != config.FormatText && format != config.FormatHTML {
				return fmt.Errorf("unknown format %q, expected %q or %q", format, config.FormatText, config.FormatHTML)
			}

			opts, err := a.ingestOptions()
			if err != nil {
				return err
			}

			bar := progress.New(0)
			opts.OnStart = bar.SetTotal
			opts.OnProgress = bar.Increment

			ws := workspace.New(opts)
			result := ws.Add(args)
			bar.Finish()

			if n := len(result.Missing); n > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d files not found\n", n)
				for _, path := range result.Missing {
					a.logger.Warn("Path not found", zap.String("path", path))
				}
			}

			renderOpts := workspace.RenderOptions{Tree: tree}
			var doc string
			if format == config.FormatHTML {
				doc, err = ws.RenderHTML(renderOpts)
				if err != nil {
					return err
				}
			} else {
				doc = ws.Render(renderOpts)
			}

			if output == "" || output == "-" {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), doc)
				return err
			}

			if err := workspace.Export(output, doc); err != nil {
				a.logger.Error("Export failed", zap.String("output", output), zap.Error(err))
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Merged %d files into %s\n", len(ws.Files), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the merged document to this file instead of stdout")
	cmd.Flags().StringVarP(&format, "format", "f", config.FormatText, "Output format: text or html")
	cmd.Flags().BoolVarP(&tree, "tree", "t", false, "Prefix the document with a tree of the merged files")
	return cmd
}
