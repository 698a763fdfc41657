// -- cmd/layout.go --
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xkilldash9x/folio/internal/observability"
)

// newLayoutCmd creates the `layout` command.
func newLayoutCmd() *cobra.Command {
	var (
		format      string
		pdfDir      string
		xpath       string
		concurrency int
	)

	layoutCmd := &cobra.Command{
		Use:   "layout FILE...",
		Short: "Lay out HTML documents and dump their frame trees",
		Long: `Parses each HTML file, builds its frame tree, lays it out on one page and
writes the tree to stdout. Files are processed concurrently; output keeps
the argument order.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFrom(cmd.Context())
			if err != nil {
				return err
			}

			// Flags override the file and environment only when given.
			flags := cmd.Flags()
			if flags.Changed("format") {
				cfg.SetRenderFormat(format)
			}
			if flags.Changed("pdf-dir") {
				cfg.SetRenderOutputDir(pdfDir)
			}
			if flags.Changed("concurrency") {
				cfg.SetEngineWorkerConcurrency(concurrency)
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid flags: %w", err)
			}

			r, err := newRunner(cfg, observability.GetLogger(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			r.xpath = xpath
			return r.Run(cmd.Context(), args)
		},
	}

	layoutCmd.Flags().StringVarP(&format, "format", "f", "text", "dump format: text, json, xml or ops")
	layoutCmd.Flags().StringVar(&pdfDir, "pdf-dir", "", "also render each document to a PDF in this directory")
	layoutCmd.Flags().StringVar(&xpath, "xpath", "", "dump only the frames of elements matching this XPath expression")
	layoutCmd.Flags().IntVarP(&concurrency, "concurrency", "j", 0, "number of documents processed at once")
	return layoutCmd
}
