package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"alfredoptarigan/resume-analyzer/internal/handoff"
	"alfredoptarigan/resume-analyzer/internal/report"
)

func newRenderCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "render <payload-file>",
		Short: "Render a saved analysis payload",
		Long: `Render an analysis payload as returned by the service. Use "-" to read
the payload from standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readPayload(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			store := handoff.NewMemoryStore()
			if err := store.Put(raw); err != nil {
				return err
			}
			return printReport(cmd.OutOrStdout(), store, opts)
		},
	}
}

func readPayload(stdin io.Reader, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read payload: %w", err)
	}
	return string(data), nil
}

// printReport shows the analysis waiting in store, then clears it the way
// the report view's New Analysis action does.
func printReport(w io.Writer, store handoff.Store, opts *options) error {
	view := report.NewView(store, report.NavigatorFunc(func() {}))

	doc, err := view.Enter()
	if err != nil {
		return err
	}
	defer view.NewAnalysis()

	if opts.asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc.Root)
	}

	styles := report.DefaultTextStyles()
	if opts.plain {
		styles = report.PlainTextStyles()
	}

	if _, err := fmt.Fprintln(w, styles.Primary.Render("Resume Analysis Report")); err != nil {
		return err
	}
	if err := report.WriteText(w, doc.Root, styles); err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, "\n💡 Tip: Use these insights to improve your resume before applying to jobs")
	return err
}
