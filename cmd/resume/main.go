// Command resume submits a résumé to the analysis service and prints the
// report in the terminal.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"alfredoptarigan/resume-analyzer/internal/config"
)

type options struct {
	backend string
	timeout time.Duration
	plain   bool
	asJSON  bool
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "resume",
		Short: "Analyze a resume from the terminal",
		Long: `Submit a PDF or DOCX resume to the analysis service and print the
structured report it returns.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.backend, "backend", cfg.Client.BackendURL, "Base URL of the analysis service")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", cfg.Client.RequestTimeout, "Request timeout")
	rootCmd.PersistentFlags().BoolVar(&opts.plain, "plain", false, "Print without colors")
	rootCmd.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "Print the rendered report as JSON")

	rootCmd.AddCommand(newAnalyzeCmd(opts))
	rootCmd.AddCommand(newRenderCmd(opts))

	return rootCmd
}

func main() {
	cfg := config.Load()

	if err := newRootCmd(cfg).Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, errorStyle.Render("Error: ")+err.Error())
		}
		os.Exit(1)
	}
}
