package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"alfredoptarigan/resume-analyzer/internal/handoff"
	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
	"alfredoptarigan/resume-analyzer/internal/upload"
)

// errReported marks a failure that was already printed.
var errReported = errors.New("analysis failed")

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6366f1"))
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ef4444"))
)

func newAnalyzeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <file>",
		Short: "Upload a resume and print its analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := models.FileFromPath(args[0])
			if err != nil {
				return err
			}

			client := services.NewAnalyzerClient(opts.backend, opts.timeout)
			return analyze(cmd, client, file, opts)
		},
	}
}

func analyze(cmd *cobra.Command, client services.AnalyzerClient, file models.FileHandle, opts *options) error {
	out := cmd.OutOrStdout()
	store := handoff.NewMemoryStore()

	controller := upload.NewController(client, store, upload.WithHooks(upload.Hooks{
		Changed: func(s upload.Snapshot) {
			if s.Slow() {
				fmt.Fprintln(out, statusStyle.Render("Analysis will take a few moments, please have patience."))
			}
		},
	}))

	if err := controller.SelectFile(file); err != nil {
		var validation *upload.ValidationError
		if errors.As(err, &validation) {
			return printError(cmd.ErrOrStderr(), validation.Message)
		}
		return err
	}

	fmt.Fprintln(out, statusStyle.Render(fmt.Sprintf("Analyzing %s (%s)...", file.Name, file.SizeKB())))
	if err := controller.Submit(cmd.Context()); err != nil {
		return err
	}
	controller.Wait()

	if snap := controller.Snapshot(); snap.Error != "" {
		return printError(cmd.ErrOrStderr(), snap.Error)
	}

	return printReport(out, store, opts)
}

func printError(w io.Writer, message string) error {
	fmt.Fprintln(w, errorStyle.Render("Error: ")+message)
	return fmt.Errorf("%w: %s", errReported, message)
}
