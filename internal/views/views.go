// Package views renders the upload and report pages.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/report"
	"alfredoptarigan/resume-analyzer/internal/upload"
)

//go:embed templates/*.html
var templateFS embed.FS

// SlowNotice is shown once an analysis has been running for a while.
const SlowNotice = "Analysis will take a few moments, please have patience."

var templateFuncs = template.FuncMap{
	"headingClass": func(w report.Weight) string {
		if w == report.WeightPrimary {
			return "heading heading-primary"
		}
		return "heading heading-secondary"
	},
	"isKind": func(n *report.Node, kind string) bool {
		return n != nil && string(n.Kind) == kind
	},
	"slowNotice":  func() string { return SlowNotice },
	"maxFileSize": func() int64 { return upload.MaxFileSize },
}

// UploadPage is the data behind the upload view.
type UploadPage struct {
	State models.UploadState
}

// ReportPage is the data behind the report view. Error is set instead of Root
// when the stored analysis cannot be displayed.
type ReportPage struct {
	Root  *report.Node
	Error string
}

type Renderer struct {
	upload *template.Template
	report *template.Template
}

func New() (*Renderer, error) {
	upload, err := template.New("upload.html").Funcs(templateFuncs).ParseFS(templateFS, "templates/layout.html", "templates/upload.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse upload template: %w", err)
	}

	rep, err := template.New("report.html").Funcs(templateFuncs).ParseFS(templateFS, "templates/layout.html", "templates/report.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse report template: %w", err)
	}

	return &Renderer{upload: upload, report: rep}, nil
}

func (r *Renderer) Upload(w io.Writer, page UploadPage) error {
	return r.upload.ExecuteTemplate(w, "upload.html", page)
}

func (r *Renderer) Report(w io.Writer, page ReportPage) error {
	return r.report.ExecuteTemplate(w, "report.html", page)
}
