package report

import (
	"fmt"
	"strings"

	"alfredoptarigan/resume-analyzer/internal/handoff"
)

// Document is a handoff payload ready for display.
type Document struct {
	Root *Node
}

// Parse normalizes, decodes and renders a raw payload.
func Parse(raw string) (*Document, error) {
	value, err := Decode(Normalize(raw))
	if err != nil {
		return nil, err
	}

	root, err := Render(value)
	if err != nil {
		return nil, err
	}

	return &Document{Root: root}, nil
}

// Navigator is the hook the report view uses to send the user back to the
// upload view.
type Navigator interface {
	ToUpload()
}

type NavigatorFunc func()

func (f NavigatorFunc) ToUpload() { f() }

// View hosts the report for one session.
type View struct {
	store handoff.Store
	nav   Navigator
}

func NewView(store handoff.Store, nav Navigator) *View {
	return &View{store: store, nav: nav}
}

// Enter loads the payload left by the upload workflow. An empty slot sends the
// user to the upload view and returns ErrNoAnalysis.
func (v *View) Enter() (*Document, error) {
	raw, ok := v.store.Peek()
	if !ok || strings.TrimSpace(raw) == "" {
		v.nav.ToUpload()
		return nil, ErrNoAnalysis
	}

	doc, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to load analysis: %w", err)
	}
	return doc, nil
}

// NewAnalysis discards the payload and returns to the upload view.
func (v *View) NewAnalysis() {
	v.store.Take()
	v.nav.ToUpload()
}
