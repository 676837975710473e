package report

import "errors"

var (
	// ErrMalformedDocument means the payload is present but cannot be shown.
	ErrMalformedDocument = errors.New("malformed analysis document")
	// ErrNoAnalysis means the handoff slot is empty.
	ErrNoAnalysis = errors.New("no analysis available")
)

// MaxDepth bounds nesting of decoded and rendered documents.
const MaxDepth = 64
