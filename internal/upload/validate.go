package upload

import (
	"errors"

	"alfredoptarigan/resume-analyzer/internal/models"
)

// MaxFileSize is the largest résumé accepted, in bytes.
const MaxFileSize = 5 * 1024 * 1024

var (
	ErrUnsupportedType  = errors.New("unsupported file type")
	ErrTooLarge         = errors.New("file too large")
	ErrUploadInProgress = errors.New("upload in progress")
	ErrNoFileSelected   = errors.New("no file selected")
)

// ValidationError carries the message shown to the user for a rejected file.
type ValidationError struct {
	Kind    error
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

var acceptedTypes = map[string]bool{
	models.MimeTypePDF:  true,
	models.MimeTypeDOCX: true,
}

// Validate checks the declared type first, then the size.
func Validate(file models.FileHandle) error {
	if !acceptedTypes[file.MimeType] {
		return &ValidationError{Kind: ErrUnsupportedType, Message: "Please upload a PDF or DOCX file"}
	}
	if file.Size > MaxFileSize {
		return &ValidationError{Kind: ErrTooLarge, Message: "File size exceeds limit(5MB)."}
	}
	return nil
}
