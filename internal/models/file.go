package models

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	MimeTypePDF  = "application/pdf"
	MimeTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// FileHandle describes a candidate résumé file as the host reported it.
type FileHandle struct {
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`

	open func() (io.ReadCloser, error)
}

func NewFileHandle(name, mimeType string, size int64, open func() (io.ReadCloser, error)) FileHandle {
	return FileHandle{Name: name, Size: size, MimeType: mimeType, open: open}
}

// FileFromBytes builds a handle over an in-memory copy of the file.
func FileFromBytes(name, mimeType string, data []byte) FileHandle {
	return NewFileHandle(name, mimeType, int64(len(data)), func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	})
}

// FileFromPath builds a handle for a file on disk. The declared MIME type is
// derived from the extension, the way a browser picker does.
func FileFromPath(path string) (FileHandle, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileHandle{}, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return FileHandle{}, fmt.Errorf("%s is a directory", path)
	}

	return NewFileHandle(filepath.Base(path), MimeTypeFromName(path), info.Size(), func() (io.ReadCloser, error) {
		return os.Open(path)
	}), nil
}

func MimeTypeFromName(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return MimeTypePDF
	case ".docx":
		return MimeTypeDOCX
	case ".doc":
		return "application/msword"
	case ".txt":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}

func (f FileHandle) Open() (io.ReadCloser, error) {
	if f.open == nil {
		return nil, fmt.Errorf("file %q has no content", f.Name)
	}
	return f.open()
}

// SizeKB formats the size the way the upload view displays it.
func (f FileHandle) SizeKB() string {
	return fmt.Sprintf("%.1f KB", float64(f.Size)/1024)
}
