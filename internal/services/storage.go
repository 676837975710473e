package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"alfredoptarigan/resume-analyzer/internal/models"
)

// StagedUpload is an uploaded document copied to disk for one analysis.
type StagedUpload struct {
	ID           uuid.UUID
	OriginalName string
	Path         string
	MimeType     string
	Size         int64
}

// StorageService keeps uploaded documents on disk while they are analyzed.
type StorageService interface {
	EnsureUploadDir() error
	Stage(file *multipart.FileHeader) (*StagedUpload, error)
	Release(upload *StagedUpload) error
}

type storageService struct {
	uploadPath string
}

func NewStorageService(uploadPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

// Stage copies the part to a uniquely named file. The extension follows the
// declared MIME type so the extractors never depend on the client's filename.
func (s *storageService) Stage(file *multipart.FileHeader) (*StagedUpload, error) {
	staged := &StagedUpload{
		ID:           uuid.New(),
		OriginalName: file.Filename,
		MimeType:     file.Header.Get("Content-Type"),
	}
	staged.Path = filepath.Join(s.uploadPath, fmt.Sprintf("resume_%s%s", staged.ID, stagedExt(staged.MimeType, file.Filename)))

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(staged.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}

	staged.Size, err = io.Copy(dst, src)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(staged.Path)
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	return staged, nil
}

// Release removes the staged copy.
func (s *storageService) Release(upload *StagedUpload) error {
	if err := os.Remove(upload.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func stagedExt(mimeType, filename string) string {
	switch mimeType {
	case models.MimeTypePDF:
		return ".pdf"
	case models.MimeTypeDOCX:
		return ".docx"
	}
	return strings.ToLower(filepath.Ext(filename))
}
