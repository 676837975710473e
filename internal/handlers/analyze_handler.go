package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

// AnalyzeHandler serves POST /analyze for the analysis service.
type AnalyzeHandler struct {
	storageService services.StorageService
	worker         services.Worker
	maxFileSize    int64
}

func NewAnalyzeHandler(
	storageService services.StorageService,
	worker services.Worker,
	maxFileSize int64,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		storageService: storageService,
		worker:         worker,
		maxFileSize:    maxFileSize,
	}
}

func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	file, err := c.FormFile(services.ResumeField)
	if err != nil {
		return badRequest(c, "No file uploaded")
	}

	if file.Filename == "" {
		return badRequest(c, "No file selected")
	}

	mimeType := file.Header.Get(fiber.HeaderContentType)
	if !services.IsSupportedDocument(mimeType) {
		return badRequest(c, services.ErrUnsupportedDocument.Message)
	}

	if file.Size > h.maxFileSize {
		return badRequest(c, "File is too large")
	}

	staged, err := h.storageService.Stage(file)
	if err != nil {
		log.Printf("❌ Failed to stage upload: %v\n", err)
		return analysisFailed(c)
	}
	defer func() {
		if err := h.storageService.Release(staged); err != nil {
			log.Printf("⚠️  Failed to clean up %s: %v\n", staged.Path, err)
		}
	}()

	start := time.Now()
	analysis, err := h.worker.Submit(c.UserContext(), staged.Path, staged.MimeType)
	if err != nil {
		var rejection *services.RejectionError
		if errors.As(err, &rejection) {
			return badRequest(c, rejection.Message)
		}

		log.Printf("❌ Error analyzing resume: %v\n", err)
		return analysisFailed(c)
	}

	log.Printf("✅ Analyzed %s in %s\n", file.Filename, time.Since(start).Round(time.Millisecond))

	return c.JSON(models.AnalyzeResponse{
		Status:   "success",
		Analysis: analysis,
	})
}

func (h *AnalyzeHandler) HandleHome(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Resume Analyzer API",
		"version": "1.0.0",
		"endpoints": []string{
			"GET /health",
			"POST /analyze",
		},
	})
}

// HandleHealth is shared by both servers.
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "healthy",
		"time":   time.Now(),
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: message})
}

func analysisFailed(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
		Error: "Failed to analyze Resume",
	})
}
