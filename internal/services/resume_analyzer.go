package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"alfredoptarigan/resume-analyzer/internal/models"
)

// MinResumeWords is the shortest text still worth sending to the model.
const MinResumeWords = 100

// RejectionError is a document the service refuses to analyze. Its message is
// returned to the caller as is.
type RejectionError struct {
	Message string
}

func (e *RejectionError) Error() string {
	return e.Message
}

var (
	ErrUnsupportedDocument = &RejectionError{Message: "Only PDF and DOCX files are supported"}
	ErrContentTooShort     = &RejectionError{Message: "File content is too short to be a Resume"}
	ErrNotAResume          = &RejectionError{Message: "Uploaded file does not appear to be a Resume/CV."}
)

// IsSupportedDocument reports whether the service can extract text from the
// given MIME type.
func IsSupportedDocument(mimeType string) bool {
	return mimeType == models.MimeTypePDF || mimeType == models.MimeTypeDOCX
}

type ResumeAnalyzerService interface {
	Analyze(ctx context.Context, filePath, mimeType string) (string, error)
}

type resumeAnalyzerService struct {
	geminiService GeminiService
	pdfParser     PDFParserService
	docxParser    DocxParserService
	promptBuilder *PromptBuilder
	maxRetries    int
}

func NewResumeAnalyzerService(
	geminiService GeminiService,
	pdfParser PDFParserService,
	docxParser DocxParserService,
	maxRetries int,
) ResumeAnalyzerService {
	return &resumeAnalyzerService{
		geminiService: geminiService,
		pdfParser:     pdfParser,
		docxParser:    docxParser,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
	}
}

func (r *resumeAnalyzerService) Analyze(ctx context.Context, filePath, mimeType string) (string, error) {
	// Step 1: Extract text
	text, err := r.extractText(filePath, mimeType)
	if err != nil {
		return "", err
	}

	// Step 2: Quick heuristic check
	if len(strings.Fields(text)) < MinResumeWords {
		return "", ErrContentTooShort
	}

	// Step 3: Resume detection
	log.Println("🔍 Checking the document is a resume...")
	verdict, err := r.geminiService.GenerateTextWithRetry(ctx, r.promptBuilder.BuildDetectionPrompt(text), 0, r.maxRetries)
	if err != nil {
		return "", fmt.Errorf("failed to classify document: %w", err)
	}
	if !strings.Contains(strings.ToUpper(strings.TrimSpace(verdict)), "YES") {
		return "", ErrNotAResume
	}

	// Step 4: Resume analysis
	log.Println("🤖 Analyzing resume with LLM...")
	analysis, err := r.geminiService.GenerateTextWithRetry(ctx, r.promptBuilder.BuildAnalysisPrompt(text), 0.4, r.maxRetries)
	if err != nil {
		return "", fmt.Errorf("failed to analyze resume: %w", err)
	}

	log.Printf("✅ Analysis generated: %d characters\n", len(analysis))
	return analysis, nil
}

func (r *resumeAnalyzerService) extractText(filePath, mimeType string) (string, error) {
	var extractor TextExtractor
	switch mimeType {
	case models.MimeTypePDF:
		extractor = r.pdfParser
	case models.MimeTypeDOCX:
		extractor = r.docxParser
	default:
		return "", ErrUnsupportedDocument
	}

	text, err := extractor.ExtractText(filePath)
	if errors.Is(err, ErrNoTextContent) {
		return "", ErrContentTooShort
	}
	if err != nil {
		return "", fmt.Errorf("failed to extract text: %w", err)
	}

	return CleanText(text), nil
}
