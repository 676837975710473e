package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"alfredoptarigan/resume-analyzer/internal/models"
)

// ResumeField is the multipart field carrying the file.
const ResumeField = "resume"

const maxResponseSize = 10 << 20

var (
	ErrTransportFailure = errors.New("transport failure")
	ErrServerError      = errors.New("server error")
)

// AnalysisError is a failed call to the analysis service. StatusCode is zero
// when no response was received.
type AnalysisError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *AnalysisError) Error() string {
	return e.Message
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

func (e *AnalysisError) Is(target error) bool {
	switch target {
	case ErrTransportFailure:
		return e.StatusCode == 0
	case ErrServerError:
		return e.StatusCode != 0
	}
	return false
}

type AnalyzerClient interface {
	Analyze(ctx context.Context, file models.FileHandle) (*models.AnalyzeResponse, error)
}

type analyzerClient struct {
	endpoint   string
	httpClient *http.Client
}

func NewAnalyzerClient(baseURL string, timeout time.Duration) AnalyzerClient {
	return &analyzerClient{
		endpoint:   strings.TrimRight(baseURL, "/") + "/analyze",
		httpClient: &http.Client{Timeout: timeout},
	}
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Analyze implements AnalyzerClient. It issues exactly one request.
func (a *analyzerClient) Analyze(ctx context.Context, file models.FileHandle) (*models.AnalyzeResponse, error) {
	body, contentType, err := buildResumeForm(file)
	if err != nil {
		return nil, &AnalysisError{Message: err.Error(), Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, body)
	if err != nil {
		return nil, &AnalysisError{Message: err.Error(), Err: err}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, &AnalysisError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &AnalysisError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("failed to read response: %v", err),
			Err:        err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp models.ErrorResponse
		if json.Unmarshal(raw, &errResp) == nil && errResp.Error != "" {
			return nil, &AnalysisError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		return nil, &AnalysisError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Request failed with status code %d", resp.StatusCode),
		}
	}

	var result models.AnalyzeResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, &AnalysisError{
			StatusCode: resp.StatusCode,
			Message:    "Invalid response from analysis service",
			Err:        err,
		}
	}

	return &result, nil
}

func buildResumeForm(file models.FileHandle) (*bytes.Buffer, string, error) {
	src, err := file.Open()
	if err != nil {
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}
	defer src.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(ResumeField), quoteEscaper.Replace(file.Name)))
	header.Set("Content-Type", file.MimeType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form part: %w", err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return nil, "", fmt.Errorf("failed to copy file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close form: %w", err)
	}

	return &buf, writer.FormDataContentType(), nil
}
