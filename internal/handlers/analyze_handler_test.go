package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

type mockWorker struct {
	mock.Mock
}

func (m *mockWorker) Start(ctx context.Context) {}

func (m *mockWorker) Stop() {}

func (m *mockWorker) Submit(ctx context.Context, filePath, mimeType string) (string, error) {
	args := m.Called(ctx, filePath, mimeType)
	return args.String(0), args.Error(1)
}

func newAnalyzerApp(t *testing.T, worker services.Worker) (*fiber.App, string) {
	t.Helper()

	dir := t.TempDir()
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	RegisterAnalyzerRoutes(app, NewAnalyzeHandler(services.NewStorageService(dir), worker, 1024*1024))
	return app, dir
}

func analyzeRequest(t *testing.T, field, filename, mimeType string) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, field, filename))
	header.Set("Content-Type", mimeType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 test content"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set(fiber.HeaderContentType, writer.FormDataContentType())
	return req
}

func decodeError(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()

	var body models.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Error
}

func TestAnalyzeHandler_Success(t *testing.T) {
	worker := new(mockWorker)
	worker.On("Submit", mock.Anything, mock.AnythingOfType("string"), models.MimeTypePDF).
		Return(`{"summary":"Good"}`, nil)
	app, dir := newAnalyzerApp(t, worker)

	resp, err := app.Test(analyzeRequest(t, services.ResumeField, "cv.pdf", models.MimeTypePDF), -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body models.AnalyzeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "success", body.Status)
	assert.Equal(t, `{"summary":"Good"}`, body.Analysis)
	worker.AssertExpectations(t)

	// The temporary upload is removed once the analysis is done.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAnalyzeHandler_MissingFile(t *testing.T) {
	worker := new(mockWorker)
	app, _ := newAnalyzerApp(t, worker)

	resp, err := app.Test(analyzeRequest(t, "document", "cv.pdf", models.MimeTypePDF), -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "No file uploaded", decodeError(t, resp))
	worker.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)
}

func TestAnalyzeHandler_UnsupportedType(t *testing.T) {
	worker := new(mockWorker)
	app, _ := newAnalyzerApp(t, worker)

	resp, err := app.Test(analyzeRequest(t, services.ResumeField, "cv.txt", "text/plain"), -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Only PDF and DOCX files are supported", decodeError(t, resp))
}

func TestAnalyzeHandler_Rejection(t *testing.T) {
	worker := new(mockWorker)
	worker.On("Submit", mock.Anything, mock.Anything, models.MimeTypeDOCX).
		Return("", fmt.Errorf("wrapped: %w", services.ErrNotAResume))
	app, _ := newAnalyzerApp(t, worker)

	resp, err := app.Test(analyzeRequest(t, services.ResumeField, "cv.docx", models.MimeTypeDOCX), -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Uploaded file does not appear to be a Resume/CV.", decodeError(t, resp))
}

func TestAnalyzeHandler_InternalFailure(t *testing.T) {
	worker := new(mockWorker)
	worker.On("Submit", mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("quota exceeded"))
	app, _ := newAnalyzerApp(t, worker)

	resp, err := app.Test(analyzeRequest(t, services.ResumeField, "cv.pdf", models.MimeTypePDF), -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Failed to analyze Resume", decodeError(t, resp))
}

func TestHealth(t *testing.T) {
	app, _ := newAnalyzerApp(t, new(mockWorker))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestErrorHandler_UsesFiberCode(t *testing.T) {
	app, _ := newAnalyzerApp(t, new(mockWorker))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil), -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Cannot GET /missing", decodeError(t, resp))
}
