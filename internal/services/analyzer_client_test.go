package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-analyzer/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestAnalyzerClient_Success(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/analyze", r.URL.Path)

		file, header, err := r.FormFile(ResumeField)
		if !assert.NoError(t, err) {
			return
		}
		defer file.Close()

		assert.Equal(t, "resume.pdf", header.Filename)
		assert.Equal(t, models.MimeTypePDF, header.Header.Get("Content-Type"))
		content, _ := io.ReadAll(file)
		assert.Equal(t, "%PDF-1.7", string(content))

		writeJSON(w, http.StatusOK, map[string]string{
			"status":   "ok",
			"analysis": `{"summary":"Good"}`,
		})
	}))
	defer server.Close()

	client := NewAnalyzerClient(server.URL+"/", 5*time.Second)
	resp, err := client.Analyze(context.Background(), models.FileFromBytes("resume.pdf", models.MimeTypePDF, []byte("%PDF-1.7")))

	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, `{"summary":"Good"}`, resp.Analysis)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestAnalyzerClient_ServerErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Unreadable file"})
	}))
	defer server.Close()

	_, err := NewAnalyzerClient(server.URL, 5*time.Second).
		Analyze(context.Background(), models.FileFromBytes("cv.docx", models.MimeTypeDOCX, []byte("PK")))

	require.Error(t, err)
	assert.Equal(t, "Unreadable file", err.Error())
	assert.ErrorIs(t, err, ErrServerError)
	assert.NotErrorIs(t, err, ErrTransportFailure)

	var analysisErr *AnalysisError
	require.ErrorAs(t, err, &analysisErr)
	assert.Equal(t, http.StatusBadRequest, analysisErr.StatusCode)
}

func TestAnalyzerClient_ServerErrorWithoutBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := NewAnalyzerClient(server.URL, 5*time.Second).
		Analyze(context.Background(), models.FileFromBytes("cv.pdf", models.MimeTypePDF, []byte("x")))

	require.Error(t, err)
	assert.Equal(t, "Request failed with status code 502", err.Error())
}

func TestAnalyzerClient_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewAnalyzerClient(url, time.Second).
		Analyze(context.Background(), models.FileFromBytes("cv.pdf", models.MimeTypePDF, []byte("x")))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransportFailure)
	assert.NotEmpty(t, err.Error())
}

func TestAnalyzerClient_InvalidSuccessBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>gateway</html>"))
	}))
	defer server.Close()

	_, err := NewAnalyzerClient(server.URL, 5*time.Second).
		Analyze(context.Background(), models.FileFromBytes("cv.pdf", models.MimeTypePDF, []byte("x")))

	require.Error(t, err)
	assert.Equal(t, "Invalid response from analysis service", err.Error())
}
