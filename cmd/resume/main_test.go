package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/models"
)

func run(t *testing.T, backend string, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cfg := &config.Config{
		Client: config.ClientConfig{BackendURL: backend, RequestTimeout: 5 * time.Second},
	}
	cmd := newRootCmd(cfg)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRender_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payload.txt")
	require.NoError(t, os.WriteFile(path, []byte("```json\n{\"skills\": [\"Go\"], \"top_strength\": {\"point\": \"Ownership\", \"details\": \"Led two launches\"}}\n```"), 0644))

	out, _, err := run(t, "", "", "render", "--plain", path)

	require.NoError(t, err)
	assert.Contains(t, out, "Resume Analysis Report\n")
	assert.Contains(t, out, "SKILLS\n  - Go\n")
	assert.Contains(t, out, "TOP STRENGTH\n  Ownership\n    Led two launches\n")
}

func TestRender_FromStdinAsJSON(t *testing.T) {
	out, _, err := run(t, "", `{"summary": "Solid"}`, "render", "--json", "-")

	require.NoError(t, err)
	var root struct {
		Kind     string `json:"kind"`
		Children []struct {
			Text   string `json:"text"`
			Weight string `json:"weight"`
		} `json:"children"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &root))
	assert.Equal(t, "group", root.Kind)
	require.Len(t, root.Children, 1)
	assert.Equal(t, "SUMMARY", root.Children[0].Text)
	assert.Equal(t, "primary", root.Children[0].Weight)
}

func TestRender_Malformed(t *testing.T) {
	_, _, err := run(t, "", "not json", "render", "-")

	assert.Error(t, err)
}

func TestAnalyze_PrintsReport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/analyze", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.AnalyzeResponse{Status: "success", Analysis: `{"suggested_roles": ["Backend Engineer"]}`})
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "cv.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0644))

	out, _, err := run(t, server.URL, "", "analyze", "--plain", "--backend", server.URL, path)

	require.NoError(t, err)
	assert.Contains(t, out, "Analyzing cv.pdf")
	assert.Contains(t, out, "SUGGESTED ROLES\n  - Backend Engineer\n")
}

func TestAnalyze_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(models.ErrorResponse{Error: "File content is too short to be a Resume"})
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "cv.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0644))

	_, stderr, err := run(t, server.URL, "", "analyze", "--plain", path)

	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, stderr, "File content is too short to be a Resume")
}

func TestAnalyze_RejectsUnsupportedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0644))

	_, stderr, err := run(t, "http://127.0.0.1:1", "", "analyze", path)

	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, stderr, "Please upload a PDF or DOCX file")
}
