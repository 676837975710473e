package models

// AnalyzeResponse is the success body of POST /analyze.
type AnalyzeResponse struct {
	Status   string `json:"status"`
	Analysis string `json:"analysis"`
}

// ErrorResponse is the failure body shared by every JSON endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

// UploadState is what the upload view polls to redraw itself.
type UploadState struct {
	Phase    string      `json:"phase"`
	File     *FileHandle `json:"file,omitempty"`
	FileSize string      `json:"file_size,omitempty"`
	Error    string      `json:"error,omitempty"`
	Dragging bool        `json:"dragging"`
	Slow     bool        `json:"slow"`
	Redirect string      `json:"redirect,omitempty"`
}
