package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
	"alfredoptarigan/resume-analyzer/internal/session"
	"alfredoptarigan/resume-analyzer/internal/upload"
	"alfredoptarigan/resume-analyzer/internal/views"
)

// UploadHandler serves the upload view and the JSON endpoints its script
// drives.
type UploadHandler struct {
	ctx      context.Context
	sessions *SessionResolver
	views    *views.Renderer
}

// NewUploadHandler creates the handler. Submissions run under ctx rather than
// the request context so they outlive the request that started them.
func NewUploadHandler(ctx context.Context, sessions *SessionResolver, renderer *views.Renderer) *UploadHandler {
	return &UploadHandler{
		ctx:      ctx,
		sessions: sessions,
		views:    renderer,
	}
}

// HandleIndex mounts a fresh upload view.
func (h *UploadHandler) HandleIndex(c *fiber.Ctx) error {
	sess, err := h.sessions.Resolve(c)
	if err != nil {
		return err
	}

	sess.Mount()

	c.Type("html", "utf-8")
	return h.views.Upload(c, views.UploadPage{State: uploadState(sess)})
}

func (h *UploadHandler) HandleState(c *fiber.Ctx) error {
	sess, err := h.sessions.Resolve(c)
	if err != nil {
		return err
	}

	return c.JSON(uploadState(sess))
}

// HandleSelectFile stages a file from the picker, or the first of the dropped
// files when source=drop.
//
// The files are described by the repeated form fields name, size and type, in
// order. Only the first file's content travels, in the resume part, and only
// when it fits the upload limit. A request with no description falls back to
// the resume parts themselves.
func (h *UploadHandler) HandleSelectFile(c *fiber.Ctx) error {
	sess, err := h.sessions.Resolve(c)
	if err != nil {
		return err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "failed to parse multipart form",
		})
	}

	files, err := candidateFiles(form)
	if errors.Is(err, errInvalidDescription) {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Invalid file description",
		})
	}
	if err != nil {
		return err
	}

	if c.Query("source") == "drop" {
		err = sess.Upload.Drop(files)
	} else if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "No file selected",
		})
	} else {
		err = sess.Upload.SelectFile(files[0])
	}

	return respondState(c, sess, err)
}

func (h *UploadHandler) HandleRemoveFile(c *fiber.Ctx) error {
	sess, err := h.sessions.Resolve(c)
	if err != nil {
		return err
	}

	return respondState(c, sess, sess.Upload.RemoveFile())
}

type dragRequest struct {
	Dragging bool `json:"dragging"`
}

func (h *UploadHandler) HandleDrag(c *fiber.Ctx) error {
	sess, err := h.sessions.Resolve(c)
	if err != nil {
		return err
	}

	var req dragRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Invalid request body",
		})
	}

	if req.Dragging {
		sess.Upload.DragOver()
	} else {
		sess.Upload.DragLeave()
	}

	return c.JSON(uploadState(sess))
}

func (h *UploadHandler) HandleSubmit(c *fiber.Ctx) error {
	sess, err := h.sessions.Resolve(c)
	if err != nil {
		return err
	}

	return respondState(c, sess, sess.Upload.Submit(h.ctx))
}

// HandleAcknowledge dismisses the error notice.
func (h *UploadHandler) HandleAcknowledge(c *fiber.Ctx) error {
	sess, err := h.sessions.Resolve(c)
	if err != nil {
		return err
	}

	sess.Upload.Acknowledge()
	return c.JSON(uploadState(sess))
}

// respondState answers with the session state. Validation failures are part
// of the state and still answer 200.
func respondState(c *fiber.Ctx, sess *session.Session, err error) error {
	status := fiber.StatusOK

	var validation *upload.ValidationError
	switch {
	case err == nil, errors.As(err, &validation):
	case errors.Is(err, upload.ErrUploadInProgress):
		status = fiber.StatusConflict
	case errors.Is(err, upload.ErrNoFileSelected):
		status = fiber.StatusBadRequest
	default:
		return err
	}

	return c.Status(status).JSON(uploadState(sess))
}

func uploadState(sess *session.Session) models.UploadState {
	snap := sess.Upload.Snapshot()

	state := models.UploadState{
		Phase:    string(snap.Phase),
		File:     snap.File,
		Error:    snap.Error,
		Dragging: snap.Dragging,
		Slow:     snap.Slow(),
	}
	if snap.File != nil {
		state.FileSize = snap.File.SizeKB()
	}
	if sess.TakeNavigation() {
		state.Redirect = "/analysis"
	}
	return state
}

var errInvalidDescription = errors.New("invalid file description")

func candidateFiles(form *multipart.Form) ([]models.FileHandle, error) {
	parts := form.File[services.ResumeField]
	names := form.Value["name"]
	if len(names) == 0 {
		files := make([]models.FileHandle, 0, len(parts))
		for i, fh := range parts {
			if i > 0 {
				// Ignored by the workflow, so never read.
				files = append(files, models.NewFileHandle(fh.Filename, fh.Header.Get(fiber.HeaderContentType), fh.Size, nil))
				continue
			}
			file, err := fileFromHeader(fh)
			if err != nil {
				return nil, err
			}
			files = append(files, file)
		}
		return files, nil
	}

	sizes, types := form.Value["size"], form.Value["type"]
	if len(sizes) != len(names) || len(types) != len(names) {
		return nil, errInvalidDescription
	}

	files := make([]models.FileHandle, 0, len(names))
	for i, name := range names {
		size, err := strconv.ParseInt(sizes[i], 10, 64)
		if err != nil || size < 0 {
			return nil, errInvalidDescription
		}

		file := models.NewFileHandle(name, types[i], size, nil)
		if i == 0 && len(parts) > 0 && size <= upload.MaxFileSize {
			file, err = fileFromHeader(parts[0])
			if err != nil {
				return nil, err
			}
			file.Name, file.MimeType = name, types[i]
		}
		files = append(files, file)
	}
	return files, nil
}

// fileFromHeader copies an uploaded part into memory so it survives the
// request. Parts over the upload limit are not read: validation rejects them
// on size alone.
func fileFromHeader(fh *multipart.FileHeader) (models.FileHandle, error) {
	mimeType := fh.Header.Get(fiber.HeaderContentType)
	if fh.Size > upload.MaxFileSize {
		return models.NewFileHandle(fh.Filename, mimeType, fh.Size, nil), nil
	}

	src, err := fh.Open()
	if err != nil {
		return models.FileHandle{}, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return models.FileHandle{}, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	return models.FileFromBytes(fh.Filename, mimeType, data), nil
}
