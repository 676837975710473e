package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-analyzer/internal/handoff"
	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/report"
	"alfredoptarigan/resume-analyzer/internal/views"
)

// malformedMessage is shown when the stored analysis cannot be displayed.
const malformedMessage = "The analysis could not be displayed. Start a new analysis to try again."

// ResultHandler serves the report view for the analysis in the session's
// handoff slot.
type ResultHandler struct {
	sessions *SessionResolver
	views    *views.Renderer
}

func NewResultHandler(sessions *SessionResolver, renderer *views.Renderer) *ResultHandler {
	return &ResultHandler{
		sessions: sessions,
		views:    renderer,
	}
}

func (h *ResultHandler) HandleReport(c *fiber.Ctx) error {
	sess, err := h.sessions.Resolve(c)
	if err != nil {
		return err
	}

	nav := &redirect{}
	doc, err := report.NewView(sess.Handoff, nav).Enter()
	if nav.to != "" {
		return c.Redirect(nav.to, fiber.StatusSeeOther)
	}

	page := views.ReportPage{}
	if err != nil {
		log.Printf("⚠️  Cannot display %s for session %s: %v\n", handoff.Key, sess.ID, err)
		page.Error = malformedMessage
	} else {
		page.Root = doc.Root
	}

	c.Type("html", "utf-8")
	return h.views.Report(c, page)
}

// HandleReportJSON returns the rendered node tree.
func (h *ResultHandler) HandleReportJSON(c *fiber.Ctx) error {
	sess, err := h.sessions.Resolve(c)
	if err != nil {
		return err
	}

	doc, err := report.NewView(sess.Handoff, &redirect{}).Enter()
	if errors.Is(err, report.ErrNoAnalysis) {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{
			Error: "No analysis available",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(models.ErrorResponse{
			Error: malformedMessage,
		})
	}

	return c.JSON(fiber.Map{
		"report": doc.Root,
	})
}

// HandleNewAnalysis clears the stored analysis and returns to the upload view.
func (h *ResultHandler) HandleNewAnalysis(c *fiber.Ctx) error {
	sess, err := h.sessions.Resolve(c)
	if err != nil {
		return err
	}

	nav := &redirect{}
	report.NewView(sess.Handoff, nav).NewAnalysis()
	return c.Redirect(nav.to, fiber.StatusSeeOther)
}

// redirect records where the report view asked to go.
type redirect struct {
	to string
}

func (r *redirect) ToUpload() {
	r.to = "/"
}
