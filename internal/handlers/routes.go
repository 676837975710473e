package handlers

import "github.com/gofiber/fiber/v2"

// RegisterWebRoutes mounts the browser-facing upload and report views.
func RegisterWebRoutes(app *fiber.App, uploadHandler *UploadHandler, resultHandler *ResultHandler) {
	app.Get("/health", HandleHealth)

	// Views
	app.Get("/", uploadHandler.HandleIndex)
	app.Get("/analysis", resultHandler.HandleReport)
	app.Post("/analysis/new", resultHandler.HandleNewAnalysis)

	// Upload workflow
	api := app.Group("/api")
	api.Get("/upload/state", uploadHandler.HandleState)
	api.Post("/upload/file", uploadHandler.HandleSelectFile)
	api.Delete("/upload/file", uploadHandler.HandleRemoveFile)
	api.Post("/upload/drag", uploadHandler.HandleDrag)
	api.Post("/upload/submit", uploadHandler.HandleSubmit)
	api.Post("/upload/ack", uploadHandler.HandleAcknowledge)
	api.Get("/analysis", resultHandler.HandleReportJSON)
}

// RegisterAnalyzerRoutes mounts the analysis service endpoints.
func RegisterAnalyzerRoutes(app *fiber.App, analyzeHandler *AnalyzeHandler) {
	app.Get("/", analyzeHandler.HandleHome)
	app.Get("/health", HandleHealth)
	app.Post("/analyze", analyzeHandler.HandleAnalyze)
}
