package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-analyzer/internal/render"
)

type ResultHandler struct{}

func NewResultHandler() *ResultHandler {
	return &ResultHandler{}
}

// HandleGetResult handles GET /result
func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	state := currentSession(c).Upload.State()

	return c.Render("result", fiber.Map{
		"Title":     "Analysis Result",
		"HasResult": state.Result != nil,
		"Result":    render.Record(state.Result),
	})
}
