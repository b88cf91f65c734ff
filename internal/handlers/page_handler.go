package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

type Feature struct {
	Icon        string
	Title       string
	Description string
}

var homeFeatures = []Feature{
	{Icon: "📊", Title: "CV Scoring (ATS)", Description: "AI-powered resume insights"},
	{Icon: "🧾", Title: "AI Resume Builder", Description: "Create resumes with AI help"},
	{Icon: "🎯", Title: "Job Matching Score", Description: "Find perfect job matches"},
	{Icon: "✍️", Title: "Cover Letter Generator", Description: "Create professional letters"},
}

type PageHandler struct {
	startedAt time.Time
}

func NewPageHandler(startedAt time.Time) *PageHandler {
	return &PageHandler{startedAt: startedAt}
}

// HandleHome handles GET /
func (h *PageHandler) HandleHome(c *fiber.Ctx) error {
	return c.Render("home", fiber.Map{
		"Title":    "Home",
		"Features": homeFeatures,
		"Upload":   uploadView(currentSession(c).Upload.State()),
	})
}

// Placeholder renders a page that only shows its heading.
func (h *PageHandler) Placeholder(title, heading string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Render("placeholder", fiber.Map{
			"Title":   title,
			"Heading": heading,
		})
	}
}

// HandleHealth handles GET /health
func (h *PageHandler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"uptime": time.Since(h.startedAt).Round(time.Second).String(),
	})
}
