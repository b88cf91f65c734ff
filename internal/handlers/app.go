package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/kataras/golog"

	"alfredoptarigan/resume-analyzer/internal/repositories"
	"alfredoptarigan/resume-analyzer/internal/services"
	"alfredoptarigan/resume-analyzer/internal/views"
)

type AppConfig struct {
	AppName       string
	MaxUploadSize int64
	SessionCookie string
	SecureCookies bool
	AccessLog     bool
}

type Dependencies struct {
	Sessions repositories.SessionRepository
	Storage  services.StorageService
}

// Route is one entry of the route table. Session routes get page state;
// only non-GET session routes may create it.
type Route struct {
	Method  string
	Path    string
	Handler fiber.Handler
	Session bool
}

// Routes is the full route table of the front end.
func Routes(deps Dependencies) []Route {
	pages := NewPageHandler(time.Now())
	upload := NewUploadHandler(deps.Storage)
	result := NewResultHandler()
	login := NewLoginHandler()
	signup := NewSignupHandler()

	return []Route{
		{Method: fiber.MethodGet, Path: "/health", Handler: pages.HandleHealth},

		{Method: fiber.MethodGet, Path: "/", Handler: pages.HandleHome, Session: true},
		{Method: fiber.MethodGet, Path: "/upload", Handler: upload.HandleUploadPage, Session: true},
		{Method: fiber.MethodPost, Path: "/upload", Handler: upload.HandleUpload, Session: true},
		{Method: fiber.MethodPost, Path: "/feedback", Handler: upload.HandleFeedback, Session: true},
		{Method: fiber.MethodGet, Path: "/result", Handler: result.HandleGetResult, Session: true},

		{Method: fiber.MethodGet, Path: "/login", Handler: login.HandlePage, Session: true},
		{Method: fiber.MethodPost, Path: "/login", Handler: login.HandleSubmit, Session: true},
		{Method: fiber.MethodPost, Path: "/login/logout", Handler: login.HandleLogout, Session: true},
		{Method: fiber.MethodGet, Path: "/signup", Handler: signup.HandlePage, Session: true},
		{Method: fiber.MethodPost, Path: "/signup", Handler: signup.HandleSubmit, Session: true},
		{Method: fiber.MethodPost, Path: "/signup/logout", Handler: signup.HandleLogout, Session: true},

		{Method: fiber.MethodGet, Path: "/job-matching", Handler: pages.Placeholder("Job Matching", "Job Matching")},
		{Method: fiber.MethodGet, Path: "/cover-letter", Handler: pages.Placeholder("Cover Letter", "Cover Letter Generator")},
		{Method: fiber.MethodGet, Path: "/salary", Handler: pages.Placeholder("Salary", "Salary Estimator")},
		{Method: fiber.MethodGet, Path: "/pricing", Handler: pages.Placeholder("Pricing", "Pricing Page")},
	}
}

// NewApp builds the Fiber application with views, middleware and routes.
func NewApp(cfg AppConfig, deps Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ErrorHandler: customErrorHandler,
		BodyLimit:    int(cfg.MaxUploadSize),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Views:        views.NewEngine(),
		ViewsLayout:  views.Layout,
	})

	app.Use(recover.New())
	if cfg.AccessLog {
		app.Use(logger.New(logger.Config{
			Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
			TimeFormat: "2006-01-02 15:04:05",
		}))
	}

	readSession := SessionMiddleware(deps.Sessions, cfg.SessionCookie, cfg.SecureCookies, false)
	writeSession := SessionMiddleware(deps.Sessions, cfg.SessionCookie, cfg.SecureCookies, true)
	for _, r := range Routes(deps) {
		if r.Session && r.Method == fiber.MethodGet {
			app.Add(r.Method, r.Path, readSession, r.Handler)
			continue
		}
		if r.Session {
			app.Add(r.Method, r.Path, writeSession, r.Handler)
			continue
		}
		app.Add(r.Method, r.Path, r.Handler)
	}

	return app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Something went wrong. Please try again."

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}
	if code >= fiber.StatusInternalServerError {
		golog.Errorf("❌ %s %s: %v", c.Method(), c.Path(), err)
	}

	if strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMEApplicationJSON) {
		return c.Status(code).JSON(fiber.Map{"error": message})
	}

	if renderErr := c.Status(code).Render("error", fiber.Map{
		"Title":   "Error",
		"Code":    code,
		"Message": message,
	}); renderErr != nil {
		return c.Status(code).JSON(fiber.Map{"error": message})
	}
	return nil
}
