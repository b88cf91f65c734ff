package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/kataras/golog"

	"alfredoptarigan/resume-analyzer/internal/repositories"
	"alfredoptarigan/resume-analyzer/internal/workflow"
)

// AuthHandler serves one credential page. Login and signup each get their
// own handler and their own form state.
type AuthHandler struct {
	mode  workflow.Mode
	title string
}

func NewLoginHandler() *AuthHandler {
	return &AuthHandler{mode: workflow.ModeLogin, title: "Login"}
}

func NewSignupHandler() *AuthHandler {
	return &AuthHandler{mode: workflow.ModeSignup, title: "Sign Up"}
}

func (h *AuthHandler) path() string {
	return "/" + string(h.mode)
}

func (h *AuthHandler) form(sess *repositories.Session) *workflow.AuthForm {
	if h.mode == workflow.ModeLogin {
		return sess.Login
	}
	return sess.Signup
}

// HandlePage handles GET /login and GET /signup
func (h *AuthHandler) HandlePage(c *fiber.Ctx) error {
	return c.Render(string(h.mode), fiber.Map{
		"Title": h.title,
		"Auth":  h.form(currentSession(c)).State(),
	})
}

// HandleSubmit handles POST /login and POST /signup
func (h *AuthHandler) HandleSubmit(c *fiber.Ctx) error {
	sess := currentSession(c)
	form := h.form(sess)

	form.SetCredentials(workflow.Credentials{
		Username: c.FormValue("username"),
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
	})

	err := form.Submit(c.UserContext())
	switch {
	case err == nil:
		golog.Infof("🔑 %s succeeded for session %s", h.title, sess.ID)
	case errors.Is(err, workflow.ErrAlreadyAuthenticated), errors.Is(err, workflow.ErrSubmissionInProgress):
		golog.Debugf("%s ignored for session %s: %v", h.title, sess.ID, err)
	default:
		golog.Warnf("⚠️ %s failed for session %s: %v", h.title, sess.ID, err)
	}

	return c.Redirect(h.path(), fiber.StatusSeeOther)
}

// HandleLogout handles POST /login/logout and POST /signup/logout
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	sess := currentSession(c)
	h.form(sess).Logout()
	golog.Infof("👋 Logged out of %s page for session %s", h.mode, sess.ID)

	return c.Redirect(h.path(), fiber.StatusSeeOther)
}
