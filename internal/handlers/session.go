package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kataras/golog"

	"alfredoptarigan/resume-analyzer/internal/repositories"
)

const sessionLocalsKey = "session"

// SessionMiddleware attaches the caller's page state. When the cookie is
// missing, malformed or expired, a stored session is created only if create
// is set; otherwise the request sees a blank session that is not kept.
func SessionMiddleware(sessions repositories.SessionRepository, cookieName string, secure, create bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := sessions.FindByID(c.Cookies(cookieName))
		if err != nil {
			if !create {
				c.Locals(sessionLocalsKey, sessions.Transient())
				return c.Next()
			}
			sess = sessions.Create()
			golog.Debugf("🍪 New session %s", sess.ID)
		}

		c.Cookie(&fiber.Cookie{
			Name:     cookieName,
			Value:    sess.ID.String(),
			Path:     "/",
			HTTPOnly: true,
			Secure:   secure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		c.Locals(sessionLocalsKey, sess)

		return c.Next()
	}
}

func currentSession(c *fiber.Ctx) *repositories.Session {
	sess, _ := c.Locals(sessionLocalsKey).(*repositories.Session)
	return sess
}
