package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// RequireLogin guards mutating HTML routes: a request without a
// session-bound identity is redirected to the login flow.
func RequireLogin(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return c.Redirect("/login/", fiber.StatusFound)
		}
		if _, ok := UserID(sess); !ok {
			return c.Redirect("/login/", fiber.StatusFound)
		}
		return c.Next()
	}
}
