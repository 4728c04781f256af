package middleware

import (
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/restomenu/restomenu/internal/config"
)

// Session keys. The identity keys mirror what the federation flow binds
// after a successful login.
const (
	SessionKeyState       = "state"
	SessionKeyAccessToken = "access_token"
	SessionKeySubject     = "gplus_id"
	SessionKeyUsername    = "username"
	SessionKeyPicture     = "picture"
	SessionKeyEmail       = "email"
	SessionKeyUserID      = "user_id"
	sessionKeyFlash       = "flash"
)

func NewSessionStore(cfg *config.Config) *session.Store {
	return session.New(session.Config{
		KeyLookup:      "cookie:" + cfg.SessionCookie,
		Expiration:     cfg.SessionExpiry,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
}

// UserID returns the session-bound local user identifier, if any.
func UserID(sess *session.Session) (uint, bool) {
	id, ok := sess.Get(SessionKeyUserID).(uint)
	return id, ok
}

// SessionString reads a string-valued session field.
func SessionString(sess *session.Session, key string) string {
	s, _ := sess.Get(key).(string)
	return s
}

// SetFlash stores a transient notice shown on the next rendered page.
func SetFlash(sess *session.Session, message string) {
	sess.Set(sessionKeyFlash, message)
}

// TakeFlash returns the pending notice and clears it.
func TakeFlash(sess *session.Session) string {
	msg, _ := sess.Get(sessionKeyFlash).(string)
	if msg != "" {
		sess.Delete(sessionKeyFlash)
	}
	return msg
}

// ClearIdentity removes every identity field bound by the federation
// flow. The state token survives so an in-flight login page stays valid.
func ClearIdentity(sess *session.Session) {
	sess.Delete(SessionKeyAccessToken)
	sess.Delete(SessionKeySubject)
	sess.Delete(SessionKeyUsername)
	sess.Delete(SessionKeyPicture)
	sess.Delete(SessionKeyEmail)
	sess.Delete(SessionKeyUserID)
}
