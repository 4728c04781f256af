package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/restomenu/restomenu/internal/middleware"
	"github.com/restomenu/restomenu/internal/services"
)

type AuthHandler struct {
	auth     *services.AuthService
	store    *session.Store
	clientID string
}

func NewAuthHandler(auth *services.AuthService, store *session.Store, clientID string) *AuthHandler {
	return &AuthHandler{auth: auth, store: store, clientID: clientID}
}

// ShowLogin issues an anti-forgery state token, binds it to the session
// and renders it into the login page for round-trip verification.
func (h *AuthHandler) ShowLogin(c *fiber.Ctx) error {
	state, err := randomToken()
	if err != nil {
		return err
	}

	sess, err := h.store.Get(c)
	if err != nil {
		return err
	}
	sess.Set(middleware.SessionKeyState, state)
	if err := sess.Save(); err != nil {
		return err
	}

	return c.Render("login", fiber.Map{
		"State":    state,
		"ClientID": h.clientID,
	})
}

// Connect is the code-exchange callback. The state token arrives as a
// query parameter and the authorization code as the raw request body,
// the same contract the signin popup uses.
func (h *AuthHandler) Connect(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err != nil {
		return err
	}

	if c.Query("state") == "" || c.Query("state") != middleware.SessionString(sess, middleware.SessionKeyState) {
		return c.Status(fiber.StatusUnauthorized).JSON("Invalid state parameter.")
	}

	code := string(c.Body())
	storedToken := middleware.SessionString(sess, middleware.SessionKeyAccessToken)
	storedSubject := middleware.SessionString(sess, middleware.SessionKeySubject)

	result, err := h.auth.Connect(c.UserContext(), code, storedToken, storedSubject)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCodeExchange):
			return c.Status(fiber.StatusUnauthorized).JSON("Failed to upgrade the authorization code.")
		case errors.Is(err, services.ErrTokenInfo):
			return c.Status(fiber.StatusInternalServerError).JSON(err.Error())
		case errors.Is(err, services.ErrSubjectMismatch):
			return c.Status(fiber.StatusUnauthorized).JSON("Token's user ID doesn't match given user ID.")
		case errors.Is(err, services.ErrAudienceMismatch):
			return c.Status(fiber.StatusUnauthorized).JSON("Token's client ID does not match app's.")
		default:
			return err
		}
	}

	if result.AlreadyConnected {
		return c.JSON("Current user is already connected.")
	}

	sess.Set(middleware.SessionKeyAccessToken, result.AccessToken)
	sess.Set(middleware.SessionKeySubject, result.Subject)
	sess.Set(middleware.SessionKeyUsername, result.Name)
	sess.Set(middleware.SessionKeyPicture, result.Picture)
	sess.Set(middleware.SessionKeyEmail, result.Email)
	sess.Set(middleware.SessionKeyUserID, result.User.ID)
	middleware.SetFlash(sess, "you are now logged in as "+result.Name)
	if err := sess.Save(); err != nil {
		return err
	}

	c.Type("html")
	return c.SendString(fmt.Sprintf(
		`<h1>Welcome, %s!</h1><img src="%s" style="width: 300px; height: 300px; border-radius: 150px;">`,
		result.Name, result.Picture,
	))
}

// Disconnect revokes the session's access token. Revocation failure
// leaves the session intact and only surfaces a notice.
func (h *AuthHandler) Disconnect(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err != nil {
		return err
	}

	accessToken := middleware.SessionString(sess, middleware.SessionKeyAccessToken)
	if accessToken == "" {
		return c.Status(fiber.StatusUnauthorized).JSON("Current user not connected.")
	}

	if err := h.auth.Disconnect(c.UserContext(), accessToken); err != nil {
		middleware.SetFlash(sess, "Failed to revoke token for given user.")
		if err := sess.Save(); err != nil {
			return err
		}
		return c.Redirect("/restaurants/", fiber.StatusFound)
	}

	middleware.ClearIdentity(sess)
	middleware.SetFlash(sess, "Successfully disconnected!")
	if err := sess.Save(); err != nil {
		return err
	}
	return c.Redirect("/restaurants/", fiber.StatusFound)
}

// randomToken returns an opaque URL-safe random string.
func randomToken() (string, error) {
	raw := make([]byte, 24)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
