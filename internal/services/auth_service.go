package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/restomenu/restomenu/internal/models"
)

var (
	// ErrCodeExchange: the provider rejected the authorization code.
	ErrCodeExchange = errors.New("failed to upgrade the authorization code")
	// ErrTokenInfo: the introspection endpoint reported an error for the
	// access token. Surfaced as a server error, matching the provider's
	// own classification.
	ErrTokenInfo = errors.New("token introspection failed")
	// ErrSubjectMismatch: the access token is bound to a different user
	// than the identity token claims.
	ErrSubjectMismatch = errors.New("token's user ID doesn't match given user ID")
	// ErrAudienceMismatch: the token was issued to some other client.
	ErrAudienceMismatch = errors.New("token's client ID does not match app's")
	// ErrNotConnected: logout requested without a stored access token.
	ErrNotConnected = errors.New("current user not connected")
	// ErrRevokeFailed: the provider refused to revoke the token; session
	// state must be left intact.
	ErrRevokeFailed = errors.New("failed to revoke token")
)

// AuthService runs the identity-federation flow: code exchange, token
// verification, idempotent re-login detection and local user resolution.
type AuthService struct {
	google *GoogleClient
	users  *UserService
}

func NewAuthService(google *GoogleClient, users *UserService) *AuthService {
	return &AuthService{google: google, users: users}
}

// ConnectResult is what a successful (or short-circuited) login yields.
// The handler binds these values into the session.
type ConnectResult struct {
	// AlreadyConnected is set when the session already held an access
	// token for the same third-party identity; no profile fetch or user
	// creation happened in that case and User is nil.
	AlreadyConnected bool

	AccessToken string
	Subject     string
	Name        string
	Picture     string
	Email       string
	User        *models.User
}

// Connect exchanges an authorization code and resolves a local user.
// storedToken and storedSubject are the session's current values, used
// for idempotent re-login detection; the state-token comparison has
// already happened at the handler. No session state is written before
// every verification step has passed.
func (s *AuthService) Connect(ctx context.Context, code, storedToken, storedSubject string) (*ConnectResult, error) {
	creds, err := s.google.ExchangeCode(ctx, code)
	if err != nil {
		slog.Error("authorization code exchange failed", "error", err)
		return nil, ErrCodeExchange
	}

	info, err := s.google.TokenInfo(ctx, creds.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenInfo, err)
	}
	if info.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrTokenInfo, info.Error)
	}

	// The access token must be bound to the identity the ID token claims,
	// and must have been issued to this application.
	if info.UserID != creds.Subject {
		return nil, ErrSubjectMismatch
	}
	if info.IssuedTo != s.google.ClientID() {
		return nil, ErrAudienceMismatch
	}

	if storedToken != "" && storedSubject == creds.Subject {
		return &ConnectResult{
			AlreadyConnected: true,
			AccessToken:      storedToken,
			Subject:          storedSubject,
		}, nil
	}

	profile, raw, err := s.google.UserInfo(ctx, creds.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user profile: %w", err)
	}

	user, err := s.users.FindOrCreate(profile.Name, profile.Email, profile.Picture, raw)
	if err != nil {
		return nil, err
	}

	return &ConnectResult{
		AccessToken: creds.AccessToken,
		Subject:     creds.Subject,
		Name:        profile.Name,
		Picture:     profile.Picture,
		Email:       profile.Email,
		User:        user,
	}, nil
}

// Disconnect revokes the stored access token. On failure the caller must
// leave the session untouched.
func (s *AuthService) Disconnect(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return ErrNotConnected
	}
	if err := s.google.Revoke(ctx, accessToken); err != nil {
		slog.Error("access token revocation failed", "error", err)
		return ErrRevokeFailed
	}
	return nil
}
