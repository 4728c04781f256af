package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/golang-jwt/jwt/v5"
	"github.com/restomenu/restomenu/internal/config"
	"golang.org/x/oauth2"
)

// GoogleClient talks to Google's OAuth2 endpoints: code exchange, token
// introspection, userinfo and revocation. Endpoint URLs come from config
// so tests can point them at stubs.
type GoogleClient struct {
	httpClient   *http.Client
	clientID     string
	clientSecret string
	tokenURL     string
	tokenInfoURL string
	userInfoURL  string
	revokeURL    string
}

// TokenInfo is the introspection response from the tokeninfo endpoint.
type TokenInfo struct {
	IssuedTo      string `json:"issued_to"`
	Audience      string `json:"audience"`
	UserID        string `json:"user_id"`
	Scope         string `json:"scope"`
	ExpiresIn     int    `json:"expires_in"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Error         string `json:"error"`
}

// UserInfo is the profile payload from the userinfo endpoint.
type UserInfo struct {
	Name    string `json:"name"`
	Picture string `json:"picture"`
	Email   string `json:"email"`
}

// Credentials is the outcome of a successful code exchange.
type Credentials struct {
	AccessToken string
	// Subject is the `sub` claim of the identity token issued alongside
	// the access token.
	Subject string
}

func NewGoogleClient(cfg *config.Config) *GoogleClient {
	return &GoogleClient{
		httpClient:   &http.Client{Timeout: cfg.GoogleClientTimeout},
		clientID:     cfg.GoogleClientID,
		clientSecret: cfg.GoogleClientSecret,
		tokenURL:     cfg.GoogleTokenURL,
		tokenInfoURL: cfg.GoogleTokenInfoURL,
		userInfoURL:  cfg.GoogleUserInfoURL,
		revokeURL:    cfg.GoogleRevokeURL,
	}
}

// ClientID returns the registered OAuth client identifier.
func (c *GoogleClient) ClientID() string {
	return c.clientID
}

// ExchangeCode upgrades an authorization code into credentials. The
// redirect URI is "postmessage" because the code arrives via the signin
// JavaScript popup flow, not a server redirect.
func (c *GoogleClient) ExchangeCode(ctx context.Context, code string) (*Credentials, error) {
	conf := &oauth2.Config{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		RedirectURL:  "postmessage",
		Endpoint: oauth2.Endpoint{
			TokenURL:  c.tokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	token, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	idToken, _ := token.Extra("id_token").(string)
	if idToken == "" {
		return nil, fmt.Errorf("token response carried no identity token")
	}

	subject, err := identityTokenSubject(idToken)
	if err != nil {
		return nil, err
	}

	return &Credentials{
		AccessToken: token.AccessToken,
		Subject:     subject,
	}, nil
}

// identityTokenSubject extracts the `sub` claim from the identity token.
// The signature is not verified here: the token came straight from
// Google's token endpoint over TLS, and the access token it accompanies
// is introspected against tokeninfo before anything trusts it.
func identityTokenSubject(idToken string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(idToken, claims); err != nil {
		return "", fmt.Errorf("failed to parse identity token: %w", err)
	}
	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return "", fmt.Errorf("identity token has no subject claim")
	}
	return subject, nil
}

// TokenInfo introspects an access token. A provider-reported error is
// returned in the TokenInfo struct, not as a Go error, so the caller can
// distinguish protocol failures from transport failures.
func (c *GoogleClient) TokenInfo(ctx context.Context, accessToken string) (*TokenInfo, error) {
	u := c.tokenInfoURL + "?access_token=" + url.QueryEscape(accessToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call tokeninfo endpoint: %w", err)
	}
	defer resp.Body.Close()

	var info TokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode tokeninfo response: %w", err)
	}
	return &info, nil
}

// UserInfo fetches the user's profile. The raw payload is returned
// alongside the parsed fields so it can be stored as delivered.
func (c *GoogleClient) UserInfo(ctx context.Context, accessToken string) (*UserInfo, []byte, error) {
	u := c.userInfoURL + "?alt=json&access_token=" + url.QueryEscape(accessToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to call userinfo endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("userinfo endpoint returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read userinfo response: %w", err)
	}

	var info UserInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, nil, fmt.Errorf("failed to decode userinfo response: %w", err)
	}
	return &info, raw, nil
}

// Revoke invalidates an access token at the provider.
func (c *GoogleClient) Revoke(ctx context.Context, accessToken string) error {
	u := c.revokeURL + "?token=" + url.QueryEscape(accessToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call revocation endpoint: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("revocation endpoint returned status %d", resp.StatusCode)
	}
	return nil
}
