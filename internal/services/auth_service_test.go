package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/restomenu/restomenu/internal/config"
	"github.com/restomenu/restomenu/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testClientID = "client-123.apps.googleusercontent.com"

// googleStub fakes the provider's token, tokeninfo, userinfo and revoke
// endpoints.
type googleStub struct {
	server *httptest.Server

	tokenInfo     TokenInfo
	revokeStatus  int
	userInfoCalls int
}

func newGoogleStub(t *testing.T, subject string) *googleStub {
	t.Helper()
	stub := &googleStub{
		tokenInfo: TokenInfo{
			IssuedTo: testClientID,
			Audience: testClientID,
			UserID:   subject,
		},
		revokeStatus: http.StatusOK,
	}

	idToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss": "https://accounts.google.com",
		"sub": subject,
		"aud": testClientID,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "access-token-1",
			"token_type":   "Bearer",
			"expires_in":   3600,
			"id_token":     idToken,
		})
	})
	mux.HandleFunc("/tokeninfo", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(stub.tokenInfo)
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		stub.userInfoCalls++
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"name":    "Ada Lovelace",
			"picture": "https://example.com/ada.png",
			"email":   "ada@example.com",
		})
	})
	mux.HandleFunc("/revoke", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(stub.revokeStatus)
	})

	stub.server = httptest.NewServer(mux)
	t.Cleanup(stub.server.Close)
	return stub
}

func (s *googleStub) client() *GoogleClient {
	return NewGoogleClient(&config.Config{
		GoogleClientID:      testClientID,
		GoogleClientSecret:  "shhh",
		GoogleTokenURL:      s.server.URL + "/token",
		GoogleTokenInfoURL:  s.server.URL + "/tokeninfo",
		GoogleUserInfoURL:   s.server.URL + "/userinfo",
		GoogleRevokeURL:     s.server.URL + "/revoke",
		GoogleClientTimeout: 5 * time.Second,
	})
}

func newAuthService(t *testing.T, stub *googleStub) (*AuthService, *UserService) {
	t.Helper()
	db := setupTestDB(t)
	users := NewUserService(db)
	return NewAuthService(stub.client(), users), users
}

func TestConnectCreatesUserOnFirstLogin(t *testing.T) {
	stub := newGoogleStub(t, "google-sub-1")
	auth, users := newAuthService(t, stub)

	result, err := auth.Connect(context.Background(), "auth-code", "", "")
	require.NoError(t, err)
	assert.False(t, result.AlreadyConnected)
	assert.Equal(t, "access-token-1", result.AccessToken)
	assert.Equal(t, "google-sub-1", result.Subject)
	assert.Equal(t, "Ada Lovelace", result.Name)
	require.NotNil(t, result.User)
	assert.NotZero(t, result.User.ID)

	stored, err := users.GetByEmail("ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, stored.ID)
}

func TestConnectSecondLoginResolvesSameUser(t *testing.T) {
	stub := newGoogleStub(t, "google-sub-1")
	auth, _ := newAuthService(t, stub)

	first, err := auth.Connect(context.Background(), "auth-code", "", "")
	require.NoError(t, err)

	second, err := auth.Connect(context.Background(), "auth-code", "", "")
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, second.User.ID)
}

func TestConnectAlreadyConnectedShortCircuits(t *testing.T) {
	stub := newGoogleStub(t, "google-sub-1")
	auth, users := newAuthService(t, stub)

	result, err := auth.Connect(context.Background(), "auth-code", "stored-token", "google-sub-1")
	require.NoError(t, err)
	assert.True(t, result.AlreadyConnected)
	assert.Equal(t, "stored-token", result.AccessToken)

	// No profile fetch and no user creation happened.
	assert.Zero(t, stub.userInfoCalls)
	_, err = users.GetByEmail("ada@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConnectSubjectMismatch(t *testing.T) {
	stub := newGoogleStub(t, "google-sub-1")
	stub.tokenInfo.UserID = "someone-else"
	auth, _ := newAuthService(t, stub)

	_, err := auth.Connect(context.Background(), "auth-code", "", "")
	assert.ErrorIs(t, err, ErrSubjectMismatch)
}

func TestConnectAudienceMismatch(t *testing.T) {
	stub := newGoogleStub(t, "google-sub-1")
	stub.tokenInfo.IssuedTo = "other-client.apps.googleusercontent.com"
	auth, _ := newAuthService(t, stub)

	_, err := auth.Connect(context.Background(), "auth-code", "", "")
	assert.ErrorIs(t, err, ErrAudienceMismatch)
}

func TestConnectTokenInfoError(t *testing.T) {
	stub := newGoogleStub(t, "google-sub-1")
	stub.tokenInfo.Error = "invalid_token"
	auth, _ := newAuthService(t, stub)

	_, err := auth.Connect(context.Background(), "auth-code", "", "")
	assert.ErrorIs(t, err, ErrTokenInfo)
}

func TestDisconnect(t *testing.T) {
	stub := newGoogleStub(t, "google-sub-1")
	auth, _ := newAuthService(t, stub)

	require.NoError(t, auth.Disconnect(context.Background(), "access-token-1"))

	stub.revokeStatus = http.StatusBadRequest
	assert.ErrorIs(t, auth.Disconnect(context.Background(), "access-token-1"), ErrRevokeFailed)

	assert.ErrorIs(t, auth.Disconnect(context.Background(), ""), ErrNotConnected)
}

func TestUserModelUniqueEmail(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.User{Name: "A", Email: "dup@example.com"}).Error)
	err := db.Create(&models.User{Name: "B", Email: "dup@example.com"}).Error
	assert.Error(t, err)
}
