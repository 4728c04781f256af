package handlers_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/restomenu/restomenu/internal/dto"
	"github.com/restomenu/restomenu/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListShowsPublicViewWhenLoggedOut(t *testing.T) {
	env := setup(t)
	owner := env.seedUser(t, "owner@example.com")
	env.seedRestaurant(t, "Cafe", owner.ID)

	resp := env.request(t, http.MethodGet, "/restaurants/", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Cafe")
	assert.NotContains(t, string(body), "Add a new restaurant")

	cookies := env.login(t, owner.ID)
	resp = env.request(t, http.MethodGet, "/restaurants/", nil, cookies)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ = io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Add a new restaurant")
}

func TestNewRestaurantRequiresLogin(t *testing.T) {
	env := setup(t)

	resp := env.request(t, http.MethodGet, "/restaurants/new/", nil, nil)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login/", resp.Header.Get("Location"))
}

func TestCreateRestaurantBindsSessionOwner(t *testing.T) {
	env := setup(t)
	owner := env.seedUser(t, "owner@example.com")
	cookies := env.login(t, owner.ID)

	form := url.Values{"name": {"Cafe"}}
	resp := env.request(t, http.MethodPost, "/restaurants/new/", form, cookies)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/restaurants/", resp.Header.Get("Location"))

	var restaurant models.Restaurant
	require.NoError(t, env.db.Where("name = ?", "Cafe").First(&restaurant).Error)
	assert.Equal(t, owner.ID, restaurant.UserID)
}

func TestEditByNonOwnerLeavesRestaurantUnchanged(t *testing.T) {
	env := setup(t)
	owner := env.seedUser(t, "owner@example.com")
	intruder := env.seedUser(t, "intruder@example.com")
	restaurant := env.seedRestaurant(t, "Cafe", owner.ID)
	cookies := env.login(t, intruder.ID)

	form := url.Values{"name": {"Hijacked"}}
	resp := env.request(t, http.MethodPost, fmt.Sprintf("/restaurants/%d/edit/", restaurant.ID), form, cookies)

	// Redirect to the safe list view, never a mutation.
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/restaurants/", resp.Header.Get("Location"))

	var stored models.Restaurant
	require.NoError(t, env.db.First(&stored, restaurant.ID).Error)
	assert.Equal(t, "Cafe", stored.Name)
}

func TestEditWithEmptyNameKeepsStoredName(t *testing.T) {
	env := setup(t)
	owner := env.seedUser(t, "owner@example.com")
	restaurant := env.seedRestaurant(t, "Cafe", owner.ID)
	cookies := env.login(t, owner.ID)

	form := url.Values{"name": {""}}
	resp := env.request(t, http.MethodPost, fmt.Sprintf("/restaurants/%d/edit/", restaurant.ID), form, cookies)
	require.Equal(t, http.StatusFound, resp.StatusCode)

	var stored models.Restaurant
	require.NoError(t, env.db.First(&stored, restaurant.ID).Error)
	assert.Equal(t, "Cafe", stored.Name)
}

func TestDeleteByNonOwnerLeavesRestaurant(t *testing.T) {
	env := setup(t)
	owner := env.seedUser(t, "owner@example.com")
	intruder := env.seedUser(t, "intruder@example.com")
	restaurant := env.seedRestaurant(t, "Cafe", owner.ID)
	cookies := env.login(t, intruder.ID)

	resp := env.request(t, http.MethodPost, fmt.Sprintf("/restaurants/%d/delete/", restaurant.ID), nil, cookies)
	require.Equal(t, http.StatusFound, resp.StatusCode)

	var count int64
	require.NoError(t, env.db.Model(&models.Restaurant{}).Where("id = ?", restaurant.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRestaurantJSONSingle(t *testing.T) {
	env := setup(t)
	owner := env.seedUser(t, "owner@example.com")
	restaurant := env.seedRestaurant(t, "Cafe", owner.ID)

	resp := env.request(t, http.MethodGet, fmt.Sprintf("/restaurants/%d/JSON/", restaurant.ID), nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Restaurant []dto.RestaurantJSON `json:"Restaurant"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Len(t, payload.Restaurant, 1)
	assert.Equal(t, restaurant.ID, payload.Restaurant[0].ID)
	assert.Equal(t, "Cafe", payload.Restaurant[0].Name)
	assert.Equal(t, owner.ID, payload.Restaurant[0].UserID)
}

func TestRestaurantJSONNotFound(t *testing.T) {
	env := setup(t)

	resp := env.request(t, http.MethodGet, "/restaurants/999/JSON/", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGConnectStateMismatch(t *testing.T) {
	env := setup(t)

	// Render the login page to get a session with a state token.
	resp := env.request(t, http.MethodGet, "/login/", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cookies := resp.Cookies()

	resp = env.request(t, http.MethodPost, "/gconnect?state=not-the-state", nil, cookies)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, strings.Contains(string(body), "Invalid state parameter."))
}

func TestGDisconnectWithoutTokenIsUnauthorized(t *testing.T) {
	env := setup(t)

	resp := env.request(t, http.MethodGet, "/gdisconnect", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
