package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/template/html/v2"
	"github.com/restomenu/restomenu/internal/handlers"
	"github.com/restomenu/restomenu/internal/middleware"
	"github.com/restomenu/restomenu/internal/models"
	"github.com/restomenu/restomenu/internal/routes"
	"github.com/restomenu/restomenu/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	app *fiber.App
	db  *gorm.DB
}

func setup(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Restaurant{}, &models.MenuItem{}))

	userService := services.NewUserService(db)
	restaurantService := services.NewRestaurantService(db)
	menuService := services.NewMenuService(db)
	authService := services.NewAuthService(nil, userService)

	store := session.New()

	engine := html.New("../../views", ".html")
	app := fiber.New(fiber.Config{
		Views:       engine,
		ViewsLayout: "layouts/main",
	})

	routes.Setup(app, store,
		handlers.NewRestaurantHandler(restaurantService, store),
		handlers.NewMenuHandler(restaurantService, menuService, store),
		handlers.NewAPIHandler(restaurantService, menuService),
		handlers.NewAuthHandler(authService, store, "client-123"),
		handlers.NewHealthHandler(),
	)

	// Test-only login endpoint: binds a user id into the session so tests
	// can exercise the authenticated paths without the federation flow.
	app.Get("/testlogin/:id", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return err
		}
		sess, err := store.Get(c)
		if err != nil {
			return err
		}
		sess.Set(middleware.SessionKeyUserID, uint(id))
		if err := sess.Save(); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	return &testEnv{app: app, db: db}
}

func (e *testEnv) seedUser(t *testing.T, email string) *models.User {
	t.Helper()
	user := &models.User{Name: "Test User", Email: email}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) seedRestaurant(t *testing.T, name string, ownerID uint) *models.Restaurant {
	t.Helper()
	restaurant := &models.Restaurant{Name: name, UserID: ownerID}
	require.NoError(t, e.db.Create(restaurant).Error)
	return restaurant
}

// login returns the session cookies for an authenticated user.
func (e *testEnv) login(t *testing.T, userID uint) []*http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/testlogin/"+strconv.Itoa(int(userID)), nil)
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	return resp.Cookies()
}

func (e *testEnv) request(t *testing.T, method, target string, form url.Values, cookies []*http.Cookie) *http.Response {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}
