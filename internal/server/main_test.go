package server

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"blogly/internal/config"
	"blogly/internal/database"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestApp wires a Server over a fresh in-memory sqlite database.
func newTestApp(t *testing.T, deletePolicy string) (*fiber.App, *gorm.DB) {
	t.Helper()
	cfg := &config.Config{
		Env:                      "test",
		DBDriver:                 config.DriverSQLite,
		DBSQLitePath:             ":memory:",
		DBConnMaxLifetimeMinutes: 5,
		UserDeletePolicy:         deletePolicy,
		HomeRecentPosts:          5,
	}
	db, err := database.Connect(cfg)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	s, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)
	return s.NewApp(), db
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp, string(body)
}

func get(t *testing.T, app *fiber.App, path string) (*http.Response, string) {
	t.Helper()
	return doRequest(t, app, httptest.NewRequest(http.MethodGet, path, nil))
}

func postForm(t *testing.T, app *fiber.App, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	return doRequest(t, app, req)
}

func postMultipart(t *testing.T, app *fiber.App, path string, fields map[string]string) (*http.Response, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return doRequest(t, app, req)
}

func userForm(userName, first, last string) url.Values {
	return url.Values{
		"user_name":  {userName},
		"first_name": {first},
		"last_name":  {last},
		"user_email": {""},
		"image_url":  {""},
	}
}
