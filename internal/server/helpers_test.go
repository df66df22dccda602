package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"blogly/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireFields(t *testing.T) {
	values := url.Values{"title": {"Hello"}, "content": {""}}

	fields, err := requireFields(values, "title", "content")
	require.NoError(t, err)
	assert.Equal(t, "Hello", fields["title"])
	assert.Equal(t, "", fields["content"])

	_, err = requireFields(values, "title", "missing")
	require.Error(t, err)
	assert.Equal(t, 400, models.StatusCode(err))
}

func TestParseIDList(t *testing.T) {
	ids, err := parseIDList([]string{"3", " 1 ", "3"}, "posts")
	require.NoError(t, err)
	assert.Equal(t, []uint{3, 1, 3}, ids)

	ids, err = parseIDList(nil, "posts")
	require.NoError(t, err)
	assert.Empty(t, ids)

	for _, bad := range []string{"abc", "0", "-2", ""} {
		_, err := parseIDList([]string{bad}, "posts")
		assert.Error(t, err, bad)
	}
}

func submitForm(t *testing.T, contentType, body string) url.Values {
	t.Helper()
	var got url.Values
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		values, err := formValues(c)
		if err != nil {
			return err
		}
		got = values
		return c.SendStatus(fiber.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	return got
}

func TestFormValues_URLEncoded(t *testing.T) {
	got := submitForm(t, fiber.MIMEApplicationForm, "name=go+lang&posts=3&posts=1&content=")

	assert.Equal(t, "go lang", got.Get("name"))
	assert.Equal(t, []string{"3", "1"}, got["posts"])
	assert.Contains(t, got, "content")
	assert.Equal(t, "", got.Get("content"))
}

func TestFormValues_OtherContentTypeHasNoFields(t *testing.T) {
	got := submitForm(t, fiber.MIMETextPlain, "name=go&posts=1")
	assert.Empty(t, got)
}
