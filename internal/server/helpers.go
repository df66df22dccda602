// Package server contains the HTTP handlers and page routes for Blogly.
package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"blogly/internal/middleware"
	"blogly/internal/models"

	"github.com/gofiber/fiber/v2"
)

// parseID extracts a route parameter by name as a positive uint. Routes
// constrain ids to integers, so anything else here is an unknown row.
func parseID(c *fiber.Ctx, param string, resource string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		return 0, models.NewNotFoundError(resource, c.Params(param))
	}
	return uint(id), nil
}

// formValues returns the submitted form fields for urlencoded and multipart
// bodies. Any other content type submits no fields.
func formValues(c *fiber.Ctx) (url.Values, error) {
	contentType := strings.ToLower(string(c.Request().Header.ContentType()))

	if strings.HasPrefix(contentType, fiber.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			return nil, models.NewValidationError("Malformed multipart form")
		}
		return url.Values(form.Value), nil
	}

	values := url.Values{}
	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		values.Add(string(key), string(value))
	})
	return values, nil
}

// requireFields returns the first value of each named field. A field that is
// absent from the submission is a validation error; an empty one is not.
func requireFields(values url.Values, names ...string) (map[string]string, error) {
	out := make(map[string]string, len(names))
	for _, name := range names {
		v, ok := values[name]
		if !ok || len(v) == 0 {
			return nil, models.NewValidationError(fmt.Sprintf("Missing form field %q", name))
		}
		out[name] = v[0]
	}
	return out, nil
}

// parseIDList parses every value of a repeated numeric form field.
func parseIDList(values []string, field string) ([]uint, error) {
	ids := make([]uint, 0, len(values))
	for _, raw := range values {
		id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
		if err != nil || id == 0 {
			return nil, models.NewValidationError(fmt.Sprintf("Invalid %s value %q", field, raw))
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

// redirectAfterWrite sends the post/redirect/get response for a successful write.
func redirectAfterWrite(c *fiber.Ctx, location string) error {
	return c.Redirect(location, fiber.StatusSeeOther)
}

// errorPage renders err with the status it maps to. It is the app's ErrorHandler.
func errorPage(c *fiber.Ctx, err error) error {
	status := models.StatusCode(err)
	message := err.Error()

	var appErr *models.AppError
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &appErr):
		message = appErr.Message
	case errors.As(err, &fiberErr):
		message = fiberErr.Message
		if status == fiber.StatusNotFound {
			message = "We couldn't find the page you were looking for."
		}
	}

	if status >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "request failed",
			slog.String("path", c.Path()),
			slog.String("error", err.Error()))
		message = "Something went wrong. Please try again."
	}

	c.Status(status)
	renderErr := c.Render("error", fiber.Map{
		"Title":   fmt.Sprintf("%d", status),
		"Status":  status,
		"Message": message,
	})
	if renderErr != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "failed to render error page",
			slog.String("error", renderErr.Error()))
		return c.Status(status).SendString(message)
	}
	return nil
}
