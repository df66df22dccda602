package server

import (
	"fmt"

	"blogly/internal/models"
	"blogly/internal/service"

	"github.com/gofiber/fiber/v2"
)

var userFormFields = []string{"user_name", "first_name", "last_name", "user_email", "image_url"}

func userInputFromForm(c *fiber.Ctx) (service.UserInput, error) {
	values, err := formValues(c)
	if err != nil {
		return service.UserInput{}, err
	}
	fields, err := requireFields(values, userFormFields...)
	if err != nil {
		return service.UserInput{}, err
	}
	return service.UserInput{
		UserName:  fields["user_name"],
		FirstName: fields["first_name"],
		LastName:  fields["last_name"],
		Email:     fields["user_email"],
		ImageURL:  fields["image_url"],
	}, nil
}

// ListUsers renders every user.
func (s *Server) ListUsers(c *fiber.Ctx) error {
	users, err := s.userService.ListUsers(c.UserContext())
	if err != nil {
		return err
	}
	return c.Render("users/index", fiber.Map{
		"Title": "Users",
		"Users": users,
	})
}

// NewUserForm renders the empty user form.
func (s *Server) NewUserForm(c *fiber.Ctx) error {
	return c.Render("users/form", fiber.Map{
		"Title":  "Create a user",
		"Action": "/users/new",
		"Cancel": "/users",
		"Submit": "Add",
		"User":   models.User{},
	})
}

// CreateUser handles POST /users/new.
func (s *Server) CreateUser(c *fiber.Ctx) error {
	in, err := userInputFromForm(c)
	if err != nil {
		return err
	}
	if _, err := s.userService.CreateUser(c.UserContext(), in); err != nil {
		return err
	}
	return redirectAfterWrite(c, "/users")
}

// ShowUser renders one user with their posts.
func (s *Server) ShowUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id", "User")
	if err != nil {
		return err
	}
	user, err := s.userService.GetUserWithPosts(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.Render("users/detail", fiber.Map{
		"Title": user.FullName(),
		"User":  user,
	})
}

// EditUserForm renders the user form pre-filled with the current values.
func (s *Server) EditUserForm(c *fiber.Ctx) error {
	id, err := parseID(c, "id", "User")
	if err != nil {
		return err
	}
	user, err := s.userService.GetUser(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.Render("users/form", fiber.Map{
		"Title":  fmt.Sprintf("Edit %s", user.UserName),
		"Action": fmt.Sprintf("/user/%d/edit", user.ID),
		"Cancel": fmt.Sprintf("/user/%d", user.ID),
		"Submit": "Save",
		"User":   user,
	})
}

// UpdateUser handles POST /user/:id/edit.
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id", "User")
	if err != nil {
		return err
	}
	in, err := userInputFromForm(c)
	if err != nil {
		return err
	}
	if _, err := s.userService.UpdateUser(c.UserContext(), id, in); err != nil {
		return err
	}
	return redirectAfterWrite(c, "/users")
}

// DeleteUser handles POST /user/:id/delete.
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id", "User")
	if err != nil {
		return err
	}
	if err := s.userService.DeleteUser(c.UserContext(), id); err != nil {
		return err
	}
	return redirectAfterWrite(c, "/users")
}
