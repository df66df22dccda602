package server

import (
	"fmt"

	"blogly/internal/models"
	"blogly/internal/service"

	"github.com/gofiber/fiber/v2"
)

func postInputFromForm(c *fiber.Ctx) (service.PostInput, error) {
	values, err := formValues(c)
	if err != nil {
		return service.PostInput{}, err
	}
	fields, err := requireFields(values, "title", "content")
	if err != nil {
		return service.PostInput{}, err
	}
	return service.PostInput{Title: fields["title"], Content: fields["content"]}, nil
}

// NewPostForm renders the empty post form for the user in the path.
func (s *Server) NewPostForm(c *fiber.Ctx) error {
	userID, err := parseID(c, "id", "User")
	if err != nil {
		return err
	}
	user, err := s.userService.GetUser(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.Render("posts/form", fiber.Map{
		"Title":  fmt.Sprintf("Add post for %s", user.FullName()),
		"Action": fmt.Sprintf("/user/%d/posts/new", user.ID),
		"Cancel": fmt.Sprintf("/user/%d", user.ID),
		"Submit": "Add",
		"Post":   models.Post{},
	})
}

// CreatePost handles POST /user/:id/posts/new.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID, err := parseID(c, "id", "User")
	if err != nil {
		return err
	}
	in, err := postInputFromForm(c)
	if err != nil {
		return err
	}
	post, err := s.postService.CreatePost(c.UserContext(), userID, in)
	if err != nil {
		return err
	}
	return redirectAfterWrite(c, fmt.Sprintf("/user/%d", post.UserID))
}

// ShowPost renders one post with its author and tags.
func (s *Server) ShowPost(c *fiber.Ctx) error {
	id, err := parseID(c, "id", "Post")
	if err != nil {
		return err
	}
	post, err := s.postService.GetPost(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.Render("posts/detail", fiber.Map{
		"Title": post.Title,
		"Post":  post,
	})
}

// EditPostForm renders the post form pre-filled with the current values.
func (s *Server) EditPostForm(c *fiber.Ctx) error {
	id, err := parseID(c, "id", "Post")
	if err != nil {
		return err
	}
	post, err := s.postService.GetPost(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.Render("posts/form", fiber.Map{
		"Title":  "Edit post",
		"Action": fmt.Sprintf("/posts/%d/edit", post.ID),
		"Cancel": fmt.Sprintf("/posts/%d", post.ID),
		"Submit": "Save",
		"Post":   post,
	})
}

// UpdatePost handles POST /posts/:id/edit.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id", "Post")
	if err != nil {
		return err
	}
	in, err := postInputFromForm(c)
	if err != nil {
		return err
	}
	post, err := s.postService.UpdatePost(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return redirectAfterWrite(c, fmt.Sprintf("/user/%d", post.UserID))
}

// DeletePost handles POST /posts/:id/delete.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id", "Post")
	if err != nil {
		return err
	}
	ownerID, err := s.postService.DeletePost(c.UserContext(), id)
	if err != nil {
		return err
	}
	return redirectAfterWrite(c, fmt.Sprintf("/user/%d", ownerID))
}
