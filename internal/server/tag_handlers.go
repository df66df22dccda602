package server

import (
	"fmt"

	"blogly/internal/models"
	"blogly/internal/service"

	"github.com/gofiber/fiber/v2"
)

func tagInputFromForm(c *fiber.Ctx) (service.TagInput, error) {
	values, err := formValues(c)
	if err != nil {
		return service.TagInput{}, err
	}
	fields, err := requireFields(values, "name")
	if err != nil {
		return service.TagInput{}, err
	}
	postIDs, err := parseIDList(values["posts"], "posts")
	if err != nil {
		return service.TagInput{}, err
	}
	return service.TagInput{Name: fields["name"], PostIDs: postIDs}, nil
}

// ListTags renders every tag.
func (s *Server) ListTags(c *fiber.Ctx) error {
	tags, err := s.tagService.ListTags(c.UserContext())
	if err != nil {
		return err
	}
	return c.Render("tags/index", fiber.Map{
		"Title": "Tags",
		"Tags":  tags,
	})
}

// NewTagForm renders the empty tag form with a checklist of every post.
func (s *Server) NewTagForm(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.UserContext())
	if err != nil {
		return err
	}
	return c.Render("tags/form", fiber.Map{
		"Title":  "Create a tag",
		"Action": "/tags/new",
		"Cancel": "/tags",
		"Submit": "Add",
		"Tag":    models.Tag{},
		"Posts":  posts,
	})
}

// CreateTag handles POST /tags/new.
func (s *Server) CreateTag(c *fiber.Ctx) error {
	in, err := tagInputFromForm(c)
	if err != nil {
		return err
	}
	if _, err := s.tagService.CreateTag(c.UserContext(), in); err != nil {
		return err
	}
	return redirectAfterWrite(c, "/tags")
}

// ShowTag renders one tag with its posts.
func (s *Server) ShowTag(c *fiber.Ctx) error {
	id, err := parseID(c, "id", "Tag")
	if err != nil {
		return err
	}
	tag, err := s.tagService.GetTag(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.Render("tags/detail", fiber.Map{
		"Title": tag.Name,
		"Tag":   tag,
	})
}

// EditTagForm renders the tag form with its current posts checked.
func (s *Server) EditTagForm(c *fiber.Ctx) error {
	id, err := parseID(c, "id", "Tag")
	if err != nil {
		return err
	}
	tag, err := s.tagService.GetTag(c.UserContext(), id)
	if err != nil {
		return err
	}
	posts, err := s.postService.ListPosts(c.UserContext())
	if err != nil {
		return err
	}
	return c.Render("tags/form", fiber.Map{
		"Title":  fmt.Sprintf("Edit %s", tag.Name),
		"Action": fmt.Sprintf("/tags/%d/edit", tag.ID),
		"Cancel": fmt.Sprintf("/tags/%d", tag.ID),
		"Submit": "Save",
		"Tag":    tag,
		"Posts":  posts,
	})
}

// UpdateTag handles POST /tags/:id/edit. The submitted posts replace the tag's set.
func (s *Server) UpdateTag(c *fiber.Ctx) error {
	id, err := parseID(c, "id", "Tag")
	if err != nil {
		return err
	}
	in, err := tagInputFromForm(c)
	if err != nil {
		return err
	}
	if _, err := s.tagService.UpdateTag(c.UserContext(), id, in); err != nil {
		return err
	}
	return redirectAfterWrite(c, "/tags")
}

// DeleteTag handles POST /tags/:id/delete.
func (s *Server) DeleteTag(c *fiber.Ctx) error {
	id, err := parseID(c, "id", "Tag")
	if err != nil {
		return err
	}
	if err := s.tagService.DeleteTag(c.UserContext(), id); err != nil {
		return err
	}
	return redirectAfterWrite(c, "/tags")
}
