package server

import (
	"github.com/gofiber/fiber/v2"
)

// Home renders the most recent posts.
func (s *Server) Home(c *fiber.Ctx) error {
	posts, err := s.postService.ListRecentPosts(c.UserContext(), s.config.HomeRecentPosts)
	if err != nil {
		return err
	}
	return c.Render("home", fiber.Map{
		"Title": "Recent posts",
		"Posts": posts,
	})
}
