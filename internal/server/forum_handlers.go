package server

import (
	"net/url"

	"github.com/oykukmnGlad/ROOTEAM/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ForumPage handles GET /forum?species=
func (s *Server) ForumPage(c *fiber.Ctx) error {
	filter := c.Query("species")

	posts, err := s.forumService.ListPosts(c.UserContext(), filter)
	if err != nil {
		return err
	}
	categories, err := s.forumService.ListCategories(c.UserContext())
	if err != nil {
		return err
	}

	return s.render(c, "forum", fiber.Map{
		"Title":        "Forum",
		"Posts":        posts,
		"Categories":   categories,
		"ActiveFilter": filter,
	})
}

// ForumPostForm handles POST /forum and returns to the post's species.
func (s *Server) ForumPostForm(c *fiber.Ctx) error {
	post, err := s.forumService.Post(c.UserContext(), currentUserID(c),
		c.FormValue("plant_species"), c.FormValue("content"))
	if err != nil {
		if !models.HasCode(err, models.CodeValidation) {
			return err
		}
		s.setFlash(c, err.Error())
		return c.Redirect("/forum")
	}
	return c.Redirect("/forum?species=" + url.QueryEscape(post.PlantSpecies))
}

// GetForumPosts handles GET /api/forum/posts?species=
func (s *Server) GetForumPosts(c *fiber.Ctx) error {
	posts, err := s.forumService.ListPosts(c.UserContext(), c.Query("species"))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(posts)
}

// CreateForumPost handles POST /api/forum/posts
func (s *Server) CreateForumPost(c *fiber.Ctx) error {
	var req struct {
		PlantSpecies string `json:"plant_species"`
		Content      string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.forumService.Post(c.UserContext(), currentUserID(c), req.PlantSpecies, req.Content)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetForumCategories handles GET /api/forum/categories
func (s *Server) GetForumCategories(c *fiber.Ctx) error {
	categories, err := s.forumService.ListCategories(c.UserContext())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(categories)
}
