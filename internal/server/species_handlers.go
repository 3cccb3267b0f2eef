package server

import (
	"github.com/oykukmnGlad/ROOTEAM/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ListSpecies handles GET /api/species
func (s *Server) ListSpecies(c *fiber.Ctx) error {
	return c.JSON(s.catalog.List())
}

// GetSpecies handles GET /api/species/:slug
func (s *Server) GetSpecies(c *fiber.Ctx) error {
	entry, err := s.catalog.Get(c.Params("slug"))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(entry)
}

// GetSpeciesCare handles GET /api/species/:slug/care
func (s *Server) GetSpeciesCare(c *fiber.Ctx) error {
	care, err := s.catalog.Care(c.Params("slug"))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(care)
}

// GetSpeciesIssues handles GET /api/species/:slug/issues
func (s *Server) GetSpeciesIssues(c *fiber.Ctx) error {
	slug := c.Params("slug")
	issues, err := s.catalog.Issues(slug)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"slug":   slug,
		"issues": issues,
	})
}

// GetSpeciesTreatment handles GET /api/species/:slug/treatments/:issue
func (s *Server) GetSpeciesTreatment(c *fiber.Ctx) error {
	slug, issue := c.Params("slug"), c.Params("issue")
	text, err := s.catalog.Treatment(slug, issue)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"slug":      slug,
		"issue":     issue,
		"treatment": text,
	})
}
