package server

import (
	"github.com/oykukmnGlad/ROOTEAM/internal/models"
	"github.com/oykukmnGlad/ROOTEAM/internal/repository"
	"github.com/oykukmnGlad/ROOTEAM/internal/service"

	"github.com/gofiber/fiber/v2"
)

func formLogCareInput(c *fiber.Ctx, plantID uint) service.LogCareInput {
	return service.LogCareInput{
		ActorID: currentUserID(c),
		PlantID: plantID,
		Action:  c.FormValue("action"),
		Note:    c.FormValue("note"),
	}
}

// CreateCareLog handles POST /api/plants/:id/care. An ignored request on a
// foreign plant answers 204 with no body.
func (s *Server) CreateCareLog(c *fiber.Ctx) error {
	plantID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Action string `json:"action"`
		Note   string `json:"note"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	log, err := s.careService.LogCare(c.UserContext(), service.LogCareInput{
		ActorID: currentUserID(c),
		PlantID: plantID,
		Action:  req.Action,
		Note:    req.Note,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if log == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Status(fiber.StatusCreated).JSON(log)
}

// GetCareHistory handles GET /api/plants/:id/care?from=&to=
func (s *Server) GetCareHistory(c *fiber.Ctx) error {
	plantID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	from, err := parseTimeParam(c.Query("from"), false)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	to, err := parseTimeParam(c.Query("to"), true)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	logs, err := s.careService.CareHistory(c.UserContext(), currentUserID(c), plantID,
		repository.CareLogFilter{From: from, To: to})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(logs)
}

// GetCareSummary handles GET /api/care/summary?days=N
func (s *Server) GetCareSummary(c *fiber.Ctx) error {
	days := c.QueryInt("days", service.DefaultSummaryDays)

	summary, err := s.careService.CareSummary(c.UserContext(), currentUserID(c), days)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(summary)
}

// GetCareToday handles GET /api/care/today
func (s *Server) GetCareToday(c *fiber.Ctx) error {
	today, err := s.careService.CareToday(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(today)
}
