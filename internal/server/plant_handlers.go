package server

import (
	"github.com/oykukmnGlad/ROOTEAM/internal/models"
	"github.com/oykukmnGlad/ROOTEAM/internal/species"

	"github.com/gofiber/fiber/v2"
)

// plantView is a dashboard row.
type plantView struct {
	Plant         *models.Plant
	Guide         *species.Entry
	LastWater     *models.CareLog
	LastFertilize *models.CareLog
}

type careActionOption struct {
	Value string
	Label string
}

var careActionOptions = []careActionOption{
	{Value: models.ActionWater, Label: "Sulandı"},
	{Value: models.ActionFertilize, Label: "Gübrelendi"},
}

// Dashboard handles GET /
func (s *Server) Dashboard(c *fiber.Ctx) error {
	plants, err := s.plantService.ListPlants(c.UserContext(), currentUserID(c))
	if err != nil {
		return err
	}

	views := make([]plantView, 0, len(plants))
	for _, p := range plants {
		v := plantView{
			Plant:         p,
			LastWater:     p.LastCare(models.ActionWater),
			LastFertilize: p.LastCare(models.ActionFertilize),
		}
		if guide, ok := s.catalog.Match(p.Species); ok {
			v.Guide = guide
		}
		views = append(views, v)
	}

	return s.render(c, "dashboard", fiber.Map{
		"Title":   "Bitkilerim",
		"Plants":  views,
		"Actions": careActionOptions,
	})
}

// AddPlantForm handles POST /add_plant
func (s *Server) AddPlantForm(c *fiber.Ctx) error {
	_, err := s.plantService.AddPlant(c.UserContext(), currentUserID(c), c.FormValue("name"), c.FormValue("species"))
	if err != nil {
		if !models.HasCode(err, models.CodeValidation) {
			return err
		}
		s.setFlash(c, err.Error())
	}
	return c.Redirect("/")
}

// LogCareForm handles POST /log_care/:plant_id. Care on someone else's
// plant is dropped without feedback.
func (s *Server) LogCareForm(c *fiber.Ctx) error {
	plantID, err := c.ParamsInt("plant_id")
	if err != nil || plantID <= 0 {
		return s.renderNotFound(c, "Bitki bulunamadı.")
	}

	_, err = s.careService.LogCare(c.UserContext(), formLogCareInput(c, uint(plantID)))
	switch {
	case err == nil:
	case models.HasCode(err, models.CodeNotFound):
		return s.renderNotFound(c, "Bitki bulunamadı.")
	case models.HasCode(err, models.CodeValidation):
		s.setFlash(c, err.Error())
	default:
		return err
	}
	return c.Redirect("/")
}

// GetPlants handles GET /api/plants
func (s *Server) GetPlants(c *fiber.Ctx) error {
	plants, err := s.plantService.ListPlants(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(plants)
}

// CreatePlant handles POST /api/plants
func (s *Server) CreatePlant(c *fiber.Ctx) error {
	var req struct {
		Name    string `json:"name"`
		Species string `json:"species"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	plant, err := s.plantService.AddPlant(c.UserContext(), currentUserID(c), req.Name, req.Species)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(plant)
}

// GetPlant handles GET /api/plants/:id
func (s *Server) GetPlant(c *fiber.Ctx) error {
	plantID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	plant, err := s.plantService.GetPlant(c.UserContext(), currentUserID(c), plantID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(plant)
}
