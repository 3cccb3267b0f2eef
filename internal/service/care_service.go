package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/oykukmnGlad/ROOTEAM/internal/middleware"
	"github.com/oykukmnGlad/ROOTEAM/internal/models"
	"github.com/oykukmnGlad/ROOTEAM/internal/observability"
	"github.com/oykukmnGlad/ROOTEAM/internal/repository"
	"github.com/oykukmnGlad/ROOTEAM/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

const (
	DefaultSummaryDays = 7
	MaxSummaryDays     = 365
)

// InvalidActionMessage is returned when an owner logs an unknown action.
var InvalidActionMessage = "Bakım türü geçersiz. Geçerli türler: " + strings.Join(models.CareActions, ", ") + "."

type CareService struct {
	plantRepo repository.PlantRepository
	logRepo   repository.CareLogRepository
	now       func() time.Time
}

type LogCareInput struct {
	ActorID uint
	PlantID uint
	Action  string
	Note    string
}

// DaySummary counts care actions on one UTC day.
type DaySummary struct {
	Day       string `json:"day"`
	Water     int    `json:"water"`
	Fertilize int    `json:"fertilize"`
}

// CareSummary aggregates a user's care actions over a trailing window.
type CareSummary struct {
	PeriodDays int            `json:"period_days"`
	Totals     map[string]int `json:"totals"`
	Days       []DaySummary   `json:"days"`
}

// CareToday is the actor's care activity on the current UTC day.
type CareToday struct {
	DaySummary
	Logs []*models.CareLog `json:"logs"`
}

func NewCareService(plantRepo repository.PlantRepository, logRepo repository.CareLogRepository) *CareService {
	return &CareService{
		plantRepo: plantRepo,
		logRepo:   logRepo,
		now:       time.Now,
	}
}

// LogCare records a care action. A missing plant is NotFound. When the
// actor does not own the plant nothing is written and (nil, nil) is
// returned.
func (s *CareService) LogCare(ctx context.Context, in LogCareInput) (*models.CareLog, error) {
	ctx, span := observability.StartSpan(ctx, "CareService.LogCare",
		attribute.Int64("user.id", int64(in.ActorID)),
		attribute.Int64("plant.id", int64(in.PlantID)),
	)
	defer span.End()

	plant, err := s.plantRepo.GetByID(ctx, in.PlantID)
	if err != nil {
		return nil, err
	}
	if !plant.OwnedBy(in.ActorID) {
		observability.CareActionsIgnored.Inc()
		middleware.Logger.InfoContext(ctx, "care action on foreign plant ignored",
			slog.Uint64("plant_id", uint64(in.PlantID)),
		)
		return nil, nil
	}

	action := models.NormalizeCareAction(in.Action)
	if action == "" {
		return nil, models.NewValidationError(InvalidActionMessage)
	}
	note := strings.TrimSpace(in.Note)
	if err := validation.ValidateNote(note); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	log := &models.CareLog{
		PlantID:    plant.ID,
		ActionType: action,
		Date:       s.now().UTC(),
		Note:       note,
	}
	if err := s.logRepo.Create(ctx, log); err != nil {
		return nil, err
	}

	observability.CareActionsLogged.WithLabelValues(action).Inc()
	return log, nil
}

// CareHistory lists the owner's logs for a plant, newest first.
func (s *CareService) CareHistory(ctx context.Context, actorID, plantID uint, filter repository.CareLogFilter) ([]*models.CareLog, error) {
	plant, err := s.plantRepo.GetByID(ctx, plantID)
	if err != nil {
		return nil, err
	}
	if !plant.OwnedBy(actorID) {
		return nil, models.NewNotFoundError("Plant", plantID)
	}
	if !filter.From.IsZero() && !filter.To.IsZero() && filter.To.Before(filter.From) {
		return nil, models.NewValidationError("Bitiş tarihi başlangıç tarihinden önce olamaz.")
	}
	return s.logRepo.ListByPlant(ctx, plantID, filter)
}

// CareSummary buckets the actor's care actions of the last days days
// (today included) by UTC day. days is clamped to [1, MaxSummaryDays];
// callers without a preference pass DefaultSummaryDays.
func (s *CareService) CareSummary(ctx context.Context, actorID uint, days int) (*CareSummary, error) {
	switch {
	case days < 1:
		days = 1
	case days > MaxSummaryDays:
		days = MaxSummaryDays
	}

	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	since := today.AddDate(0, 0, -(days - 1))

	logs, err := s.logRepo.ListByOwnerSince(ctx, actorID, since)
	if err != nil {
		return nil, err
	}

	summary := &CareSummary{
		PeriodDays: days,
		Totals:     map[string]int{models.ActionWater: 0, models.ActionFertilize: 0},
		Days:       make([]DaySummary, days),
	}
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		key := since.AddDate(0, 0, i).Format(time.DateOnly)
		summary.Days[i] = DaySummary{Day: key}
		index[key] = i
	}

	for _, l := range logs {
		i, ok := index[l.Date.UTC().Format(time.DateOnly)]
		if !ok {
			continue
		}
		switch l.ActionType {
		case models.ActionWater:
			summary.Days[i].Water++
		case models.ActionFertilize:
			summary.Days[i].Fertilize++
		default:
			continue
		}
		summary.Totals[l.ActionType]++
	}
	return summary, nil
}

// CareToday lists the actor's care logs of the current UTC day, oldest
// first, with per-action counts.
func (s *CareService) CareToday(ctx context.Context, actorID uint) (*CareToday, error) {
	ctx, span := observability.StartSpan(ctx, "CareService.CareToday", attribute.Int64("user.id", int64(actorID)))
	defer span.End()

	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	logs, err := s.logRepo.ListByOwnerSince(ctx, actorID, today)
	if err != nil {
		return nil, err
	}

	out := &CareToday{
		DaySummary: DaySummary{Day: today.Format(time.DateOnly)},
		Logs:       make([]*models.CareLog, 0, len(logs)),
	}
	for _, l := range logs {
		switch l.ActionType {
		case models.ActionWater:
			out.Water++
		case models.ActionFertilize:
			out.Fertilize++
		}
		out.Logs = append(out.Logs, l)
	}
	return out, nil
}
