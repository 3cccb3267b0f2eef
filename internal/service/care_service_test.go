package service

import (
	"context"
	"testing"
	"time"

	"github.com/oykukmnGlad/ROOTEAM/internal/models"
	"github.com/oykukmnGlad/ROOTEAM/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ownedPlantRepo(ownerID uint) *plantRepoStub {
	repo := noopPlantRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Plant, error) {
		if id != 1 {
			return nil, models.NewNotFoundError("Plant", id)
		}
		return &models.Plant{ID: 1, UserID: ownerID}, nil
	}
	return repo
}

func TestCareService_LogCare(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		in        LogCareInput
		wantCode  string
		wantNil   bool
		wantWrite bool
		action    string
	}{
		{name: "Water", in: LogCareInput{ActorID: 4, PlantID: 1, Action: "water"}, wantWrite: true, action: models.ActionWater},
		{name: "Mixed case fertilize", in: LogCareInput{ActorID: 4, PlantID: 1, Action: " Fertilize "}, wantWrite: true, action: models.ActionFertilize},
		{name: "Foreign plant is ignored", in: LogCareInput{ActorID: 5, PlantID: 1, Action: "water"}, wantNil: true},
		{name: "Foreign plant with bad action is still ignored", in: LogCareInput{ActorID: 5, PlantID: 1, Action: "prune"}, wantNil: true},
		{name: "Missing plant", in: LogCareInput{ActorID: 4, PlantID: 2, Action: "water"}, wantCode: models.CodeNotFound},
		{name: "Unknown action", in: LogCareInput{ActorID: 4, PlantID: 1, Action: "prune"}, wantCode: models.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := noopCareLogRepo()
			var written *models.CareLog
			logs.createFn = func(_ context.Context, l *models.CareLog) error {
				written = l
				return nil
			}
			svc := NewCareService(ownedPlantRepo(4), logs)
			svc.now = func() time.Time { return fixed }

			log, err := svc.LogCare(ctx, tt.in)

			switch {
			case tt.wantCode != "":
				assertAppErrorCode(t, err, tt.wantCode)
				assert.Nil(t, written)
			case tt.wantNil:
				assert.NoError(t, err)
				assert.Nil(t, log)
				assert.Nil(t, written)
			default:
				require.NoError(t, err)
				require.NotNil(t, written)
				assert.Equal(t, tt.action, written.ActionType)
				assert.Equal(t, fixed, written.Date)
				assert.Equal(t, uint(1), written.PlantID)
			}
		})
	}
}

func TestCareService_CareHistory(t *testing.T) {
	ctx := context.Background()
	logs := noopCareLogRepo()
	var gotFilter repository.CareLogFilter
	logs.listByPlantFn = func(_ context.Context, _ uint, f repository.CareLogFilter) ([]*models.CareLog, error) {
		gotFilter = f
		return []*models.CareLog{{ID: 1}}, nil
	}
	svc := NewCareService(ownedPlantRepo(4), logs)

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	history, err := svc.CareHistory(ctx, 4, 1, repository.CareLogFilter{From: from, To: to})
	require.NoError(t, err)
	assert.Len(t, history, 1)
	assert.Equal(t, from, gotFilter.From)

	_, err = svc.CareHistory(ctx, 5, 1, repository.CareLogFilter{})
	assertAppErrorCode(t, err, models.CodeNotFound)

	_, err = svc.CareHistory(ctx, 4, 1, repository.CareLogFilter{From: to, To: from})
	assertAppErrorCode(t, err, models.CodeValidation)
}

func TestCareService_CareSummary(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)

	logs := noopCareLogRepo()
	var gotSince time.Time
	logs.listByOwnerSinceFn = func(_ context.Context, _ uint, since time.Time) ([]*models.CareLog, error) {
		gotSince = since
		return []*models.CareLog{
			{ActionType: models.ActionWater, Date: time.Date(2024, 6, 4, 9, 0, 0, 0, time.UTC)},
			{ActionType: models.ActionWater, Date: time.Date(2024, 6, 10, 7, 0, 0, 0, time.UTC)},
			{ActionType: models.ActionFertilize, Date: time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)},
			{ActionType: "legacy", Date: time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)},
		}, nil
	}
	svc := NewCareService(noopPlantRepo(), logs)
	svc.now = func() time.Time { return now }

	summary, err := svc.CareSummary(ctx, 4, DefaultSummaryDays)
	require.NoError(t, err)
	assert.Equal(t, DefaultSummaryDays, summary.PeriodDays)
	assert.Equal(t, time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC), gotSince)
	require.Len(t, summary.Days, 7)
	assert.Equal(t, "2024-06-04", summary.Days[0].Day)
	assert.Equal(t, 1, summary.Days[0].Water)
	assert.Equal(t, "2024-06-10", summary.Days[6].Day)
	assert.Equal(t, 1, summary.Days[6].Water)
	assert.Equal(t, 1, summary.Days[6].Fertilize)
	assert.Equal(t, map[string]int{"water": 2, "fertilize": 1}, summary.Totals)

	clamped, err := svc.CareSummary(ctx, 4, 1000)
	require.NoError(t, err)
	assert.Equal(t, MaxSummaryDays, clamped.PeriodDays)

	for _, days := range []int{0, -3} {
		single, err := svc.CareSummary(ctx, 4, days)
		require.NoError(t, err)
		assert.Equal(t, 1, single.PeriodDays, "days=%d", days)
		assert.Len(t, single.Days, 1)
	}
}

func TestCareService_CareToday(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)

	logs := noopCareLogRepo()
	var gotSince time.Time
	logs.listByOwnerSinceFn = func(_ context.Context, userID uint, since time.Time) ([]*models.CareLog, error) {
		require.Equal(t, uint(4), userID)
		gotSince = since
		return []*models.CareLog{
			{ID: 1, ActionType: models.ActionWater, Date: time.Date(2024, 6, 10, 7, 0, 0, 0, time.UTC)},
			{ID: 2, ActionType: models.ActionWater, Date: time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)},
			{ID: 3, ActionType: models.ActionFertilize, Date: time.Date(2024, 6, 10, 11, 0, 0, 0, time.UTC)},
		}, nil
	}
	svc := NewCareService(noopPlantRepo(), logs)
	svc.now = func() time.Time { return now }

	today, err := svc.CareToday(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), gotSince)
	assert.Equal(t, "2024-06-10", today.Day)
	assert.Equal(t, 2, today.Water)
	assert.Equal(t, 1, today.Fertilize)
	require.Len(t, today.Logs, 3)
	assert.Equal(t, uint(1), today.Logs[0].ID)

	logs.listByOwnerSinceFn = func(context.Context, uint, time.Time) ([]*models.CareLog, error) {
		return nil, models.NewInternalError(errDB)
	}
	_, err = svc.CareToday(ctx, 4)
	assertAppErrorCode(t, err, models.CodeInternal)
}
