package usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"forgebase.backend/internal/domain/entities"
	domainerrors "forgebase.backend/internal/domain/errors"
	"forgebase.backend/internal/usecases"
)

func newUsageStatsUsecase() (*usecases.UsageStatsUsecase, *MockUsageRecordRepository, *MockProjectRepository, *MockApiKeyRepository) {
	mockUsageRepo := new(MockUsageRecordRepository)
	mockProjectRepo := new(MockProjectRepository)
	mockApiKeyRepo := new(MockApiKeyRepository)
	uc := usecases.NewUsageStatsUsecase(mockUsageRepo, mockProjectRepo, mockApiKeyRepo, nil)
	return uc, mockUsageRepo, mockProjectRepo, mockApiKeyRepo
}

func TestUsageStatsUsecase_GetProjectStats(t *testing.T) {
	uc, mockUsageRepo, mockProjectRepo, _ := newUsageStatsUsecase()
	ctx := context.Background()

	owner := uuid.New()
	project := &entities.Project{ID: uuid.New(), UserID: owner, IsActive: true}
	mockProjectRepo.On("GetByID", ctx, project.ID).Return(project, nil).Once()

	scope := mock.AnythingOfType("entities.UsageScope")
	anyTime := mock.AnythingOfType("time.Time")
	mockUsageRepo.On("CountInWindow", ctx, scope, anyTime, anyTime).Return(int64(3), nil).Once()
	mockUsageRepo.On("CountInWindow", ctx, scope, anyTime, anyTime).Return(int64(2), nil).Once()
	mockUsageRepo.On("CountErrorsInWindow", ctx, scope, anyTime, anyTime).Return(int64(1), nil).Once()
	mockUsageRepo.On("AvgResponseTime", ctx, scope, anyTime, anyTime).Return(123.6, nil).Once()
	mockUsageRepo.On("TopEndpoints", ctx, scope, anyTime, anyTime, 10).Return([]*entities.EndpointStat{
		{Endpoint: "/v1/auth/verify", Count: 2},
	}, nil).Once()
	mockUsageRepo.On("StatusCodeCounts", ctx, scope, anyTime, anyTime).Return([]*entities.StatusCodeCount{
		{StatusCode: 200, Count: 2}, {StatusCode: 500, Count: 1},
	}, nil).Once()
	mockUsageRepo.On("Recent", ctx, scope, anyTime, anyTime, 10).Return([]*entities.UsageRecord{}, nil).Once()

	stats, err := uc.GetProjectStats(ctx, project.ID, owner, entities.Period30D, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalCalls)
	assert.Equal(t, int64(2), stats.CallsToday)
	assert.Equal(t, "33.33", stats.ErrorRate)
	assert.Equal(t, 124, stats.AvgResponseTime, "mean rounds to nearest int")
	assert.Len(t, stats.TopEndpoints, 1)
	mockUsageRepo.AssertExpectations(t)
}

func TestUsageStatsUsecase_GetProjectStats_EmptyWindow(t *testing.T) {
	uc, mockUsageRepo, mockProjectRepo, _ := newUsageStatsUsecase()
	ctx := context.Background()

	owner := uuid.New()
	project := &entities.Project{ID: uuid.New(), UserID: owner, IsActive: true}
	mockProjectRepo.On("GetByID", ctx, project.ID).Return(project, nil).Once()

	scope := mock.AnythingOfType("entities.UsageScope")
	anyTime := mock.AnythingOfType("time.Time")
	mockUsageRepo.On("CountInWindow", ctx, scope, anyTime, anyTime).Return(int64(0), nil).Twice()
	mockUsageRepo.On("CountErrorsInWindow", ctx, scope, anyTime, anyTime).Return(int64(0), nil).Once()
	mockUsageRepo.On("AvgResponseTime", ctx, scope, anyTime, anyTime).Return(0.0, nil).Once()
	mockUsageRepo.On("TopEndpoints", ctx, scope, anyTime, anyTime, 10).Return([]*entities.EndpointStat{}, nil).Once()
	mockUsageRepo.On("StatusCodeCounts", ctx, scope, anyTime, anyTime).Return([]*entities.StatusCodeCount{}, nil).Once()
	mockUsageRepo.On("Recent", ctx, scope, anyTime, anyTime, 10).Return([]*entities.UsageRecord{}, nil).Once()

	stats, err := uc.GetProjectStats(ctx, project.ID, owner, entities.DefaultPeriod, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalCalls)
	assert.Equal(t, "0.00", stats.ErrorRate, "zero traffic is not a division error")
	assert.Equal(t, 0, stats.AvgResponseTime)
	assert.Empty(t, stats.TopEndpoints)
}

func TestUsageStatsUsecase_GetProjectStats_Forbidden(t *testing.T) {
	uc, _, mockProjectRepo, _ := newUsageStatsUsecase()
	ctx := context.Background()

	project := &entities.Project{ID: uuid.New(), UserID: uuid.New(), IsActive: true}
	mockProjectRepo.On("GetByID", ctx, project.ID).Return(project, nil).Once()

	_, err := uc.GetProjectStats(ctx, project.ID, uuid.New(), entities.DefaultPeriod, 0)
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.CodeForbidden, appErr.Code)
}

func TestUsageStatsUsecase_GetKeyStats(t *testing.T) {
	uc, mockUsageRepo, mockProjectRepo, mockApiKeyRepo := newUsageStatsUsecase()
	ctx := context.Background()

	owner := uuid.New()
	project := &entities.Project{ID: uuid.New(), UserID: owner, IsActive: true}
	key := &entities.ApiKey{ID: uuid.New(), ProjectID: project.ID, IsActive: true}

	mockApiKeyRepo.On("FindByID", ctx, key.ID).Return(key, nil).Once()
	mockProjectRepo.On("GetByID", ctx, project.ID).Return(project, nil).Once()

	keyScoped := mock.MatchedBy(func(s entities.UsageScope) bool {
		return s.ApiKeyID != nil && *s.ApiKeyID == key.ID && s.ProjectID == nil
	})
	anyTime := mock.AnythingOfType("time.Time")
	mockUsageRepo.On("CountInWindow", ctx, keyScoped, anyTime, anyTime).Return(int64(5), nil).Twice()
	mockUsageRepo.On("CountErrorsInWindow", ctx, keyScoped, anyTime, anyTime).Return(int64(0), nil).Once()
	mockUsageRepo.On("AvgResponseTime", ctx, keyScoped, anyTime, anyTime).Return(42.0, nil).Once()
	mockUsageRepo.On("TopEndpoints", ctx, keyScoped, anyTime, anyTime, 10).Return([]*entities.EndpointStat{}, nil).Once()
	mockUsageRepo.On("StatusCodeCounts", ctx, keyScoped, anyTime, anyTime).Return([]*entities.StatusCodeCount{}, nil).Once()
	mockUsageRepo.On("Recent", ctx, keyScoped, anyTime, anyTime, 10).Return([]*entities.UsageRecord{}, nil).Once()

	stats, err := uc.GetKeyStats(ctx, key.ID, owner, entities.Period7D, 0)
	require.NoError(t, err)
	assert.Equal(t, entities.Period7D, stats.Period)
	assert.Equal(t, int64(5), stats.TotalCalls)
	mockUsageRepo.AssertExpectations(t)
}

func TestUsageStatsUsecase_GetProjectAnalytics_ClampsDays(t *testing.T) {
	uc, mockUsageRepo, mockProjectRepo, _ := newUsageStatsUsecase()
	ctx := context.Background()

	owner := uuid.New()
	project := &entities.Project{ID: uuid.New(), UserID: owner, IsActive: true}
	mockProjectRepo.On("GetByID", ctx, project.ID).Return(project, nil)

	scope := mock.AnythingOfType("entities.UsageScope")
	anyTime := mock.AnythingOfType("time.Time")
	mockUsageRepo.On("DailySeries", ctx, scope, anyTime, anyTime).Return([]*entities.DailyUsage{}, nil)
	mockUsageRepo.On("HourlyCounts", ctx, scope, anyTime, anyTime).Return([]*entities.HourlyUsage{}, nil)
	mockUsageRepo.On("EndpointPerformance", ctx, scope, anyTime, anyTime, 20).Return([]*entities.EndpointPerformance{}, nil)

	analytics, err := uc.GetProjectAnalytics(ctx, project.ID, owner, 0)
	require.NoError(t, err)
	assert.Equal(t, 30, analytics.Days, "zero falls back to the default window")
	assert.NotNil(t, analytics.DailySeries)
	assert.Empty(t, analytics.DailySeries, "no traffic is an empty series, not an error")

	analytics, err = uc.GetProjectAnalytics(ctx, project.ID, owner, 365)
	require.NoError(t, err)
	assert.Equal(t, 90, analytics.Days, "window never exceeds retention")
}

func TestUsageStatsUsecase_RecordUsage_SwallowsFailure(t *testing.T) {
	uc, mockUsageRepo, _, _ := newUsageStatsUsecase()
	ctx := context.Background()

	record := &entities.UsageRecord{
		ApiKeyID:  uuid.New(),
		ProjectID: uuid.New(),
		Endpoint:  "/v1/database/query",
		Method:    "POST",
	}
	mockUsageRepo.On("Create", ctx, record).Return(assert.AnError).Once()

	uc.RecordUsage(ctx, record)
	mockUsageRepo.AssertExpectations(t)
}
