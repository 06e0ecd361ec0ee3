package usecases_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"forgebase.backend/internal/domain/entities"
)

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// Mock ProjectRepository
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) Create(ctx context.Context, project *entities.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Project), args.Error(1)
}

func (m *MockProjectRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Project, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Project), args.Error(1)
}

func (m *MockProjectRepository) Update(ctx context.Context, project *entities.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock ApiKeyRepository
type MockApiKeyRepository struct {
	mock.Mock
}

func (m *MockApiKeyRepository) Create(ctx context.Context, key *entities.ApiKey) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockApiKeyRepository) FindBySecret(ctx context.Context, secret string) (*entities.ApiKey, error) {
	args := m.Called(ctx, secret)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ApiKey), args.Error(1)
}

func (m *MockApiKeyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.ApiKey, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ApiKey), args.Error(1)
}

func (m *MockApiKeyRepository) ListByProjectID(ctx context.Context, projectID uuid.UUID) ([]*entities.ApiKey, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ApiKey), args.Error(1)
}

func (m *MockApiKeyRepository) Update(ctx context.Context, key *entities.ApiKey) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockApiKeyRepository) TouchLastUsed(ctx context.Context, id uuid.UUID, when time.Time) error {
	args := m.Called(ctx, id, when)
	return args.Error(0)
}

func (m *MockApiKeyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockApiKeyRepository) DeleteByProjectID(ctx context.Context, projectID uuid.UUID) error {
	args := m.Called(ctx, projectID)
	return args.Error(0)
}

// Mock UsageRecordRepository
type MockUsageRecordRepository struct {
	mock.Mock
}

func (m *MockUsageRecordRepository) Create(ctx context.Context, record *entities.UsageRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockUsageRecordRepository) CountInWindow(ctx context.Context, scope entities.UsageScope, from, to time.Time) (int64, error) {
	args := m.Called(ctx, scope, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUsageRecordRepository) CountErrorsInWindow(ctx context.Context, scope entities.UsageScope, from, to time.Time) (int64, error) {
	args := m.Called(ctx, scope, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUsageRecordRepository) AvgResponseTime(ctx context.Context, scope entities.UsageScope, from, to time.Time) (float64, error) {
	args := m.Called(ctx, scope, from, to)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockUsageRecordRepository) TopEndpoints(ctx context.Context, scope entities.UsageScope, from, to time.Time, limit int) ([]*entities.EndpointStat, error) {
	args := m.Called(ctx, scope, from, to, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.EndpointStat), args.Error(1)
}

func (m *MockUsageRecordRepository) StatusCodeCounts(ctx context.Context, scope entities.UsageScope, from, to time.Time) ([]*entities.StatusCodeCount, error) {
	args := m.Called(ctx, scope, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.StatusCodeCount), args.Error(1)
}

func (m *MockUsageRecordRepository) Recent(ctx context.Context, scope entities.UsageScope, from, to time.Time, limit int) ([]*entities.UsageRecord, error) {
	args := m.Called(ctx, scope, from, to, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.UsageRecord), args.Error(1)
}

func (m *MockUsageRecordRepository) DailySeries(ctx context.Context, scope entities.UsageScope, from, to time.Time) ([]*entities.DailyUsage, error) {
	args := m.Called(ctx, scope, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.DailyUsage), args.Error(1)
}

func (m *MockUsageRecordRepository) HourlyCounts(ctx context.Context, scope entities.UsageScope, from, to time.Time) ([]*entities.HourlyUsage, error) {
	args := m.Called(ctx, scope, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.HourlyUsage), args.Error(1)
}

func (m *MockUsageRecordRepository) EndpointPerformance(ctx context.Context, scope entities.UsageScope, from, to time.Time, limit int) ([]*entities.EndpointPerformance, error) {
	args := m.Called(ctx, scope, from, to, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.EndpointPerformance), args.Error(1)
}

func (m *MockUsageRecordRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}
