package services

import (
	"context"
	"time"

	"tradeportal/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockTraderRepository struct {
	mock.Mock
}

func (m *MockTraderRepository) ListByBranch(ctx context.Context, branchID string) ([]*models.Trader, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Trader), args.Error(1)
}

func (m *MockTraderRepository) GetByID(ctx context.Context, branchID string, id uuid.UUID) (*models.Trader, error) {
	args := m.Called(ctx, branchID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Trader), args.Error(1)
}

func (m *MockTraderRepository) Create(ctx context.Context, trader *models.Trader) error {
	args := m.Called(ctx, trader)
	return args.Error(0)
}

func (m *MockTraderRepository) Update(ctx context.Context, trader *models.Trader) error {
	args := m.Called(ctx, trader)
	return args.Error(0)
}

func (m *MockTraderRepository) Delete(ctx context.Context, branchID string, id uuid.UUID) error {
	args := m.Called(ctx, branchID, id)
	return args.Error(0)
}

func (m *MockTraderRepository) CountByBranch(ctx context.Context, branchID string) (int, error) {
	args := m.Called(ctx, branchID)
	return args.Int(0), args.Error(1)
}

func (m *MockTraderRepository) PhoneSet(ctx context.Context, branchID string) (map[string]bool, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

func (m *MockTraderRepository) BulkInsert(ctx context.Context, branchID string, traders []*models.Trader) *models.BulkWriteResult {
	args := m.Called(ctx, branchID, traders)
	return args.Get(0).(*models.BulkWriteResult)
}

func (m *MockTraderRepository) BulkDelete(ctx context.Context, branchID string, ids []uuid.UUID) *models.BulkWriteResult {
	args := m.Called(ctx, branchID, ids)
	return args.Get(0).(*models.BulkWriteResult)
}

func (m *MockTraderRepository) UpdateFinancialsByName(ctx context.Context, branchID string, upd *models.FinancialUpdate) (bool, error) {
	args := m.Called(ctx, branchID, upd)
	return args.Bool(0), args.Error(1)
}

func (m *MockTraderRepository) ListBranches(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTraderRepository) DueCallBacks(ctx context.Context, branchID string, by time.Time) ([]*models.Trader, error) {
	args := m.Called(ctx, branchID, by)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Trader), args.Error(1)
}

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) ListByTrader(ctx context.Context, branchID string, traderID uuid.UUID) ([]*models.Task, error) {
	args := m.Called(ctx, branchID, traderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Task), args.Error(1)
}

func (m *MockTaskRepository) ListByBranch(ctx context.Context, branchID string) ([]*models.Task, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Task), args.Error(1)
}

func (m *MockTaskRepository) Create(ctx context.Context, task *models.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *models.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, branchID string, id uuid.UUID) error {
	args := m.Called(ctx, branchID, id)
	return args.Error(0)
}

func (m *MockTaskRepository) DeleteByTrader(ctx context.Context, branchID string, traderID uuid.UUID) error {
	args := m.Called(ctx, branchID, traderID)
	return args.Error(0)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetTraderList(ctx context.Context, branchID string) ([]*models.TraderView, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TraderView), args.Error(1)
}

func (m *MockCacheService) SetTraderList(ctx context.Context, branchID string, traders []*models.TraderView, ttl time.Duration) error {
	args := m.Called(ctx, branchID, traders, ttl)
	return args.Error(0)
}

func (m *MockCacheService) InvalidateBranch(ctx context.Context, branchID string) error {
	args := m.Called(ctx, branchID)
	return args.Error(0)
}

func (m *MockCacheService) SweepExpired(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockArchiveService struct {
	mock.Mock
}

func (m *MockArchiveService) ArchiveUpload(ctx context.Context, branchID, filename string, data []byte) (string, error) {
	args := m.Called(ctx, branchID, filename, data)
	return args.String(0), args.Error(1)
}

func (m *MockArchiveService) EnsureBucketExists(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
