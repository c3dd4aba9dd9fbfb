package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"tradeportal/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

const testBranch = "PURLEY"

func newTraderServiceUnderTest() (TraderService, *MockTraderRepository, *MockTaskRepository, *MockCacheService) {
	traderRepo := new(MockTraderRepository)
	taskRepo := new(MockTaskRepository)
	cache := new(MockCacheService)
	svc := NewTraderService(traderRepo, taskRepo, cache, zap.NewNop())
	return svc, traderRepo, taskRepo, cache
}

func TestList_SeedsEmptyBranchExactlyOnce(t *testing.T) {
	svc, traderRepo, taskRepo, cache := newTraderServiceUnderTest()
	ctx := context.Background()

	cache.On("GetTraderList", ctx, testBranch).Return(nil, nil)
	cache.On("SetTraderList", ctx, testBranch, mock.Anything, mock.Anything).Return(nil)

	seeded := demoTraders(testBranch, time.Now().UTC())

	// First call: empty branch, seed fires, re-read returns the seed.
	traderRepo.On("ListByBranch", ctx, testBranch).Return([]*models.Trader{}, nil).Once()
	traderRepo.On("CountByBranch", ctx, testBranch).Return(0, nil).Once()
	traderRepo.On("BulkInsert", ctx, testBranch, mock.Anything).
		Return(&models.BulkWriteResult{SuccessCount: len(seeded), Created: seeded}).Once()
	traderRepo.On("ListByBranch", ctx, testBranch).Return(seeded, nil)
	taskRepo.On("ListByBranch", ctx, testBranch).Return([]*models.Task{}, nil)

	first, err := svc.List(ctx, testBranch)
	assert.NoError(t, err)
	assert.Len(t, first, len(seeded))

	// Second call: branch is no longer empty, no further seeding.
	second, err := svc.List(ctx, testBranch)
	assert.NoError(t, err)
	assert.Equal(t, len(first), len(second))

	traderRepo.AssertNumberOfCalls(t, "BulkInsert", 1)
}

func TestList_WrapsReadErrors(t *testing.T) {
	svc, traderRepo, _, cache := newTraderServiceUnderTest()
	ctx := context.Background()

	cache.On("GetTraderList", ctx, testBranch).Return(nil, nil)
	traderRepo.On("ListByBranch", ctx, testBranch).Return(nil, errors.New("connection refused"))

	views, err := svc.List(ctx, testBranch)
	assert.Nil(t, views)
	assert.ErrorContains(t, err, "failed to get traders")
}

func TestProject_MissingLastActivityDefaultsToEpoch(t *testing.T) {
	trader := &models.Trader{
		ID:       uuid.New(),
		BranchID: testBranch,
		Name:     "No Activity Ltd",
		Status:   models.StatusNewLead,
	}
	view := Project(trader, nil)
	assert.Equal(t, "1970-01-01T00:00:00Z", view.LastActivity)
}

func TestProject_NullableFieldsArePresent(t *testing.T) {
	trader := &models.Trader{
		ID:           uuid.New(),
		BranchID:     testBranch,
		Name:         "Sparse Ltd",
		Status:       models.StatusActive,
		LastActivity: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	view := Project(trader, nil)
	assert.Nil(t, view.Phone)
	assert.Nil(t, view.CallBackDate)
	assert.Nil(t, view.Website)
	assert.NotNil(t, view.Tasks) // empty slice, not null
	assert.Equal(t, "2024-03-01T10:00:00Z", view.LastActivity)
}

func TestCreate_RefreshesLastActivityAndNormalizesPhone(t *testing.T) {
	svc, traderRepo, _, cache := newTraderServiceUnderTest()
	ctx := context.Background()
	phone := "(020) 8765-4321"

	traderRepo.On("PhoneSet", ctx, testBranch).Return(map[string]bool{}, nil)
	traderRepo.On("Create", ctx, mock.MatchedBy(func(tr *models.Trader) bool {
		return tr.Phone != nil && *tr.Phone == "02087654321" &&
			!tr.LastActivity.IsZero() && tr.BranchID == testBranch
	})).Return(nil)
	cache.On("InvalidateBranch", ctx, testBranch).Return(nil)

	view, err := svc.Create(ctx, testBranch, &models.Trader{Name: "New Lead Ltd", Phone: &phone})
	assert.NoError(t, err)
	assert.Equal(t, "02087654321", *view.Phone)
}

func TestCreate_RejectsDuplicatePhone(t *testing.T) {
	svc, traderRepo, _, _ := newTraderServiceUnderTest()
	ctx := context.Background()
	phone := "020 8765 4321"

	traderRepo.On("PhoneSet", ctx, testBranch).Return(map[string]bool{"02087654321": true}, nil)

	_, err := svc.Create(ctx, testBranch, &models.Trader{Name: "Collider", Phone: &phone})
	assert.ErrorIs(t, err, ErrPhoneExists)
	traderRepo.AssertNotCalled(t, "Create")
}

func TestCreate_RejectsBlankName(t *testing.T) {
	svc, traderRepo, _, _ := newTraderServiceUnderTest()

	_, err := svc.Create(context.Background(), testBranch, &models.Trader{Name: "   "})
	assert.Error(t, err)
	traderRepo.AssertNotCalled(t, "Create")
}

func TestDelete_CleansTasksAfterTrader(t *testing.T) {
	svc, traderRepo, taskRepo, cache := newTraderServiceUnderTest()
	ctx := context.Background()
	id := uuid.New()

	traderRepo.On("Delete", ctx, testBranch, id).Return(nil)
	taskRepo.On("DeleteByTrader", ctx, testBranch, id).Return(nil)
	cache.On("InvalidateBranch", ctx, testBranch).Return(nil)

	assert.NoError(t, svc.Delete(ctx, testBranch, id))
	taskRepo.AssertCalled(t, "DeleteByTrader", ctx, testBranch, id)
}
