package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tradeportal/internal/caching"
	"tradeportal/internal/models"
	"tradeportal/internal/normalize"
	"tradeportal/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const traderListTTL = 5 * time.Minute

// ErrPhoneExists is returned by the single-add path when the normalized
// phone collides with a stored trader in the same branch.
var ErrPhoneExists = errors.New("a trader with this phone number already exists in this branch")

type TraderService interface {
	List(ctx context.Context, branchID string) ([]*models.TraderView, error)
	Get(ctx context.Context, branchID string, id uuid.UUID) (*models.TraderView, error)
	Create(ctx context.Context, branchID string, trader *models.Trader) (*models.TraderView, error)
	Update(ctx context.Context, branchID string, trader *models.Trader) (*models.TraderView, error)
	Delete(ctx context.Context, branchID string, id uuid.UUID) error
	BulkDelete(ctx context.Context, branchID string, ids []uuid.UUID) *models.BulkWriteResult
}

type traderService struct {
	traderRepo repositories.TraderRepository
	taskRepo   repositories.TaskRepository
	cache      caching.CacheService
	logger     *zap.Logger
}

func NewTraderService(traderRepo repositories.TraderRepository, taskRepo repositories.TaskRepository, cache caching.CacheService, logger *zap.Logger) TraderService {
	return &traderService{
		traderRepo: traderRepo,
		taskRepo:   taskRepo,
		cache:      cache,
		logger:     logger,
	}
}

// List returns a branch's traders in the external shape. The first read of
// an empty branch seeds the demo dataset once, then re-reads. Any
// lower-level failure is wrapped; callers must not assume partial results
// on error.
func (s *traderService) List(ctx context.Context, branchID string) ([]*models.TraderView, error) {
	if cached, err := s.cache.GetTraderList(ctx, branchID); cached != nil {
		return cached, nil
	} else if err != nil {
		s.logger.Warn("trader list cache read failed", zap.String("branch", branchID), zap.Error(err))
	}

	traders, err := s.traderRepo.ListByBranch(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get traders: %w", err)
	}

	if len(traders) == 0 {
		if err := s.seedBranch(ctx, branchID); err != nil {
			return nil, fmt.Errorf("failed to get traders: %w", err)
		}
		traders, err = s.traderRepo.ListByBranch(ctx, branchID)
		if err != nil {
			return nil, fmt.Errorf("failed to get traders: %w", err)
		}
	}

	tasks, err := s.taskRepo.ListByBranch(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get traders: %w", err)
	}
	byTrader := make(map[uuid.UUID][]*models.Task)
	for _, t := range tasks {
		byTrader[t.TraderID] = append(byTrader[t.TraderID], t)
	}

	views := make([]*models.TraderView, 0, len(traders))
	for _, t := range traders {
		views = append(views, Project(t, byTrader[t.ID]))
	}

	if err := s.cache.SetTraderList(ctx, branchID, views, traderListTTL); err != nil {
		s.logger.Warn("trader list cache write failed", zap.String("branch", branchID), zap.Error(err))
	}
	return views, nil
}

// seedBranch fires only when the partition is empty; the count re-check
// narrows the window between the caller's empty read and the insert.
func (s *traderService) seedBranch(ctx context.Context, branchID string) error {
	count, err := s.traderRepo.CountByBranch(ctx, branchID)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	seed := demoTraders(branchID, time.Now().UTC())
	result := s.traderRepo.BulkInsert(ctx, branchID, seed)
	if result.FailureCount > 0 {
		return fmt.Errorf("seeding branch %s: %s", branchID, result.Error)
	}
	s.logger.Info("seeded demo data for empty branch", zap.String("branch", branchID), zap.Int("records", result.SuccessCount))
	return nil
}

func (s *traderService) Get(ctx context.Context, branchID string, id uuid.UUID) (*models.TraderView, error) {
	trader, err := s.traderRepo.GetByID(ctx, branchID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get trader: %w", err)
	}
	tasks, err := s.taskRepo.ListByTrader(ctx, branchID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get trader: %w", err)
	}
	return Project(trader, tasks), nil
}

// Create adds one trader through the form path. The phone is normalized
// before storage and checked against the branch's stored numbers;
// lastActivity is refreshed to now.
func (s *traderService) Create(ctx context.Context, branchID string, trader *models.Trader) (*models.TraderView, error) {
	if strings.TrimSpace(trader.Name) == "" {
		return nil, errors.New("trader name is required")
	}

	normalizeTraderPhone(trader)
	if trader.Phone != nil {
		phones, err := s.traderRepo.PhoneSet(ctx, branchID)
		if err != nil {
			return nil, fmt.Errorf("failed to create trader: %w", err)
		}
		if phones[*trader.Phone] {
			return nil, ErrPhoneExists
		}
	}

	trader.ID = uuid.New()
	trader.BranchID = branchID
	trader.LastActivity = time.Now().UTC()
	if trader.Status == "" {
		trader.Status = models.StatusNewLead
	}

	if err := s.traderRepo.Create(ctx, trader); err != nil {
		return nil, fmt.Errorf("failed to create trader: %w", err)
	}
	s.invalidate(ctx, branchID)
	return Project(trader, nil), nil
}

// Update edits a trader through the form path; lastActivity is refreshed to
// now on every edit.
func (s *traderService) Update(ctx context.Context, branchID string, trader *models.Trader) (*models.TraderView, error) {
	if strings.TrimSpace(trader.Name) == "" {
		return nil, errors.New("trader name is required")
	}
	existing, err := s.traderRepo.GetByID(ctx, branchID, trader.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update trader: %w", err)
	}

	normalizeTraderPhone(trader)
	if trader.Phone != nil && (existing.Phone == nil || *existing.Phone != *trader.Phone) {
		phones, err := s.traderRepo.PhoneSet(ctx, branchID)
		if err != nil {
			return nil, fmt.Errorf("failed to update trader: %w", err)
		}
		if phones[*trader.Phone] {
			return nil, ErrPhoneExists
		}
	}

	trader.BranchID = branchID
	trader.LastActivity = time.Now().UTC()
	if err := s.traderRepo.Update(ctx, trader); err != nil {
		return nil, fmt.Errorf("failed to update trader: %w", err)
	}
	s.invalidate(ctx, branchID)

	tasks, err := s.taskRepo.ListByTrader(ctx, branchID, trader.ID)
	if err != nil {
		tasks = nil
	}
	return Project(trader, tasks), nil
}

// Delete removes a trader and then cleans its tasks. The cleanup is not
// atomic with the trader deletion.
func (s *traderService) Delete(ctx context.Context, branchID string, id uuid.UUID) error {
	if err := s.traderRepo.Delete(ctx, branchID, id); err != nil {
		return fmt.Errorf("failed to delete trader: %w", err)
	}
	if err := s.taskRepo.DeleteByTrader(ctx, branchID, id); err != nil {
		s.logger.Warn("task cleanup after trader delete failed", zap.String("branch", branchID), zap.String("trader", id.String()), zap.Error(err))
	}
	s.invalidate(ctx, branchID)
	return nil
}

func (s *traderService) BulkDelete(ctx context.Context, branchID string, ids []uuid.UUID) *models.BulkWriteResult {
	result := s.traderRepo.BulkDelete(ctx, branchID, ids)
	s.invalidate(ctx, branchID)
	return result
}

func (s *traderService) invalidate(ctx context.Context, branchID string) {
	if err := s.cache.InvalidateBranch(ctx, branchID); err != nil {
		s.logger.Warn("cache invalidation failed", zap.String("branch", branchID), zap.Error(err))
	}
}

func normalizeTraderPhone(t *models.Trader) {
	if t.Phone == nil {
		return
	}
	p := normalize.Phone(*t.Phone)
	if p == "" {
		t.Phone = nil
		return
	}
	t.Phone = &p
}

// Project maps a stored trader into the external shape: timestamps become
// RFC3339 strings, absent fields explicit nulls. A missing or zero
// lastActivity surfaces as the Unix epoch, never as a parse error.
func Project(t *models.Trader, tasks []*models.Task) *models.TraderView {
	lastActivity := t.LastActivity
	if lastActivity.IsZero() {
		lastActivity = time.Unix(0, 0).UTC()
	}
	var callBack *string
	if t.CallBackDate != nil {
		s := t.CallBackDate.UTC().Format(time.RFC3339)
		callBack = &s
	}
	if tasks == nil {
		tasks = []*models.Task{}
	}
	return &models.TraderView{
		ID:                     t.ID.String(),
		BranchID:               t.BranchID,
		Name:                   t.Name,
		Status:                 t.Status,
		LastActivity:           lastActivity.UTC().Format(time.RFC3339),
		CallBackDate:           callBack,
		Phone:                  t.Phone,
		Website:                t.Website,
		Address:                t.Address,
		OwnerName:              t.OwnerName,
		OwnerProfileLink:       t.OwnerProfileLink,
		MainCategory:           t.MainCategory,
		Categories:             t.Categories,
		WorkdayTiming:          t.WorkdayTiming,
		TotalAssets:            t.TotalAssets,
		EstimatedAnnualRevenue: t.EstimatedAnnualRevenue,
		EstimatedCompanyValue:  t.EstimatedCompanyValue,
		EmployeeCount:          t.EmployeeCount,
		Description:            t.Description,
		Notes:                  t.Notes,
		Reviews:                t.Reviews,
		Rating:                 t.Rating,
		Tasks:                  tasks,
	}
}
