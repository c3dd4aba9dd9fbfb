package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tradeportal/internal/caching"
	"tradeportal/internal/models"
	"tradeportal/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TaskService interface {
	ListByTrader(ctx context.Context, branchID string, traderID uuid.UUID) ([]*models.Task, error)
	Create(ctx context.Context, branchID string, task *models.Task) error
	Update(ctx context.Context, branchID string, task *models.Task) error
	Delete(ctx context.Context, branchID string, id uuid.UUID) error
}

type taskService struct {
	taskRepo   repositories.TaskRepository
	traderRepo repositories.TraderRepository
	cache      caching.CacheService
	logger     *zap.Logger
}

func NewTaskService(taskRepo repositories.TaskRepository, traderRepo repositories.TraderRepository, cache caching.CacheService, logger *zap.Logger) TaskService {
	return &taskService{
		taskRepo:   taskRepo,
		traderRepo: traderRepo,
		cache:      cache,
		logger:     logger,
	}
}

func (s *taskService) ListByTrader(ctx context.Context, branchID string, traderID uuid.UUID) ([]*models.Task, error) {
	tasks, err := s.taskRepo.ListByTrader(ctx, branchID, traderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks: %w", err)
	}
	return tasks, nil
}

func (s *taskService) Create(ctx context.Context, branchID string, task *models.Task) error {
	if strings.TrimSpace(task.Title) == "" {
		return errors.New("task title is required")
	}
	if _, err := s.traderRepo.GetByID(ctx, branchID, task.TraderID); err != nil {
		return errors.New("trader not found")
	}
	task.ID = uuid.New()
	task.BranchID = branchID
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	s.invalidate(ctx, branchID)
	return nil
}

func (s *taskService) Update(ctx context.Context, branchID string, task *models.Task) error {
	if strings.TrimSpace(task.Title) == "" {
		return errors.New("task title is required")
	}
	task.BranchID = branchID
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	s.invalidate(ctx, branchID)
	return nil
}

func (s *taskService) Delete(ctx context.Context, branchID string, id uuid.UUID) error {
	if err := s.taskRepo.Delete(ctx, branchID, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	s.invalidate(ctx, branchID)
	return nil
}

func (s *taskService) invalidate(ctx context.Context, branchID string) {
	if err := s.cache.InvalidateBranch(ctx, branchID); err != nil {
		s.logger.Warn("cache invalidation failed", zap.String("branch", branchID), zap.Error(err))
	}
}
