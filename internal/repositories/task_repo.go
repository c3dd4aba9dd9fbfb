package repositories

import (
	"context"

	"tradeportal/internal/models"

	"github.com/google/uuid"
)

type TaskRepository interface {
	ListByTrader(ctx context.Context, branchID string, traderID uuid.UUID) ([]*models.Task, error)
	ListByBranch(ctx context.Context, branchID string) ([]*models.Task, error)
	Create(ctx context.Context, task *models.Task) error
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, branchID string, id uuid.UUID) error
	DeleteByTrader(ctx context.Context, branchID string, traderID uuid.UUID) error
}

type taskRepo struct {
	db DBTX
}

func NewTaskRepo(db DBTX) TaskRepository {
	return &taskRepo{db: db}
}

const taskColumns = `id, branch_id, trader_id, title, due_date, completed, created_at, updated_at`

func (r *taskRepo) ListByTrader(ctx context.Context, branchID string, traderID uuid.UUID) ([]*models.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE branch_id = $1 AND trader_id = $2
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(ctx, query, branchID, traderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		t := &models.Task{}
		if err := rows.Scan(&t.ID, &t.BranchID, &t.TraderID, &t.Title, &t.DueDate, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *taskRepo) ListByBranch(ctx context.Context, branchID string) ([]*models.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE branch_id = $1
		ORDER BY trader_id, created_at ASC
	`
	rows, err := r.db.Query(ctx, query, branchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		t := &models.Task{}
		if err := rows.Scan(&t.ID, &t.BranchID, &t.TraderID, &t.Title, &t.DueDate, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *taskRepo) Create(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, task.ID, task.BranchID, task.TraderID, task.Title, task.DueDate, task.Completed)
	return err
}

func (r *taskRepo) Update(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks
		SET title = $1, due_date = $2, completed = $3, updated_at = NOW()
		WHERE branch_id = $4 AND id = $5
	`
	_, err := r.db.Exec(ctx, query, task.Title, task.DueDate, task.Completed, task.BranchID, task.ID)
	return err
}

func (r *taskRepo) Delete(ctx context.Context, branchID string, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE branch_id = $1 AND id = $2`, branchID, id)
	return err
}

// DeleteByTrader cleans a trader's tasks after the trader is removed. It is
// not atomic with the trader deletion.
func (r *taskRepo) DeleteByTrader(ctx context.Context, branchID string, traderID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE branch_id = $1 AND trader_id = $2`, branchID, traderID)
	return err
}
