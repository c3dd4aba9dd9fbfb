package models

import (
	"time"

	"github.com/google/uuid"
)

// Task is a lightweight to-do attached to a trader. The trader id is a
// back-reference only; tasks are created, edited and deleted independently.
type Task struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	BranchID  string     `json:"branchId" db:"branch_id"`
	TraderID  uuid.UUID  `json:"traderId" db:"trader_id"`
	Title     string     `json:"title" db:"title"`
	DueDate   *time.Time `json:"dueDate" db:"due_date"`
	Completed bool       `json:"completed" db:"completed"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
}
