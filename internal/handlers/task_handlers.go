package handlers

import (
	"net/http"
	"time"

	"tradeportal/internal/common"
	"tradeportal/internal/models"
	"tradeportal/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type TaskHandlers struct {
	taskService services.TaskService
}

func NewTaskHandlers(taskService services.TaskService) *TaskHandlers {
	return &TaskHandlers{taskService: taskService}
}

type taskRequest struct {
	TraderID  string  `json:"traderId"`
	Title     string  `json:"title"`
	DueDate   *string `json:"dueDate"`
	Completed bool    `json:"completed"`
}

// ListTasks handles GET /branches/:branchId/traders/:id/tasks
func (h *TaskHandlers) ListTasks(c echo.Context) error {
	branchID, err := common.ValidateBranchID(c.Param("branchId"))
	if err != nil {
		return common.SendValidationError(c, "branchId", err.Error())
	}
	traderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.SendValidationError(c, "id", "invalid trader id")
	}
	tasks, err := h.taskService.ListByTrader(c.Request().Context(), branchID, traderID)
	if err != nil {
		return common.SendServerError(c, "Failed to get tasks")
	}
	return c.JSON(http.StatusOK, tasks)
}

// CreateTask handles POST /branches/:branchId/tasks
func (h *TaskHandlers) CreateTask(c echo.Context) error {
	branchID, err := common.ValidateBranchID(c.Param("branchId"))
	if err != nil {
		return common.SendValidationError(c, "branchId", err.Error())
	}
	var req taskRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	traderID, err := uuid.Parse(req.TraderID)
	if err != nil {
		return common.SendValidationError(c, "traderId", "invalid trader id")
	}
	task := &models.Task{TraderID: traderID, Title: req.Title, Completed: req.Completed}
	if req.DueDate != nil && *req.DueDate != "" {
		due, err := time.Parse(time.RFC3339, *req.DueDate)
		if err != nil {
			return common.SendValidationError(c, "dueDate", "dueDate must be RFC3339")
		}
		task.DueDate = &due
	}
	if err := h.taskService.Create(c.Request().Context(), branchID, task); err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusCreated, task)
}

// UpdateTask handles PUT /branches/:branchId/tasks/:taskId
func (h *TaskHandlers) UpdateTask(c echo.Context) error {
	branchID, err := common.ValidateBranchID(c.Param("branchId"))
	if err != nil {
		return common.SendValidationError(c, "branchId", err.Error())
	}
	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		return common.SendValidationError(c, "taskId", "invalid task id")
	}
	var req taskRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	task := &models.Task{ID: taskID, Title: req.Title, Completed: req.Completed}
	if req.DueDate != nil && *req.DueDate != "" {
		due, err := time.Parse(time.RFC3339, *req.DueDate)
		if err != nil {
			return common.SendValidationError(c, "dueDate", "dueDate must be RFC3339")
		}
		task.DueDate = &due
	}
	if err := h.taskService.Update(c.Request().Context(), branchID, task); err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusOK, task)
}

// DeleteTask handles DELETE /branches/:branchId/tasks/:taskId
func (h *TaskHandlers) DeleteTask(c echo.Context) error {
	branchID, err := common.ValidateBranchID(c.Param("branchId"))
	if err != nil {
		return common.SendValidationError(c, "branchId", err.Error())
	}
	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		return common.SendValidationError(c, "taskId", "invalid task id")
	}
	if err := h.taskService.Delete(c.Request().Context(), branchID, taskID); err != nil {
		return common.SendServerError(c, "Failed to delete task")
	}
	return c.NoContent(http.StatusNoContent)
}
