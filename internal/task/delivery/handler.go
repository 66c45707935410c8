package delivery

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	authusecase "briefdesk-backend/internal/auth/usecase"
	"briefdesk-backend/internal/task/domain"
	"briefdesk-backend/internal/task/usecase"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskUsecase usecase.TaskUsecase
	users       authusecase.UserService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskUsecase usecase.TaskUsecase, users authusecase.UserService) *TaskHandler {
	return &TaskHandler{taskUsecase: taskUsecase, users: users}
}

// CreateTaskRequest represents the request body for creating a task
type CreateTaskRequest struct {
	Title    string `json:"title" binding:"required"`
	DueAt    string `json:"dueAt"`
	Source   string `json:"source"`
	Priority string `json:"priority"`
}

// GetTasks returns all tasks, optionally syncing Trello cards first
// GET /api/tasks?sync=true
func (h *TaskHandler) GetTasks(c *gin.Context) {
	user, err := h.users.EnsureDefaultUser()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks", "message": err.Error()})
		return
	}

	if c.Query("sync") == "true" {
		if _, err := h.taskUsecase.SyncTrello(c.Request.Context(), user.ID); err != nil {
			// Sync is best-effort; the task list is still returned.
			log.Printf("[Tasks] Failed to sync with Trello: %v", err)
		}
	}

	tasks, err := h.taskUsecase.GetUserTasks(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks", "message": err.Error()})
		return
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// CreateTask creates a new task manually
// POST /api/tasks
func (h *TaskHandler) CreateTask(c *gin.Context) {
	user, err := h.users.EnsureDefaultUser()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task", "message": err.Error()})
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid task payload", "message": err.Error()})
		return
	}

	task, err := h.taskUsecase.CreateTask(user.ID, req.Title, req.DueAt, req.Source, req.Priority)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, task)
}

// UpdateTaskStatus updates a task's status
// PATCH /api/tasks/:id
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	taskID := c.Param("id")

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid task payload", "message": err.Error()})
		return
	}

	if err := h.taskUsecase.UpdateTaskStatus(taskID, domain.TaskStatus(req.Status)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
