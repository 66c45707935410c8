package usecase

import (
	"context"

	"briefdesk-backend/internal/task/domain"
	"briefdesk-backend/pkg/trello"
)

// TaskUsecase defines the interface for task business logic
type TaskUsecase interface {
	// CreateTask creates a new task manually
	CreateTask(userID, title, dueAt, source, priority string) (*domain.Task, error)

	// CreateFromCard stores a local task mirroring a Trello card
	CreateFromCard(userID string, card *trello.Card) (*domain.Task, error)

	// GetUserTasks retrieves all tasks for a user, newest first
	GetUserTasks(userID string) ([]*domain.Task, error)

	// GetTaskByID retrieves a single task, nil when absent
	GetTaskByID(taskID string) (*domain.Task, error)

	// UpdateTask updates an existing task
	UpdateTask(task *domain.Task) error

	// UpdateTaskStatus sets only the status of a task
	UpdateTaskStatus(taskID string, status domain.TaskStatus) error

	// SyncTrello pulls cards from the user's configured Trello list and
	// creates local tasks for cards not yet represented, matched by the
	// trelloId embedded in task metadata. Returns the number created.
	SyncTrello(ctx context.Context, userID string) (int, error)
}

// CardSource is the slice of the Trello client the sync path needs.
type CardSource interface {
	Cards(ctx context.Context, boardID, listID string) ([]trello.Card, error)
}

// BoardConfig resolves the user's configured Trello board and list.
type BoardConfig interface {
	TrelloTarget(userID string) (boardID, listID string, err error)
}
