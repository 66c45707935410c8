package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"briefdesk-backend/internal/task/domain"
	"briefdesk-backend/internal/task/repository"
	"briefdesk-backend/pkg/trello"
)

// taskUsecase implements TaskUsecase
type taskUsecase struct {
	taskRepo repository.TaskRepository
	cards    CardSource
	boards   BoardConfig
}

// NewTaskUsecase creates a new instance of taskUsecase
func NewTaskUsecase(taskRepo repository.TaskRepository, cards CardSource, boards BoardConfig) TaskUsecase {
	return &taskUsecase{
		taskRepo: taskRepo,
		cards:    cards,
		boards:   boards,
	}
}

func (u *taskUsecase) CreateTask(userID, title, dueAt, source, priority string) (*domain.Task, error) {
	task := &domain.Task{
		UserID: userID,
		Title:  title,
		Status: domain.TaskStatusPending,
		Source: source,
	}
	if dueAt != "" {
		if t, err := time.Parse(time.RFC3339, dueAt); err == nil {
			task.DueAt = &t
		}
	}
	if priority != "" {
		task.MetadataJSON = domain.EncodeMetadata(domain.Metadata{Priority: priority})
	}

	if err := u.taskRepo.Create(task); err != nil {
		return nil, err
	}
	return task, nil
}

func (u *taskUsecase) CreateFromCard(userID string, card *trello.Card) (*domain.Task, error) {
	task := trello.CardToTask(card)
	task.UserID = userID
	if err := u.taskRepo.Create(task); err != nil {
		return nil, err
	}
	return task, nil
}

func (u *taskUsecase) GetUserTasks(userID string) ([]*domain.Task, error) {
	return u.taskRepo.FindByUserID(userID)
}

func (u *taskUsecase) GetTaskByID(taskID string) (*domain.Task, error) {
	return u.taskRepo.FindByID(taskID)
}

func (u *taskUsecase) UpdateTask(task *domain.Task) error {
	return u.taskRepo.Update(task)
}

func (u *taskUsecase) UpdateTaskStatus(taskID string, status domain.TaskStatus) error {
	task, err := u.taskRepo.FindByID(taskID)
	if err != nil {
		return err
	}
	if task == nil {
		return errors.New("task not found")
	}
	return u.taskRepo.UpdateStatus(taskID, status)
}

func (u *taskUsecase) SyncTrello(ctx context.Context, userID string) (int, error) {
	boardID, listID, err := u.boards.TrelloTarget(userID)
	if err != nil {
		return 0, err
	}
	if listID == "" {
		// Nothing configured yet; nothing to sync.
		return 0, nil
	}

	cards, err := u.cards.Cards(ctx, boardID, listID)
	if err != nil {
		return 0, err
	}

	existing, err := u.taskRepo.FindByUserID(userID)
	if err != nil {
		return 0, err
	}
	known := make(map[string]bool, len(existing))
	for _, t := range existing {
		if id := t.Meta().TrelloID; id != "" {
			known[id] = true
		}
	}

	created := 0
	for i := range cards {
		card := cards[i]
		if known[card.ID] {
			continue
		}
		if _, err := u.CreateFromCard(userID, &card); err != nil {
			log.Printf("[TaskSync] Failed to create task for card %s: %v", card.ID, err)
			continue
		}
		known[card.ID] = true
		created++
	}
	return created, nil
}
