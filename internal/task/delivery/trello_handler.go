package delivery

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	authusecase "briefdesk-backend/internal/auth/usecase"
	settingsrepo "briefdesk-backend/internal/settings/repository"
	"briefdesk-backend/internal/task/domain"
	"briefdesk-backend/internal/task/usecase"
	"briefdesk-backend/pkg/trello"
)

// TrelloHandler exposes board/list discovery and card create/update, mirroring
// card writes into local tasks.
type TrelloHandler struct {
	client       *trello.Client
	taskUsecase  usecase.TaskUsecase
	settingsRepo settingsrepo.SettingsRepository
	users        authusecase.UserService
}

func NewTrelloHandler(client *trello.Client, taskUsecase usecase.TaskUsecase, settingsRepo settingsrepo.SettingsRepository, users authusecase.UserService) *TrelloHandler {
	return &TrelloHandler{
		client:       client,
		taskUsecase:  taskUsecase,
		settingsRepo: settingsRepo,
		users:        users,
	}
}

// GetBoards lists the user's open Trello boards
// GET /api/trello/boards
func (h *TrelloHandler) GetBoards(c *gin.Context) {
	boards, err := h.client.Boards(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch Trello boards", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"boards": boards})
}

// GetBoardLists lists the lists on a board
// GET /api/trello/boards/:boardId/lists
func (h *TrelloHandler) GetBoardLists(c *gin.Context) {
	lists, err := h.client.BoardLists(c.Request.Context(), c.Param("boardId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch Trello lists", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"lists": lists})
}

// CreateCardRequest represents the request body for creating a card
type CreateCardRequest struct {
	Name string `json:"name" binding:"required"`
	Desc string `json:"desc"`
	Due  string `json:"due"`
}

// CreateCard creates a Trello card on the configured list and a local task
// POST /api/trello/cards
func (h *TrelloHandler) CreateCard(c *gin.Context) {
	var req CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid card payload", "message": err.Error()})
		return
	}

	user, err := h.users.EnsureDefaultUser()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Trello card", "message": err.Error()})
		return
	}

	settings, err := h.settingsRepo.FindByUserID(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Trello card", "message": err.Error()})
		return
	}
	if settings == nil || settings.TrelloListID == "" {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Please configure a Trello board and list in Settings before creating tasks.",
			"message": "No Trello list configured. Please select a board and list in Settings.",
		})
		return
	}

	card, err := h.client.CreateCard(c.Request.Context(), trello.CreateCardParams{
		ListID: settings.TrelloListID,
		Name:   req.Name,
		Desc:   req.Desc,
		Due:    req.Due,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": humanizeCardError(err), "message": err.Error()})
		return
	}

	task, err := h.taskUsecase.CreateFromCard(user.ID, card)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Trello card", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"card": card, "task": task})
}

// UpdateCardRequest represents the request body for updating a card
type UpdateCardRequest struct {
	Name        *string `json:"name"`
	Desc        *string `json:"desc"`
	Due         *string `json:"due"`
	DueComplete *bool   `json:"dueComplete"`
	IDList      *string `json:"idList"`
}

// UpdateCard updates a Trello card and mirrors the change into the local task
// PATCH /api/trello/cards/:cardId
func (h *TrelloHandler) UpdateCard(c *gin.Context) {
	cardID := c.Param("cardId")

	var req UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid card payload", "message": err.Error()})
		return
	}

	card, err := h.client.UpdateCard(c.Request.Context(), cardID, trello.CardUpdate{
		Name:        req.Name,
		Desc:        req.Desc,
		Due:         req.Due,
		DueComplete: req.DueComplete,
		IDList:      req.IDList,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update Trello card", "message": err.Error()})
		return
	}

	h.mirrorCardToTask(card)

	c.JSON(http.StatusOK, gin.H{"card": card})
}

// mirrorCardToTask updates the local task matching the card's trelloId, when
// one exists. Mirror failures do not fail the card update.
func (h *TrelloHandler) mirrorCardToTask(card *trello.Card) {
	user, err := h.users.EnsureDefaultUser()
	if err != nil {
		return
	}
	tasks, err := h.taskUsecase.GetUserTasks(user.ID)
	if err != nil {
		return
	}
	for _, task := range tasks {
		if task.Meta().TrelloID != card.ID {
			continue
		}
		task.Title = card.Name
		task.Status = domain.TaskStatusPending
		if card.DueComplete {
			task.Status = domain.TaskStatusCompleted
		}
		task.DueAt = nil
		if card.Due != nil && *card.Due != "" {
			if t, err := time.Parse(time.RFC3339, *card.Due); err == nil {
				task.DueAt = &t
			}
		}
		meta := task.Meta()
		meta.Description = card.Desc
		meta.ListID = card.IDList
		task.MetadataJSON = domain.EncodeMetadata(meta)
		_ = h.taskUsecase.UpdateTask(task)
		return
	}
}

// FromEmailRequest represents a follow-up task derived from an email
type FromEmailRequest struct {
	EmailID string `json:"emailId" binding:"required"`
	Subject string `json:"subject" binding:"required"`
	Content string `json:"content"`
}

// CreateFromEmail creates a follow-up card and task from an email
// POST /api/tasks/from-email
func (h *TrelloHandler) CreateFromEmail(c *gin.Context) {
	var req FromEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid payload", "message": err.Error()})
		return
	}

	desc := fmt.Sprintf("Email ID: %s", req.EmailID)
	if req.Content != "" {
		content := req.Content
		if len(content) > 500 {
			content = content[:500]
		}
		desc = fmt.Sprintf("Email ID: %s\n\n%s", req.EmailID, content)
	}

	h.createOnDefaultList(c, "Follow up: "+req.Subject, desc, "")
}

// FromEventRequest represents a preparation task derived from a calendar event
type FromEventRequest struct {
	EventID    string   `json:"eventId" binding:"required"`
	EventTitle string   `json:"eventTitle" binding:"required"`
	StartTime  string   `json:"startTime" binding:"required"`
	Attendees  []string `json:"attendees"`
}

// CreateFromEvent creates a preparation card and task due a day before the event
// POST /api/tasks/from-event
func (h *TrelloHandler) CreateFromEvent(c *gin.Context) {
	var req FromEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid payload", "message": err.Error()})
		return
	}

	desc := "Event ID: " + req.EventID
	if len(req.Attendees) > 0 {
		desc = fmt.Sprintf("Meeting with: %s\nEvent ID: %s", strings.Join(req.Attendees, ", "), req.EventID)
	}

	due := ""
	if start, err := time.Parse(time.RFC3339, req.StartTime); err == nil {
		due = start.Add(-24 * time.Hour).Format(time.RFC3339)
	}

	h.createOnDefaultList(c, "Prepare for: "+req.EventTitle, desc, due)
}

func (h *TrelloHandler) createOnDefaultList(c *gin.Context, name, desc, due string) {
	listID, err := h.client.DefaultListID(c.Request.Context(), "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task", "message": err.Error()})
		return
	}

	card, err := h.client.CreateCard(c.Request.Context(), trello.CreateCardParams{
		ListID: listID,
		Name:   name,
		Desc:   desc,
		Due:    due,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": humanizeCardError(err), "message": err.Error()})
		return
	}

	user, err := h.users.EnsureDefaultUser()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task", "message": err.Error()})
		return
	}

	task, err := h.taskUsecase.CreateFromCard(user.ID, card)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task, "card": card})
}

// humanizeCardError rewrites the two known Trello failure modes into
// user-actionable messages; everything else passes through generically.
func humanizeCardError(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "Closed boards cannot be edited"):
		return "Cannot create task: The selected Trello board is closed/archived. Please select a different board in Settings."
	case strings.Contains(msg, "No Trello list configured"):
		return "Please configure a Trello board and list in Settings before creating tasks."
	default:
		return "Failed to create Trello card"
	}
}
