package delivery

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	authusecase "briefdesk-backend/internal/auth/usecase"
	"briefdesk-backend/internal/settings/domain"
	"briefdesk-backend/internal/settings/repository"
)

// SettingsHandler handles per-user configuration requests
type SettingsHandler struct {
	settingsRepo repository.SettingsRepository
	users        authusecase.UserService
}

func NewSettingsHandler(settingsRepo repository.SettingsRepository, users authusecase.UserService) *SettingsHandler {
	return &SettingsHandler{settingsRepo: settingsRepo, users: users}
}

// UpdateSettingsRequest represents the request body for updating settings
type UpdateSettingsRequest struct {
	WorkdayStart       *string         `json:"workday_start"`
	WorkdayEnd         *string         `json:"workday_end"`
	MeetingWindowsJSON json.RawMessage `json:"meeting_windows_json"`
	DeepWorkBlocksJSON json.RawMessage `json:"deep_work_blocks_json"`
	TrelloBoardID      *string         `json:"trello_board_id"`
	TrelloListID       *string         `json:"trello_list_id"`
}

// GetSettings returns the user's settings, creating defaults on first access
// GET /api/settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	user, err := h.users.EnsureDefaultUser()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings", "message": err.Error()})
		return
	}

	settings, err := h.settingsRepo.FindByUserID(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings", "message": err.Error()})
		return
	}
	if settings == nil {
		settings, err = h.settingsRepo.Upsert(domain.Defaults(user.ID))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings", "message": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateSettings merges the provided fields into the user's settings
// POST /api/settings
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	user, err := h.users.EnsureDefaultUser()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings", "message": err.Error()})
		return
	}

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid settings payload", "message": err.Error()})
		return
	}

	settings, err := h.settingsRepo.FindByUserID(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings", "message": err.Error()})
		return
	}
	if settings == nil {
		settings = domain.Defaults(user.ID)
	}

	if req.WorkdayStart != nil {
		settings.WorkdayStart = *req.WorkdayStart
	}
	if req.WorkdayEnd != nil {
		settings.WorkdayEnd = *req.WorkdayEnd
	}
	if req.MeetingWindowsJSON != nil {
		settings.MeetingWindowsJSON = req.MeetingWindowsJSON
	}
	if req.DeepWorkBlocksJSON != nil {
		settings.DeepWorkBlocksJSON = req.DeepWorkBlocksJSON
	}
	if req.TrelloBoardID != nil {
		settings.TrelloBoardID = *req.TrelloBoardID
	}
	if req.TrelloListID != nil {
		settings.TrelloListID = *req.TrelloListID
	}

	updated, err := h.settingsRepo.Upsert(settings)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, updated)
}
