package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authusecase "briefdesk-backend/internal/auth/usecase"
	"briefdesk-backend/internal/brief/usecase"
)

// BriefHandler handles daily brief requests
type BriefHandler struct {
	briefUsecase usecase.BriefUsecase
	users        authusecase.UserService
}

func NewBriefHandler(briefUsecase usecase.BriefUsecase, users authusecase.UserService) *BriefHandler {
	return &BriefHandler{briefUsecase: briefUsecase, users: users}
}

// GetTodayBrief returns the aggregated daily view
// GET /api/brief/today?sync=true
func (h *BriefHandler) GetTodayBrief(c *gin.Context) {
	user, err := h.users.EnsureDefaultUser()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build brief", "message": err.Error()})
		return
	}

	syncTrello := c.Query("sync") == "true"

	brief, err := h.briefUsecase.BuildDailyBrief(c.Request.Context(), user.ID, syncTrello)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build brief", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, brief)
}
