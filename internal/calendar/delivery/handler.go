package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authusecase "briefdesk-backend/internal/auth/usecase"
	"briefdesk-backend/internal/calendar/domain"
	"briefdesk-backend/internal/calendar/usecase"
)

// CalendarHandler handles calendar requests
type CalendarHandler struct {
	calendarUsecase usecase.CalendarUsecase
	users           authusecase.UserService
}

func NewCalendarHandler(calendarUsecase usecase.CalendarUsecase, users authusecase.UserService) *CalendarHandler {
	return &CalendarHandler{calendarUsecase: calendarUsecase, users: users}
}

// GetTodayEvents returns today's events
// GET /api/calendar/today
func (h *CalendarHandler) GetTodayEvents(c *gin.Context) {
	user, err := h.users.EnsureDefaultUser()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch calendar", "message": err.Error()})
		return
	}

	events, err := h.calendarUsecase.FetchTodayEvents(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch calendar", "message": err.Error()})
		return
	}
	if events == nil {
		events = []domain.Event{}
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}
