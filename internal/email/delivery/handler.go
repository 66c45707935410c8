package delivery

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	authusecase "briefdesk-backend/internal/auth/usecase"
	"briefdesk-backend/internal/email/domain"
	"briefdesk-backend/internal/email/usecase"
)

// EmailHandler handles inbox, draft and send requests
type EmailHandler struct {
	emailUsecase usecase.EmailUsecase
	users        authusecase.UserService
}

func NewEmailHandler(emailUsecase usecase.EmailUsecase, users authusecase.UserService) *EmailHandler {
	return &EmailHandler{emailUsecase: emailUsecase, users: users}
}

// GetEmails returns the recent inbox listing
// GET /api/emails?limit=20
func (h *EmailHandler) GetEmails(c *gin.Context) {
	user, err := h.users.EnsureDefaultUser()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch emails", "message": err.Error()})
		return
	}

	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	if err != nil || limit <= 0 {
		limit = 20
	}

	emails, err := h.emailUsecase.FetchRecentEmails(c.Request.Context(), user.ID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch emails", "message": err.Error()})
		return
	}
	if emails == nil {
		emails = []domain.Email{}
	}

	c.JSON(http.StatusOK, gin.H{"emails": emails})
}

// DraftRequest represents the request body for generating a reply draft
type DraftRequest struct {
	ThreadID string `json:"threadId" binding:"required"`
	Tone     string `json:"tone" binding:"omitempty,oneof=casual business-casual formal"`
	Context  string `json:"context" binding:"required"`
}

// GenerateDraft produces an LLM reply draft for a thread
// POST /api/email/draft
func (h *EmailHandler) GenerateDraft(c *gin.Context) {
	var req DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid draft payload", "message": err.Error()})
		return
	}
	if req.Tone == "" {
		req.Tone = "business-casual"
	}

	draft, err := h.emailUsecase.GenerateDraft(c.Request.Context(), req.Context, req.Tone)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate draft", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"draft": draft, "threadId": req.ThreadID})
}

// SendRequest represents the request body for sending an email
type SendRequest struct {
	To      string `json:"to" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

// SendEmail sends a plain-text message
// POST /api/email/send
func (h *EmailHandler) SendEmail(c *gin.Context) {
	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid send payload", "message": err.Error()})
		return
	}

	user, err := h.users.EnsureDefaultUser()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email", "message": err.Error()})
		return
	}

	if err := h.emailUsecase.SendEmail(c.Request.Context(), user.ID, req.To, req.Subject, req.Body); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
